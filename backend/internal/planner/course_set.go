// Package planner 选课规划核心逻辑：先修条件判定、学期计划校验、培养方案进度汇总与通识教育完成情况。
//
// 本包只做纯计算，不访问数据库；所需的目录数据由 service 层查询后传入。
package planner

import (
	"sort"
	"strings"
)

// NormalizeCourseID 统一课程编号格式：大写、合并空白（"comp  211" → "COMP 211"）
func NormalizeCourseID(id string) string {
	return strings.ToUpper(strings.Join(strings.Fields(id), " "))
}

// CourseSet 课程编号集合（已修 / 计划修读）
type CourseSet map[string]struct{}

// NewCourseSet 由调用方传入的课程列表构建集合，空串被忽略
func NewCourseSet(ids []string) CourseSet {
	set := make(CourseSet, len(ids))
	for _, id := range ids {
		if n := NormalizeCourseID(id); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}

// Has 判断课程是否在集合中
func (s CourseSet) Has(id string) bool {
	_, ok := s[NormalizeCourseID(id)]
	return ok
}

// Sorted 返回按课程编号升序排列的切片
func (s CourseSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
