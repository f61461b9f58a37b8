package planner

import "sort"

// 判定过程中产生的提示信息
const (
	WarningNoPrerequisites = "no prerequisites found"
	WarningEmptyGroup      = "prerequisite group has no options"
	WarningCourseNotFound  = "course not found"
)

// PrerequisiteGroup 某门课程的一个先修（或同修）条件组
//
// 同一组内的选项为 OR 关系，不同组号之间为 AND 关系。
type PrerequisiteGroup struct {
	Group         int
	IsCorequisite bool
	Options       []string
	// MinimumGrades 选项课程 → 最低成绩要求；默认不参与判定
	MinimumGrades map[string]string
}

// GradePolicy 最低成绩校验扩展点
//
// 注入后，带最低成绩要求的选项只有在 Accepts 返回 true 时才算满足。
type GradePolicy interface {
	Accepts(courseID, minimumGrade string) bool
}

// Evaluator 先修条件判定器，零值即可使用（不校验成绩）
type Evaluator struct {
	Grades GradePolicy
}

// GroupStatus 单个条件组的判定结果
type GroupStatus struct {
	Group     int      `json:"group"`
	Satisfied bool     `json:"satisfied"`
	Options   []string `json:"options"`
}

// EvaluationResult 先修判定结果
type EvaluationResult struct {
	CanTake      bool
	Missing      []string
	Warnings     []string
	Corequisites []GroupStatus
}

// Evaluate 判定已修课程集合是否满足目标课程的先修条件
//
// 只有先修组参与 CanTake；同修组同样判定但单独返回。
// Missing 为所有未满足先修组的选项并集，去重后按课程编号排序。
func (e Evaluator) Evaluate(groups []PrerequisiteGroup, completed CourseSet) EvaluationResult {
	result := EvaluationResult{
		CanTake:      true,
		Missing:      []string{},
		Warnings:     []string{},
		Corequisites: []GroupStatus{},
	}

	prereqCount := 0
	missing := make(map[string]struct{})

	for _, g := range groups {
		if len(g.Options) == 0 {
			result.Warnings = append(result.Warnings, WarningEmptyGroup)
		}
		satisfied := e.groupSatisfied(g, completed)

		if g.IsCorequisite {
			result.Corequisites = append(result.Corequisites, GroupStatus{
				Group:     g.Group,
				Satisfied: satisfied,
				Options:   normalizedOptions(g.Options),
			})
			continue
		}

		prereqCount++
		if satisfied {
			continue
		}
		result.CanTake = false
		for _, opt := range g.Options {
			if id := NormalizeCourseID(opt); id != "" {
				missing[id] = struct{}{}
			}
		}
	}

	if prereqCount == 0 {
		result.Warnings = append(result.Warnings, WarningNoPrerequisites)
	}

	for id := range missing {
		result.Missing = append(result.Missing, id)
	}
	sort.Strings(result.Missing)

	return result
}

func (e Evaluator) groupSatisfied(g PrerequisiteGroup, completed CourseSet) bool {
	for _, opt := range g.Options {
		if !completed.Has(opt) {
			continue
		}
		if e.Grades != nil {
			if grade, ok := g.MinimumGrades[NormalizeCourseID(opt)]; ok && grade != "" && !e.Grades.Accepts(opt, grade) {
				continue
			}
		}
		return true
	}
	return false
}

func normalizedOptions(opts []string) []string {
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		out = append(out, NormalizeCourseID(o))
	}
	return out
}
