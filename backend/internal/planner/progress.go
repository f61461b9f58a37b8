package planner

import (
	"math"
	"strconv"
	"strings"
)

// ParseCredits 解析学分字段；区间（"1-3"）、空值及其他非数字内容按 0 计
func ParseCredits(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// RequirementCourse 培养方案要求下挂的课程
type RequirementCourse struct {
	CourseID    string
	Name        string
	Credits     string
	IsRequired  bool
	IsCompleted bool
	IsPlanned   bool
}

// Requirement 培养方案中的一个要求类别
type Requirement struct {
	ID                int64
	RequirementType   string
	CategoryName      string
	MinCredits        *float64
	MinCourses        *int
	SelectionNotes    string
	LevelRequirement  string
	OtherRestrictions string
	DisplayOrder      int
	Courses           []RequirementCourse
}

// ProgressResult 培养方案完成进度
type ProgressResult struct {
	CompletedCredits float64
	PlannedCredits   float64
	TotalRequired    float64
	Percentage       float64
	Requirements     []Requirement
}

// ComputeProgress 汇总培养方案的学分完成进度
//
// 只统计扁平学分：同一课程挂在多个类别下时只计一次；
// 不判定类别层面的 min_credits / min_courses。
// totalHours <= 0 时使用 defaultTotal。
func ComputeProgress(totalHours int, requirements []Requirement, completed, planned CourseSet, defaultTotal int) ProgressResult {
	total := float64(totalHours)
	if totalHours <= 0 {
		total = float64(defaultTotal)
	}

	result := ProgressResult{
		TotalRequired: total,
		Requirements:  make([]Requirement, 0, len(requirements)),
	}

	counted := make(map[string]struct{})
	for _, req := range requirements {
		annotated := req
		annotated.Courses = make([]RequirementCourse, 0, len(req.Courses))

		for _, c := range req.Courses {
			id := NormalizeCourseID(c.CourseID)
			c.IsCompleted = completed.Has(id)
			c.IsPlanned = !c.IsCompleted && planned.Has(id)

			if c.IsCompleted || c.IsPlanned {
				if _, seen := counted[id]; !seen {
					counted[id] = struct{}{}
					if c.IsCompleted {
						result.CompletedCredits += ParseCredits(c.Credits)
					} else {
						result.PlannedCredits += ParseCredits(c.Credits)
					}
				}
			}
			annotated.Courses = append(annotated.Courses, c)
		}
		result.Requirements = append(result.Requirements, annotated)
	}

	if total > 0 {
		result.Percentage = math.Min(100, result.CompletedCredits/total*100)
	}
	return result
}
