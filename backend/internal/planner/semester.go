package planner

// CourseRequisites 学期计划中一门课程及其条件组
type CourseRequisites struct {
	CourseID string
	NotFound bool
	Groups   []PrerequisiteGroup
}

// CourseCheck 学期计划中单门课程的校验结果
type CourseCheck struct {
	CourseID string
	Valid    bool
	Missing  []string
	Warnings []string
}

// SemesterResult 学期计划校验结果，PerCourse 与输入顺序一致
type SemesterResult struct {
	AllValid  bool
	PerCourse []CourseCheck
}

// ValidateSemester 对学期内每门课程独立判定先修条件
//
// 所有课程使用同一个 completed 集合，同学期课程之间互不满足先修。
func (e Evaluator) ValidateSemester(courses []CourseRequisites, completed CourseSet) SemesterResult {
	result := SemesterResult{
		AllValid:  true,
		PerCourse: make([]CourseCheck, 0, len(courses)),
	}

	for _, c := range courses {
		check := CourseCheck{CourseID: NormalizeCourseID(c.CourseID)}
		if c.NotFound {
			check.Missing = []string{}
			check.Warnings = []string{WarningCourseNotFound}
		} else {
			r := e.Evaluate(c.Groups, completed)
			check.Valid = r.CanTake
			check.Missing = r.Missing
			check.Warnings = r.Warnings
		}
		result.AllValid = result.AllValid && check.Valid
		result.PerCourse = append(result.PerCourse, check)
	}

	return result
}
