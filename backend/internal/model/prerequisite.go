package model

// Prerequisite 先修/同修关系表，对应 prerequisites
//
// 同一课程下 prereq_group 相同的记录为 OR 关系，不同组之间为 AND 关系。
type Prerequisite struct {
	ID             int64 `gorm:"primaryKey"             json:"-"`
	CourseID       int64 `gorm:"not null;index"         json:"-"` // 目标课程 courses.id
	PrereqCourseID int64 `gorm:"not null"               json:"-"`
	PrereqGroup    int   `gorm:"not null;default:1"     json:"prereq_group"`
	IsCorequisite  bool  `gorm:"not null;default:false" json:"is_corequisite"`
}

// TableName 指定表名
func (Prerequisite) TableName() string { return "prerequisites" }

// GradeRequirement 最低成绩要求表，对应 grade_requirements
type GradeRequirement struct {
	ID               int64  `gorm:"primaryKey"              json:"-"`
	CourseID         int64  `gorm:"not null;index"          json:"-"`
	RequiredCourseID int64  `gorm:"not null"                json:"-"`
	MinimumGrade     string `gorm:"type:varchar(5);not null" json:"minimum_grade"`
}

// TableName 指定表名
func (GradeRequirement) TableName() string { return "grade_requirements" }

// ── 查询视图 ──

// PrerequisiteOption 条件组中的一个可选课程
type PrerequisiteOption struct {
	CourseID string  `json:"course_id"`
	Name     string  `json:"name"`
	Credits  *string `json:"credits"`
}

// PrerequisiteGroup 按 (prereq_group, is_corequisite) 聚合后的条件组
type PrerequisiteGroup struct {
	PrereqGroup   int                  `json:"prereq_group"`
	IsCorequisite bool                 `json:"is_corequisite"`
	Courses       []PrerequisiteOption `json:"courses"`
}

// CourseGradeRequirement 某门先修课程的最低成绩要求（联表查询结果）
type CourseGradeRequirement struct {
	CourseID     string `json:"course_id"`
	MinimumGrade string `json:"minimum_grade"`
}
