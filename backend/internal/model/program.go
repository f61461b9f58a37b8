package model

// Program 培养方案表，对应 programs
type Program struct {
	ID          int64   `gorm:"primaryKey"                             json:"id"`
	ProgramID   string  `gorm:"type:varchar(150);not null;uniqueIndex" json:"program_id"` // "computer-science-major-bs"
	Name        string  `gorm:"type:varchar(300);not null"             json:"name"`
	ProgramType string  `gorm:"type:varchar(20);not null"              json:"program_type"` // major | minor | certificate
	DegreeType  *string `gorm:"type:varchar(20)"                       json:"degree_type"`
	TotalHours  *int    `json:"total_hours"`
	URL         *string `gorm:"type:text"                              json:"url"`
	BaseModel
}

// TableName 指定表名
func (Program) TableName() string { return "programs" }

// ProgramRequirement 培养方案要求类别表，对应 program_requirements
type ProgramRequirement struct {
	ID                int64    `gorm:"primaryKey"                json:"id"`
	ProgramID         int64    `gorm:"not null;index"            json:"-"`
	RequirementType   string   `gorm:"type:varchar(50);not null" json:"requirement_type"` // gateway | core | elective | allied_science
	CategoryName      *string  `gorm:"type:varchar(300)"         json:"category_name"`
	MinCredits        *float64 `json:"min_credits"`
	MinCourses        *int     `json:"min_courses"`
	SelectionNotes    *string  `gorm:"type:text"                 json:"selection_notes"`
	LevelRequirement  *string  `gorm:"type:varchar(100)"         json:"level_requirement"`
	OtherRestrictions *string  `gorm:"type:text"                 json:"other_restrictions"`
	DisplayOrder      int      `gorm:"not null;default:0"        json:"display_order"`

	Courses []RequirementCourse `gorm:"-" json:"courses"`
}

// TableName 指定表名
func (ProgramRequirement) TableName() string { return "program_requirements" }

// ProgramRequirementCourse 要求类别与课程关联表，对应 program_requirement_courses
type ProgramRequirementCourse struct {
	ID            int64 `gorm:"primaryKey"`
	RequirementID int64 `gorm:"not null;index"`
	CourseID      int64 `gorm:"not null"`
	IsRequired    bool  `gorm:"not null;default:false"`
}

// TableName 指定表名
func (ProgramRequirementCourse) TableName() string { return "program_requirement_courses" }

// RequirementCourse 要求类别下的课程（联表查询结果）
type RequirementCourse struct {
	RequirementID int64   `json:"-"`
	CourseID      string  `json:"course_id"`
	CourseName    string  `json:"course_name"`
	Credits       *string `json:"credits"`
	IsRequired    bool    `json:"is_required"`
}
