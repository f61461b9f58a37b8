package model

// Course 课程表，对应 courses
//
// search_vector 为数据库生成列，不映射到结构体。
type Course struct {
	ID            int64   `gorm:"primaryKey"                             json:"-"`
	CourseID      string  `gorm:"type:varchar(20);not null;uniqueIndex"  json:"course_id"` // "COMP 211"
	DepartmentID  int64   `gorm:"not null;index"                         json:"-"`
	CourseNumber  string  `gorm:"type:varchar(10);not null"              json:"course_number"`
	Name          string  `gorm:"type:varchar(300);not null"             json:"name"`
	Credits       *string `gorm:"type:varchar(20)"                       json:"credits"`
	Description   *string `gorm:"type:text"                              json:"description"`
	GradingStatus *string `gorm:"type:varchar(50)"                       json:"grading_status"`
	BaseModel

	// 只读字段：由联表查询填充
	DepartmentCode string      `gorm:"->;-:migration" json:"department_code"`
	GenEd          StringArray `gorm:"->;-:migration" json:"gen_ed"`
	Rank           float64     `gorm:"->;-:migration" json:"-"`
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// CourseGenEd 课程可满足的通识代码，对应 course_gen_eds
type CourseGenEd struct {
	CourseID  int64  `gorm:"primaryKey"                   json:"-"`
	GenEdCode string `gorm:"type:varchar(20);primaryKey" json:"gen_ed_code"`
}

// TableName 指定表名
func (CourseGenEd) TableName() string { return "course_gen_eds" }
