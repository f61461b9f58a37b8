package model

// Department 院系表，对应 departments
type Department struct {
	ID   int64   `gorm:"primaryKey"                          json:"id"`
	Code string  `gorm:"type:varchar(10);not null;uniqueIndex" json:"code"`
	Name *string `gorm:"type:varchar(200)"                   json:"name"`
	BaseModel
}

// TableName 指定表名
func (Department) TableName() string { return "departments" }

// DepartmentWithCount 院系及其课程数（聚合查询结果）
type DepartmentWithCount struct {
	Department
	CourseCount int64 `json:"course_count"`
}
