package model

// CatalogStats 目录统计
type CatalogStats struct {
	TotalCourses             int64            `json:"total_courses"`
	TotalDepartments         int64            `json:"total_departments"`
	TotalPrograms            int64            `json:"total_programs"`
	Majors                   int64            `json:"majors"`
	Minors                   int64            `json:"minors"`
	CoursesWithPrereqs       int64            `json:"courses_with_prereqs"`
	TotalPrereqRelationships int64            `json:"total_prereq_relationships"`
	TopDepartments           []DepartmentSize `json:"top_departments"`
}

// DepartmentSize 院系课程数
type DepartmentSize struct {
	Code        string `json:"code"`
	CourseCount int64  `json:"course_count"`
}

// GraphNode 先修关系图节点
type GraphNode struct {
	CourseID string `json:"course_id"`
	Name     string `json:"name"`
	Depth    int    `json:"depth"`
}

// GraphEdge 先修关系图边：Source 需要 Target
type GraphEdge struct {
	Source        string `json:"source"`
	Target        string `json:"target"`
	PrereqGroup   int    `json:"prereq_group"`
	IsCorequisite bool   `json:"is_corequisite"`
}

// CourseGraph 以某门课程为根的先修关系图
type CourseGraph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// CoursePath 从一门课程沿先修关系到达另一门课程的路径
type CoursePath struct {
	Courses []string `json:"courses"`
	Length  int      `json:"length"`
}
