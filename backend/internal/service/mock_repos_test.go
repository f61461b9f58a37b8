package service

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"pathfinder/backend/config"
	"pathfinder/backend/internal/model"
	"pathfinder/backend/internal/planner"
	"pathfinder/backend/internal/repository"
)

// ── 内存目录数据 ──

// mockCatalog 各 mock repo 共享的内存目录
type mockCatalog struct {
	departments []model.Department
	courses     []model.Course
	groups      map[int64][]model.PrerequisiteGroup
	grades      map[int64][]model.CourseGradeRequirement
	programs    []model.Program
	reqs        map[int64][]model.ProgramRequirement
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

// newMockCatalog 构建一个最小 COMP / MATH 目录
//
//	COMP 211 需要 COMP 110 且 (MATH 130 或 MATH 231)，同修 COMP 211L
//	COMP 210 需要 COMP 110，并对 COMP 110 有最低成绩 C
func newMockCatalog() *mockCatalog {
	c := &mockCatalog{
		departments: []model.Department{
			{ID: 1, Code: "COMP", Name: strPtr("Computer Science")},
			{ID: 2, Code: "MATH", Name: strPtr("Mathematics")},
			{ID: 3, Code: "DRAM", Name: strPtr("Dramatic Art")},
		},
		groups:   make(map[int64][]model.PrerequisiteGroup),
		grades:   make(map[int64][]model.CourseGradeRequirement),
		programs: []model.Program{{ID: 1, ProgramID: "computer-science-major-bs", Name: "Computer Science Major, B.S.", ProgramType: "major", TotalHours: intPtr(120)}},
		reqs:     make(map[int64][]model.ProgramRequirement),
	}

	add := func(id int64, deptID int64, code, number, name, credits string, genEd ...string) {
		c.courses = append(c.courses, model.Course{
			ID:             id,
			CourseID:       code + " " + number,
			DepartmentID:   deptID,
			DepartmentCode: code,
			CourseNumber:   number,
			Name:           name,
			Credits:        strPtr(credits),
			GenEd:          model.StringArray(genEd),
		})
	}
	add(1, 1, "COMP", "110", "Introduction to Programming and Data Science", "3", "FC-QUANT")
	add(2, 1, "COMP", "210", "Data Structures and Analysis", "3")
	add(3, 1, "COMP", "211", "Systems Fundamentals", "3")
	add(4, 1, "COMP", "211L", "Systems Fundamentals Lab", "1")
	add(5, 2, "MATH", "130", "Precalculus Mathematics", "3", "FC-QUANT")
	add(6, 2, "MATH", "231", "Calculus of Functions of One Variable I", "4", "FC-QUANT")
	add(7, 2, "MATH", "290", "Directed Reading", "1-3")

	opt := func(id string) model.PrerequisiteOption {
		course := c.course(id)
		return model.PrerequisiteOption{CourseID: course.CourseID, Name: course.Name, Credits: course.Credits}
	}
	c.groups[3] = []model.PrerequisiteGroup{
		{PrereqGroup: 1, Courses: []model.PrerequisiteOption{opt("COMP 110")}},
		{PrereqGroup: 2, Courses: []model.PrerequisiteOption{opt("MATH 130"), opt("MATH 231")}},
		{PrereqGroup: 3, IsCorequisite: true, Courses: []model.PrerequisiteOption{opt("COMP 211L")}},
	}
	c.groups[2] = []model.PrerequisiteGroup{
		{PrereqGroup: 1, Courses: []model.PrerequisiteOption{opt("COMP 110")}},
	}
	c.grades[2] = []model.CourseGradeRequirement{{CourseID: "COMP 110", MinimumGrade: "C"}}

	reqCourse := func(reqID int64, id string, required bool) model.RequirementCourse {
		course := c.course(id)
		return model.RequirementCourse{RequirementID: reqID, CourseID: course.CourseID, CourseName: course.Name, Credits: course.Credits, IsRequired: required}
	}
	c.reqs[1] = []model.ProgramRequirement{
		{ID: 10, ProgramID: 1, RequirementType: "core", CategoryName: strPtr("Core Requirements"), DisplayOrder: 1,
			Courses: []model.RequirementCourse{reqCourse(10, "COMP 110", true), reqCourse(10, "COMP 210", true), reqCourse(10, "COMP 211", true)}},
		{ID: 11, ProgramID: 1, RequirementType: "allied_science", CategoryName: strPtr("Mathematics"), MinCourses: intPtr(1), DisplayOrder: 2,
			Courses: []model.RequirementCourse{reqCourse(11, "MATH 231", false), reqCourse(11, "COMP 110", false), reqCourse(11, "MATH 290", false)}},
	}
	return c
}

func (c *mockCatalog) course(id string) *model.Course {
	for i := range c.courses {
		if c.courses[i].CourseID == id {
			return &c.courses[i]
		}
	}
	return nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	cat            *mockCatalog
	searchErr      error
	searchCalls    int
	fallbackCalls  int
	err            error
	searchFullText bool // false 时全文检索始终返回空结果
}

func (m *mockCourseRepo) GetByCourseID(_ context.Context, courseID string) (*model.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	if c := m.cat.course(courseID); c != nil {
		copied := *c
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) ListByIDs(_ context.Context, courseIDs []string) ([]model.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := []model.Course{}
	for _, id := range courseIDs {
		if c := m.cat.course(id); c != nil {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockCourseRepo) Search(_ context.Context, text string, limit int) ([]model.Course, error) {
	m.searchCalls++
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	result := []model.Course{}
	if !m.searchFullText {
		return result, nil
	}
	for _, c := range m.cat.courses {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(text)) && len(result) < limit {
			result = append(result, c)
		}
	}
	return result, nil
}

func (m *mockCourseRepo) SearchFallback(_ context.Context, text string, limit int) ([]model.Course, error) {
	m.fallbackCalls++
	result := []model.Course{}
	q := strings.ToLower(text)
	for _, c := range m.cat.courses {
		if len(result) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(c.CourseID), q) || strings.Contains(strings.ToLower(c.Name), q) {
			result = append(result, c)
		}
	}
	return result, nil
}

func (m *mockCourseRepo) ListByDepartment(_ context.Context, departmentID int64) ([]model.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := []model.Course{}
	for _, c := range m.cat.courses {
		if c.DepartmentID == departmentID {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CourseNumber < result[j].CourseNumber })
	return result, nil
}

// ── Mock DepartmentRepository ──

type mockDeptRepo struct {
	cat *mockCatalog
	err error
}

func (m *mockDeptRepo) GetByCode(_ context.Context, code string) (*model.Department, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.cat.departments {
		if strings.EqualFold(m.cat.departments[i].Code, code) {
			d := m.cat.departments[i]
			return &d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDeptRepo) ListWithCounts(_ context.Context) ([]model.DepartmentWithCount, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := []model.DepartmentWithCount{}
	for _, d := range m.cat.departments {
		var n int64
		for _, c := range m.cat.courses {
			if c.DepartmentID == d.ID {
				n++
			}
		}
		result = append(result, model.DepartmentWithCount{Department: d, CourseCount: n})
	}
	return result, nil
}

// ── Mock PrerequisiteRepository ──

type mockPrereqRepo struct {
	cat        *mockCatalog
	err        error
	gradeCalls int
}

func (m *mockPrereqRepo) ListGroups(_ context.Context, courseID int64) ([]model.PrerequisiteGroup, error) {
	if m.err != nil {
		return nil, m.err
	}
	if g, ok := m.cat.groups[courseID]; ok {
		return g, nil
	}
	return []model.PrerequisiteGroup{}, nil
}

func (m *mockPrereqRepo) ListGroupsForCourses(_ context.Context, courseIDs []int64) (map[int64][]model.PrerequisiteGroup, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make(map[int64][]model.PrerequisiteGroup)
	for _, id := range courseIDs {
		if g, ok := m.cat.groups[id]; ok {
			result[id] = g
		}
	}
	return result, nil
}

func (m *mockPrereqRepo) ListGradeRequirements(_ context.Context, courseID int64) ([]model.CourseGradeRequirement, error) {
	m.gradeCalls++
	if m.err != nil {
		return nil, m.err
	}
	if g, ok := m.cat.grades[courseID]; ok {
		return g, nil
	}
	return []model.CourseGradeRequirement{}, nil
}

// ── Mock ProgramRepository ──

type mockProgramRepo struct {
	cat *mockCatalog
	err error
}

func (m *mockProgramRepo) GetByProgramID(_ context.Context, programID string) (*model.Program, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.cat.programs {
		if m.cat.programs[i].ProgramID == programID {
			p := m.cat.programs[i]
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProgramRepo) Search(_ context.Context, text, programType string, limit int) ([]model.Program, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := []model.Program{}
	for _, p := range m.cat.programs {
		if text != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(text)) {
			continue
		}
		if programType != "" && p.ProgramType != programType {
			continue
		}
		if len(result) < limit {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *mockProgramRepo) ListRequirements(_ context.Context, programID int64) ([]model.ProgramRequirement, error) {
	if m.err != nil {
		return nil, m.err
	}
	if r, ok := m.cat.reqs[programID]; ok {
		return r, nil
	}
	return []model.ProgramRequirement{}, nil
}

// ── Mock GenEdRepository ──

type mockGenEdRepo struct {
	cat         *mockCatalog
	err         error
	lookupCalls int
}

func (m *mockGenEdRepo) ListFulfillments(_ context.Context, courseIDs []string) (map[string][]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	index := make(map[string][]string)
	for _, id := range courseIDs {
		if c := m.cat.course(id); c != nil && len(c.GenEd) > 0 {
			index[id] = append([]string(nil), c.GenEd...)
		}
	}
	return index, nil
}

func (m *mockGenEdRepo) ListAvailableCourses(_ context.Context, code string, excluding []string, limit int) ([]string, error) {
	m.lookupCalls++
	if m.err != nil {
		return nil, m.err
	}
	skip := make(map[string]bool, len(excluding))
	for _, e := range excluding {
		skip[e] = true
	}
	result := []string{}
	for _, c := range m.cat.courses {
		if len(result) >= limit {
			break
		}
		if skip[c.CourseID] {
			continue
		}
		for _, g := range c.GenEd {
			if g == code {
				result = append(result, c.CourseID)
				break
			}
		}
	}
	return result, nil
}

// ── Mock StatsRepository ──

type mockStatsRepo struct {
	cat       *mockCatalog
	err       error
	pathDepth int
}

func (m *mockStatsRepo) Summary(_ context.Context) (*model.CatalogStats, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &model.CatalogStats{
		TotalCourses:     int64(len(m.cat.courses)),
		TotalDepartments: int64(len(m.cat.departments)),
		TotalPrograms:    int64(len(m.cat.programs)),
		TopDepartments:   []model.DepartmentSize{},
	}, nil
}

func (m *mockStatsRepo) PrerequisiteGraph(_ context.Context, root *model.Course, depth int) (*model.CourseGraph, error) {
	if m.err != nil {
		return nil, m.err
	}
	graph := &model.CourseGraph{
		Nodes: []model.GraphNode{{CourseID: root.CourseID, Name: root.Name}},
		Edges: []model.GraphEdge{},
	}
	for _, g := range m.cat.groups[root.ID] {
		for _, o := range g.Courses {
			graph.Nodes = append(graph.Nodes, model.GraphNode{CourseID: o.CourseID, Name: o.Name, Depth: depth})
			graph.Edges = append(graph.Edges, model.GraphEdge{Source: root.CourseID, Target: o.CourseID, PrereqGroup: g.PrereqGroup, IsCorequisite: g.IsCorequisite})
		}
	}
	return graph, nil
}

// CoursePaths 在内存先修组上深度优先搜索，同一路径内不重复经过课程
func (m *mockStatsRepo) CoursePaths(_ context.Context, from, to *model.Course, maxDepth int) ([]model.CoursePath, error) {
	m.pathDepth = maxDepth
	if m.err != nil {
		return nil, m.err
	}
	paths := []model.CoursePath{}
	var walk func(c *model.Course, path []string)
	walk = func(c *model.Course, path []string) {
		if c.ID == to.ID {
			paths = append(paths, model.CoursePath{Courses: append([]string(nil), path...), Length: len(path) - 1})
			return
		}
		if len(path)-1 >= maxDepth {
			return
		}
		for _, g := range m.cat.groups[c.ID] {
			for _, o := range g.Courses {
				visited := false
				for _, p := range path {
					if p == o.CourseID {
						visited = true
					}
				}
				if !visited {
					walk(m.cat.course(o.CourseID), append(path, o.CourseID))
				}
			}
		}
	}
	walk(from, []string{from.CourseID})
	sort.SliceStable(paths, func(i, j int) bool { return paths[i].Length < paths[j].Length })
	return paths, nil
}

// ── 组装 ──

type mockRepos struct {
	cat     *mockCatalog
	course  *mockCourseRepo
	dept    *mockDeptRepo
	prereq  *mockPrereqRepo
	program *mockProgramRepo
	genEd   *mockGenEdRepo
	stats   *mockStatsRepo
}

func newMockRepos() (*repository.Repository, *mockRepos) {
	cat := newMockCatalog()
	m := &mockRepos{
		cat:     cat,
		course:  &mockCourseRepo{cat: cat, searchFullText: true},
		dept:    &mockDeptRepo{cat: cat},
		prereq:  &mockPrereqRepo{cat: cat},
		program: &mockProgramRepo{cat: cat},
		genEd:   &mockGenEdRepo{cat: cat},
		stats:   &mockStatsRepo{cat: cat},
	}
	repo := &repository.Repository{
		Course:       m.course,
		Department:   m.dept,
		Prerequisite: m.prereq,
		Program:      m.program,
		GenEd:        m.genEd,
		Stats:        m.stats,
	}
	return repo, m
}

func testCatalogConfig() *config.CatalogConfig {
	return &config.CatalogConfig{
		DefaultTotalHours:  120,
		SearchDefaultLimit: 20,
		SearchMaxLimit:     100,
		SearchMinQueryLen:  2,
		GenEdAvailable:     10,
		ProgramSearchLimit: 50,
		GraphDefaultDepth:  2,
		GraphMaxDepth:      5,
	}
}

func testGenEdCatalog() *planner.GenEdCatalog {
	c, err := planner.NewGenEdCatalog([]planner.GenEdRequirement{
		{Code: "FC-QUANT", Name: "Quantitative Reasoning", Required: true},
		{Code: "FC-AESTH", Name: "Aesthetic and Interpretive Analysis", Required: true},
	})
	if err != nil {
		panic(err)
	}
	return c
}

var testLogger = zap.NewNop()
