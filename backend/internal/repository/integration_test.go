//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pathfinder/backend/internal/model"
	"pathfinder/backend/internal/repository"
	"pathfinder/backend/pkg/database"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=postgres password=postgres dbname=pathfinder_test sslmode=disable"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	// search_vector 为生成列，必须通过迁移建表
	sqlDB, err := testDB.DB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "获取 sql.DB 失败: %v\n", err)
		os.Exit(1)
	}
	if err := database.RunMigrations(sqlDB, zap.NewNop()); err != nil {
		fmt.Fprintf(os.Stderr, "迁移失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

func strPtr(s string) *string { return &s }

// seedCatalog 通过 CatalogWriter 写入一个最小院系目录并返回清理函数
func seedCatalog(t *testing.T) (dept string, cleanup func()) {
	t.Helper()
	ctx := context.Background()
	w := repository.NewCatalogWriter(testDB)

	dept = fmt.Sprintf("T%d", time.Now().UnixNano()%1_000_000)
	courses := []struct {
		number, name, credits string
		genEds                []string
	}{
		{"110", "Introduction to Programming", "3", []string{"FC-QUANT"}},
		{"210", "Data Structures", "3", nil},
		{"211", "Systems Fundamentals", "1-3", nil},
	}
	for _, c := range courses {
		rec := &repository.CourseUpsert{
			DepartmentCode: dept,
			DepartmentName: strPtr("Test Department"),
			Course: model.Course{
				CourseID:     dept + " " + c.number,
				CourseNumber: c.number,
				Name:         c.name,
				Credits:      strPtr(c.credits),
			},
			GenEds: c.genEds,
		}
		if err := w.UpsertCourse(ctx, rec); err != nil {
			t.Fatalf("写入课程失败: %v", err)
		}
	}

	_, err := w.ReplaceRequisites(ctx, &repository.RequisiteUpsert{
		CourseID: dept + " 211",
		Groups: []repository.RequisiteGroup{
			{Group: 1, Options: []string{dept + " 110"}},
			{Group: 2, Options: []string{dept + " 210"}},
		},
		GradeRequirements: map[string]string{dept + " 210": "C"},
	})
	if err != nil {
		t.Fatalf("写入先修关系失败: %v", err)
	}
	_, err = w.ReplaceRequisites(ctx, &repository.RequisiteUpsert{
		CourseID: dept + " 210",
		Groups:   []repository.RequisiteGroup{{Group: 1, Options: []string{dept + " 110"}}},
	})
	if err != nil {
		t.Fatalf("写入先修关系失败: %v", err)
	}

	cleanup = func() {
		testDB.Exec("DELETE FROM departments WHERE code = ?", dept)
	}
	return dept, cleanup
}

// ═══════════════════════════════════════════════════════════
// Test: Course reads
// ═══════════════════════════════════════════════════════════

func TestCourse_GetByCourseID(t *testing.T) {
	dept, cleanup := seedCatalog(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	c, err := repo.Course.GetByCourseID(ctx, dept+" 110")
	if err != nil {
		t.Fatalf("查询课程失败: %v", err)
	}
	if c.DepartmentCode != dept {
		t.Errorf("期望院系=%s，实际=%s", dept, c.DepartmentCode)
	}
	if len(c.GenEd) != 1 || c.GenEd[0] != "FC-QUANT" {
		t.Errorf("期望通识代码 [FC-QUANT]，实际=%v", c.GenEd)
	}

	_, err = repo.Course.GetByCourseID(ctx, dept+" 999")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("期望 ErrRecordNotFound，实际=%v", err)
	}
}

func TestCourse_SearchAndFallback(t *testing.T) {
	dept, cleanup := seedCatalog(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	found, err := repo.Course.Search(ctx, "data structures", 20)
	if err != nil {
		t.Fatalf("全文检索失败: %v", err)
	}
	hit := false
	for _, c := range found {
		if c.CourseID == dept+" 210" {
			hit = true
		}
	}
	if !hit {
		t.Errorf("全文检索应命中 %s 210", dept)
	}

	found, err = repo.Course.SearchFallback(ctx, dept, 20)
	if err != nil {
		t.Fatalf("模糊检索失败: %v", err)
	}
	if len(found) != 3 {
		t.Errorf("按院系代码模糊匹配应返回3门课程，实际=%d", len(found))
	}
}

func TestDepartment_ListCourses(t *testing.T) {
	dept, cleanup := seedCatalog(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	d, err := repo.Department.GetByCode(ctx, dept)
	if err != nil {
		t.Fatalf("查询院系失败: %v", err)
	}
	courses, err := repo.Course.ListByDepartment(ctx, d.ID)
	if err != nil {
		t.Fatalf("查询院系课程失败: %v", err)
	}
	if len(courses) != 3 || courses[0].CourseNumber != "110" {
		t.Errorf("院系课程应按课程号排序: %+v", courses)
	}

	depts, err := repo.Department.ListWithCounts(ctx)
	if err != nil {
		t.Fatalf("查询院系列表失败: %v", err)
	}
	for _, x := range depts {
		if x.Code == dept && x.CourseCount != 3 {
			t.Errorf("期望课程数=3，实际=%d", x.CourseCount)
		}
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Prerequisites & graph
// ═══════════════════════════════════════════════════════════

func TestPrerequisite_ListGroups(t *testing.T) {
	dept, cleanup := seedCatalog(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	c, err := repo.Course.GetByCourseID(ctx, dept+" 211")
	if err != nil {
		t.Fatalf("查询课程失败: %v", err)
	}
	groups, err := repo.Prerequisite.ListGroups(ctx, c.ID)
	if err != nil {
		t.Fatalf("查询先修组失败: %v", err)
	}
	if len(groups) != 2 || groups[0].PrereqGroup != 1 || groups[1].Courses[0].CourseID != dept+" 210" {
		t.Errorf("先修组不符: %+v", groups)
	}

	grades, err := repo.Prerequisite.ListGradeRequirements(ctx, c.ID)
	if err != nil {
		t.Fatalf("查询成绩要求失败: %v", err)
	}
	if len(grades) != 1 || grades[0].MinimumGrade != "C" {
		t.Errorf("成绩要求不符: %+v", grades)
	}

	graph, err := repo.Stats.PrerequisiteGraph(ctx, c, 2)
	if err != nil {
		t.Fatalf("查询先修图失败: %v", err)
	}
	if len(graph.Nodes) != 3 {
		t.Errorf("期望3个节点，实际=%d", len(graph.Nodes))
	}
	if len(graph.Edges) != 3 {
		t.Errorf("期望3条边，实际=%d", len(graph.Edges))
	}
}

func TestCatalogWriter_UnresolvedOptions(t *testing.T) {
	dept, cleanup := seedCatalog(t)
	defer cleanup()

	w := repository.NewCatalogWriter(testDB)
	unresolved, err := w.ReplaceRequisites(context.Background(), &repository.RequisiteUpsert{
		CourseID: dept + " 110",
		Groups:   []repository.RequisiteGroup{{Group: 1, Options: []string{"NOPE 101"}}},
	})
	if err != nil {
		t.Fatalf("写入失败: %v", err)
	}
	if len(unresolved) != 1 || unresolved[0] != "NOPE 101" {
		t.Errorf("期望返回未解析课程，实际=%v", unresolved)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Gen-ed index
// ═══════════════════════════════════════════════════════════

func TestGenEd_Fulfillments(t *testing.T) {
	dept, cleanup := seedCatalog(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	index, err := repo.GenEd.ListFulfillments(ctx, []string{dept + " 110", dept + " 210"})
	if err != nil {
		t.Fatalf("查询通识索引失败: %v", err)
	}
	if len(index[dept+" 110"]) != 1 || len(index[dept+" 210"]) != 0 {
		t.Errorf("通识索引不符: %v", index)
	}

	available, err := repo.GenEd.ListAvailableCourses(ctx, "FC-QUANT", []string{dept + " 110"}, 10)
	if err != nil {
		t.Fatalf("查询备选课程失败: %v", err)
	}
	for _, id := range available {
		if id == dept+" 110" {
			t.Error("备选课程不应包含已排除课程")
		}
	}
}

func TestCoursePaths(t *testing.T) {
	dept, cleanup := seedCatalog(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	from, err := repo.Course.GetByCourseID(ctx, dept+" 211")
	if err != nil {
		t.Fatalf("查询课程失败: %v", err)
	}
	to, err := repo.Course.GetByCourseID(ctx, dept+" 110")
	if err != nil {
		t.Fatalf("查询课程失败: %v", err)
	}

	paths, err := repo.Stats.CoursePaths(ctx, from, to, 5)
	if err != nil {
		t.Fatalf("查询先修路径失败: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("期望2条路径，实际=%+v", paths)
	}
	if paths[0].Length != 1 || len(paths[0].Courses) != 2 || paths[0].Courses[1] != dept+" 110" {
		t.Errorf("最短路径不符: %+v", paths[0])
	}
	if paths[1].Length != 2 || paths[1].Courses[1] != dept+" 210" {
		t.Errorf("经 210 的路径不符: %+v", paths[1])
	}

	paths, err = repo.Stats.CoursePaths(ctx, from, to, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 1 {
		t.Errorf("深度为1时只应返回直接先修路径，实际=%+v", paths)
	}

	paths, err = repo.Stats.CoursePaths(ctx, to, from, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 0 {
		t.Errorf("反向不应存在路径，实际=%+v", paths)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Programs & stats
// ═══════════════════════════════════════════════════════════

func TestProgram_SearchOrderedByName(t *testing.T) {
	tag := fmt.Sprintf("%d", time.Now().UnixNano()%1_000_000)
	seeded := []model.Program{
		{ProgramID: "zoology-major-" + tag, Name: "Zoology " + tag, ProgramType: "major"},
		{ProgramID: "algebra-minor-" + tag, Name: "Algebra " + tag, ProgramType: "minor"},
	}
	for i := range seeded {
		if err := testDB.Create(&seeded[i]).Error; err != nil {
			t.Fatalf("写入培养方案失败: %v", err)
		}
	}
	defer testDB.Exec("DELETE FROM programs WHERE program_id IN ?", []string{seeded[0].ProgramID, seeded[1].ProgramID})

	repo := repository.NewRepository(testDB)
	found, err := repo.Program.Search(context.Background(), "", "", 50)
	if err != nil {
		t.Fatalf("搜索培养方案失败: %v", err)
	}
	var names []string
	for _, p := range found {
		if p.Name == "Algebra "+tag || p.Name == "Zoology "+tag {
			names = append(names, p.Name)
		}
	}
	if len(names) != 2 || names[0] != "Algebra "+tag || names[1] != "Zoology "+tag {
		t.Errorf("未按类型过滤时应按名称排序，实际=%v", names)
	}

	found, err = repo.Program.Search(context.Background(), "major-"+tag, "", 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(found) != 0 {
		t.Errorf("只应按名称匹配，不应命中编号，实际=%v", found)
	}
}

func TestStats_TopDepartmentsIncludeEmpty(t *testing.T) {
	dept, cleanup := seedCatalog(t)
	defer cleanup()

	empty := model.Department{Code: "E" + dept[1:], Name: strPtr("Empty Department")}
	if err := testDB.Create(&empty).Error; err != nil {
		t.Fatalf("写入院系失败: %v", err)
	}
	defer testDB.Exec("DELETE FROM departments WHERE code = ?", empty.Code)

	repo := repository.NewRepository(testDB)
	stats, err := repo.Stats.Summary(context.Background())
	if err != nil {
		t.Fatalf("查询统计失败: %v", err)
	}
	if stats.TotalDepartments > 10 {
		t.Skip("院系数超过统计上限，无法断言空院系")
	}
	counts := make(map[string]int64)
	for _, d := range stats.TopDepartments {
		counts[d.Code] = d.CourseCount
	}
	if n, ok := counts[empty.Code]; !ok || n != 0 {
		t.Errorf("无课程院系应以0门出现，实际=%v", stats.TopDepartments)
	}
	if counts[dept] != 3 {
		t.Errorf("期望 %s 课程数=3，实际=%d", dept, counts[dept])
	}
}
