package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"pathfinder/backend/internal/dto"
	"pathfinder/backend/internal/model"
	"pathfinder/backend/internal/repository"
)

// ── 院系模块业务错误 ──

var (
	ErrDepartmentNotFound = errors.New("院系不存在")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// DepartmentService 院系业务接口
type DepartmentService interface {
	List(ctx context.Context) ([]dto.DepartmentResponse, error)
	// ListCourses 院系课程按课程号排序；院系存在但无课程时返回空列表
	ListCourses(ctx context.Context, code string) (*dto.DepartmentCoursesResponse, error)
	// ExportCourses 导出院系课程为 Excel，返回文件内容与建议文件名
	ExportCourses(ctx context.Context, code string) (*bytes.Buffer, string, error)
}

type departmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDepartmentService 创建 DepartmentService 实例
func NewDepartmentService(repo *repository.Repository, logger *zap.Logger) DepartmentService {
	return &departmentService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *departmentService) List(ctx context.Context) ([]dto.DepartmentResponse, error) {
	depts, err := s.repo.Department.ListWithCounts(ctx)
	if err != nil {
		return nil, storeFailure(s.logger, "列出院系", err)
	}

	result := make([]dto.DepartmentResponse, 0, len(depts))
	for i := range depts {
		result = append(result, dto.DepartmentResponse{
			Code:        depts[i].Code,
			Name:        depts[i].Name,
			CourseCount: depts[i].CourseCount,
		})
	}
	return result, nil
}

// ────────────────────── ListCourses ──────────────────────

func (s *departmentService) ListCourses(ctx context.Context, code string) (*dto.DepartmentCoursesResponse, error) {
	dept, err := s.findDepartment(ctx, code)
	if err != nil {
		return nil, err
	}

	courses, err := s.repo.Course.ListByDepartment(ctx, dept.ID)
	if err != nil {
		return nil, storeFailure(s.logger, "查询院系课程", err, zap.String("code", dept.Code))
	}

	return &dto.DepartmentCoursesResponse{
		Department: dto.DepartmentResponse{
			Code:        dept.Code,
			Name:        dept.Name,
			CourseCount: int64(len(courses)),
		},
		Courses: courses,
	}, nil
}

func (s *departmentService) findDepartment(ctx context.Context, code string) (*model.Department, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrDepartmentNotFound
	}
	dept, err := s.repo.Department.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, storeFailure(s.logger, "查询院系", err, zap.String("code", code))
	}
	return dept, nil
}

// ═══════════════════════════════════════════════════════════
// ExportCourses 导出院系课程为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单个 Sheet，第 1 行为标题（院系代码 + 名称）
//   - 第 2 行表头：课程编号 | 课程名称 | 学分 | 通识代码 | 评分方式 | 课程描述
//   - 之后每门课程一行，顺序与 ListCourses 一致

func (s *departmentService) ExportCourses(ctx context.Context, code string) (*bytes.Buffer, string, error) {
	data, err := s.ListCourses(ctx, code)
	if err != nil {
		return nil, "", err
	}
	dept := data.Department

	f := excelize.NewFile()
	defer f.Close()

	sheetName := dept.Code
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	// 删除默认 Sheet1
	f.DeleteSheet("Sheet1")

	headers := []string{"Course", "Title", "Credits", "Gen Ed", "Grading", "Description"}
	widths := []float64{12, 40, 8, 24, 14, 80}
	for i, w := range widths {
		col := colName(i)
		f.SetColWidth(sheetName, col, col, w)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4B9CD3"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	title := dept.Code
	if dept.Name != nil && *dept.Name != "" {
		title = fmt.Sprintf("%s — %s", dept.Code, *dept.Name)
	}
	f.SetCellValue(sheetName, "A1", title)
	f.MergeCell(sheetName, "A1", cell(colName(len(headers)-1), 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	for i, h := range headers {
		f.SetCellValue(sheetName, cell(colName(i), 2), h)
	}
	f.SetCellStyle(sheetName, "A2", cell(colName(len(headers)-1), 2), headerStyle)

	// 数据行
	row := 3
	for _, c := range data.Courses {
		f.SetCellValue(sheetName, cell("A", row), c.CourseID)
		f.SetCellValue(sheetName, cell("B", row), c.Name)
		f.SetCellValue(sheetName, cell("C", row), deref(c.Credits))
		f.SetCellValue(sheetName, cell("D", row), strings.Join(c.GenEd, ", "))
		f.SetCellValue(sheetName, cell("E", row), deref(c.GradingStatus))
		f.SetCellValue(sheetName, cell("F", row), deref(c.Description))
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.String("code", dept.Code), zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("%s_courses.xlsx", dept.Code)
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
