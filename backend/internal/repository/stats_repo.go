package repository

import (
	"context"

	"gorm.io/gorm"

	"pathfinder/backend/internal/model"
)

// topDepartmentLimit 统计中返回的课程数最多的院系数量
const topDepartmentLimit = 10

// StatsRepository 目录统计与先修关系图查询接口
type StatsRepository interface {
	Summary(ctx context.Context) (*model.CatalogStats, error)
	PrerequisiteGraph(ctx context.Context, root *model.Course, depth int) (*model.CourseGraph, error)
	CoursePaths(ctx context.Context, from, to *model.Course, maxDepth int) ([]model.CoursePath, error)
}

// statsRepo StatsRepository 的 GORM 实现
type statsRepo struct {
	db *gorm.DB
}

// NewStatsRepo 创建 StatsRepository 实例
func NewStatsRepo(db *gorm.DB) StatsRepository {
	return &statsRepo{db: db}
}

const summarySQL = `
SELECT
	(SELECT COUNT(*) FROM courses)                                  AS total_courses,
	(SELECT COUNT(*) FROM departments)                              AS total_departments,
	(SELECT COUNT(*) FROM programs)                                 AS total_programs,
	(SELECT COUNT(*) FROM programs WHERE program_type = 'major')     AS majors,
	(SELECT COUNT(*) FROM programs WHERE program_type = 'minor')     AS minors,
	(SELECT COUNT(DISTINCT course_id) FROM prerequisites)           AS courses_with_prereqs,
	(SELECT COUNT(*) FROM prerequisites)                            AS total_prereq_relationships`

func (r *statsRepo) Summary(ctx context.Context) (*model.CatalogStats, error) {
	var totals struct {
		TotalCourses             int64
		TotalDepartments         int64
		TotalPrograms            int64
		Majors                   int64
		Minors                   int64
		CoursesWithPrereqs       int64
		TotalPrereqRelationships int64
	}
	if err := r.db.WithContext(ctx).Raw(summarySQL).Scan(&totals).Error; err != nil {
		return nil, err
	}

	top := []model.DepartmentSize{}
	err := r.db.WithContext(ctx).
		Table("departments d").
		Select("d.code, COUNT(c.id) AS course_count").
		Joins("LEFT JOIN courses c ON c.department_id = d.id").
		Group("d.code").
		Order("course_count DESC, d.code ASC").
		Limit(topDepartmentLimit).
		Scan(&top).Error
	if err != nil {
		return nil, err
	}

	return &model.CatalogStats{
		TotalCourses:             totals.TotalCourses,
		TotalDepartments:         totals.TotalDepartments,
		TotalPrograms:            totals.TotalPrograms,
		Majors:                   totals.Majors,
		Minors:                   totals.Minors,
		CoursesWithPrereqs:       totals.CoursesWithPrereqs,
		TotalPrereqRelationships: totals.TotalPrereqRelationships,
		TopDepartments:           top,
	}, nil
}

const graphSQL = `
WITH RECURSIVE chain AS (
	SELECT p.course_id AS source_id, p.prereq_course_id AS target_id,
	       p.prereq_group, p.is_corequisite, 1 AS depth
	FROM prerequisites p
	WHERE p.course_id = ?
	UNION
	SELECT p.course_id, p.prereq_course_id, p.prereq_group, p.is_corequisite, chain.depth + 1
	FROM prerequisites p
	JOIN chain ON p.course_id = chain.target_id
	WHERE chain.depth < ?
)
SELECT s.course_id AS source, t.course_id AS target, t.name AS target_name,
       chain.prereq_group, chain.is_corequisite, chain.depth
FROM chain
JOIN courses s ON s.id = chain.source_id
JOIN courses t ON t.id = chain.target_id
ORDER BY chain.depth, s.course_id, t.course_id, chain.prereq_group`

type graphRow struct {
	Source        string
	Target        string
	TargetName    string
	PrereqGroup   int
	IsCorequisite bool
	Depth         int
}

// PrerequisiteGraph 递归展开 root 的先修链，最多 depth 层
//
// 节点深度取首次到达的层数；边按 (source, target, group, 是否同修) 去重。
func (r *statsRepo) PrerequisiteGraph(ctx context.Context, root *model.Course, depth int) (*model.CourseGraph, error) {
	var rows []graphRow
	if err := r.db.WithContext(ctx).Raw(graphSQL, root.ID, depth).Scan(&rows).Error; err != nil {
		return nil, err
	}

	graph := &model.CourseGraph{
		Nodes: []model.GraphNode{{CourseID: root.CourseID, Name: root.Name, Depth: 0}},
		Edges: []model.GraphEdge{},
	}
	seenNode := map[string]bool{root.CourseID: true}
	seenEdge := make(map[model.GraphEdge]bool, len(rows))

	for _, row := range rows {
		if !seenNode[row.Target] {
			seenNode[row.Target] = true
			graph.Nodes = append(graph.Nodes, model.GraphNode{CourseID: row.Target, Name: row.TargetName, Depth: row.Depth})
		}
		edge := model.GraphEdge{
			Source:        row.Source,
			Target:        row.Target,
			PrereqGroup:   row.PrereqGroup,
			IsCorequisite: row.IsCorequisite,
		}
		if !seenEdge[edge] {
			seenEdge[edge] = true
			graph.Edges = append(graph.Edges, edge)
		}
	}
	return graph, nil
}

const pathsSQL = `
WITH RECURSIVE walk AS (
	SELECT c.id, ARRAY[c.course_id]::text[] AS path, 0 AS depth
	FROM courses c
	WHERE c.id = ?
	UNION ALL
	SELECT c.id, walk.path || c.course_id::text, walk.depth + 1
	FROM walk
	JOIN prerequisites p ON p.course_id = walk.id
	JOIN courses c ON c.id = p.prereq_course_id
	WHERE walk.depth < ?
	  AND walk.id <> ?
	  AND c.course_id <> ALL(walk.path)
)
SELECT DISTINCT path, depth
FROM walk
WHERE id = ?
ORDER BY depth, path`

type pathRow struct {
	Path  model.StringArray
	Depth int
}

// CoursePaths 沿先修关系从 from 向下查找到达 to 的所有路径，最多 maxDepth 步
//
// 路径首元素为 from、末元素为 to；同一路径内不重复经过课程。
func (r *statsRepo) CoursePaths(ctx context.Context, from, to *model.Course, maxDepth int) ([]model.CoursePath, error) {
	var rows []pathRow
	if err := r.db.WithContext(ctx).Raw(pathsSQL, from.ID, maxDepth, to.ID, to.ID).Scan(&rows).Error; err != nil {
		return nil, err
	}

	paths := make([]model.CoursePath, 0, len(rows))
	for _, row := range rows {
		paths = append(paths, model.CoursePath{Courses: []string(row.Path), Length: row.Depth})
	}
	return paths, nil
}
