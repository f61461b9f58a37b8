package planner

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// GenEdRequirement 通识教育要求目录项
type GenEdRequirement struct {
	Code        string `mapstructure:"code"        validate:"required,max=20"`
	Name        string `mapstructure:"name"        validate:"required"`
	Required    bool   `mapstructure:"required"`
	Description string `mapstructure:"description"`
}

// GenEdCatalog 不可变的通识教育要求目录，进程启动时加载一次
type GenEdCatalog struct {
	entries []GenEdRequirement
}

// NewGenEdCatalog 校验并构建目录：code 必填且唯一（忽略大小写）
func NewGenEdCatalog(entries []GenEdRequirement) (*GenEdCatalog, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("通识目录为空")
	}
	validate := validator.New()
	seen := make(map[string]bool, len(entries))
	out := make([]GenEdRequirement, 0, len(entries))
	for i, e := range entries {
		e.Code = strings.ToUpper(strings.TrimSpace(e.Code))
		if err := validate.Struct(e); err != nil {
			return nil, fmt.Errorf("通识目录第 %d 项无效: %w", i+1, err)
		}
		if seen[e.Code] {
			return nil, fmt.Errorf("通识目录存在重复代码 %q", e.Code)
		}
		seen[e.Code] = true
		out = append(out, e)
	}
	return &GenEdCatalog{entries: out}, nil
}

// LoadGenEdCatalog 从 YAML 加载目录；path 为空时解析内置内容 fallback
func LoadGenEdCatalog(path string, fallback []byte) (*GenEdCatalog, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("读取通识目录文件失败: %w", err)
		}
	} else if err := v.ReadConfig(bytes.NewReader(fallback)); err != nil {
		return nil, fmt.Errorf("解析内置通识目录失败: %w", err)
	}

	var entries []GenEdRequirement
	if err := v.UnmarshalKey("requirements", &entries); err != nil {
		return nil, fmt.Errorf("解析通识目录失败: %w", err)
	}
	return NewGenEdCatalog(entries)
}

// Requirements 返回目录副本（保持目录顺序）
func (c *GenEdCatalog) Requirements() []GenEdRequirement {
	out := make([]GenEdRequirement, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len 目录项数量
func (c *GenEdCatalog) Len() int { return len(c.entries) }

// AvailabilityLookup 查询可满足某通识代码的课程，excluding 中的课程不返回
type AvailabilityLookup func(code string, excluding []string, limit int) ([]string, error)

// GenEdStatus 单个通识代码的完成情况
type GenEdStatus struct {
	GenEdRequirement
	Fulfilled        bool
	CoursesTaken     []string
	CoursesAvailable []string
}

// GenEdResult 通识教育完成情况汇总
type GenEdResult struct {
	Requirements   []GenEdStatus
	CompletedCount int
	TotalCount     int
}

// CheckGenEd 判定每个通识代码是否已由已修课程满足，并给出最多 limit 门备选课程
//
// index 为已修课程 → 其可满足的通识代码。每个代码只有满足/未满足两种状态。
func CheckGenEd(catalog *GenEdCatalog, completed CourseSet, index map[string][]string, lookup AvailabilityLookup, limit int) (GenEdResult, error) {
	// 反转索引：code → 已修课程
	taken := make(map[string][]string)
	for courseID, codes := range index {
		id := NormalizeCourseID(courseID)
		if !completed.Has(id) {
			continue
		}
		for _, code := range codes {
			code = strings.ToUpper(strings.TrimSpace(code))
			taken[code] = append(taken[code], id)
		}
	}

	excluding := completed.Sorted()
	result := GenEdResult{
		Requirements: make([]GenEdStatus, 0, catalog.Len()),
		TotalCount:   catalog.Len(),
	}

	for _, req := range catalog.entries {
		courses := dedupeSorted(taken[req.Code])

		available := []string{}
		if lookup != nil && limit > 0 {
			found, err := lookup(req.Code, excluding, limit)
			if err != nil {
				return GenEdResult{}, err
			}
			for _, id := range found {
				if len(available) >= limit {
					break
				}
				if !completed.Has(id) {
					available = append(available, NormalizeCourseID(id))
				}
			}
		}

		status := GenEdStatus{
			GenEdRequirement: req,
			Fulfilled:        len(courses) > 0,
			CoursesTaken:     courses,
			CoursesAvailable: available,
		}
		if status.Fulfilled {
			result.CompletedCount++
		}
		result.Requirements = append(result.Requirements, status)
	}

	return result, nil
}

func dedupeSorted(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
