package ingest

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"pathfinder/backend/internal/planner"
)

// CourseBlock 目录页中一门课程解析出的原始数据
type CourseBlock struct {
	CourseID       string
	DepartmentCode string
	CourseNumber   string
	Name           string
	Credits        string
	Description    string
	GradingStatus  string
	GenEds         []string
	Requisites     Requisites
}

// Page 一个院系目录页的解析结果
type Page struct {
	DepartmentCode string
	DepartmentName string
	Courses        []CourseBlock
}

var (
	courseIDPattern  = regexp.MustCompile(`^([A-Z]{2,5})\s+(\d{2,3}[A-Z]{0,2})$`)
	pageTitlePattern = regexp.MustCompile(`^(.+?)\s*\(([A-Z]{2,5})\)\s*$`)
	creditsPattern   = regexp.MustCompile(`^(\d+(?:\.\d+)?(?:\s*-\s*\d+(?:\.\d+)?)?)`)
	genEdCodePattern = regexp.MustCompile(`^[A-Z][A-Z0-9-]*[A-Z0-9]$`)
)

// ParsePage 解析一个院系目录页中的全部 courseblock
//
// 无法识别课程编号的块会被跳过，并以错误列表返回，不影响其余课程。
func ParsePage(r io.Reader) (*Page, []error, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("解析 HTML 失败: %w", err)
	}

	page := &Page{}
	if m := pageTitlePattern.FindStringSubmatch(cleanText(doc.Find("h1.page-title").First().Text())); m != nil {
		page.DepartmentName = m[1]
		page.DepartmentCode = m[2]
	}

	var skipped []error
	doc.Find("div.courseblock").Each(func(i int, s *goquery.Selection) {
		block, err := parseCourseBlock(s)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("第 %d 个课程块: %w", i+1, err))
			return
		}
		page.Courses = append(page.Courses, *block)
	})

	if page.DepartmentCode == "" && len(page.Courses) > 0 {
		page.DepartmentCode = page.Courses[0].DepartmentCode
	}
	return page, skipped, nil
}

func parseCourseBlock(s *goquery.Selection) (*CourseBlock, error) {
	rawID := strings.TrimSuffix(cleanText(s.Find(".detail-code").First().Text()), ".")
	courseID := planner.NormalizeCourseID(rawID)
	m := courseIDPattern.FindStringSubmatch(courseID)
	if m == nil {
		return nil, fmt.Errorf("无法识别课程编号 %q", rawID)
	}

	block := &CourseBlock{
		CourseID:       courseID,
		DepartmentCode: m[1],
		CourseNumber:   m[2],
		Name:           strings.TrimSuffix(cleanText(s.Find(".detail-title").First().Text()), "."),
	}
	if block.Name == "" {
		return nil, fmt.Errorf("%s 缺少课程名称", courseID)
	}

	if cm := creditsPattern.FindStringSubmatch(cleanText(s.Find(".detail-hours").First().Text())); cm != nil {
		block.Credits = strings.ReplaceAll(cm[1], " ", "")
	}

	// 描述是第一个不带 detail-* 标签的 courseblockextra 段落
	s.Find("p.courseblockextra").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		if p.Find("[class*='detail-']").Length() > 0 {
			return true
		}
		block.Description = cleanText(p.Text())
		return false
	})

	block.GradingStatus = strings.TrimSuffix(labeledText(s.Find(".detail-grading_status").First()), ".")
	block.GenEds = parseGenEds(labeledText(s.Find(".detail-idea_action, .detail-gen_ed").First()))
	block.Requisites = ParseRequisites(labeledText(s.Find(".detail-requisites").First()))
	return block, nil
}

// labeledText 返回去掉 <strong> 标签前缀后的正文
func labeledText(s *goquery.Selection) string {
	if s.Length() == 0 {
		return ""
	}
	full := cleanText(s.Text())
	label := cleanText(s.Find("strong").First().Text())
	return strings.TrimSpace(strings.TrimPrefix(full, label))
}

func parseGenEds(text string) []string {
	if text == "" {
		return nil
	}
	seen := make(map[string]bool)
	var codes []string
	for _, tok := range strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || r == '.' || r == ' '
	}) {
		tok = strings.ToUpper(strings.TrimSpace(tok))
		if !genEdCodePattern.MatchString(tok) || seen[tok] {
			continue
		}
		seen[tok] = true
		codes = append(codes, tok)
	}
	return codes
}

// cleanText 合并连续空白（strings.Fields 同样识别 &nbsp;）
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
