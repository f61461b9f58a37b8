package ingest

import (
	"regexp"
	"strings"
)

// Requisites 从 Requisites 文本中解析出的条件
//
// Prerequisites / Corequisites 中每个元素是一个 OR 组，组与组之间为 AND。
type Requisites struct {
	Prerequisites [][]string
	Corequisites  [][]string
	MinimumGrades map[string]string // 课程编号 → 最低成绩
}

// Empty 是否没有任何条件
func (r Requisites) Empty() bool {
	return len(r.Prerequisites) == 0 && len(r.Corequisites) == 0 && len(r.MinimumGrades) == 0
}

var (
	// 课程引用：完整编号 "MATH 231" 或沿用上一个院系代码的裸编号 "241"
	courseRefPattern = regexp.MustCompile(`\b(?:([A-Z]{2,5})\s+)?(\d{2,3}[A-Z]{0,2})\b`)
	gradePattern     = regexp.MustCompile(`(?i)grade of ([A-D][+-]?) or (?:better|higher)`)
	andSplitPattern  = regexp.MustCompile(`(?i)\s*,?\s+and\s+`)
	orSplitPattern   = regexp.MustCompile(`(?i)\s*,?\s+or\s+|\s*,\s*|\s*/\s*`)
	orWordPattern    = regexp.MustCompile(`(?i)\bor\b|/`)
	clauseLabel      = regexp.MustCompile(`(?i)^(pre-? or corequisites?|prerequisites?|corequisites?)\s*,?\s*`)
	// "12 credit hours" 中的数字是学分而非课程号
	unitSuffix = regexp.MustCompile(`(?i)^\s*(?:credits?|hours?)\b`)
)

type requisiteKind int

const (
	kindPrereq requisiteKind = iota
	kindCoreq
)

// ParseRequisites 解析课程目录中的 Requisites 文本
//
//	"Prerequisite, COMP 210 and MATH 231 or 241; a grade of C or better is required in COMP 210. Corequisite, COMP 211L."
//
// 得到先修组 [COMP 210]、[MATH 231, MATH 241]，同修组 [COMP 211L]，COMP 210 最低成绩 C。
// 非课程类条件（如 "permission of the instructor"）被忽略。
func ParseRequisites(text string) Requisites {
	req := Requisites{MinimumGrades: map[string]string{}}
	text = strings.TrimSpace(text)
	if text == "" {
		return req
	}

	// 未标注类型的文本按先修处理
	kind := kindPrereq
	var prevGroups [][]string
	for _, clause := range splitClauses(text) {
		if m := clauseLabel.FindStringSubmatch(clause); m != nil {
			label := strings.ToLower(m[1])
			if strings.HasPrefix(label, "pre") && !strings.Contains(label, "or co") {
				kind = kindPrereq
			} else {
				kind = kindCoreq
			}
			clause = clause[len(m[0]):]
		}

		var graded []string
		grade := ""
		if loc := gradePattern.FindStringSubmatchIndex(clause); loc != nil {
			grade = strings.ToUpper(clause[loc[2]:loc[3]])
			graded = courseRefs(clause[loc[1]:], "")
			clause = strings.TrimSpace(clause[:loc[0]])
		}

		groups := parseGroups(clause)
		if grade != "" {
			// "COMP 110 with a grade of C or better"：成绩要求作用于前文课程；
			// 子句内没有课程时（"; a grade of C or better is required"）作用于上一子句
			source := groups
			if len(source) == 0 {
				source = prevGroups
			}
			if len(graded) == 0 {
				for _, g := range source {
					graded = append(graded, g...)
				}
			}
			for _, id := range graded {
				req.MinimumGrades[id] = grade
			}
		}

		if len(groups) > 0 {
			prevGroups = groups
		}
		switch kind {
		case kindPrereq:
			req.Prerequisites = append(req.Prerequisites, groups...)
		case kindCoreq:
			req.Corequisites = append(req.Corequisites, groups...)
		}
	}
	return req
}

// splitClauses 按句号与分号切分子句；"COMP 110." 这类编号后的句点同样视为子句结束
func splitClauses(text string) []string {
	var clauses []string
	for _, part := range strings.FieldsFunc(text, func(r rune) bool { return r == ';' || r == '.' }) {
		if p := strings.TrimSpace(part); p != "" {
			clauses = append(clauses, p)
		}
	}
	return clauses
}

// parseGroups 将一个子句拆分为 AND 连接的 OR 组，院系代码在整个子句内向后沿用
//
// 含 "or" 的片段中逗号视为 OR 分隔（"MATH 231, 232, or 233"），否则视为 AND 分隔。
func parseGroups(clause string) [][]string {
	clause = strings.NewReplacer("(", " ", ")", " ").Replace(clause)

	var groups [][]string
	dept := ""
	for _, part := range andSplitPattern.Split(clause, -1) {
		var alternatives [][]string
		if orWordPattern.MatchString(part) {
			alternatives = [][]string{orSplitPattern.Split(part, -1)}
		} else {
			for _, item := range strings.Split(part, ",") {
				alternatives = append(alternatives, []string{item})
			}
		}

		for _, alts := range alternatives {
			var options []string
			seen := map[string]bool{}
			for _, alt := range alts {
				ids := courseRefs(alt, dept)
				if len(ids) == 0 {
					continue
				}
				dept = strings.Fields(ids[len(ids)-1])[0]
				for _, id := range ids {
					if !seen[id] {
						seen[id] = true
						options = append(options, id)
					}
				}
			}
			if len(options) > 0 {
				groups = append(groups, options)
			}
		}
	}
	return groups
}

// courseRefs 提取文本中的课程编号；裸编号沿用 dept 或前一个出现的院系代码
func courseRefs(text, dept string) []string {
	var ids []string
	for _, loc := range courseRefPattern.FindAllStringSubmatchIndex(text, -1) {
		if loc[2] >= 0 {
			dept = text[loc[2]:loc[3]]
		} else if unitSuffix.MatchString(text[loc[1]:]) {
			continue
		}
		if dept == "" {
			continue
		}
		ids = append(ids, dept+" "+text[loc[4]:loc[5]])
	}
	return ids
}
