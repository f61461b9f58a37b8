package ingest

import (
	"reflect"
	"testing"
)

func TestParseRequisites(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		prereqs [][]string
		coreqs  [][]string
		grades  map[string]string
	}{
		{
			name:    "AND 与 OR 混合，裸编号沿用院系代码",
			text:    "COMP 210 and MATH 231 or 241",
			prereqs: [][]string{{"COMP 210"}, {"MATH 231", "MATH 241"}},
			grades:  map[string]string{},
		},
		{
			name:    "先修、成绩与同修",
			text:    "Prerequisite, COMP 210 and MATH 231 or 241; a grade of C or better is required in COMP 210. Corequisite, COMP 211L.",
			prereqs: [][]string{{"COMP 210"}, {"MATH 231", "MATH 241"}},
			coreqs:  [][]string{{"COMP 211L"}},
			grades:  map[string]string{"COMP 210": "C"},
		},
		{
			name:    "逗号列表末尾为 or 时整体为一个 OR 组",
			text:    "Prerequisites, MATH 231, 232, or 233.",
			prereqs: [][]string{{"MATH 231", "MATH 232", "MATH 233"}},
			grades:  map[string]string{},
		},
		{
			name:    "逗号列表无 or 时逐项 AND",
			text:    "Prerequisites, COMP 210, 211, and 301.",
			prereqs: [][]string{{"COMP 210"}, {"COMP 211"}, {"COMP 301"}},
			grades:  map[string]string{},
		},
		{
			name:    "成绩要求作用于前文课程",
			text:    "Prerequisite, COMP 110 with a grade of C- or better.",
			prereqs: [][]string{{"COMP 110"}},
			grades:  map[string]string{"COMP 110": "C-"},
		},
		{
			name:    "独立成绩子句作用于上一子句的课程",
			text:    "Prerequisites, MATH 231, 232, or 233; a grade of C or better is required.",
			prereqs: [][]string{{"MATH 231", "MATH 232", "MATH 233"}},
			grades:  map[string]string{"MATH 231": "C", "MATH 232": "C", "MATH 233": "C"},
		},
		{
			name:    "学分数不视为课程号",
			text:    "Prerequisite, MATH 231 or 12 credit hours of mathematics.",
			prereqs: [][]string{{"MATH 231"}},
			grades:  map[string]string{},
		},
		{
			name:    "非课程条件被忽略",
			text:    "Prerequisite, STOR 155 or permission of the instructor.",
			prereqs: [][]string{{"STOR 155"}},
			grades:  map[string]string{},
		},
		{
			name:    "括号内的 OR 组",
			text:    "Prerequisites, (COMP 116 or 210) and MATH 233.",
			prereqs: [][]string{{"COMP 116", "COMP 210"}, {"MATH 233"}},
			grades:  map[string]string{},
		},
		{
			name:   "先修或同修归为同修",
			text:   "Pre- or corequisite, PHYS 118.",
			coreqs: [][]string{{"PHYS 118"}},
			grades: map[string]string{},
		},
		{
			name:   "空文本",
			text:   "  ",
			grades: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseRequisites(tt.text)
			if !reflect.DeepEqual(got.Prerequisites, tt.prereqs) {
				t.Errorf("先修组: 期望=%v, 实际=%v", tt.prereqs, got.Prerequisites)
			}
			if !reflect.DeepEqual(got.Corequisites, tt.coreqs) {
				t.Errorf("同修组: 期望=%v, 实际=%v", tt.coreqs, got.Corequisites)
			}
			if !reflect.DeepEqual(got.MinimumGrades, tt.grades) {
				t.Errorf("成绩要求: 期望=%v, 实际=%v", tt.grades, got.MinimumGrades)
			}
		})
	}
}

func TestRequisites_Empty(t *testing.T) {
	if !ParseRequisites("permission of the department").Empty() {
		t.Error("不含课程的条件应视为空")
	}
	if ParseRequisites("COMP 110").Empty() {
		t.Error("含课程的条件不应视为空")
	}
}
