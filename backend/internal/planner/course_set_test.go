package planner

import (
	"reflect"
	"testing"
)

func TestNormalizeCourseID(t *testing.T) {
	tests := map[string]string{
		"comp 110":      "COMP 110",
		"  COMP   211L ": "COMP 211L",
		"math\t231":     "MATH 231",
		"":              "",
	}
	for in, want := range tests {
		if got := NormalizeCourseID(in); got != want {
			t.Errorf("NormalizeCourseID(%q): 期望=%q, 实际=%q", in, want, got)
		}
	}
}

func TestCourseSet(t *testing.T) {
	set := NewCourseSet([]string{"comp 110", "COMP 110", " ", "math 231"})

	if len(set) != 2 {
		t.Errorf("期望去重后 2 门课程, 实际=%d", len(set))
	}
	if !set.Has("Comp  110") {
		t.Error("Has 应忽略大小写与多余空白")
	}
	if set.Has("COMP 210") {
		t.Error("不应包含未传入的课程")
	}
	if got := set.Sorted(); !reflect.DeepEqual(got, []string{"COMP 110", "MATH 231"}) {
		t.Errorf("Sorted 结果错误: %v", got)
	}
}
