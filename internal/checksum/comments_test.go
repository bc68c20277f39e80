package checksum

import (
	"reflect"
	"testing"
)

func TestCommentLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []bool
	}{
		{"empty", "", []bool{false}},
		{"line comment", "// note\nconst a = 1;", []bool{true, false}},
		{"trailing comment is code", "const a = 1; // note", []bool{false}},
		{
			"block body without stars",
			"/*\nlet legacy: any = 1;\nconsole.log(legacy);\n*/\nconst b = 2;\n",
			[]bool{true, true, true, true, false, false},
		},
		{
			"block opened after code",
			"run(); /* start\nlet x: any;\n*/ done();",
			[]bool{false, true, false},
		},
		{
			"comment markers inside strings",
			"const s = \"/* not a comment\";\nlet y: any;",
			[]bool{false, false},
		},
		{
			"multi-line template literal",
			"const t = `\n// inside template\n`;",
			[]bool{false, false, false},
		},
		{"blank line inside block", "/*\n\n*/", []bool{true, false, true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CommentLines([]byte(tt.content))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CommentLines(%q) = %v, want %v", tt.content, got, tt.want)
			}
		})
	}
}
