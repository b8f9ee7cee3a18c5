package extract

import (
	"reflect"
	"testing"
)

func TestParseClaims(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  []string
	}{
		{
			name:  "numbered list",
			reply: "1. 정부가 예산을 10% 늘렸다\n2. 국회가 법안을 통과시켰다\n3. 시행은 내년부터다",
			want:  []string{"정부가 예산을 10% 늘렸다", "국회가 법안을 통과시켰다", "시행은 내년부터다"},
		},
		{
			name:  "parenthesis markers and blank lines",
			reply: "\n1) First claim\n\n  2)Second claim  \n\n",
			want:  []string{"First claim", "Second claim"},
		},
		{
			name:  "unnumbered lines kept",
			reply: "A claim\n- bullet claim",
			want:  []string{"A claim", "bullet claim"},
		},
		{
			name:  "duplicates preserved",
			reply: "1. Same\n2. Same",
			want:  []string{"Same", "Same"},
		},
		{
			name:  "numbers inside the claim survive",
			reply: "1. 2024년 물가는 3.1% 올랐다",
			want:  []string{"2024년 물가는 3.1% 올랐다"},
		},
		{
			name:  "marker only",
			reply: "1.\n2. ",
			want:  nil,
		},
		{
			name:  "empty",
			reply: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseClaims(tt.reply)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseClaims() = %#v, want %#v", got, tt.want)
			}
		})
	}
}
