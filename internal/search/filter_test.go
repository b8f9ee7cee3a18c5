package search

import "testing"

func TestHostFilter_Allows(t *testing.T) {
	f := NewHostFilter([]string{"news.naver.com"})

	tests := []struct {
		url  string
		want bool
	}{
		{"https://news.naver.com/main/read.naver?oid=001", true},
		{"https://n.news.naver.com/mnews/article/001/0014", true},
		{"https://www.news.naver.com/x", true},
		{"https://NEWS.NAVER.COM/x", true},
		{"https://news.naver.com:443/x", true},
		{"https://www.yna.co.kr/view/AKR", false},
		{"https://fakenews.naver.com.evil.example/x", false},
		{"https://notnews.naver.com/x", false},
		{"not a url", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := f.Allows(tt.url); got != tt.want {
				t.Errorf("Allows(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestHostFilter_Filter(t *testing.T) {
	f := NewHostFilter([]string{" www.news.naver.com ", ""})
	items := []NewsItem{
		{Link: "https://n.news.naver.com/a"},
		{Link: "https://other.example/b"},
		{Link: "https://news.naver.com/c"},
	}

	got := f.Filter(items)
	if len(got) != 2 || got[0] != "https://n.news.naver.com/a" || got[1] != "https://news.naver.com/c" {
		t.Errorf("unexpected filter result: %v", got)
	}

	if got := f.Filter(nil); len(got) != 0 {
		t.Errorf("expected no URLs, got %v", got)
	}
}
