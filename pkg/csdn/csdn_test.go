package csdn

import (
	"regexp"
	"testing"
)

func TestImageURLPattern_WholeString(t *testing.T) {
	whole := regexp.MustCompile(`^` + ImageURLPattern + `$`)

	tests := []struct {
		name string
		url  string
		want bool
	}{
		{
			name: "plain png",
			url:  "https://img-blog.csdnimg.cn/20210101/foo.png",
			want: true,
		},
		{
			name: "with query string",
			url:  "https://img-blog.csdnimg.cn/20210101/foo.png?x-oss-process=image/watermark,type_ZmFuZ3poZW5naGVpdGk",
			want: true,
		},
		{
			name: "http scheme is not matched",
			url:  "http://img-blog.csdnimg.cn/20210101/foo.png",
			want: false,
		},
		{
			name: "other csdn host",
			url:  "https://i-blog.csdnimg.cn/blog_migrate/foo.png",
			want: false,
		},
		{
			name: "host used as a subdomain of another site",
			url:  "https://img-blog.csdnimg.cn.evil.example/foo.png",
			want: false,
		},
		{
			name: "trailing parenthesis",
			url:  "https://img-blog.csdnimg.cn/20210101/foo.png)",
			want: false,
		},
		{
			name: "embedded whitespace",
			url:  "https://img-blog.csdnimg.cn/2021 foo.png",
			want: false,
		},
		{
			name: "embedded ideographic space",
			url:  "https://img-blog.csdnimg.cn/foo.png\u3000图片",
			want: false,
		},
		{
			name: "embedded no-break space",
			url:  "https://img-blog.csdnimg.cn/foo.png\u00a0x",
			want: false,
		},
		{
			name: "embedded vertical tab",
			url:  "https://img-blog.csdnimg.cn/foo.png\vx",
			want: false,
		},
		{
			name: "embedded byte order mark",
			url:  "https://img-blog.csdnimg.cn/foo.png\ufeff",
			want: false,
		},
		{
			name: "non-ASCII path is kept",
			url:  "https://img-blog.csdnimg.cn/图片.png",
			want: true,
		},
		{
			name: "host only",
			url:  "https://img-blog.csdnimg.cn/",
			want: false,
		},
		{
			name: "empty",
			url:  "",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := whole.MatchString(tt.url); got != tt.want {
				t.Errorf("MatchString(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestPattern_FindsEmbeddedURLs(t *testing.T) {
	text := `![a](https://img-blog.csdnimg.cn/a.png) <img src="https://img-blog.csdnimg.cn/b.jpg">`

	got := Pattern().FindAllString(text, -1)
	want := []string{
		"https://img-blog.csdnimg.cn/a.png",
		"https://img-blog.csdnimg.cn/b.jpg",
	}

	if len(got) != len(want) {
		t.Fatalf("FindAllString() returned %d matches, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("match %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPattern_StopsAtUnicodeWhitespace(t *testing.T) {
	separators := map[string]string{
		"ideographic space": "\u3000",
		"no-break space":    "\u00a0",
		"em space":          "\u2003",
		"line separator":    "\u2028",
		"vertical tab":      "\v",
		"byte order mark":   "\ufeff",
	}

	for name, sep := range separators {
		t.Run(name, func(t *testing.T) {
			text := "![](https://img-blog.csdnimg.cn/a/foo.png" + sep + "图片说明)"
			got := Pattern().FindString(text)
			if want := "https://img-blog.csdnimg.cn/a/foo.png"; got != want {
				t.Errorf("FindString() = %q, want %q", got, want)
			}
		})
	}
}
