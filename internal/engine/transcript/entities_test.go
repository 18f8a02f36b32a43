package transcript

import "testing"

func TestDecodeEntities(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"amp", "Tom &amp; Jerry", "Tom & Jerry"},
		{"angle", "&lt;b&gt;", "<b>"},
		{"quotes", "&quot;hi&quot; it&#39;s &#x27;x&#x27;", `"hi" it's 'x'`},
		{"slash", "a&#x2F;b", "a/b"},
		{"nbsp", "a&nbsp;b", "a b"},
		{"unknown passes through", "&copy; &#169; &bogus;", "&copy; &#169; &bogus;"},
		{"decoded once", "&amp;lt;", "&lt;"},
		{"no entities", "plain text", "plain text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeEntities(tt.in); got != tt.want {
				t.Errorf("DecodeEntities(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanText(t *testing.T) {
	if got := cleanText("  Line one\nLine two \t&amp;  three "); got != "Line one Line two & three" {
		t.Errorf("cleanText = %q", got)
	}
}
