package transcript

import (
	"errors"
	"testing"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ"},
		{"youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://m.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://music.youtube.com/watch?v=dQw4w9WgXcQ&list=RD", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ?t=10", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=1", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/live/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ExtractVideoID(tt.in)
			if err != nil {
				t.Fatalf("ExtractVideoID(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ExtractVideoID(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractVideoIDMalformed(t *testing.T) {
	for _, in := range []string{
		"",
		"short",
		"https://vimeo.com/123456789",
		"https://www.youtube.com/channel/UC123",
		"https://www.youtube.com/watch?v=tooshort",
		"https://www.youtube.com/results?search_query=go",
	} {
		if _, err := ExtractVideoID(in); !errors.Is(err, ErrMalformedIdentifier) {
			t.Errorf("ExtractVideoID(%q) err = %v, want ErrMalformedIdentifier", in, err)
		}
	}
}
