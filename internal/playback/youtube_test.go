package playback

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseYouTubeID(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		wantID string
		wantOK bool
	}{
		{"watch form", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"short form", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"embed form", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"v form", "https://www.youtube.com/v/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"u form", "https://www.youtube.com/u/1/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"watch with extra params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ", true},
		{"no www", "https://youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"nocookie host", "https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"not youtube", "https://vimeo.com/123456789", "", false},
		{"youtube-ish host elsewhere", "https://notyoutube.example.com/watch?v=dQw4w9WgXcQ", "", false},
		{"id too short", "https://youtu.be/short", "", false},
		{"id too long", "https://www.youtube.com/watch?v=dQw4w9WgXcQtoolong", "", false},
		{"empty", "", "", false},
		{"bare path", "/videos/clip.mp4", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ParseYouTubeID(tt.url)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestYouTubeEmbedURL(t *testing.T) {
	assert.Equal(t,
		"https://www.youtube.com/embed/dQw4w9WgXcQ?rel=0&modestbranding=1&autoplay=1",
		YouTubeEmbedURL("dQw4w9WgXcQ"),
	)
}
