package playback

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// youtubeHosts are hostname suffixes recognized as YouTube
var youtubeHosts = []string{"youtube.com", "youtube-nocookie.com"}

// validYouTubeID matches the 11-character YouTube video id
var validYouTubeID = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ParseYouTubeID extracts the video id from a YouTube URL. Supported
// forms: watch?v=, youtu.be/, embed/, v/ and u/{w}/. Anything that is not
// a YouTube URL, or whose id segment is not the 11-character id, does not
// match.
func ParseYouTubeID(rawURL string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return "", false
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")

	if host == "youtu.be" {
		return checkYouTubeID(firstPathSegment(u.Path))
	}

	if !isYouTubeHost(host) {
		return "", false
	}

	if v := u.Query().Get("v"); v != "" {
		return checkYouTubeID(v)
	}

	segments := splitPath(u.Path)
	switch {
	case len(segments) >= 2 && (segments[0] == "embed" || segments[0] == "v"):
		return checkYouTubeID(segments[1])
	case len(segments) >= 3 && segments[0] == "u" && len(segments[1]) == 1:
		return checkYouTubeID(segments[2])
	}

	return "", false
}

// YouTubeEmbedURL builds the embed URL for a parsed video id
func YouTubeEmbedURL(videoID string) string {
	return fmt.Sprintf("https://www.youtube.com/embed/%s?rel=0&modestbranding=1&autoplay=1", videoID)
}

func isYouTubeHost(host string) bool {
	for _, h := range youtubeHosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}

func checkYouTubeID(id string) (string, bool) {
	if validYouTubeID.MatchString(id) {
		return id, true
	}
	return "", false
}

func splitPath(p string) []string {
	var segments []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

func firstPathSegment(p string) string {
	segments := splitPath(p)
	if len(segments) == 0 {
		return ""
	}
	return segments[0]
}
