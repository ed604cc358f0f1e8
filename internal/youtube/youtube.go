// Package youtube knows how to pick a video id out of the URL forms people
// paste, build the IFrame embed address for it, and look up public metadata.
package youtube

import (
	"fmt"
	"net/url"
	"regexp"
)

const videoIDLength = 11

var (
	videoIDPattern  = regexp.MustCompile(`^.*(youtu.be/|v/|u/\w/|embed/|watch\?v=|&v=)([^#&?]*).*`)
	videoURLPattern = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com|youtu\.be)/.+`)
)

// ExtractVideoID returns the 11 character video id contained in rawURL.
func ExtractVideoID(rawURL string) (string, bool) {
	m := videoIDPattern.FindStringSubmatch(rawURL)
	if m == nil || len(m[2]) != videoIDLength {
		return "", false
	}
	return m[2], true
}

// IsVideoURL reports whether rawURL points at youtube.com or youtu.be.
func IsVideoURL(rawURL string) bool {
	return videoURLPattern.MatchString(rawURL)
}

func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + url.QueryEscape(videoID)
}

// EmbedURL is the IFrame player src for videoID starting at start seconds.
func EmbedURL(videoID string, start int, autoplay bool) string {
	q := url.Values{}
	q.Set("enablejsapi", "1")
	q.Set("playsinline", "1")
	if start > 0 {
		q.Set("start", fmt.Sprintf("%d", start))
	}
	if autoplay {
		q.Set("autoplay", "1")
	}
	return "https://www.youtube.com/embed/" + url.PathEscape(videoID) + "?" + q.Encode()
}

func ThumbnailURL(videoID string) string {
	return "https://img.youtube.com/vi/" + url.PathEscape(videoID) + "/maxresdefault.jpg"
}
