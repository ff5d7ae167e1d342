package core

import (
	"net/url"
	"strings"
)

// ExtractYouTubeID returns the video ID of a youtu.be, watch, embed, shorts
// or live URL, or "" when rawURL is not a recognised YouTube link.
func ExtractYouTubeID(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	host := strings.Replace(strings.ToLower(u.Hostname()), "www.", "", 1)

	if host == "youtu.be" {
		return firstSegment(strings.TrimPrefix(u.Path, "/"))
	}
	if !strings.Contains(host, "youtube.com") {
		return ""
	}
	switch {
	case strings.HasPrefix(u.Path, "/watch"):
		return u.Query().Get("v")
	case strings.HasPrefix(u.Path, "/embed/"),
		strings.HasPrefix(u.Path, "/shorts/"),
		strings.HasPrefix(u.Path, "/live/"):
		parts := strings.Split(u.Path, "/")
		if len(parts) > 2 {
			return parts[2]
		}
	}
	return ""
}

func firstSegment(p string) string {
	seg, _, _ := strings.Cut(p, "/")
	return seg
}

// YouTubeThumbnail is the high-quality still for videoID.
func YouTubeThumbnail(videoID string) string {
	if videoID == "" {
		return ""
	}
	return "https://img.youtube.com/vi/" + videoID + "/hqdefault.jpg"
}

// YouTubeEmbedURL is the privacy-enhanced player URL for videoID.
func YouTubeEmbedURL(videoID string) string {
	if videoID == "" {
		return ""
	}
	return "https://www.youtube-nocookie.com/embed/" + videoID
}
