package domain

import (
	"errors"
	"net/url"
	"strings"
)

// EmbedKind names the provider of an embed URL
type EmbedKind string

const (
	EmbedNone      EmbedKind = ""
	EmbedYouTube   EmbedKind = "youtube"
	EmbedInstagram EmbedKind = "instagram"
	EmbedFacebook  EmbedKind = "facebook"
)

var (
	ErrInvalidEmbedURL     = errors.New("embed url is not a valid http(s) url")
	ErrEmbedHostNotAllowed = errors.New("embed host is not allowed")
)

// allowedEmbedHosts is matched by substring, see IsAllowedEmbedHost
var allowedEmbedHosts = []string{
	"youtube.com",
	"youtu.be",
	"instagram.com",
	"www.instagram.com",
	"facebook.com",
	"www.facebook.com",
}

// IsAllowedEmbedHost reports whether host contains one of the allowed
// provider domains anywhere in it. This is substring containment, not a
// domain-suffix check, so "notyoutube.com.evil.org" passes.
func IsAllowedEmbedHost(host string) bool {
	host = strings.ToLower(host)
	for _, allowed := range allowedEmbedHosts {
		if strings.Contains(host, allowed) {
			return true
		}
	}
	return false
}

// EmbedHost returns the lowercased network location of raw, including any
// userinfo and port. A missing scheme is treated as http.
func EmbedHost(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", ErrInvalidEmbedURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", ErrInvalidEmbedURL
	}
	if u.Host == "" {
		return "", ErrInvalidEmbedURL
	}
	netloc := u.Host
	if u.User != nil {
		netloc = u.User.String() + "@" + netloc
	}
	return strings.ToLower(netloc), nil
}

// ValidateEmbedURL accepts an empty URL or one whose host passes IsAllowedEmbedHost
func ValidateEmbedURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	host, err := EmbedHost(raw)
	if err != nil {
		return err
	}
	if !IsAllowedEmbedHost(host) {
		return ErrEmbedHostNotAllowed
	}
	return nil
}

// NormalizeYouTubeEmbed rewrites youtu.be and watch?v= links to the
// https://www.youtube.com/embed/<id> form. Anything else is returned as is.
func NormalizeYouTubeEmbed(raw string) string {
	// watch links go first: share links carry "&feature=youtu.be" in the query
	switch {
	case strings.Contains(raw, "watch?v="):
		_, id, _ := strings.Cut(raw, "watch?v=")
		id, _, _ = strings.Cut(id, "&")
		return "https://www.youtube.com/embed/" + id
	case strings.Contains(raw, "youtu.be"):
		id := raw[strings.LastIndex(raw, "/")+1:]
		id, _, _ = strings.Cut(id, "?")
		return "https://www.youtube.com/embed/" + id
	default:
		return raw
	}
}

// ClassifyEmbed returns the provider of raw
func ClassifyEmbed(raw string) EmbedKind {
	lower := strings.ToLower(raw)
	switch {
	case lower == "":
		return EmbedNone
	case strings.Contains(lower, "youtube.com") || strings.Contains(lower, "youtu.be"):
		return EmbedYouTube
	case strings.Contains(lower, "instagram.com"):
		return EmbedInstagram
	case strings.Contains(lower, "facebook.com"):
		return EmbedFacebook
	}
	return EmbedNone
}
