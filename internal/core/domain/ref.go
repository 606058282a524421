package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// StdinRef is the input reference that reads standard input.
const StdinRef = "-"

// IsRemoteRef reports whether ref names a web page rather than a file.
func IsRemoteRef(ref string) bool {
	lower := strings.ToLower(strings.TrimSpace(ref))
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "docs.google.com/") ||
		strings.HasPrefix(lower, "forms.gle/")
}

// NormalizeURL adds a missing https scheme and checks the result is an
// absolute http(s) URL.
func NormalizeURL(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if !strings.Contains(ref, "://") {
		ref = "https://" + ref
	}
	u, err := url.Parse(ref)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", fmt.Errorf("%w: not a form URL: %q", ErrInvalidInput, ref)
	}
	return u.String(), nil
}

// FormResponseURL derives the submission endpoint from a viewform URL by
// replacing its last path segment with "formResponse".
func FormResponseURL(viewformURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(viewformURL))
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("%w: invalid form URL %q", ErrInvalidInput, viewformURL)
	}
	if !strings.Contains(u.Path, "viewform") {
		return "", fmt.Errorf("%w: URL must be a viewform URL: %q", ErrInvalidInput, viewformURL)
	}

	path := strings.TrimRight(u.Path, "/")
	i := strings.LastIndex(path, "/")
	u.Path = path[:i+1] + "formResponse"
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}
