// Package tracker builds web URLs into the issue tracker.
package tracker

import (
	"net/url"
	"strings"
)

// NormalizeHost trims whitespace and trailing slashes from a tracker base URL.
func NormalizeHost(host string) string {
	return strings.TrimRight(strings.TrimSpace(host), "/")
}

// IssueURL returns the web page of an issue.
func IssueURL(host, issueID string) string {
	return NormalizeHost(host) + "/issue/" + url.PathEscape(issueID)
}

// UserURL returns the profile page of a tracker user.
func UserURL(host, login string) string {
	return NormalizeHost(host) + "/hub/users/" + url.PathEscape(login)
}

// ValidateHost reports whether host is an absolute http(s) URL.
func ValidateHost(host string) bool {
	u, err := url.Parse(NormalizeHost(host))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
