package jobs

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// ErrNotJobPosting is returned for URLs that are known not to point at a posting
var ErrNotJobPosting = errors.New("url is not a job posting")

var (
	linkedInJobView = regexp.MustCompile(`^/jobs/view/(\d+)/?$`)
	numericID       = regexp.MustCompile(`^\d+$`)
)

// NormalizeJobURL validates a posting URL. LinkedIn job links, including
// collection links carrying currentJobId, are rewritten to the public
// /jobs/view/<id> form; other LinkedIn pages are rejected.
func NormalizeJobURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return "", fmt.Errorf("invalid URL: %q must be absolute http(s)", raw)
	}

	host := strings.ToLower(u.Hostname())
	if host != "linkedin.com" && host != "www.linkedin.com" {
		return u.String(), nil
	}

	path := strings.ToLower(u.Path)
	if m := linkedInJobView.FindStringSubmatch(path); m != nil {
		return "https://www.linkedin.com/jobs/view/" + m[1], nil
	}
	if strings.HasPrefix(path, "/jobs/collections/") || strings.HasPrefix(path, "/jobs/search") {
		if id := u.Query().Get("currentJobId"); numericID.MatchString(id) {
			return "https://www.linkedin.com/jobs/view/" + id, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotJobPosting, raw)
}
