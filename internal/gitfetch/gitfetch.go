// Package gitfetch retrieves repositories with the git binary.
package gitfetch

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"flattenrepo/internal/flatten"
)

// Fetcher materializes a repository at dst and reports its head revision.
// Implementations return flatten.HeadUnknown when the head cannot be
// resolved but the tree itself is usable.
type Fetcher interface {
	Fetch(ctx context.Context, url, dst string) (head string, err error)
}

// Git fetches with a shallow clone.
type Git struct{}

// Fetch clones url into dst with depth 1 and resolves HEAD.
func (Git) Fetch(ctx context.Context, url, dst string) (string, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "git", "clone", "--depth", "1", url, dst)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git clone: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	out, err := exec.CommandContext(ctx, "git", "-C", dst, "rev-parse", "HEAD").Output()
	if err != nil {
		return flatten.HeadUnknown, nil
	}
	return strings.TrimSpace(string(out)), nil
}

var repoURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https://github\.com/[\w\-.]+/[\w\-.]+/?$`),
	regexp.MustCompile(`^https://github\.com/[\w\-.]+/[\w\-.]+\.git/?$`),
	regexp.MustCompile(`^git@github\.com:[\w\-.]+/[\w\-.]+\.git$`),
}

// ValidRepoURL reports whether url is an acceptable GitHub repository URL.
func ValidRepoURL(url string) bool {
	url = strings.TrimSpace(url)
	if url == "" {
		return false
	}
	for _, re := range repoURLPatterns {
		if re.MatchString(url) {
			return true
		}
	}
	return false
}

// CloneErrorMessage maps a clone failure to the user-facing message shown in
// task status.
func CloneErrorMessage(err error) string {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "authentication failed"):
		return "Private repository - authentication required"
	case strings.Contains(msg, "not found"):
		return "Repository not found"
	default:
		return "Repository not found or access denied"
	}
}
