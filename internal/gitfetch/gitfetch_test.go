package gitfetch

import (
	"errors"
	"testing"
)

func TestValidRepoURL(t *testing.T) {
	valid := []string{
		"https://github.com/owner/repo",
		"https://github.com/owner/repo/",
		"https://github.com/owner/repo.git",
		"https://github.com/some-owner/some.repo",
		"git@github.com:owner/repo.git",
		"  https://github.com/owner/repo  ",
	}
	for _, u := range valid {
		if !ValidRepoURL(u) {
			t.Errorf("ValidRepoURL(%q) = false, want true", u)
		}
	}

	invalid := []string{
		"",
		"github.com/owner/repo",
		"https://gitlab.com/owner/repo",
		"https://github.com/owner",
		"ftp://github.com/owner/repo",
		"git@github.com:owner/repo",
	}
	for _, u := range invalid {
		if ValidRepoURL(u) {
			t.Errorf("ValidRepoURL(%q) = true, want false", u)
		}
	}
}

func TestCloneErrorMessage(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{errors.New("git clone: exit status 128: Authentication failed for url"), "Private repository - authentication required"},
		{errors.New("git clone: exit status 128: repository not found"), "Repository not found"},
		{errors.New("git clone: exit status 1: weird"), "Repository not found or access denied"},
	}
	for _, c := range cases {
		if got := CloneErrorMessage(c.err); got != c.want {
			t.Errorf("CloneErrorMessage(%v) = %q, want %q", c.err, got, c.want)
		}
	}
}
