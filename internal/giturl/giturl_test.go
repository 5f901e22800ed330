package giturl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRepoName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://github.com/crimson206/test-miniature", "test-miniature"},
		{"https://github.com/user/repo.git", "repo"},
		{"git@github.com:user/repo.git", "repo"},
		{"https://github.com/user/repo/", "repo"},
		{"/srv/git/local-repo", "local-repo"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, RepoName(tt.in))
		})
	}
}

func TestSameRepository(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"https://github.com/user/repo", "https://github.com/user/repo.git", true},
		{"https://github.com/user/repo", "git@github.com:user/repo.git", true},
		{"https://GitHub.com/user/repo/", "https://github.com/user/repo", true},
		{"https://github.com/user/repo", "https://github.com/user/other", false},
		{"/srv/git/repo", "/srv/git/repo.git", true},
	}

	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			require.Equal(t, tt.want, SameRepository(tt.a, tt.b))
		})
	}
}

func TestParseRepository(t *testing.T) {
	tests := []struct {
		in       string
		wantFull string
		wantHost string
		wantErr  bool
	}{
		{in: "owner/repo", wantFull: "owner/repo", wantHost: "github.com"},
		{in: "ghe.example.com/owner/repo", wantFull: "owner/repo", wantHost: "ghe.example.com"},
		{in: "https://github.com/owner/repo.git", wantFull: "owner/repo", wantHost: "github.com"},
		{in: "git@github.com:owner/repo.git", wantFull: "owner/repo", wantHost: "github.com"},
		{in: "repo", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r, err := ParseRepository(tt.in)
			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.wantFull, r.FullName())
			require.Equal(t, tt.wantHost, r.Host)
		})
	}

	r, err := ParseRepository("owner/repo")
	require.NoError(t, err)
	require.Equal(t, "https://github.com/owner/repo", r.CloneURL())
}
