package hosting

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-github/v82/github"
	"github.com/stretchr/testify/require"
)

func newTestGitHub(t *testing.T, mux *http.ServeMux) *GitHub {
	t.Helper()

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := github.NewClient(nil)
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)

	client.BaseURL = base

	return NewGitHubWithClient(client, nil)
}

func TestCreateRepo(t *testing.T) {
	tests := []struct {
		name  string
		owner string
		path  string
	}{
		{name: "user", owner: "octocat", path: "/user/repos"},
		{name: "org", owner: "acme", path: "/orgs/acme/repos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("GET /user", func(w http.ResponseWriter, _ *http.Request) {
				_ = json.NewEncoder(w).Encode(map[string]any{"login": "octocat"})
			})

			var got map[string]any

			mux.HandleFunc("POST "+tt.path, func(w http.ResponseWriter, r *http.Request) {
				require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				w.WriteHeader(http.StatusCreated)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"full_name": tt.owner + "/db",
					"clone_url": "https://github.com/" + tt.owner + "/db.git",
					"private":   true,
				})
			})

			gh := newTestGitHub(t, mux)

			repo, err := gh.CreateRepo(context.Background(), tt.owner, "db", "package store", true)
			require.NoError(t, err)
			require.Equal(t, tt.owner+"/db", repo.FullName)
			require.Equal(t, "https://github.com/"+tt.owner+"/db.git", repo.CloneURL)
			require.True(t, repo.Private)
			require.Equal(t, "db", got["name"])
			require.Equal(t, true, got["private"])
		})
	}
}

func TestDeleteRepo(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /repos/acme/db", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("DELETE /repos/acme/missing", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "Not Found"}`))
	})

	gh := newTestGitHub(t, mux)

	require.NoError(t, gh.DeleteRepo(context.Background(), "acme", "db"))
	require.ErrorContains(t, gh.DeleteRepo(context.Background(), "acme", "missing"), "not found")
}
