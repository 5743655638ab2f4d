package hosting

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/talentforge/forge/internal/cache"
)

const userJSON = `{"login": "alice", "name": "Alice Nguyen", "followers": 12, "public_repos": 2}`

const reposJSON = `[
	{
		"name": "shop-ui",
		"full_name": "alice/shop-ui",
		"description": "React storefront",
		"language": "TypeScript",
		"topics": ["react", "commerce"],
		"stargazers_count": 40,
		"forks_count": 3,
		"fork": false,
		"pushed_at": "2026-06-01T12:00:00Z",
		"owner": {"login": "alice"}
	},
	{
		"name": "platform",
		"full_name": "org/platform",
		"language": "Go",
		"fork": false,
		"owner": {"login": "org"}
	}
]`

func newTestClient(t *testing.T, handler http.Handler, c cache.Cache) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(Options{
		BaseURL:   srv.URL,
		UserAgent: "forge-test",
		Timeout:   2 * time.Second,
		Cache:     c,
	})
	return client, srv
}

func githubStub(userHits, repoHits *int) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/alice", func(w http.ResponseWriter, r *http.Request) {
		if userHits != nil {
			*userHits++
		}
		w.Write([]byte(userJSON))
	})
	mux.HandleFunc("/users/alice/repos", func(w http.ResponseWriter, r *http.Request) {
		if repoHits != nil {
			*repoHits++
		}
		w.Write([]byte(reposJSON))
	})
	return mux
}

func TestFetch(t *testing.T) {
	client, _ := newTestClient(t, githubStub(nil, nil), nil)

	profile, repos, err := client.Fetch(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if profile.Username != "alice" || profile.Followers != 12 {
		t.Errorf("profile = %+v", profile)
	}
	if len(repos) != 2 {
		t.Fatalf("repos = %d, want 2", len(repos))
	}

	shop := repos[0]
	if !shop.IsOwner {
		t.Error("alice/shop-ui should be marked owned")
	}
	if shop.Stars != 40 || shop.Language != "TypeScript" {
		t.Errorf("shop-ui = %+v", shop)
	}
	if shop.PushedAt.IsZero() {
		t.Error("pushed_at should parse")
	}
	if repos[1].IsOwner {
		t.Error("org/platform is not owned by alice")
	}
}

func TestFetch_TypedErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		headers map[string]string
		want    error
	}{
		{"not found", http.StatusNotFound, nil, ErrNotFound},
		{"too many requests", http.StatusTooManyRequests, nil, ErrRateLimited},
		{"forbidden with exhausted quota", http.StatusForbidden, map[string]string{"X-RateLimit-Remaining": "0"}, ErrRateLimited},
		{"server error", http.StatusBadGateway, nil, ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				for k, v := range tt.headers {
					w.Header().Set(k, v)
				}
				w.WriteHeader(tt.status)
			}), nil)

			_, _, err := client.Fetch(context.Background(), "alice")
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFetch_Cached(t *testing.T) {
	var userHits, repoHits int
	client, _ := newTestClient(t, githubStub(&userHits, &repoHits), cache.NewMemory(time.Minute, 0))

	for i := 0; i < 3; i++ {
		profile, repos, err := client.Fetch(context.Background(), "alice")
		if err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
		if profile.Username != "alice" || len(repos) != 2 {
			t.Fatalf("fetch %d returned %+v, %d repos", i, profile, len(repos))
		}
	}
	if userHits != 1 || repoHits != 1 {
		t.Errorf("upstream hit %d/%d times, want 1/1", userHits, repoHits)
	}
}

func TestFetch_NetworkFailure(t *testing.T) {
	client := NewClient(Options{BaseURL: "http://127.0.0.1:1", Timeout: 500 * time.Millisecond})
	_, _, err := client.Fetch(context.Background(), "alice")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}
