package dummyapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"dummy-importer/core/dummyapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildURL(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		resource string
		limit    int
		skip     int
		want     string
	}{
		{"No paging", "https://dummyjson.com", "users", 0, 0, "https://dummyjson.com/users"},
		{"Limit only", "https://dummyjson.com", "users", 10, 0, "https://dummyjson.com/users?limit=10"},
		{"Limit and skip", "https://dummyjson.com", "users", 10, 20, "https://dummyjson.com/users?limit=10&skip=20"},
		{"Skip without limit is dropped", "https://dummyjson.com", "users", 0, 5, "https://dummyjson.com/users"},
		{"Trailing and leading slashes", "https://dummyjson.com/", "/posts/user/3", 0, 0, "https://dummyjson.com/posts/user/3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dummyapi.BuildURL(tt.base, tt.resource, tt.limit, tt.skip))
		})
	}
}

func TestHTTPClient_Fetch(t *testing.T) {
	var lastQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastQuery = r.URL.RawQuery
		switch r.URL.Path {
		case "/users":
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"users": []any{map[string]any{"id": 1}, map[string]any{"id": 2}},
				"total": 2,
			})
		case "/broken":
			w.WriteHeader(http.StatusInternalServerError)
		case "/garbage":
			_, _ = w.Write([]byte("not json"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := dummyapi.NewClient(dummyapi.Config{BaseURL: srv.URL, TimeoutSeconds: 5}, zap.NewNop())
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		payload := client.Fetch(ctx, "users", 2, 0)
		assert.Equal(t, "limit=2", lastQuery)
		users := payload.Records("users")
		require.Len(t, users, 2)
		assert.Equal(t, json.Number("1"), users[0]["id"])
	})

	t.Run("Pagination asymmetry", func(t *testing.T) {
		client.Fetch(ctx, "users", 0, 5)
		assert.Empty(t, lastQuery)
	})

	t.Run("Non-200 yields empty payload", func(t *testing.T) {
		payload := client.Fetch(ctx, "broken", 0, 0)
		assert.NotNil(t, payload)
		assert.True(t, payload.Empty())
		assert.Empty(t, payload.Records("users"))
	})

	t.Run("Undecodable body yields empty payload", func(t *testing.T) {
		assert.True(t, client.Fetch(ctx, "garbage", 0, 0).Empty())
	})

	t.Run("Transport error yields empty payload", func(t *testing.T) {
		dead := dummyapi.NewClient(dummyapi.Config{BaseURL: "http://127.0.0.1:1"}, zap.NewNop())
		assert.True(t, dead.Fetch(ctx, "users", 10, 0).Empty())
	})
}

func TestPayload_Records(t *testing.T) {
	p := dummyapi.Payload{
		"users": []any{map[string]any{"id": 1}, "stray", 3},
		"total": 1,
	}

	assert.Len(t, p.Records("users"), 1)
	assert.NotNil(t, p.Records("posts"))
	assert.Empty(t, p.Records("total"))
	assert.False(t, p.Empty())
}
