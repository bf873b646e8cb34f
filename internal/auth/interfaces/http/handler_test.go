package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/ssrequity/internal/auth/application"
	"github.com/wyfcoding/ssrequity/internal/auth/domain"
)

type memKeyRepo struct {
	keys map[string]*domain.APIKey
}

func (r *memKeyRepo) Save(ctx context.Context, key *domain.APIKey) error {
	key.ID = uint(len(r.keys) + 1)
	r.keys[key.Key] = key
	return nil
}

func (r *memKeyRepo) GetByKey(ctx context.Context, key string) (*domain.APIKey, error) {
	return r.keys[key], nil
}

func (r *memKeyRepo) DeleteByKey(ctx context.Context, key string) (int64, error) {
	if _, ok := r.keys[key]; !ok {
		return 0, nil
	}
	delete(r.keys, key)
	return 1, nil
}

const testAdminToken = "secret-token"

func newAdminRouter() (*gin.Engine, *memKeyRepo) {
	gin.SetMode(gin.TestMode)
	repo := &memKeyRepo{keys: make(map[string]*domain.APIKey)}
	handler := NewAdminHandler(application.NewKeyService(repo))

	router := gin.New()
	handler.RegisterRoutes(router.Group("/"), testAdminToken)
	return router, repo
}

func doAdmin(router *gin.Engine, method, path, token string, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(AdminTokenHeader, token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateKey(t *testing.T) {
	router, repo := newAdminRouter()

	w := doAdmin(router, http.MethodPost, "/admin/api-keys", testAdminToken,
		`{"client_id": 42, "name": "acme"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Key      string `json:"key"`
		Name     string `json:"name"`
		ClientID int64  `json:"client_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp.Key, "ssr_"))
	assert.Equal(t, "acme", resp.Name)
	assert.Equal(t, int64(42), resp.ClientID)
	assert.Contains(t, repo.keys, resp.Key)
}

func TestCreateKeyValidation(t *testing.T) {
	router, _ := newAdminRouter()

	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing client_id", `{"name": "acme"}`, "client_id is required"},
		{"missing name", `{"client_id": 42}`, "name is required"},
		{"blank name", `{"client_id": 42, "name": "  "}`, "name is required"},
		{"malformed body", `{`, "invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doAdmin(router, http.MethodPost, "/admin/api-keys", testAdminToken, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.want)
		})
	}
}

func TestDeleteKey(t *testing.T) {
	router, repo := newAdminRouter()
	repo.keys["ssr_doomed"] = &domain.APIKey{ID: 1, ClientID: 1, Key: "ssr_doomed"}

	w := doAdmin(router, http.MethodDelete, "/admin/api-keys/ssr_doomed", testAdminToken, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Deleted int64 `json:"deleted"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Deleted)
	assert.NotContains(t, repo.keys, "ssr_doomed")

	w = doAdmin(router, http.MethodDelete, "/admin/api-keys/ssr_doomed", testAdminToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Zero(t, resp.Deleted, "deleting twice reports zero the second time")
}

func TestRequireAdmin(t *testing.T) {
	router, _ := newAdminRouter()

	t.Run("missing token", func(t *testing.T) {
		w := doAdmin(router, http.MethodPost, "/admin/api-keys", "",
			`{"client_id": 1, "name": "a"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong token", func(t *testing.T) {
		w := doAdmin(router, http.MethodPost, "/admin/api-keys", "wrong",
			`{"client_id": 1, "name": "a"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
