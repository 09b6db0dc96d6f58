package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"postboard/internal/models"
	"postboard/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/api/v1/", time.Second)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestClient_List(t *testing.T) {
	p := models.NewPost("a", "b").ToPrimitive()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/posts", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{"items": []models.PostPrimitive{p}})
	})

	items, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, p.ID, items[0].ID)
	assert.True(t, p.CreatedAt.Equal(items[0].CreatedAt))
}

func TestClient_ListNullItemsIsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"items": nil})
	})

	items, err := c.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestClient_Create(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in validation.CreatePostRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		writeJSON(w, http.StatusCreated, models.NewPost(in.Name, in.Description).ToPrimitive())
	})

	got, err := c.Create(context.Background(), validation.CreatePostRequest{Name: "n", Description: "d"})
	require.NoError(t, err)
	assert.Equal(t, "n", got.Name)
	assert.Equal(t, "d", got.Description)
	assert.NotEmpty(t, got.ID)
}

func TestClient_ServerErrorMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "name is required", Code: models.CodeValidation})
	})

	_, err := c.Create(context.Background(), validation.CreatePostRequest{})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, models.CodeValidation, apiErr.Code)
	assert.Equal(t, "name is required", err.Error())
}

func TestClient_RemoveNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/posts/abc", r.URL.Path)
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Post with ID abc not found", Code: models.CodeNotFound})
	})

	_, err := c.Remove(context.Background(), "abc")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestClient_Get(t *testing.T) {
	post := models.NewPost("Hello", "World").ToPrimitive()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/posts/"+post.ID, r.URL.Path)
		writeJSON(w, http.StatusOK, post)
	})

	got, err := c.Get(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, got.ID)
	assert.Equal(t, "Hello", got.Name)
}

func TestClient_NonJSONErrorBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	})

	_, err := c.Get(context.Background(), "x")
	require.Error(t, err)
	assert.Equal(t, "request failed with status 502", err.Error())
}
