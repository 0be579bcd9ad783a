package post

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/openclique/feedline/internal/api/middleware"
	"github.com/openclique/feedline/internal/auth"
	"github.com/openclique/feedline/internal/domain"
	apperrors "github.com/openclique/feedline/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// mockService implements posts.Service for handler tests.
type mockService struct {
	createFunc     func(ctx context.Context, authorID, authorUsername, text, imageRef string) (domain.Post, error)
	listFunc       func(ctx context.Context) ([]domain.Post, error)
	toggleLikeFunc func(ctx context.Context, postID, username string) (int, error)
	addCommentFunc func(ctx context.Context, postID, username, text string) error
	deleteFunc     func(ctx context.Context, postID, requesterUsername string) error
}

func (m *mockService) Create(ctx context.Context, authorID, authorUsername, text, imageRef string) (domain.Post, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, authorID, authorUsername, text, imageRef)
	}
	return domain.Post{ID: primitive.NewObjectID(), UserID: authorID, Username: authorUsername, Text: text, ImageURL: imageRef}, nil
}

func (m *mockService) List(ctx context.Context) ([]domain.Post, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []domain.Post{}, nil
}

func (m *mockService) ToggleLike(ctx context.Context, postID, username string) (int, error) {
	if m.toggleLikeFunc != nil {
		return m.toggleLikeFunc(ctx, postID, username)
	}
	return 1, nil
}

func (m *mockService) AddComment(ctx context.Context, postID, username, text string) error {
	if m.addCommentFunc != nil {
		return m.addCommentFunc(ctx, postID, username, text)
	}
	return nil
}

func (m *mockService) Delete(ctx context.Context, postID, requesterUsername string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, postID, requesterUsername)
	}
	return nil
}

// mockStore implements uploads.Store without touching disk.
type mockStore struct {
	savedName string
}

func (m *mockStore) Save(_ context.Context, originalName string, r io.Reader) (string, error) {
	_, _ = io.Copy(io.Discard, r)
	m.savedName = "1700000000000-" + strings.ToLower(originalName)
	return m.savedName, nil
}

func (m *mockStore) Dir() string { return "" }

func (m *mockStore) ScheduleOrphanSweep(_ context.Context) error { return nil }

func authed(req *http.Request) *http.Request {
	ctx := middleware.WithIdentity(req.Context(), auth.Identity{UserID: "uid-1", Username: "alice"})
	return req.WithContext(ctx)
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func multipartBody(t *testing.T, text string, fileName string, fileContent []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("text", text))
	if fileName != "" {
		fw, err := mw.CreateFormFile("image", fileName)
		require.NoError(t, err)
		_, err = fw.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestCreateHandlerTextOnly(t *testing.T) {
	svc := &mockService{}
	handler := NewCreateHandler(svc, &mockStore{}, 10<<20)

	body, contentType := multipartBody(t, "hello", "", nil)
	req := authed(httptest.NewRequest(http.MethodPost, "/api/posts/create", body))
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.HandleCreate(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp struct {
		Message string      `json:"message"`
		Post    domain.Post `json:"post"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Post Created Successfully", resp.Message)
	assert.Equal(t, "hello", resp.Post.Text)
	assert.Equal(t, "alice", resp.Post.Username)
}

func TestCreateHandlerWithImage(t *testing.T) {
	svc := &mockService{}
	store := &mockStore{}
	handler := NewCreateHandler(svc, store, 10<<20)

	body, contentType := multipartBody(t, "caption", "cat.png", []byte("png bytes"))
	req := authed(httptest.NewRequest(http.MethodPost, "/api/posts/create", body))
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.HandleCreate(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp struct {
		Post domain.Post `json:"post"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, store.savedName, resp.Post.ImageURL)
}

func TestCreateHandlerRejectsOversizedBody(t *testing.T) {
	handler := NewCreateHandler(&mockService{}, &mockStore{}, 64)

	body, contentType := multipartBody(t, "x", "big.png", bytes.Repeat([]byte("a"), 4096))
	req := authed(httptest.NewRequest(http.MethodPost, "/api/posts/create", body))
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.HandleCreate(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestCreateHandlerRequiresIdentity(t *testing.T) {
	handler := NewCreateHandler(&mockService{}, &mockStore{}, 10<<20)

	body, contentType := multipartBody(t, "hello", "", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/posts/create", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.HandleCreate(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateHandlerEmptyContent(t *testing.T) {
	svc := &mockService{
		createFunc: func(context.Context, string, string, string, string) (domain.Post, error) {
			return domain.Post{}, apperrors.Wrap(apperrors.ErrInvalidInput, "post must carry text or an image")
		},
	}
	handler := NewCreateHandler(svc, &mockStore{}, 10<<20)

	body, contentType := multipartBody(t, "", "", nil)
	req := authed(httptest.NewRequest(http.MethodPost, "/api/posts/create", body))
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.HandleCreate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListHandler(t *testing.T) {
	svc := &mockService{
		listFunc: func(context.Context) ([]domain.Post, error) {
			return []domain.Post{
				{ID: primitive.NewObjectID(), Username: "bob", Text: "newest"},
				{ID: primitive.NewObjectID(), Username: "alice", Text: "older"},
			}, nil
		},
	}
	handler := NewListHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/posts/all", nil)
	rec := httptest.NewRecorder()

	handler.HandleList(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var feed []domain.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &feed))
	require.Len(t, feed, 2)
	assert.Equal(t, "newest", feed[0].Text)
}

func TestLikeHandler(t *testing.T) {
	var gotPostID, gotUsername string
	svc := &mockService{
		toggleLikeFunc: func(_ context.Context, postID, username string) (int, error) {
			gotPostID, gotUsername = postID, username
			return 3, nil
		},
	}
	handler := NewLikeHandler(svc)

	req := authed(httptest.NewRequest(http.MethodPut, "/api/posts/like/abc123", nil))
	req = withURLParam(req, "postId", "abc123")
	rec := httptest.NewRecorder()

	handler.HandleLike(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc123", gotPostID)
	assert.Equal(t, "alice", gotUsername)

	var resp struct {
		Message string `json:"message"`
		Likes   int    `json:"likes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Like updated", resp.Message)
	assert.Equal(t, 3, resp.Likes)
}

func TestLikeHandlerNotFound(t *testing.T) {
	svc := &mockService{
		toggleLikeFunc: func(context.Context, string, string) (int, error) {
			return 0, apperrors.ErrNotFound
		},
	}
	handler := NewLikeHandler(svc)

	req := authed(httptest.NewRequest(http.MethodPut, "/api/posts/like/missing", nil))
	req = withURLParam(req, "postId", "missing")
	rec := httptest.NewRecorder()

	handler.HandleLike(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Post not found")
}

func TestCommentHandler(t *testing.T) {
	var gotText string
	svc := &mockService{
		addCommentFunc: func(_ context.Context, _, _, text string) error {
			gotText = text
			return nil
		},
	}
	handler := NewCommentHandler(svc)

	req := authed(httptest.NewRequest(http.MethodPost, "/api/posts/comment/abc123",
		strings.NewReader(`{"text":"nice post"}`)))
	req = withURLParam(req, "postId", "abc123")
	rec := httptest.NewRecorder()

	handler.HandleComment(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nice post", gotText)
	assert.Contains(t, rec.Body.String(), "Comment added")
}

func TestDeleteHandlerForbidden(t *testing.T) {
	svc := &mockService{
		deleteFunc: func(context.Context, string, string) error {
			return apperrors.ErrForbidden
		},
	}
	handler := NewDeleteHandler(svc)

	req := authed(httptest.NewRequest(http.MethodDelete, "/api/posts/abc123", nil))
	req = withURLParam(req, "postId", "abc123")
	rec := httptest.NewRecorder()

	handler.HandleDelete(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "You can only delete your own posts")
}

func TestDeleteHandlerSuccess(t *testing.T) {
	svc := &mockService{}
	handler := NewDeleteHandler(svc)

	req := authed(httptest.NewRequest(http.MethodDelete, "/api/posts/abc123", nil))
	req = withURLParam(req, "postId", "abc123")
	rec := httptest.NewRecorder()

	handler.HandleDelete(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Post deleted successfully")
}
