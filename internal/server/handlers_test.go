package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iajcodes/HireC/internal/auth"
	"github.com/iajcodes/HireC/internal/config"
	"github.com/iajcodes/HireC/internal/ingestion"
	"github.com/iajcodes/HireC/internal/store"
	"github.com/iajcodes/HireC/internal/types"
)

// fakeExtractor returns canned candidates without touching the network.
type fakeExtractor struct {
	next  types.Candidate
	err   error
	calls int
}

func (f *fakeExtractor) Extract(_ context.Context, _ []byte, mediaType string) (*types.Candidate, error) {
	if !ingestion.IsSupportedMediaType(mediaType) {
		return nil, &ingestion.ValidationError{Message: "unsupported file type: supported types are " +
			strings.Join(ingestion.SupportedMediaTypes, ", ")}
	}
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := f.next
	return &out, nil
}

func newTestServer(t *testing.T, extractor ingestion.Extractor) *Server {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "hirecipher.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	srv, err := New(Config{
		Port:      0,
		Store:     st,
		Gate:      auth.NewGate(st, nil, nil),
		Extractor: extractor,
		JWT:       &config.JWTConfig{Secret: "test-secret", ExpirationHours: 1},
	})
	require.NoError(t, err)
	return srv
}

func doJSON(t *testing.T, handler http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func loginToken(t *testing.T, srv *Server, email string) string {
	t.Helper()

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/auth/login", "", types.LoginRequest{Email: email, Password: "pw"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func uploadResume(t *testing.T, srv *Server, token, mediaType string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="resume.pdf"`)
	header.Set("Content-Type", mediaType)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("resume bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/candidates", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestAuthEndpoints(t *testing.T) {
	srv := newTestServer(t, &fakeExtractor{})
	handler := srv.Handler()

	t.Run("login requires email", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/auth/login", "", types.LoginRequest{Password: "pw"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("signup and login succeed identically", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/auth/signup", "", types.LoginRequest{Email: "hr@example.com"})
		assert.Equal(t, http.StatusCreated, rec.Code)

		rec = doJSON(t, handler, http.MethodPost, "/auth/login", "", types.LoginRequest{Email: "hr@example.com"})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("session reflects login and logout", func(t *testing.T) {
		doJSON(t, handler, http.MethodPost, "/auth/login", "", types.LoginRequest{Email: "hr@example.com"})

		rec := doJSON(t, handler, http.MethodGet, "/auth/session", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var user types.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
		assert.Equal(t, "hr@example.com", user.Email)

		rec = doJSON(t, handler, http.MethodPost, "/auth/logout", "", nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = doJSON(t, handler, http.MethodGet, "/auth/session", "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCandidateRoutes_RequireAuth(t *testing.T) {
	srv := newTestServer(t, &fakeExtractor{})
	handler := srv.Handler()

	rec := doJSON(t, handler, http.MethodGet, "/candidates", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/candidates", "not-a-real-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUploadAndList(t *testing.T) {
	extractor := &fakeExtractor{next: types.Candidate{
		Name:    "Grace Hopper",
		Email:   "grace@example.com",
		Summary: "Compiler pioneer.",
		Skills:  []string{"COBOL"},
	}}
	srv := newTestServer(t, extractor)
	token := loginToken(t, srv, "hr@example.com")

	rec := uploadResume(t, srv, token, "application/pdf")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var added types.Candidate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &added))
	assert.NotEmpty(t, added.ID)
	assert.Equal(t, "Grace Hopper", added.Name)

	rec = doJSON(t, srv.Handler(), http.MethodGet, "/candidates", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list types.CandidateListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Count)
	require.Len(t, list.Candidates, 1)
	assert.Equal(t, added.ID, list.Candidates[0].ID)
}

func TestUpload_NewestFirst(t *testing.T) {
	extractor := &fakeExtractor{}
	srv := newTestServer(t, extractor)
	token := loginToken(t, srv, "hr@example.com")

	for i := 0; i < 3; i++ {
		extractor.next = types.Candidate{
			Name:  fmt.Sprintf("Person %d", i),
			Email: fmt.Sprintf("person%d@example.com", i),
		}
		rec := uploadResume(t, srv, token, "application/pdf")
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/candidates", token, nil)
	var list types.CandidateListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Equal(t, 3, list.Count)
	assert.Equal(t, "Person 2", list.Candidates[0].Name)
	assert.Equal(t, "Person 0", list.Candidates[2].Name)
}

func TestUpload_UnsupportedMediaType(t *testing.T) {
	extractor := &fakeExtractor{}
	srv := newTestServer(t, extractor)
	token := loginToken(t, srv, "hr@example.com")

	rec := uploadResume(t, srv, token, "image/png")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, extractor.calls, "no extraction attempt for a rejected file type")
}

func TestUpload_IngestionFailure(t *testing.T) {
	extractor := &fakeExtractor{err: &ingestion.Error{Detail: "response is missing required fields (name, email)"}}
	srv := newTestServer(t, extractor)
	token := loginToken(t, srv, "hr@example.com")

	rec := uploadResume(t, srv, token, "application/pdf")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing required fields")
}

func TestUpload_Busy(t *testing.T) {
	extractor := &fakeExtractor{err: ingestion.ErrUploadInProgress}
	srv := newTestServer(t, extractor)
	token := loginToken(t, srv, "hr@example.com")

	rec := uploadResume(t, srv, token, "application/pdf")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestListWithSearchTerm(t *testing.T) {
	extractor := &fakeExtractor{}
	srv := newTestServer(t, extractor)
	token := loginToken(t, srv, "hr@example.com")

	extractor.next = types.Candidate{Name: "Grace Hopper", Email: "grace@example.com", Skills: []string{"COBOL"}}
	require.Equal(t, http.StatusCreated, uploadResume(t, srv, token, "application/pdf").Code)
	extractor.next = types.Candidate{Name: "Ada Lovelace", Email: "ada@example.com", Skills: []string{"Python"}}
	require.Equal(t, http.StatusCreated, uploadResume(t, srv, token, "application/pdf").Code)

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/candidates?q=python", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list types.CandidateListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Equal(t, 1, list.Count)
	assert.Equal(t, "Ada Lovelace", list.Candidates[0].Name)
}

func TestCandidateDetailAndSelection(t *testing.T) {
	extractor := &fakeExtractor{next: types.Candidate{Name: "Grace Hopper", Email: "grace@example.com"}}
	srv := newTestServer(t, extractor)
	token := loginToken(t, srv, "hr@example.com")

	rec := uploadResume(t, srv, token, "application/pdf")
	var added types.Candidate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &added))

	rec = doJSON(t, srv.Handler(), http.MethodGet, "/candidates/"+added.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var detail types.Candidate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, added.ID, detail.ID)

	rec = doJSON(t, srv.Handler(), http.MethodGet, "/candidates/missing-id", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, srv.Handler(), http.MethodDelete, "/candidates/selection", token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRosterPersistsAcrossLogins(t *testing.T) {
	extractor := &fakeExtractor{next: types.Candidate{Name: "Grace Hopper", Email: "grace@example.com"}}
	srv := newTestServer(t, extractor)
	handler := srv.Handler()

	token := loginToken(t, srv, "hr@example.com")
	require.Equal(t, http.StatusCreated, uploadResume(t, srv, token, "application/pdf").Code)

	rec := doJSON(t, handler, http.MethodPost, "/auth/logout", "", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	token = loginToken(t, srv, "hr@example.com")
	rec = doJSON(t, handler, http.MethodGet, "/candidates", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list types.CandidateListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Count, "previously saved candidates survive logout")
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, &fakeExtractor{})

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
