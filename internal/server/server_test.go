package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/resume-ranker/internal/ranking"
)

// textExtractor treats uploaded bytes as already extracted text.
type textExtractor struct{}

func (textExtractor) Extract(_ context.Context, data []byte) (string, error) {
	return strings.ToLower(string(data)), nil
}

type uploadFile struct {
	name    string
	content string
}

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	engine, err := ranking.New(ranking.Options{Extractor: textExtractor{}})
	require.NoError(t, err)
	return New(cfg, engine, nil)
}

func multipartBody(t *testing.T, field string, files ...uploadFile) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for _, file := range files {
		part, err := writer.CreateFormFile(field, file.name)
		require.NoError(t, err)
		_, err = part.Write([]byte(file.content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func doUpload(t *testing.T, s *Server, accept, field string, files ...uploadFile) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, field, files...)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestUploadRanksPDFsOnly(t *testing.T) {
	s := newTestServer(t, Config{})

	rec := doUpload(t, s, "application/json", "files",
		uploadFile{name: "low.pdf", content: "Some Body\nleadership"},
		uploadFile{name: "notes.txt", content: "python sql docker aws"},
		uploadFile{name: "high.pdf", content: "Jane Doe\npython sql leadership"},
		uploadFile{name: "upper.PDF", content: "python sql docker aws git"},
	)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var rows []ranking.DisplayRow
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 2)

	assert.Equal(t, ranking.DisplayRow{
		Name:            "jane doe",
		Filename:        "high.pdf",
		Score:           3,
		TechnicalSkills: "python, sql",
		SoftSkills:      "leadership",
	}, rows[0])
	assert.Equal(t, "low.pdf", rows[1].Filename)
	assert.Equal(t, ranking.NoTechnicalSkills, rows[1].TechnicalSkills)
}

func TestUploadRendersHTML(t *testing.T) {
	s := newTestServer(t, Config{})

	rec := doUpload(t, s, "", "files", uploadFile{name: "jane.pdf", content: "Jane Doe\npython"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	body := rec.Body.String()
	assert.Contains(t, body, "jane doe")
	assert.Contains(t, body, "jane.pdf")
	assert.Contains(t, body, ranking.NoSoftSkills)
}

func TestUploadWithoutFilesPart(t *testing.T) {
	s := newTestServer(t, Config{})

	rec := doUpload(t, s, "", "attachments", uploadFile{name: "jane.pdf", content: "python"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No file part", strings.TrimSpace(rec.Body.String()))

	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("not a form"))
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("Accept", "application/json")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"No file part"}`, rec.Body.String())
}

func TestUploadWithOnlySkippedFiles(t *testing.T) {
	s := newTestServer(t, Config{})

	rec := doUpload(t, s, "application/json", "files", uploadFile{name: "cv.docx", content: "python"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestUploadTooLarge(t *testing.T) {
	s := newTestServer(t, Config{MaxUploadBytes: 1024})

	rec := doUpload(t, s, "", "files", uploadFile{name: "big.pdf", content: strings.Repeat("python ", 1000)})
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestIndexAndHealth(t *testing.T) {
	s := newTestServer(t, Config{})

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="files"`)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/upload", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s := newTestServer(t, Config{})

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, listener) }()

	resp, err := http.Get("http://" + listener.Addr().String() + "/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
