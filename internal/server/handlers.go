package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/document"
	"github.com/spigell/resume-ranker/internal/filtering"
	"github.com/spigell/resume-ranker/internal/logger"
	"github.com/spigell/resume-ranker/internal/ranking"
)

const (
	filesField      = "files"
	requestIDHeader = "X-Request-ID"
)

type loggerKey struct{}

// withRequestID tags every request with a fresh id and a logger carrying it.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.New().String()
		log := logger.WithFields(s.logger, zap.String(logger.FieldRequestID, requestID))

		w.Header().Set(requestIDHeader, requestID)
		log.Debug("request started",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote_addr", r.RemoteAddr),
		)

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), loggerKey{}, log)))

		log.Info("request completed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

func (s *Server) requestLogger(r *http.Request) *zap.Logger {
	if log, ok := r.Context().Value(loggerKey{}).(*zap.Logger); ok {
		return log
	}
	return s.logger
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "upload.html", nil)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUpload ranks every PDF of the files field. Other files are skipped.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	log := s.requestLogger(r)

	docs, err := s.readUpload(w, r)
	if err != nil {
		log.Info("upload rejected", zap.Error(err))
		s.errorResponse(w, r, HTTPStatus(err), err)
		return
	}

	docs, err = filtering.Run(r.Context(), nil, filtering.Deps{Logger: log},
		[]filtering.Filter{filtering.NewEmptyName(), filtering.NewExtension()}, docs)
	if err != nil {
		s.errorResponse(w, r, http.StatusInternalServerError, err)
		return
	}

	batch, err := s.ranker.Rank(r.Context(), docs, nil)
	if err != nil {
		log.Error("ranking failed", zap.Error(err))
		s.errorResponse(w, r, http.StatusInternalServerError, err)
		return
	}

	rows := batch.Display()
	if wantsJSON(r) {
		s.jsonResponse(w, r, http.StatusOK, rows)
		return
	}

	s.render(w, r, "result.html", struct {
		BatchID string
		Rows    []ranking.DisplayRow
	}{
		BatchID: batch.ID,
		Rows:    rows,
	})
}

// readUpload loads every part of the files field. A files field sent with
// an empty filename counts as present and yields a nameless document.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (*document.Documents, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	if err := r.ParseMultipartForm(formMemoryBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("%w: limit is %d bytes", ErrUploadTooLarge, tooLarge.Limit)
		}
		if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
			return nil, ErrNoFilesSubmitted
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidUpload, err)
	}

	form := r.MultipartForm
	headers, hasFiles := form.File[filesField]
	values, hasValues := form.Value[filesField]
	if !hasFiles && !hasValues {
		return nil, ErrNoFilesSubmitted
	}

	docs := document.New()
	for _, header := range headers {
		data, err := readPart(header)
		if err != nil {
			return nil, fmt.Errorf("%w: reading %q: %w", ErrInvalidUpload, header.Filename, err)
		}
		docs.Items = append(docs.Items, &document.Document{Name: header.Filename, Data: data})
	}
	for range values {
		docs.Items = append(docs.Items, &document.Document{})
	}

	return docs, nil
}

func readPart(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		s.requestLogger(r).Error("rendering template failed", zap.String("template", name), zap.Error(err))
	}
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.requestLogger(r).Error("encoding json response failed", zap.Error(err))
	}
}

// errorResponse answers JSON clients with {"error": ...} and everyone else
// with the plain message.
func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, status int, err error) {
	if wantsJSON(r) {
		s.jsonResponse(w, r, status, map[string]string{"error": err.Error()})
		return
	}
	http.Error(w, err.Error(), status)
}
