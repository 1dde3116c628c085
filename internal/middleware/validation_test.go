package middleware

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/sasi433/log-report-automation/internal/errors"
	"github.com/sasi433/log-report-automation/internal/shared/testutil"
)

func newValidationMiddleware(t *testing.T) *ValidationMiddleware {
	t.Helper()

	logger, _ := testutil.NewTestLogger(t)
	errorHandler := apperrors.NewErrorHandler(logger, false)
	return NewValidationMiddleware(logger, errorHandler, 1024)
}

func TestValidateStruct(t *testing.T) {
	type uploadForm struct {
		Service  string `json:"service" validate:"omitempty,max=8"`
		Level    string `json:"level" validate:"omitempty,max=8"`
		Filename string `json:"filename" validate:"omitempty,filename"`
	}

	m := newValidationMiddleware(t)

	t.Run("valid struct passes", func(t *testing.T) {
		err := m.ValidateStruct(uploadForm{Service: "api", Level: "ERROR", Filename: "logs.csv"})
		assert.NoError(t, err)
	})

	t.Run("oversized field is named in the error", func(t *testing.T) {
		err := m.ValidateStruct(uploadForm{Service: "a-service-name-way-too-long"})
		require.Error(t, err)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrTypeValidation, appErr.Type)
		assert.Contains(t, appErr.Message, "service must be at most 8")
		assert.Equal(t, []string{"service"}, appErr.Context["fields"])
	})

	t.Run("traversal filename rejected", func(t *testing.T) {
		err := m.ValidateStruct(uploadForm{Filename: "../../etc/passwd"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "filename must be a valid filename")
	})

	t.Run("multiple failures joined", func(t *testing.T) {
		err := m.ValidateStruct(uploadForm{Service: "far-too-long-for-the-cap", Filename: "bad/name"})
		require.Error(t, err)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Contains(t, appErr.Message, ";")
		assert.Len(t, appErr.Context["fields"], 2)
	})
}

func TestValidateRequest(t *testing.T) {
	m := newValidationMiddleware(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("GET requests skip validation", func(t *testing.T) {
		w := httptest.NewRecorder()
		m.ValidateRequest(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/version", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("oversized body rejected with 413", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/api/reports", strings.NewReader("x"))
		r.ContentLength = 10 * 1024

		w := httptest.NewRecorder()
		m.ValidateRequest(next).ServeHTTP(w, r)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

		var problem map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
		assert.Equal(t, apperrors.TypePayloadTooLarge, problem["type"])
		assert.EqualValues(t, 1024, problem["max_size"])
	})

	t.Run("invalid JSON body rejected", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/api/reports", strings.NewReader("{not json"))
		r.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		m.ValidateRequest(next).ServeHTTP(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("valid JSON body restored for handler", func(t *testing.T) {
		var received map[string]string
		reader := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			w.WriteHeader(http.StatusOK)
		})

		r := httptest.NewRequest(http.MethodPost, "/api/reports", strings.NewReader(`{"service":"api"}`))
		r.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		m.ValidateRequest(reader).ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "api", received["service"])
	})

	t.Run("multipart body passes through uninspected", func(t *testing.T) {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		part, err := mw.CreateFormFile("file", "logs.csv")
		require.NoError(t, err)
		part.Write([]byte("timestamp,service,level,message,response_ms\n"))
		require.NoError(t, mw.Close())

		var readBack []byte
		reader := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, file, err := r.FormFile("file")
			require.NoError(t, err)
			assert.Equal(t, "logs.csv", file.Filename)
			readBack = []byte("ok")
			w.WriteHeader(http.StatusOK)
		})

		r := httptest.NewRequest(http.MethodPost, "/api/reports", &body)
		r.Header.Set("Content-Type", mw.FormDataContentType())

		w := httptest.NewRecorder()
		m.ValidateRequest(reader).ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotNil(t, readBack)
	})
}

func TestContentTypeValidator(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	validator := ContentTypeValidator("multipart/form-data")

	t.Run("matching prefix passes", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/api/reports", nil)
		r.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")

		w := httptest.NewRecorder()
		validator(next).ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing content type rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		validator(next).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/reports", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("wrong content type rejected with 415", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/api/reports", nil)
		r.Header.Set("Content-Type", "text/plain")

		w := httptest.NewRecorder()
		validator(next).ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)

		var problem map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
		assert.Equal(t, "text/plain", problem["content_type"])
	})

	t.Run("GET skips the check", func(t *testing.T) {
		w := httptest.NewRecorder()
		validator(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/version", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
