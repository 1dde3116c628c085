package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Constants(t *testing.T) {
	tests := []struct {
		name     string
		errType  ErrorType
		expected string
	}{
		{
			name:     "schema error type",
			errType:  ErrTypeSchema,
			expected: "SCHEMA",
		},
		{
			name:     "input not found error type",
			errType:  ErrTypeInputNotFound,
			expected: "INPUT_NOT_FOUND",
		},
		{
			name:     "output error type",
			errType:  ErrTypeOutput,
			expected: "OUTPUT",
		},
		{
			name:     "parse error type",
			errType:  ErrTypeParse,
			expected: "PARSE",
		},
		{
			name:     "validation error type",
			errType:  ErrTypeValidation,
			expected: "VALIDATION",
		},
		{
			name:     "config error type",
			errType:  ErrTypeConfig,
			expected: "CONFIG",
		},
		{
			name:     "internal error type",
			errType:  ErrTypeInternal,
			expected: "INTERNAL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name        string
		appError    *AppError
		wantMessage string
	}{
		{
			name: "error without cause",
			appError: &AppError{
				Type:    ErrTypeValidation,
				Message: "level filter must not be blank",
				Cause:   nil,
			},
			wantMessage: "[VALIDATION] level filter must not be blank",
		},
		{
			name: "error with cause",
			appError: &AppError{
				Type:    ErrTypeOutput,
				Message: "cannot write report to /tmp/out.xlsx",
				Cause:   fmt.Errorf("permission denied"),
			},
			wantMessage: "[OUTPUT] cannot write report to /tmp/out.xlsx: permission denied",
		},
		{
			name: "error with empty message",
			appError: &AppError{
				Type:    ErrTypeInternal,
				Message: "",
				Cause:   nil,
			},
			wantMessage: "[INTERNAL] ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.appError.Error()
			assert.Equal(t, tt.wantMessage, got)
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	t.Run("unwrap with cause", func(t *testing.T) {
		cause := fmt.Errorf("disk full")
		appErr := NewOutputError("/data/report.xlsx", cause)

		assert.Equal(t, cause, appErr.Unwrap())
		assert.True(t, errors.Is(appErr, cause))
	})

	t.Run("unwrap without cause", func(t *testing.T) {
		appErr := NewInputNotFoundError("missing.csv")
		assert.Nil(t, appErr.Unwrap())
	})
}

func TestAppError_WithContext(t *testing.T) {
	tests := []struct {
		name          string
		appError      *AppError
		key           string
		value         interface{}
		expectedValue interface{}
	}{
		{
			name: "add string context",
			appError: &AppError{
				Type:    ErrTypeOutput,
				Message: "write failed",
			},
			key:           "path",
			value:         "/data/report.xlsx",
			expectedValue: "/data/report.xlsx",
		},
		{
			name: "add integer context",
			appError: &AppError{
				Type:    ErrTypeParse,
				Message: "decode failed",
			},
			key:           "line",
			value:         17,
			expectedValue: 17,
		},
		{
			name: "add context to error with existing context",
			appError: &AppError{
				Type:    ErrTypeValidation,
				Message: "validation error",
				Context: map[string]interface{}{"field": "level"},
			},
			key:           "value",
			value:         "TRACE",
			expectedValue: "TRACE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.appError.WithContext(tt.key, tt.value)

			// Should return the same instance
			assert.Same(t, tt.appError, result)

			require.Contains(t, result.Context, tt.key)
			assert.Equal(t, tt.expectedValue, result.Context[tt.key])
			assert.NotNil(t, result.Context)
		})
	}
}

func TestNewSchemaError(t *testing.T) {
	expected := []string{"timestamp", "service", "level", "message", "response_ms"}

	tests := []struct {
		name    string
		missing []string
	}{
		{
			name:    "single missing column",
			missing: []string{"level"},
		},
		{
			name:    "multiple missing columns",
			missing: []string{"timestamp", "response_ms"},
		},
		{
			name:    "all columns missing",
			missing: expected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewSchemaError(tt.missing, expected)

			assert.Equal(t, ErrTypeSchema, got.Type)
			for _, col := range tt.missing {
				assert.Contains(t, got.Message, col)
			}
			assert.Contains(t, got.Message, "Missing columns")
			assert.Contains(t, got.Message, "Expected columns")
			assert.Contains(t, got.Message, "timestamp, service, level, message, response_ms")
			assert.Equal(t, tt.missing, got.Context["missing_columns"])
			assert.Equal(t, expected, got.Context["expected_columns"])
		})
	}
}

func TestNewInputNotFoundError(t *testing.T) {
	got := NewInputNotFoundError("sample_data/example.csv")

	assert.Equal(t, ErrTypeInputNotFound, got.Type)
	assert.Contains(t, got.Message, "sample_data/example.csv")
	assert.Nil(t, got.Cause)
	assert.Equal(t, "sample_data/example.csv", got.Context["path"])
}

func TestNewOutputError(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		cause error
	}{
		{
			name:  "output error with cause",
			path:  "/readonly/report.xlsx",
			cause: fmt.Errorf("permission denied"),
		},
		{
			name:  "output error without cause",
			path:  "report.xlsx",
			cause: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewOutputError(tt.path, tt.cause)

			assert.Equal(t, ErrTypeOutput, got.Type)
			assert.Contains(t, got.Message, tt.path)
			assert.Equal(t, tt.cause, got.Cause)
			assert.Equal(t, tt.path, got.Context["path"])
		})
	}
}

func TestNewParseError(t *testing.T) {
	cause := fmt.Errorf("unexpected EOF")
	got := NewParseError("failed to decode CSV input", cause)

	assert.Equal(t, ErrTypeParse, got.Type)
	assert.Equal(t, "failed to decode CSV input", got.Message)
	assert.Equal(t, cause, got.Cause)
}

func TestNewValidationError(t *testing.T) {
	got := NewValidationError("output path must end in .xlsx")

	assert.Equal(t, ErrTypeValidation, got.Type)
	assert.Equal(t, "output path must end in .xlsx", got.Message)
	assert.Nil(t, got.Cause)
}

func TestNewConfigError(t *testing.T) {
	cause := fmt.Errorf("yaml: line 3: mapping values are not allowed")
	got := NewConfigError("failed to load config file", cause)

	assert.Equal(t, ErrTypeConfig, got.Type)
	assert.Equal(t, cause, got.Cause)
}

func TestAppError_ErrorsIntegration(t *testing.T) {
	t.Run("errors.Is works through wrapping", func(t *testing.T) {
		originalErr := fmt.Errorf("original error")
		appErr := NewOutputError("report.xlsx", originalErr)

		assert.True(t, errors.Is(appErr, originalErr))

		otherErr := fmt.Errorf("other error")
		assert.False(t, errors.Is(appErr, otherErr))
	})

	t.Run("errors.As works through wrapping", func(t *testing.T) {
		appErr := NewSchemaError([]string{"level"}, []string{"timestamp", "service", "level", "message", "response_ms"})
		wrappedErr := fmt.Errorf("load failed: %w", appErr)

		var got *AppError
		require.True(t, errors.As(wrappedErr, &got))
		assert.Equal(t, ErrTypeSchema, got.Type)
	})

	t.Run("type survives nesting of app errors", func(t *testing.T) {
		rootErr := fmt.Errorf("root cause")
		inner := NewParseError("decode failed", rootErr)
		outer := NewInternalError("report run failed", inner)

		assert.True(t, errors.Is(outer, inner))
		assert.True(t, errors.Is(outer, rootErr))

		var got *AppError
		require.True(t, errors.As(outer, &got))
		assert.Equal(t, ErrTypeInternal, got.Type)
	})
}

func TestAppError_ContextChaining(t *testing.T) {
	appErr := NewOutputError("report.xlsx", nil).
		WithContext("sheet", "logs").
		WithContext("rows", 400)

	assert.Equal(t, "logs", appErr.Context["sheet"])
	assert.Equal(t, 400, appErr.Context["rows"])
	assert.Equal(t, "report.xlsx", appErr.Context["path"])
}
