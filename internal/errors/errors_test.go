package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestErrorCodes(t *testing.T) {
	codes := []string{
		ErrConfig,
		ErrFetch,
		ErrDecode,
		ErrStatus,
		ErrNotFound,
		ErrTTY,
	}

	seen := make(map[string]bool)
	for _, code := range codes {
		assert.NotEmpty(t, code, "error code should not be empty")
		assert.False(t, seen[code], "error code %q should be unique", code)
		seen[code] = true
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		message    string
		suggestion string
	}{
		{
			name:       "config error",
			code:       ErrConfig,
			message:    "Invalid configuration in .healthdash.yaml",
			suggestion: "Check your configuration file syntax",
		},
		{
			name:       "fetch error",
			code:       ErrFetch,
			message:    "Cannot reach the health API",
			suggestion: "Check api.base_url",
		},
		{
			name:       "not found error",
			code:       ErrNotFound,
			message:    "Host abc not found",
			suggestion: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, tt.suggestion)

			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.suggestion, err.Suggestion)
			assert.Nil(t, err.Cause)
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name          string
		err           *Error
		expectedParts []string
		notExpected   []string
	}{
		{
			name: "basic error formatting",
			err:  New(ErrConfig, "Invalid configuration", "Check .healthdash.yaml syntax"),
			expectedParts: []string{
				"✗",
				"Invalid configuration",
				"Check .healthdash.yaml syntax",
			},
		},
		{
			name: "error without suggestion",
			err:  New(ErrStatus, "Backend returned 500", ""),
			expectedParts: []string{
				"Backend returned 500",
			},
			notExpected: []string{
				"\n\n  \n",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := tt.err.Error()

			for _, part := range tt.expectedParts {
				assert.Contains(t, output, part)
			}
			for _, part := range tt.notExpected {
				assert.NotContains(t, output, part)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	wrapped := Wrap(cause, "GET /api/health failed")

	require.NotNil(t, wrapped)
	assert.Equal(t, ErrFetch, wrapped.Code, "Wrap should default to ErrFetch code")
	assert.Equal(t, cause, wrapped.Cause)
	assert.True(t, errors.Is(wrapped, cause))
}

func TestWrapWithCode(t *testing.T) {
	cause := errors.New("unexpected EOF")
	wrapped := WrapWithCode(cause, ErrDecode, "Malformed host list", "Check the backend version")

	assert.Equal(t, ErrDecode, wrapped.Code)
	assert.Equal(t, "Check the backend version", wrapped.Suggestion)
	assert.Contains(t, wrapped.Error(), "unexpected EOF")
	assert.Equal(t, cause, wrapped.Unwrap())
}

func TestErrorMessageStructure(t *testing.T) {
	err := WrapWithCode(
		errors.New("dial tcp 10.0.0.1:80: i/o timeout"),
		ErrFetch,
		"Cannot reach the health API",
		"Check api.base_url",
	)

	lines := strings.Split(err.Error(), "\n")
	assert.True(t, strings.HasPrefix(strings.TrimSpace(lines[0]), "✗"))
	assert.Contains(t, lines[0], "Cannot reach the health API")
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "", Summary(nil))
	assert.Equal(t, "plain", Summary(errors.New("plain")))
	assert.Equal(t, "Host gone", Summary(New(ErrNotFound, "Host gone", "ignored")))

	wrapped := fmt.Errorf("outer: %w", Wrap(errors.New("refused"), "GET /api/hosts failed"))
	assert.Equal(t, "GET /api/hosts failed: refused", Summary(wrapped))

	nested := WrapWithCode(New(ErrNotFound, "GET /api/hosts/x returned 404", "hint"), ErrNotFound, "No host with ID x", "")
	assert.Equal(t, "No host with ID x: GET /api/hosts/x returned 404", Summary(nested))
}

func TestIsCode(t *testing.T) {
	err := New(ErrConfig, "Config error", "")

	assert.True(t, IsCode(err, ErrConfig))
	assert.False(t, IsCode(err, ErrFetch))
	assert.False(t, IsCode(errors.New("standard error"), ErrConfig))
	assert.False(t, IsCode(nil, ErrConfig))
	assert.True(t, IsCode(fmt.Errorf("ctx: %w", New(ErrNotFound, "gone", "")), ErrNotFound))
}

func TestSummary_Multierr(t *testing.T) {
	err := multierr.Combine(
		Wrap(errors.New("refused"), "GET /api/health failed"),
		New(ErrStatus, "GET /api/hosts returned 502", ""),
	)

	assert.Equal(t, "GET /api/health failed: refused; GET /api/hosts returned 502", Summary(err))
	assert.True(t, IsCode(err, ErrFetch))
}
