// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, classification and legacy codes

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/subpack/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "staging_error",
			code:    errors.ErrStagingFailed,
			message: "resource missing",
			wantStr: "[STAGING_FAILED] resource missing",
		},
		{
			name:    "invalid_input_error",
			code:    errors.ErrInvalidInput,
			message: "invalid configuration",
			wantStr: "[INVALID_INPUT] invalid configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Details == nil {
				t.Error("New() details should be initialized")
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	t.Run("wrap_error", func(t *testing.T) {
		baseErr := stderrors.New("base error")
		err := errors.Wrap(baseErr, errors.ErrArchiveExtract, "cannot extract")

		if err.Wrapped != baseErr {
			t.Error("Wrap() should preserve wrapped error")
		}

		wantStr := "[ARCHIVE_EXTRACT] cannot extract: base error"
		if got := err.Error(); got != wantStr {
			t.Errorf("Error() = %q, want %q", got, wantStr)
		}
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		if err := errors.Wrap(nil, errors.ErrInternal, "internal error"); err != nil {
			t.Error("Wrap(nil) should return nil")
		}
		if err := errors.Wrapf(nil, errors.ErrInternal, "internal %s", "error"); err != nil {
			t.Error("Wrapf(nil) should return nil")
		}
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrAssetCopy, "copy failed").
		WithDetail("source", "/test/overlay.png").
		WithDetail("category", "overlays")

	if err.Details["source"] != "/test/overlay.png" {
		t.Errorf("WithDetail() source = %v", err.Details["source"])
	}
	if got := errors.GetErrorDetails(err)["category"]; got != "overlays" {
		t.Errorf("GetErrorDetails() category = %v", got)
	}
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrNotFound, "error 1")
	err2 := errors.New(errors.ErrNotFound, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	if !stderrors.Is(err1, err2) {
		t.Error("errors.Is() should match on code")
	}
	if stderrors.Is(err1, err3) {
		t.Error("errors.Is() should not match different codes")
	}
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{
			name:     "matching_code",
			err:      errors.New(errors.ErrMergeFailed, "merge"),
			code:     errors.ErrMergeFailed,
			expected: true,
		},
		{
			name:     "wrapped_error",
			err:      errors.Wrap(stderrors.New("base"), errors.ErrAppFetch, "fetch"),
			code:     errors.ErrAppFetch,
			expected: true,
		},
		{
			name:     "standard_error",
			err:      stderrors.New("standard error"),
			code:     errors.ErrNotFound,
			expected: false,
		},
		{
			name:     "nil_error",
			err:      nil,
			code:     errors.ErrNotFound,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.IsErrorCode(tt.err, tt.code); got != tt.expected {
				t.Errorf("IsErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("root cause")
	extractErr := errors.Wrap(rootCause, errors.ErrArchiveExtract, "cannot read archive")
	appErr := errors.Wrap(extractErr, errors.ErrAppExtract, "app assets")

	if errors.GetErrorCode(appErr) != errors.ErrAppExtract {
		t.Error("top level should carry ErrAppExtract")
	}
	if !stderrors.Is(appErr, rootCause) {
		t.Error("should find root cause with errors.Is")
	}
}

func TestIsFatal(t *testing.T) {
	fatal := []errors.ErrorCode{
		errors.ErrStagingFailed,
		errors.ErrArchiveExtract,
		errors.ErrArchiveCreate,
		errors.ErrMergeFailed,
		errors.ErrOutputMissing,
		errors.ErrPipelineFault,
		errors.ErrCancelled,
	}
	for _, code := range fatal {
		if !errors.IsFatal(code) {
			t.Errorf("IsFatal(%s) = false, want true", code)
		}
	}

	isolated := []errors.ErrorCode{
		errors.ErrAssetCopy,
		errors.ErrPathEscape,
		errors.ErrAppFetch,
		errors.ErrAppExtract,
	}
	for _, code := range isolated {
		if errors.IsFatal(code) {
			t.Errorf("IsFatal(%s) = true, want false", code)
		}
	}
}

func TestLegacyCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"staging", errors.New(errors.ErrStagingFailed, "x"), 1},
		{"output_missing", errors.New(errors.ErrOutputMissing, "x"), -1},
		{"extract", errors.New(errors.ErrArchiveExtract, "x"), 0},
		{"create", errors.New(errors.ErrArchiveCreate, "x"), 0},
		{"plain", stderrors.New("x"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.LegacyCode(tt.err); got != tt.want {
				t.Errorf("LegacyCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
