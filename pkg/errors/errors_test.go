// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/hoopdev/ktaga-lab/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "unknown_extras_group_error",
			code:    errors.ErrUnknownExtrasGroup,
			message: "extras group not defined",
			wantStr: "[UNKNOWN_EXTRAS_GROUP] extras group not defined",
		},
		{
			name:    "invalid_runtime_parameter_error",
			code:    errors.ErrInvalidRuntimeParameter,
			message: "port out of range",
			wantStr: "[INVALID_RUNTIME_PARAMETER] port out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Message != tt.message {
				t.Errorf("New() message = %q, want %q", err.Message, tt.message)
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
	inner := stderrors.New("file unreadable")
	err := errors.Wrap(inner, errors.ErrManifestLoad, "cannot load manifest")

	if !stderrors.Is(err, inner) {
		t.Error("Wrap() should preserve the wrapped error for errors.Is")
	}

	want := "[MANIFEST_LOAD] cannot load manifest: file unreadable"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	if errors.Wrap(nil, errors.ErrManifestLoad, "ignored") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrConflictingConstraint, "ranges do not intersect").
		WithDetail("package", "qcodes").
		WithDetail("have", ">=1.0,<3.0").
		WithDetail("want", ">=4.0")

	details := errors.GetErrorDetails(err)
	if details["package"] != "qcodes" {
		t.Errorf("details[package] = %v, want qcodes", details["package"])
	}
	if details["want"] != ">=4.0" {
		t.Errorf("details[want] = %v, want >=4.0", details["want"])
	}
}

func TestIsErrorCode(t *testing.T) {
	err := errors.Newf(errors.ErrMalformedManifest, "duplicate requirement %q", "numpy")

	if !errors.IsErrorCode(err, errors.ErrMalformedManifest) {
		t.Error("IsErrorCode() should match the error's own code")
	}
	if errors.IsErrorCode(err, errors.ErrInconsistentPlan) {
		t.Error("IsErrorCode() should not match a different code")
	}
	if errors.IsErrorCode(stderrors.New("plain"), errors.ErrMalformedManifest) {
		t.Error("IsErrorCode() should not match a plain error")
	}
}

func TestGetErrorCode(t *testing.T) {
	err := errors.New(errors.ErrInconsistentPlan, "duplicate package after resolution")
	if got := errors.GetErrorCode(err); got != errors.ErrInconsistentPlan {
		t.Errorf("GetErrorCode() = %v, want %v", got, errors.ErrInconsistentPlan)
	}

	wrapped := errors.Wrap(err, errors.ErrInternal, "plan rejected")
	if got := errors.GetErrorCode(wrapped); got != errors.ErrInternal {
		t.Errorf("GetErrorCode() on wrapper = %v, want %v", got, errors.ErrInternal)
	}

	if got := errors.GetErrorCode(stderrors.New("plain")); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode() on plain error = %v, want %v", got, errors.ErrUnknown)
	}
}
