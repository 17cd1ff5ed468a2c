package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestFragError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *FragError
		expected string
	}{
		{
			name:     "message only",
			err:      &FragError{Code: ErrCodeManifest, Message: "invalid manifest"},
			expected: "invalid manifest",
		},
		{
			name: "with vhost and location",
			err: &FragError{
				Code:     ErrCodeConflictingContentSources,
				Message:  MsgConflictingContentSources,
				VHost:    "site",
				Location: "root",
			},
			expected: "location site/root: cannot define both a directory source and a proxy source",
		},
		{
			name:     "location without vhost",
			err:      &FragError{Code: ErrCodeMissingVhost, Message: MsgMissingVhost, Location: "root"},
			expected: "location root: a location must belong to a vhost",
		},
		{
			name:     "vhost only",
			err:      &FragError{Code: ErrCodeWrite, Message: "stage failed", VHost: "site"},
			expected: "vhost site: stage failed",
		},
		{
			name: "with underlying error",
			err: &FragError{
				Code:    ErrCodeManifest,
				Message: "failed to read manifest",
				Err:     fmt.Errorf("file not found"),
			},
			expected: "failed to read manifest: file not found",
		},
		{
			name: "underlying error without message",
			err: &FragError{
				Code:     ErrCodeRender,
				VHost:    "site",
				Location: "api",
				Err:      fmt.Errorf("template: boom"),
			},
			expected: "location site/api: template: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFragError_Is(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		target   error
		expected bool
	}{
		{"missing vhost", MissingVhost("root"), ErrMissingVhost, true},
		{"missing source", MissingContentSource("site", "root"), ErrMissingContentSource, true},
		{"conflict", ConflictingContentSources("site", "root"), ErrConflictingContentSources, true},
		{"different code", MissingContentSource("site", "root"), ErrConflictingContentSources, false},
		{"non-FragError target", MissingVhost("root"), fmt.Errorf("regular error"), false},
		{"wrapped with fmt", fmt.Errorf("compile: %w", MissingVhost("root")), ErrMissingVhost, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if errors.Is(tt.err, tt.target) != tt.expected {
				t.Errorf("Is() = %v, want %v", !tt.expected, tt.expected)
			}
		})
	}
}

func TestLocationConstructors(t *testing.T) {
	var fe *FragError
	if !errors.As(ConflictingContentSources("site", "root"), &fe) {
		t.Fatal("ConflictingContentSources() should return *FragError")
	}
	if fe.VHost != "site" || fe.Location != "root" {
		t.Errorf("context = %s/%s, want site/root", fe.VHost, fe.Location)
	}
	if fe.Message != MsgConflictingContentSources {
		t.Errorf("Message = %q", fe.Message)
	}

	if !errors.As(MissingVhost("root"), &fe) {
		t.Fatal("MissingVhost() should return *FragError")
	}
	if fe.VHost != "" {
		t.Errorf("VHost = %q, want empty", fe.VHost)
	}
}

func TestWrap(t *testing.T) {
	underlying := fmt.Errorf("permission denied")
	err := Wrap(ErrCodeWrite, "failed to stage fragment", underlying)

	if !errors.Is(err, ErrWrite) {
		t.Error("Wrap() should match ErrWrite")
	}
	if !errors.Is(err, underlying) {
		t.Error("wrapped error should contain underlying error in chain")
	}
}

func TestWrapLocation(t *testing.T) {
	underlying := MissingContentSource("site", "root")
	err := WrapLocation(ErrCodeRender, "site", "root", underlying)

	var fe *FragError
	if !errors.As(err, &fe) {
		t.Fatal("WrapLocation() should return *FragError")
	}
	if fe.Code != ErrCodeRender {
		t.Errorf("Code = %v, want %v", fe.Code, ErrCodeRender)
	}
	// The inner code is still reachable through the chain.
	if !errors.Is(err, ErrMissingContentSource) {
		t.Error("expected inner error to be found in chain")
	}
}

func TestSentinelErrors(t *testing.T) {
	sentinels := []struct {
		name string
		err  *FragError
		code ErrorCode
	}{
		{"ErrMissingVhost", ErrMissingVhost, ErrCodeMissingVhost},
		{"ErrMissingContentSource", ErrMissingContentSource, ErrCodeMissingContentSource},
		{"ErrConflictingContentSources", ErrConflictingContentSources, ErrCodeConflictingContentSources},
		{"ErrManifest", ErrManifest, ErrCodeManifest},
		{"ErrRender", ErrRender, ErrCodeRender},
		{"ErrWrite", ErrWrite, ErrCodeWrite},
	}

	for _, tt := range sentinels {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("%s.Code = %v, want %v", tt.name, tt.err.Code, tt.code)
			}
			if tt.err.Message == "" {
				t.Errorf("%s.Message should not be empty", tt.name)
			}
		})
	}
}
