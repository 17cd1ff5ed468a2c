package executor

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSystemExecutor_Execute(t *testing.T) {
	exec := NewSystemExecutor()

	t.Run("echo command", func(t *testing.T) {
		output, err := exec.Execute(context.Background(), "echo", "hello")
		if err != nil {
			t.Fatalf("Execute failed: %v", err)
		}
		if string(output) != "hello\n" {
			t.Errorf("expected 'hello\\n', got '%s'", string(output))
		}
	})

	t.Run("nonexistent command", func(t *testing.T) {
		_, err := exec.Execute(context.Background(), "nonexistent-command-xyz-12345")
		if err == nil {
			t.Error("expected error for nonexistent command")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := exec.Execute(ctx, "echo", "hello"); err == nil {
			t.Error("expected error for cancelled context")
		}
	})
}

func TestSystemExecutor_LookPath(t *testing.T) {
	exec := NewSystemExecutor()

	path, err := exec.LookPath("sh")
	if err != nil {
		t.Fatalf("LookPath failed: %v", err)
	}
	if path == "" {
		t.Error("expected non-empty path")
	}

	if _, err := exec.LookPath("nonexistent-command-xyz-12345"); err == nil {
		t.Error("expected error for nonexistent command")
	}
}

func TestNginxVersion(t *testing.T) {
	ctx := context.Background()

	t.Run("parses version", func(t *testing.T) {
		mock := &MockExecutor{
			ExecuteFunc: func(name string, args ...string) ([]byte, error) {
				return []byte("nginx version: nginx/1.24.0 (Ubuntu)\n"), nil
			},
		}

		path, version, err := NginxVersion(ctx, mock)
		if err != nil {
			t.Fatalf("NginxVersion failed: %v", err)
		}
		if path != "/usr/sbin/nginx" || version != "1.24.0" {
			t.Errorf("got %s %s", path, version)
		}
		want := []CommandCall{{Name: "/usr/sbin/nginx", Args: []string{"-v"}}}
		if diff := cmp.Diff(want, mock.Calls); diff != "" {
			t.Errorf("calls mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unrecognised output", func(t *testing.T) {
		mock := &MockExecutor{
			ExecuteFunc: func(name string, args ...string) ([]byte, error) {
				return []byte("openresty\n"), nil
			},
		}

		_, version, err := NginxVersion(ctx, mock)
		if err != nil {
			t.Fatalf("NginxVersion failed: %v", err)
		}
		if version != "unknown" {
			t.Errorf("expected unknown, got %s", version)
		}
	})

	t.Run("not installed", func(t *testing.T) {
		mock := &MockExecutor{
			LookPathFunc: func(string) (string, error) { return "", errors.New("not found") },
		}

		if _, _, err := NginxVersion(ctx, mock); err == nil {
			t.Error("expected error")
		}
		if len(mock.Calls) != 0 {
			t.Errorf("expected no executions, got %d", len(mock.Calls))
		}
	})

	t.Run("execution fails", func(t *testing.T) {
		mock := &MockExecutor{
			ExecuteFunc: func(name string, args ...string) ([]byte, error) {
				return nil, errors.New("exit status 1")
			},
		}

		path, _, err := NginxVersion(ctx, mock)
		if err == nil {
			t.Error("expected error")
		}
		if path != "/usr/sbin/nginx" {
			t.Errorf("path should still be reported, got %q", path)
		}
	})
}
