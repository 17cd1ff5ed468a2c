package executor

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
)

// CommandExecutor runs external commands
type CommandExecutor interface {
	// Execute runs name with args and returns combined output
	Execute(ctx context.Context, name string, args ...string) ([]byte, error)

	// LookPath searches for an executable in the directories named by PATH
	LookPath(file string) (string, error)
}

// SystemExecutor implements CommandExecutor using os/exec
type SystemExecutor struct{}

// NewSystemExecutor creates a new SystemExecutor
func NewSystemExecutor() *SystemExecutor {
	return &SystemExecutor{}
}

// Execute runs a command and returns combined output
func (e *SystemExecutor) Execute(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// LookPath searches for an executable
func (e *SystemExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

var nginxVersionPattern = regexp.MustCompile(`nginx/(\d+\.\d+\.\d+)`)

// NginxVersion locates the nginx binary and reports its version. nginx -v
// writes to stderr, which Execute folds into its output.
func NginxVersion(ctx context.Context, e CommandExecutor) (path, version string, err error) {
	path, err = e.LookPath("nginx")
	if err != nil {
		return "", "", fmt.Errorf("nginx not found in PATH: %w", err)
	}

	out, err := e.Execute(ctx, path, "-v")
	if err != nil {
		return path, "", fmt.Errorf("%s -v failed: %w", path, err)
	}
	m := nginxVersionPattern.FindSubmatch(out)
	if m == nil {
		return path, "unknown", nil
	}
	return path, string(m[1]), nil
}

// MockExecutor is a mock implementation for testing
type MockExecutor struct {
	ExecuteFunc  func(name string, args ...string) ([]byte, error)
	LookPathFunc func(file string) (string, error)
	Calls        []CommandCall
}

// CommandCall records a command execution for verification
type CommandCall struct {
	Name string
	Args []string
}

// Execute calls the mock function
func (m *MockExecutor) Execute(ctx context.Context, name string, args ...string) ([]byte, error) {
	m.Calls = append(m.Calls, CommandCall{Name: name, Args: args})
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(name, args...)
	}
	return []byte(""), nil
}

// LookPath calls the mock function
func (m *MockExecutor) LookPath(file string) (string, error) {
	if m.LookPathFunc != nil {
		return m.LookPathFunc(file)
	}
	return "/usr/sbin/" + file, nil
}
