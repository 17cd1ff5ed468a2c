// Package writer persists compiled location fragments into a staging
// directory, one file per fragment id. The assembler concatenates the
// files of a vhost in sorted name order.
package writer

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ksyq12/vhostfrag/internal/errors"
	"github.com/ksyq12/vhostfrag/internal/location"
	"github.com/ksyq12/vhostfrag/internal/logger"
)

// Change reports what Stage did to a fragment file.
type Change string

const (
	ChangeCreated   Change = "created"
	ChangeUpdated   Change = "updated"
	ChangeUnchanged Change = "unchanged"
	ChangeRemoved   Change = "removed"
	ChangeAbsent    Change = "absent"
)

// Writer is the interface fragment sinks implement
type Writer interface {
	// Dir returns the staging directory
	Dir() string

	// Stage creates the fragment file when enabled, removes it otherwise
	Stage(fragment location.Fragment, enabled bool) (Change, error)

	// List returns staged fragment ids in assembly order
	List() ([]string, error)
}

// FileMode is the permission of staged fragment files.
const FileMode os.FileMode = 0644

// Staging writes fragments below a single directory.
type Staging struct {
	dir string
	mu  sync.Mutex
}

// NewStaging creates a writer for dir. The directory is created on the
// first write.
func NewStaging(dir string) *Staging {
	return &Staging{dir: dir}
}

// Dir returns the staging directory
func (s *Staging) Dir() string {
	return s.dir
}

// Stage writes or removes the file named after the fragment id. Writes go
// through a temp file and rename so the assembler never reads a partial
// fragment.
func (s *Staging) Stage(fragment location.Fragment, enabled bool) (Change, error) {
	id := fragment.ID.String()
	path, err := s.path(id)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !enabled {
		return s.remove(id, path)
	}

	existing, err := os.ReadFile(path)
	exists := err == nil
	switch {
	case err == nil && bytes.Equal(existing, []byte(fragment.Text)):
		logger.Debug("Fragment %s unchanged", id)
		return ChangeUnchanged, nil
	case err != nil && !os.IsNotExist(err):
		return "", errors.Wrap(errors.ErrCodeWrite, fmt.Sprintf("failed to read fragment %s", id), err)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", errors.Wrap(errors.ErrCodeWrite, "failed to create staging directory", err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+id+".*")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeWrite, fmt.Sprintf("failed to stage fragment %s", id), err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.WriteString(fragment.Text); err != nil {
		_ = tmp.Close()
		return "", errors.Wrap(errors.ErrCodeWrite, fmt.Sprintf("failed to write fragment %s", id), err)
	}
	if err := tmp.Close(); err != nil {
		return "", errors.Wrap(errors.ErrCodeWrite, fmt.Sprintf("failed to write fragment %s", id), err)
	}
	if err := os.Chmod(tmpName, FileMode); err != nil {
		return "", errors.Wrap(errors.ErrCodeWrite, fmt.Sprintf("failed to set mode on fragment %s", id), err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return "", errors.Wrap(errors.ErrCodeWrite, fmt.Sprintf("failed to move fragment %s into place", id), err)
	}

	if !exists {
		logger.Debug("Fragment %s created", id)
		return ChangeCreated, nil
	}
	logger.Debug("Fragment %s updated", id)
	return ChangeUpdated, nil
}

func (s *Staging) remove(id, path string) (Change, error) {
	info, err := os.Lstat(path)
	if os.IsNotExist(err) {
		return ChangeAbsent, nil
	}
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeWrite, fmt.Sprintf("failed to check fragment %s", id), err)
	}
	if info.IsDir() {
		return "", errors.Wrap(errors.ErrCodeWrite, fmt.Sprintf("fragment %s is a directory, refusing to remove", id), nil)
	}

	if err := os.Remove(path); err != nil {
		return "", errors.Wrap(errors.ErrCodeWrite, fmt.Sprintf("failed to remove fragment %s", id), err)
	}
	logger.Debug("Fragment %s removed", id)
	return ChangeRemoved, nil
}

// List returns all staged fragment ids, sorted.
func (s *Staging) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, errors.Wrap(errors.ErrCodeWrite, "failed to read staging directory", err)
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			ids = append(ids, entry.Name())
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// path maps an id to its file, rejecting ids that would escape the directory.
func (s *Staging) path(id string) (string, error) {
	if id == "" || filepath.Base(id) != id || strings.HasPrefix(id, ".") {
		return "", errors.Wrap(errors.ErrCodeWrite, fmt.Sprintf("invalid fragment id %q", id), nil)
	}
	return filepath.Join(s.dir, id), nil
}

// Writable reports whether dir exists and accepts new files. A missing
// directory is not an error since Stage creates it.
func Writable(dir string) (exists bool, err error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeWrite, "failed to stat staging directory", err)
	}
	if !info.IsDir() {
		return true, errors.Wrap(errors.ErrCodeWrite, fmt.Sprintf("%s is not a directory", dir), nil)
	}

	probe, err := os.CreateTemp(dir, ".probe.*")
	if err != nil {
		return true, errors.Wrap(errors.ErrCodeWrite, "staging directory is not writable", err)
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)
	return true, nil
}
