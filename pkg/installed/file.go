package installed

import (
	"context"
	"fmt"
	"gfd/pkg/common"
	"gfd/pkg/filelock"
	"gfd/pkg/lazyjson"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// state is the on-disk layout of the installed-state file.
type state struct {
	Installer   *common.Installer `json:"installer,omitempty"`
	InstalledAt time.Time         `json:"installed_at,omitempty"`
}

// FileStore keeps the installed installer in a JSON state file.
// Mutable
type FileStore struct {
	file *lazyjson.File[state]
	// mu spans each reload/read and reload/modify/save sequence.
	mu sync.Mutex
}

var (
	_ Source   = (*FileStore)(nil)
	_ Recorder = (*FileStore)(nil)
)

// NewFileStore creates a store backed by path. The file is only created on Record.
func NewFileStore(path string) *FileStore {
	return &FileStore{file: lazyjson.New[state](path)}
}

// Current returns the recorded installer, or nil when the file is missing or empty.
func (s *FileStore) Current(ctx context.Context) (*common.Installer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.file.Reload()
	st, err := s.file.Get()
	if err != nil {
		return nil, fmt.Errorf("reading installed state: %w", err)
	}
	if st.Installer == nil || st.Installer.Name == "" {
		return nil, nil
	}
	inst := *st.Installer
	inst.Checksum = strings.ToLower(inst.Checksum)
	return &inst, nil
}

// Record stores inst as the installed installer.
// Concurrent recorders, in this or other processes, are serialized.
func (s *FileStore) Record(ctx context.Context, inst common.Installer) error {
	unlock, err := filelock.Acquire(ctx, s.file.Path())
	if err != nil {
		return err
	}
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.file.Reload()
	err = s.file.Modify(func(st *state) error {
		st.Installer = &inst
		st.InstalledAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return fmt.Errorf("recording installed state: %w", err)
	}
	if err := s.file.Save(); err != nil {
		return fmt.Errorf("saving installed state: %w", err)
	}
	slog.Info("Recorded installed installer", "name", inst.Name, "path", s.file.Path())
	return nil
}
