// Package filelock serializes writers of a file across processes with a
// sibling ".lock" file holding the owner's PID.
package filelock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// PollInterval is how long Acquire waits before looking at a held lock again.
var PollInterval = 200 * time.Millisecond

// UnknownOwnerTimeout is the age after which a lock whose owner cannot be
// probed is treated as abandoned.
var UnknownOwnerTimeout = time.Minute

const corruptGrace = time.Second

// Path returns the lock file used for target.
func Path(target string) string {
	return target + ".lock"
}

// Acquire takes the lock for target and returns the function releasing it.
// A lock left behind by a dead process is removed and taken over.
// Acquire waits while a live process holds the lock, until ctx is done.
func Acquire(ctx context.Context, target string) (func() error, error) {
	lockFile := Path(target)
	if err := os.MkdirAll(filepath.Dir(lockFile), 0755); err != nil {
		return nil, fmt.Errorf("creating lock directory: %w", err)
	}

	for {
		f, err := os.OpenFile(lockFile, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			_, werr := fmt.Fprintf(f, "%s %d", time.Now().Format(time.RFC3339), os.Getpid())
			cerr := f.Close()
			if werr = errors.Join(werr, cerr); werr != nil {
				os.Remove(lockFile)
				return nil, fmt.Errorf("writing lock file: %w", werr)
			}
			return func() error { return os.Remove(lockFile) }, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("acquiring lock %s: %w", lockFile, err)
		}

		pid, age, ok := owner(lockFile)
		if ok && stale(pid, age) {
			slog.Debug("Removing stale lock", "path", lockFile, "pid", pid, "age", age)
			os.Remove(lockFile)
			continue
		}
		if !ok {
			// Vanished between open and read, or unreadable. Either way, look again.
			if _, statErr := os.Stat(lockFile); os.IsNotExist(statErr) {
				continue
			}
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for lock %s: %w", lockFile, ctx.Err())
		case <-time.After(PollInterval):
		}
	}
}

// owner reads the PID stored in lockFile and the age of the file. A corrupt
// file older than corruptGrace reports PID 0, which is never alive; a younger
// one may still be in the middle of being written and reports our own PID.
func owner(lockFile string) (int, time.Duration, bool) {
	info, err := os.Stat(lockFile)
	if err != nil {
		return 0, 0, false
	}
	age := time.Since(info.ModTime())
	content, err := os.ReadFile(lockFile)
	if err != nil {
		return 0, 0, false
	}
	parts := strings.Fields(string(content))
	if len(parts) >= 2 {
		if pid, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
			return pid, age, true
		}
	}
	if age < corruptGrace {
		return os.Getpid(), age, true
	}
	return 0, age, true
}

// stale reports whether a lock of the given age held by pid may be taken over.
// When liveness cannot be determined the lock is only stale once it is older
// than UnknownOwnerTimeout.
func stale(pid int, age time.Duration) bool {
	live, known := liveness(pid)
	if known {
		return !live
	}
	return age >= UnknownOwnerTimeout
}

// signalProcess returns nil when pid exists. On Windows, opening the process
// is the existence check; elsewhere signal 0 is sent.
var signalProcess = func(pid int) error {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	if runtime.GOOS == "windows" {
		return proc.Release()
	}
	return proc.Signal(syscall.Signal(0))
}

func liveness(pid int) (live, known bool) {
	if pid <= 0 {
		return false, true
	}
	err := signalProcess(pid)
	switch {
	case err == nil:
		return true, true
	case errors.Is(err, syscall.ESRCH), errors.Is(err, os.ErrProcessDone):
		return false, true
	case errors.Is(err, syscall.EPERM):
		// exists, owned by someone else
		return true, true
	default:
		return false, false
	}
}
