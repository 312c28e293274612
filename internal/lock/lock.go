// Package lock keeps two lifetrack processes from writing the same store.
// Stores are rewritten whole on every change, so a second writer would
// silently drop the first one's entries.
package lock

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/logger"
)

var (
	// ErrLocked is returned when another live lifetrack process holds the lock
	ErrLocked = errors.New("store is in use by another lifetrack process")

	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

// Lock is a held lockfile.
type Lock struct {
	path string
	pid  int
}

// PathFor returns the lockfile path guarding the given store file.
func PathFor(storePath string) string {
	return storePath + constants.LockfileSuffix
}

// Acquire takes the lock for storePath. A lockfile left behind by a process
// that is no longer running is replaced.
func Acquire(storePath string) (*Lock, error) {
	path := PathFor(storePath)
	pid := getpidFunc()

	for attempt := 0; attempt < constants.LockMaxRetries; attempt++ {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
		if err == nil {
			_, werr := f.WriteString(strconv.Itoa(pid))
			cerr := f.Close()
			if werr != nil || cerr != nil {
				_ = os.Remove(path)
				return nil, fmt.Errorf("failed to write lockfile: %w", errors.Join(werr, cerr))
			}
			return &Lock{path: path, pid: pid}, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to create lockfile: %w", err)
		}

		holder, live := Holder(storePath)
		if live && holder != pid {
			return nil, fmt.Errorf("%w (pid %d, lockfile %s)", ErrLocked, holder, path)
		}

		logger.Debug("Replacing stale lockfile", "path", path, "pid", holder)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale lockfile: %w", err)
		}
		time.Sleep(constants.LockRetryDelay)
	}

	return nil, fmt.Errorf("failed to acquire lockfile %s", path)
}

// Holder reports the pid recorded in the lockfile for storePath and whether
// that pid belongs to a running lifetrack process.
func Holder(storePath string) (int, bool) {
	content, err := os.ReadFile(PathFor(storePath))
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil || pid <= 0 {
		return 0, false
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return pid, false
	}
	if !strings.HasPrefix(process.Executable(), constants.AppName) {
		return pid, false
	}
	return pid, true
}

// Release removes the lockfile if it still belongs to this lock.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	content, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read lockfile: %w", err)
	}
	if strings.TrimSpace(string(content)) != strconv.Itoa(l.pid) {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}

// Path returns the lockfile path.
func (l *Lock) Path() string {
	return l.path
}
