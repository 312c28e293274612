package lock

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	ps "github.com/mitchellh/go-ps"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int {
	return m.pid
}

func (m *mockProcess) PPid() int {
	return 0
}

func (m *mockProcess) Executable() string {
	return m.executable
}

func withProcesses(t *testing.T, self int, procs map[int]string) {
	t.Helper()
	oldFind := findProcessFunc
	oldGetpid := getpidFunc
	t.Cleanup(func() {
		findProcessFunc = oldFind
		getpidFunc = oldGetpid
	})
	getpidFunc = func() int { return self }
	findProcessFunc = func(pid int) (ps.Process, error) {
		exe, ok := procs[pid]
		if !ok {
			return nil, nil
		}
		return &mockProcess{pid: pid, executable: exe}, nil
	}
}

func TestAcquireAndRelease(t *testing.T) {
	withProcesses(t, 100, map[int]string{100: "lifetrack"})
	storePath := filepath.Join(t.TempDir(), "lifetrack.db")

	l, err := Acquire(storePath)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	content, err := os.ReadFile(PathFor(storePath))
	if err != nil {
		t.Fatalf("lockfile not written: %v", err)
	}
	if string(content) != "100" {
		t.Errorf("lockfile content = %q, want %q", content, "100")
	}

	if err := l.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if _, err := os.Stat(PathFor(storePath)); !os.IsNotExist(err) {
		t.Error("lockfile should be removed after Release")
	}
}

func TestAcquire_HeldByLiveProcess(t *testing.T) {
	withProcesses(t, 100, map[int]string{100: "lifetrack", 200: "lifetrack"})
	storePath := filepath.Join(t.TempDir(), "lifetrack.db")

	if err := os.WriteFile(PathFor(storePath), []byte("200"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := Acquire(storePath)
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("Acquire() error = %v, want ErrLocked", err)
	}
}

func TestAcquire_ReplacesStaleLock(t *testing.T) {
	tests := []struct {
		name    string
		content string
		procs   map[int]string
	}{
		{name: "dead process", content: "300", procs: map[int]string{}},
		{name: "pid reused by another program", content: "300", procs: map[int]string{300: "bash"}},
		{name: "malformed lockfile", content: "not-a-pid", procs: map[int]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withProcesses(t, 100, tt.procs)
			storePath := filepath.Join(t.TempDir(), "lifetrack.json")
			if err := os.WriteFile(PathFor(storePath), []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}

			l, err := Acquire(storePath)
			if err != nil {
				t.Fatalf("Acquire() error = %v", err)
			}
			defer l.Release()

			content, _ := os.ReadFile(PathFor(storePath))
			if string(content) != strconv.Itoa(100) {
				t.Errorf("lockfile content = %q, want 100", content)
			}
		})
	}
}

func TestRelease_DoesNotRemoveForeignLock(t *testing.T) {
	withProcesses(t, 100, map[int]string{100: "lifetrack"})
	storePath := filepath.Join(t.TempDir(), "lifetrack.db")

	l, err := Acquire(storePath)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if err := os.WriteFile(PathFor(storePath), []byte("555"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := l.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if _, err := os.Stat(PathFor(storePath)); err != nil {
		t.Error("Release should leave a lockfile owned by another pid")
	}
}

func TestHolder(t *testing.T) {
	withProcesses(t, 100, map[int]string{42: "lifetrack"})
	storePath := filepath.Join(t.TempDir(), "lifetrack.db")

	if _, live := Holder(storePath); live {
		t.Error("Holder() reported a live holder with no lockfile")
	}

	if err := os.WriteFile(PathFor(storePath), []byte("42\n"), 0600); err != nil {
		t.Fatal(err)
	}
	pid, live := Holder(storePath)
	if pid != 42 || !live {
		t.Errorf("Holder() = (%d, %v), want (42, true)", pid, live)
	}
}
