package engine_test

import (
	"os"
	"path"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/ezscan/internal/attr"
	"github.com/bamsammich/ezscan/internal/engine"
	"github.com/bamsammich/ezscan/internal/event"
	"github.com/bamsammich/ezscan/internal/fsys"
)

// memTree builds an in-memory filesystem. Keys ending in "/" are
// directories; everything else is a file with the given content.
//
// The standard tree used by most tests:
//
//	/src/a.txt
//	/src/b.c
//	/src/empty/
//	/src/sub/c.txt
//	/src/sub/deep/d.txt
func memTree(t *testing.T, entries map[string]string) *fsys.Mem {
	t.Helper()
	m := fsys.NewMem()
	fs := m.Afero()
	for p, content := range entries {
		if p[len(p)-1] == '/' {
			require.NoError(t, fs.MkdirAll(p, 0o755))
			continue
		}
		require.NoError(t, fs.MkdirAll(path.Dir(p), 0o755))
		require.NoError(t, afero.WriteFile(fs, p, []byte(content), 0o644))
		require.NoError(t, fs.Chmod(p, 0o644))
	}
	return m
}

func standardTree(t *testing.T) *fsys.Mem {
	t.Helper()
	return memTree(t, map[string]string{
		"/src/a.txt":          "alpha",
		"/src/b.c":            "int main;",
		"/src/empty/":         "",
		"/src/sub/c.txt":      "charlie",
		"/src/sub/deep/d.txt": "delta",
	})
}

// call is one recorded hook invocation.
type call struct {
	Kind  string // dir, file, list, finish
	Path  string
	Cwd   string
	Roots engine.Roots
	Entry attr.Entry
	State engine.State
	Depth int
}

func (c call) String() string { return c.Kind + ":" + c.Path }

// recorder implements engine.Hooks and records every call in order.
type recorder struct {
	fs       fsys.FS
	onDir    func(sc *engine.Scope, e *attr.Entry) bool
	onFile   func(sc *engine.Scope, e *attr.Entry) attr.Change
	onFinish func(sc *engine.Scope, e *attr.Entry) attr.Change
	calls    []call
}

func newRecorder(fs fsys.FS) *recorder {
	return &recorder{fs: fs}
}

func (r *recorder) record(kind, p string, sc *engine.Scope, e *attr.Entry) {
	cwd, _ := r.fs.Getwd()
	r.calls = append(r.calls, call{
		Kind:  kind,
		Path:  p,
		Cwd:   cwd,
		Roots: sc.Roots,
		Entry: *e,
		State: sc.State,
		Depth: sc.Depth,
	})
}

func (r *recorder) DirProcess(sc *engine.Scope, e *attr.Entry) bool {
	r.record("dir", sc.Roots.CurrentSourceDir, sc, e)
	if r.onDir != nil {
		return r.onDir(sc, e)
	}
	return true
}

func (r *recorder) DirFinish(sc *engine.Scope, e *attr.Entry) attr.Change {
	r.record("finish", sc.Dir, sc, e)
	if r.onFinish != nil {
		return r.onFinish(sc, e)
	}
	return attr.Change{}
}

func (r *recorder) FileProcess(sc *engine.Scope, e *attr.Entry) attr.Change {
	r.record("file", sc.Roots.CurrentSourceFile, sc, e)
	if r.onFile != nil {
		return r.onFile(sc, e)
	}
	return attr.Change{}
}

func (r *recorder) FileListFinish(sc *engine.Scope, e *attr.Entry) {
	r.record("list", sc.Dir, sc, e)
}

func (r *recorder) trace() []string {
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.String()
	}
	return out
}

func (r *recorder) find(kind, p string) (call, bool) {
	for _, c := range r.calls {
		if c.Kind == kind && c.Path == p {
			return c, true
		}
	}
	return call{}, false
}

// faultFS wraps a backend and injects failures per path.
type faultFS struct {
	fsys.FS
	readDirErr map[string]error
	statErr    map[string]error
	mkdirErr   map[string]error
	chmodErr   error
	extraNames []string       // appended to every ReadDir result
	statCalls  map[string]int // when set, counts Stat calls per path
}

func (f *faultFS) ReadDir(dir string) ([]string, error) {
	if err := f.readDirErr[dir]; err != nil {
		return nil, err
	}
	names, err := f.FS.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	return append(names, f.extraNames...), nil
}

func (f *faultFS) Stat(name string) (fsys.Info, error) {
	if f.statCalls != nil {
		f.statCalls[name]++
	}
	if err := f.statErr[name]; err != nil {
		return fsys.Info{}, err
	}
	return f.FS.Stat(name)
}

func (f *faultFS) MkdirAll(dir string) error {
	if err := f.mkdirErr[dir]; err != nil {
		return err
	}
	return f.FS.MkdirAll(dir)
}

func (f *faultFS) Chmod(name string, perm os.FileMode) error {
	if f.chmodErr != nil {
		return f.chmodErr
	}
	return f.FS.Chmod(name, perm)
}

// collectEvents creates a buffered event channel that records all events.
// Returns the channel for engine.Config and a function to retrieve collected
// events. The getter closes the channel and waits for the drain goroutine,
// so it is safe to read the slice. It may be called at most once. If the
// getter is never called, t.Cleanup closes the channel on test exit.
func collectEvents(t *testing.T) (chan<- event.Event, func() []event.Event) {
	t.Helper()
	ch := make(chan event.Event, 4096)
	var collected []event.Event
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range ch {
			collected = append(collected, ev)
		}
	}()
	var once sync.Once
	drain := func() {
		once.Do(func() { close(ch) })
		<-done
	}
	t.Cleanup(drain)
	return ch, func() []event.Event {
		drain()
		return collected
	}
}

func eventTypes(events []event.Event) map[event.Type]int {
	out := make(map[event.Type]int)
	for _, e := range events {
		out[e.Type]++
	}
	return out
}
