package engine

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNotExist is returned when a virtual file is absent.
var ErrNotExist = errors.New("virtual file does not exist")

// MemFS is the engine's private named-buffer namespace. Writes overwrite, so
// a leftover file from a previous invocation never affects the next one.
type MemFS struct {
	mu    sync.Mutex
	files map[string][]byte
}

// NewMemFS returns an empty namespace.
func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

// Write stores data under name, replacing any previous content.
func (fs *MemFS) Write(name string, data []byte) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	fs.files[name] = buf
}

// Read returns the content stored under name.
func (fs *MemFS) Read(name string) ([]byte, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	data, ok := fs.files[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotExist, name)
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	return buf, nil
}

// Remove deletes the named file.
func (fs *MemFS) Remove(name string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if _, ok := fs.files[name]; !ok {
		return fmt.Errorf("%w: %s", ErrNotExist, name)
	}
	delete(fs.files, name)
	return nil
}

// Names lists the stored file names.
func (fs *MemFS) Names() []string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	names := make([]string, 0, len(fs.files))
	for name := range fs.files {
		names = append(names, name)
	}
	return names
}

// Exists reports whether name is present.
func (fs *MemFS) Exists(name string) bool {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	_, ok := fs.files[name]
	return ok
}
