package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// FileBackend stores each key as <dir>/<key>.json on an afero filesystem.
// Writes go to a temp file first and are renamed into place.
type FileBackend struct {
	fs  afero.Fs
	dir string
}

func NewFileBackend(fsys afero.Fs, dir string) (*FileBackend, error) {
	if dir == "" {
		return nil, errors.New("storage dir is empty")
	}
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir %s: %w", dir, err)
	}
	return &FileBackend{fs: fsys, dir: dir}, nil
}

func (b *FileBackend) path(key string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", ":", "_").Replace(key)
	return filepath.Join(b.dir, safe+".json")
}

func (b *FileBackend) Get(key string) ([]byte, error) {
	data, err := afero.ReadFile(b.fs, b.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}

func (b *FileBackend) Put(key string, value []byte) error {
	target := b.path(key)
	tmp := target + ".tmp"
	if err := afero.WriteFile(b.fs, tmp, value, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := b.fs.Rename(tmp, target); err != nil {
		_ = b.fs.Remove(tmp)
		return fmt.Errorf("rename %s: %w", target, err)
	}
	return nil
}

func (b *FileBackend) Close() error { return nil }

// MemoryBackend keeps records in process memory only.
type MemoryBackend struct {
	data map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: map[string][]byte{}}
}

func (b *MemoryBackend) Get(key string) ([]byte, error) {
	v, ok := b.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (b *MemoryBackend) Put(key string, value []byte) error {
	b.data[key] = append([]byte(nil), value...)
	return nil
}

func (b *MemoryBackend) Close() error { return nil }
