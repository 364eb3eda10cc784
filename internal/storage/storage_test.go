package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

func TestStore_GetPut(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "sub", "state.db"))
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	_, err = s.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put("k", []byte(`{"a":1}`)))
	require.NoError(t, s.Put("k", []byte(`{"a":2}`)))

	got, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, string(got))
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, "file:memdb?mode=memory", sqliteDSN("file:memdb?mode=memory"))
	dsn := sqliteDSN("/var/data/x.db")
	assert.Contains(t, dsn, "file:///var/data/x.db")
	assert.Contains(t, dsn, "mode=rwc")
}

func TestFileBackend_RoundTrip(t *testing.T) {
	fsys := afero.NewMemMapFs()
	b, err := NewFileBackend(fsys, "/data")
	require.NoError(t, err)

	_, err = b.Get("app:v1")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, b.Put("app:v1", []byte("hello")))
	got, err := b.Get("app:v1")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))

	exists, err := afero.Exists(fsys, "/data/app_v1.json.tmp")
	require.NoError(t, err)
	assert.False(t, exists, "temp file should be renamed away")
}

func TestPersisted_DefaultWhenMissing(t *testing.T) {
	def := record{Name: "default", Items: []string{}}
	p := NewPersisted(NewMemoryBackend(), "k", def)
	assert.Equal(t, def, p.Get())
}

func TestPersisted_DefaultWhenMalformed(t *testing.T) {
	b := NewMemoryBackend()
	require.NoError(t, b.Put("k", []byte("{not json")))

	def := record{Name: "default"}
	p := NewPersisted(b, "k", def)
	assert.Equal(t, def, p.Get())
}

func TestPersisted_DefaultWhenInvalid(t *testing.T) {
	b := NewMemoryBackend()
	require.NoError(t, b.Put("k", []byte(`{"name":""}`)))

	def := record{Name: "default"}
	p := NewPersisted(b, "k", def, WithValidator(func(r record) error {
		if r.Name == "" {
			return errors.New("name required")
		}
		return nil
	}))
	assert.Equal(t, def, p.Get())
}

func TestPersisted_WriteThroughAndReload(t *testing.T) {
	b := NewMemoryBackend()
	p := NewPersisted(b, "k", record{})
	want := record{Name: "saved", Items: []string{"a", "b"}}
	require.NoError(t, p.Set(want))

	reloaded := NewPersisted(b, "k", record{})
	assert.Equal(t, want, reloaded.Get())
}

type failingBackend struct{ MemoryBackend }

func (failingBackend) Put(string, []byte) error { return errors.New("quota exceeded") }

func TestPersisted_WriteFailureKeepsMemory(t *testing.T) {
	p := NewPersisted[record](&failingBackend{MemoryBackend: *NewMemoryBackend()}, "k", record{})
	err := p.Set(record{Name: "kept"})
	assert.Error(t, err)
	assert.Equal(t, "kept", p.Get().Name)
}

type brokenBackend struct{ MemoryBackend }

func (brokenBackend) Get(string) ([]byte, error) { return nil, errors.New("disk gone") }

func TestPersisted_DefaultWhenUnreadable(t *testing.T) {
	p := NewPersisted[record](&brokenBackend{}, "k", record{Name: "fallback"})
	assert.Equal(t, "fallback", p.Get().Name)
}
