package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"

	"github.com/skillsenselab/appkit/logger"
)

// File is a Storage provider persisting to a JSON document under the user's
// data directory. All operations write through synchronously; the store is
// meant for small per-app settings, not bulk data.
type File struct {
	path string
	log  *logger.Logger

	mu   sync.Mutex
	data map[string]string
}

// NewFile opens (or creates) the store for the given namespace, placing the
// backing file under the XDG data home.
func NewFile(namespace string) (*File, error) {
	if namespace == "" {
		return nil, fmt.Errorf("storage namespace is required")
	}
	path, err := xdg.DataFile(filepath.Join(namespace, "storage.json"))
	if err != nil {
		return nil, fmt.Errorf("resolving storage path: %w", err)
	}
	return NewFileAt(path)
}

// NewFileAt opens (or creates) the store at an explicit path.
func NewFileAt(path string) (*File, error) {
	f := &File{
		path: path,
		log:  logger.WithComponent("storage"),
		data: make(map[string]string),
	}
	if err := f.load(); err != nil {
		return nil, err
	}
	return f, nil
}

// Path returns the backing file location.
func (f *File) Path() string {
	return f.path
}

func (f *File) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok
}

func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return f.persist()
}

func (f *File) Remove(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.data[key]; !ok {
		return nil
	}
	delete(f.data, key)
	return f.persist()
}

func (f *File) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data = make(map[string]string)
	return f.persist()
}

func (f *File) Keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.data))
	for k := range f.data {
		keys = append(keys, k)
	}
	return keys
}

func (f *File) Dispose() {}

// load reads the backing file. A missing file starts an empty store.
func (f *File) load() error {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading storage file: %w", err)
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, &f.data); err != nil {
		// A corrupt store is recoverable: start fresh rather than brick the app.
		f.log.Warn("Storage file corrupt, starting empty", map[string]interface{}{
			"path":  f.path,
			"error": err.Error(),
		})
		f.data = make(map[string]string)
	}
	return nil
}

// persist writes the store atomically. Caller holds f.mu.
func (f *File) persist() error {
	raw, err := json.Marshal(f.data)
	if err != nil {
		return fmt.Errorf("encoding storage: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("creating storage dir: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("writing storage: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replacing storage: %w", err)
	}
	return nil
}
