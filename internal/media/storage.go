package media

import (
	"context"
	"net/http"
	"path"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Dir is the key prefix every post image is stored under.
const Dir = "posts/"

// Storage keeps uploaded post images.
type Storage interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// ObjectKey turns an uploaded file name into a fresh key for Post.Image.
// Every call yields a new key, so uploads never replace each other.
func ObjectKey(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "upload"
	}
	return Dir + uuid.NewString() + "_" + name
}

// DetectImage sniffs data and reports its content type when it is an image.
func DetectImage(data []byte) (string, bool) {
	ct := http.DetectContentType(data)
	return ct, strings.HasPrefix(ct, "image/")
}

type Object struct {
	ContentType string
	Data        []byte
}

// MemoryStorage is used when no object store is configured, and in tests.
type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[string]Object
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{objects: map[string]Object{}}
}

func (m *MemoryStorage) Put(_ context.Context, key, contentType string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = Object{ContentType: contentType, Data: append([]byte(nil), data...)}
	return nil
}

func (m *MemoryStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *MemoryStorage) Get(key string) (Object, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.objects[key]
	return o, ok
}
