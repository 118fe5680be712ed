// storage/storage.go
package storage

import "io"

// BlobStore is the external file-storage collaborator: Put stores a blob and
// returns a URL reference, Delete removes the blob behind a reference.
type BlobStore interface {
	Put(name string, r io.Reader) (string, error)
	Delete(url string) error
}

var defaultStore BlobStore

// Default returns the process-wide blob store, a local-disk one unless
// SetDefault swapped it out.
func Default() BlobStore {
	if defaultStore == nil {
		defaultStore = NewLocalStore()
	}
	return defaultStore
}

func SetDefault(s BlobStore) {
	defaultStore = s
}
