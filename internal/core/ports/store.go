package ports

// HashStore is a persistent map from cache key to content hash.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type HashStore interface {
	// GetHash returns the stored hash for key.
	// A missing key is reported as ok == false with a nil error.
	GetHash(key string) (hash string, ok bool, err error)

	// PutHash records hash for key.
	PutHash(key, hash string) error

	// DeleteHash drops key. Unknown keys are ignored.
	DeleteHash(key string) error
}
