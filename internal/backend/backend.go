package backend

// Backend bundles everything a storage backend must provide.
type Backend interface {
	TransactionRepository
	CredentialRepository
}

// CleanupFunc releases resources held by a backend.
type CleanupFunc func() error

// Result contains the backend instance and an optional cleanup function.
type Result struct {
	Backend Backend
	Cleanup CleanupFunc
}

// Config holds configuration for backend creation.
type Config struct {
	Type Type

	// localstore specific
	DataDir string

	// sqlite specific
	SQLiteDBPath string
}

// Type selects the storage backend.
type Type string

const (
	// LocalStore keeps each record set in a JSON file, mirroring the
	// key-per-blob layout the original browser version used.
	LocalStore Type = "localstore"
	// SQLite keeps everything in a single database file.
	SQLite Type = "sqlite"
)

// String implements fmt.Stringer.
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case LocalStore, SQLite:
		return true
	default:
		return false
	}
}
