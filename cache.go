package filechat

// CacheKey names an entry in the persisted identifier cache.
type CacheKey string

// CacheKey constants. The string values match the keys of existing
// config.json files.
const (
	KeyIndexID        CacheKey = "vectorStoreId"
	KeyAssistantID    CacheKey = "assistantId"
	KeyThreadID       CacheKey = "threadId"
	KeyFilesProcessed CacheKey = "fileProcessed"
)

// Cache is a flat key/value store that mirrors every mutation to persistent
// storage. It is owned by a single flow of control and is not safe for
// concurrent use.
type Cache interface {
	// Load reads the backing store. A missing or malformed store yields an
	// empty mapping, not an error.
	Load() error

	// String returns the string stored under key. Returns false if the key
	// is absent, null, or not a string.
	String(key CacheKey) (string, bool)

	// Bool returns the boolean stored under key, false if absent.
	Bool(key CacheKey) bool

	// Set stores value under key and persists the whole mapping. A nil value
	// is stored as null.
	Set(key CacheKey, value any) error

	// Clear empties the mapping and persists the empty mapping.
	Clear() error

	// Entries returns a copy of the mapping.
	Entries() map[string]any
}

// Entries is the in-memory mapping shared by Cache implementations.
type Entries map[string]any

// String returns the string stored under key.
func (e Entries) String(key CacheKey) (string, bool) {
	s, ok := e[string(key)].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// Bool returns the boolean stored under key, false if absent.
func (e Entries) Bool(key CacheKey) bool {
	b, _ := e[string(key)].(bool)
	return b
}

// Clone returns a shallow copy of the mapping.
func (e Entries) Clone() map[string]any {
	out := make(map[string]any, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}
