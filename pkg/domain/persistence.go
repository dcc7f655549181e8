package domain

// SessionStore is the key-value persistence substrate every stage reads and
// writes through. Values are JSON payloads; a structurally incompatible
// payload is treated as absent by callers, never as a fatal error.
//
// Implementations are single-writer: the engine assumes one logical actor and
// always re-reads on stage entry rather than trusting in-memory state.
type SessionStore interface {
	// Get returns the payload stored under key, or false when absent.
	Get(key string) ([]byte, bool)
	// Set stores payload under key, replacing any prior value.
	Set(key string, payload []byte) error
	// Remove deletes the key. Removing an absent key is not an error.
	Remove(key string) error
	// Clear removes every key. Used once, by the explicit full reset.
	Clear() error
	// Keys lists the currently populated keys in unspecified order.
	Keys() []string
}
