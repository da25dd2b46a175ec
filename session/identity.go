// Package session resolves the per-installation session identifier that
// groups this client's questions for the answering service.
package session

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"lawchat/storage"
)

// SlotKey is the local storage slot holding the identifier
const SlotKey = "lawchat_session_id"

const idPrefix = "session_"

// NewSessionID returns a fresh identifier. It only has to be unique per
// installation; it is not an authentication token.
func NewSessionID() string {
	return idPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// GetOrCreateSessionID returns the stored identifier, generating and storing
// one first if the slot is empty.
func GetOrCreateSessionID(store storage.KeyValueStore) (string, error) {
	id, ok, err := store.GetItem(SlotKey)
	if err != nil {
		return "", fmt.Errorf("failed to read session id: %w", err)
	}
	if ok && strings.TrimSpace(id) != "" {
		return strings.TrimSpace(id), nil
	}

	id = NewSessionID()
	if err := store.SetItem(SlotKey, id); err != nil {
		return "", fmt.Errorf("failed to store session id: %w", err)
	}
	return id, nil
}

// Reset forgets the stored identifier so the next GetOrCreateSessionID mints a new one
func Reset(store storage.KeyValueStore) error {
	if err := store.RemoveItem(SlotKey); err != nil {
		return fmt.Errorf("failed to reset session id: %w", err)
	}
	return nil
}

// Short returns a display form of the identifier for status lines
func Short(id string) string {
	s := strings.TrimPrefix(id, idPrefix)
	if len(s) > 8 {
		s = s[:8]
	}
	return s
}
