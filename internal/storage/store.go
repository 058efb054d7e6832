// Package storage persists the client's durable local state.
//
// Exactly one item is durable: the bearer credential, stored under a
// well-known key. The store plays the role the browser client gave to
// localStorage — read once at startup, written only by explicit login
// and logout, never read-modified-written concurrently.
package storage

// CredentialKey is the well-known key the bearer credential lives under.
const CredentialKey = "auth_token"

// Store is the persisted local state of the client.
type Store interface {
	// Credential returns the stored bearer credential, and whether one exists.
	Credential() (string, bool, error)
	// SetCredential stores the bearer credential, replacing any previous value.
	SetCredential(credential string) error
	// ClearCredential removes the stored credential. Clearing an absent
	// credential is not an error.
	ClearCredential() error
	// Close releases the underlying resources.
	Close() error
}
