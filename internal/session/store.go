// Package session holds the bearer token the API client attaches to requests.
//
// A Store is the only mutable state shared between concurrent requests: it is
// read on every send and cleared when the backend answers 401.
package session

// Store persists the current access token.
type Store interface {
	// Token returns the stored token, or "" when there is none.
	Token() (string, error)

	// SetToken replaces the stored token.
	SetToken(token string) error

	// Clear removes the stored token. Clearing an empty store is not an error.
	Clear() error

	// Name identifies the store in logs.
	Name() string
}

// storedSession is the on-disk / in-KV representation of a session.
type storedSession struct {
	AccessToken string `json:"access_token"`
	SavedAt     int64  `json:"saved_at,omitempty"`
}
