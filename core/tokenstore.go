package core

// TokenStore persists the single durable credential: the access token,
// keyed by a fixed name. It is the localStorage analog of the web client.
//
// Read returns an empty string (and no error) when no token is stored.
type TokenStore interface {
	Read() (string, error)
	Write(token string) error
	Clear() error
}
