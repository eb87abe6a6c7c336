package clients

import (
	"errors"
	"time"
)

const (
	MAX_RETRIES     = 5
	INITIAL_BACKOFF = 1 * time.Second
	MAX_BACKOFF     = 32 * time.Second
	USER_AGENT      = "newslens-client/1.0 (+https://github.com/newslens/newslens)"

	// Per-fetch caps shared by the article and comment adapters.
	MAX_ARTICLES_PER_FETCH = 10
	MAX_COMMENTS_PER_FETCH = 100
)

// Sentinel errors the HTTP layer maps onto status codes. Wrapped with
// context by each client, matched with errors.Is.
var (
	ErrNotFound      = errors.New("target not found")
	ErrAuthorization = errors.New("authorization failed")
)
