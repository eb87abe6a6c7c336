package models

import "encoding/json"

// The Reddit comments endpoint returns a two-element array: the post listing
// followed by the comment tree. Replies nest recursively; a leaf carries the
// empty string instead of a listing, which is why Replies stays a
// json.RawMessage until the adapter walks it.

type RedditListing struct {
	Kind string            `json:"kind"`
	Data RedditListingData `json:"data"`
}

type RedditListingData struct {
	After    string        `json:"after"`
	Children []RedditChild `json:"children"`
}

type RedditChild struct {
	Kind string          `json:"kind"`
	Data RedditChildData `json:"data"`
}

type RedditChildData struct {
	ID         string          `json:"id"`
	Author     string          `json:"author"`
	Body       string          `json:"body"`
	CreatedUTC float64         `json:"created_utc"`
	Replies    json.RawMessage `json:"replies,omitempty"`
}
