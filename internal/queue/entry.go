package queue

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Entry is one pending subscriber notification as enqueued by the
// publishing pipeline. Entries are immutable once enqueued; all entries
// produced for a single publishing event share the same ArticleData.
type Entry struct {
	Email       string  `json:"email"`
	FullName    string  `json:"fullName"`
	ArticleData Article `json:"articleData"`
}

// Article describes the published article a notification announces.
type Article struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Slug    string `json:"slug"`
}

// DecodeEntry parses a raw queue element. It fails on malformed JSON
// and on entries missing the article fields the renderer requires.
func DecodeEntry(raw string) (*Entry, error) {
	var e Entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return nil, fmt.Errorf("decode queue entry: %w", err)
	}
	if e.ArticleData.Title == "" {
		return nil, fmt.Errorf("queue entry %q: missing article title", e.Email)
	}
	if e.ArticleData.Slug == "" {
		return nil, fmt.Errorf("queue entry %q: missing article slug", e.Email)
	}
	return &e, nil
}

// ValidAddress reports whether the entry's address can be handed to the
// transport. The check is deliberately shallow: anything without an @
// is rejected locally, everything else is the provider's problem.
func (e *Entry) ValidAddress() bool {
	return strings.Contains(e.Email, "@")
}
