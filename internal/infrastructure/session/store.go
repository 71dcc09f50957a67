// Package session keeps live conversation state in memory. Transcripts are
// never persisted; an evicted or lost session simply requires starting over,
// matching the lifetime of an in-browser conversation.
package session

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/fashio-ai/styling-api/internal/core/ports"
)

const defaultCapacity = 512

// RatingStore holds rating sessions in an LRU cache.
type RatingStore struct {
	cache *lru.Cache[string, *ports.RatingSession]
}

func NewRatingStore(capacity int) *RatingStore {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	cache, _ := lru.New[string, *ports.RatingSession](capacity)
	return &RatingStore{cache: cache}
}

func (s *RatingStore) Put(session *ports.RatingSession) {
	s.cache.Add(session.ID, session)
}

func (s *RatingStore) Get(id string) (*ports.RatingSession, bool) {
	return s.cache.Get(id)
}

// StylistStore holds chat sessions in an LRU cache.
type StylistStore struct {
	cache *lru.Cache[string, *ports.StylistSession]
}

func NewStylistStore(capacity int) *StylistStore {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	cache, _ := lru.New[string, *ports.StylistSession](capacity)
	return &StylistStore{cache: cache}
}

func (s *StylistStore) Put(session *ports.StylistSession) {
	s.cache.Add(session.ID, session)
}

func (s *StylistStore) Get(id string) (*ports.StylistSession, bool) {
	return s.cache.Get(id)
}
