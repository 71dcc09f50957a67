package session

import (
	"strconv"
	"testing"

	"github.com/fashio-ai/styling-api/internal/core/ports"
)

func TestRatingStore_PutGet(t *testing.T) {
	store := NewRatingStore(4)

	store.Put(&ports.RatingSession{ID: "r1", UserID: "u1"})

	got, ok := store.Get("r1")
	if !ok {
		t.Fatal("expected session to be present")
	}
	if got.UserID != "u1" {
		t.Errorf("user id wrong: %q", got.UserID)
	}

	if _, ok := store.Get("missing"); ok {
		t.Error("unknown id must report absence")
	}
}

func TestRatingStore_EvictsOldestAtCapacity(t *testing.T) {
	store := NewRatingStore(2)

	for i := 0; i < 3; i++ {
		store.Put(&ports.RatingSession{ID: "r" + strconv.Itoa(i)})
	}

	if _, ok := store.Get("r0"); ok {
		t.Error("oldest session must be evicted at capacity")
	}
	if _, ok := store.Get("r2"); !ok {
		t.Error("newest session must survive")
	}
}

func TestStylistStore_PutGet(t *testing.T) {
	store := NewStylistStore(0) // falls back to the default capacity

	store.Put(&ports.StylistSession{ID: "s1", UserID: "u1"})

	got, ok := store.Get("s1")
	if !ok {
		t.Fatal("expected session to be present")
	}
	if got.UserID != "u1" {
		t.Errorf("user id wrong: %q", got.UserID)
	}
}
