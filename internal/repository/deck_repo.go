package repository

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/techwithgen-io/beginner-ai-projects/internal/models"
	"github.com/techwithgen-io/beginner-ai-projects/internal/storage"
)

const decksFile = "decks.json"

// DeckRepo persists the full flashcard deck collection as one JSON document
// keyed by deck id. There is no in-memory cache: every call reloads the
// collection from disk, so independent presentation-layer actions never see
// stale state. O(collection) I/O per call is fine at single-user scale.
type DeckRepo struct {
	dir string
}

func NewDeckRepo(memoryDir string) *DeckRepo {
	return &DeckRepo{dir: memoryDir}
}

func (r *DeckRepo) path() string {
	return filepath.Join(r.dir, decksFile)
}

// NewDeckID builds a deck id from a millisecond timestamp.
func NewDeckID(now time.Time) string {
	return fmt.Sprintf("deck_%d", now.UnixMilli())
}

// Load reads the deck collection, coercing every entry into a well-formed
// Deck. Malformed sub-fields are defaulted or dropped, never propagated:
// load always succeeds and returns a usable map.
func (r *DeckRepo) Load() map[string]models.Deck {
	decks := make(map[string]models.Deck)

	var raw map[string]json.RawMessage
	if !storage.ReadJSON(r.path(), &raw) {
		return decks
	}

	for id, entry := range raw {
		var fields map[string]interface{}
		if json.Unmarshal(entry, &fields) != nil || fields == nil {
			continue
		}
		decks[id] = normalizeDeck(id, fields)
	}

	return decks
}

// ListNewestFirst returns all decks sorted by creation time descending.
func (r *DeckRepo) ListNewestFirst() []models.Deck {
	decks := r.Load()
	out := make([]models.Deck, 0, len(decks))
	for _, d := range decks {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt > out[j].CreatedAt
	})
	return out
}

// Get returns a single deck by id.
func (r *DeckRepo) Get(id string) (models.Deck, bool) {
	deck, ok := r.Load()[id]
	return deck, ok
}

// Upsert inserts or replaces the entry keyed by deck.ID and writes the full
// collection back. Re-upserting an unchanged deck is a semantic no-op.
func (r *DeckRepo) Upsert(deck models.Deck) error {
	decks := r.Load()
	decks[deck.ID] = deck
	return r.save(decks)
}

// Delete removes the deck with the given id and reports whether anything was
// removed. Deleting an unknown id is a no-op, not an error; the store is only
// rewritten when a removal actually happened.
func (r *DeckRepo) Delete(id string) (bool, error) {
	decks := r.Load()
	if _, ok := decks[id]; !ok {
		return false, nil
	}
	delete(decks, id)
	if err := r.save(decks); err != nil {
		return false, err
	}
	return true, nil
}

func (r *DeckRepo) save(decks map[string]models.Deck) error {
	return storage.WriteJSON(r.path(), decks)
}

func normalizeDeck(id string, fields map[string]interface{}) models.Deck {
	return models.Deck{
		ID:         asString(fields["id"], id),
		Name:       asString(fields["name"], "Untitled Deck"),
		Topic:      asString(fields["topic"], ""),
		Difficulty: asString(fields["difficulty"], "Beginner"),
		Cards:      normalizeCards(fields["cards"]),
		CreatedAt:  asFloat(fields["created_at"], float64(time.Now().UnixNano())/1e9),
	}
}

// normalizeCards keeps only well-formed cards: entries must be objects, q/a
// are trimmed, and a card with both fields empty is dropped.
func normalizeCards(raw interface{}) []models.Card {
	out := make([]models.Card, 0)

	list, ok := raw.([]interface{})
	if !ok {
		return out
	}

	for _, item := range list {
		fields, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		q := strings.TrimSpace(asString(fields["q"], ""))
		a := strings.TrimSpace(asString(fields["a"], ""))
		if q != "" || a != "" {
			out = append(out, models.Card{Q: q, A: a})
		}
	}

	return out
}

// asString coerces scalars the way the store always has: numbers and booleans
// become their text form, anything else falls back to the default.
func asString(v interface{}, def string) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	}
	return def
}

func asFloat(v interface{}, def float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f
		}
	}
	return def
}
