// Package study holds the pure in-memory study state: the card cursor used in
// study mode and the streak arithmetic. Nothing here does I/O; persistence is
// the caller's job.
package study

// Session is the ephemeral cursor over a deck's cards. Selecting a deck
// creates a fresh session (index 0, answer hidden, nothing mastered) and
// leaving study mode discards it; a session is never persisted.
//
// Mastered membership is keyed by card index, not by a stable card identity.
// Decks are never edited in place, so indices are stable for the lifetime of
// a session; this is a known limitation, not a bug.
type Session struct {
	DeckID   string
	Index    int
	Revealed bool

	total    int
	mastered map[int]struct{}
}

// NewSession starts studying the given deck from the first card.
func NewSession(deckID string, totalCards int) *Session {
	return &Session{
		DeckID:   deckID,
		total:    totalCards,
		mastered: make(map[int]struct{}),
	}
}

// ToggleReveal flips whether the current card's answer is showing.
func (s *Session) ToggleReveal() {
	s.Revealed = !s.Revealed
}

// Advance moves to the next card, wrapping past the last card back to the
// first. The answer is always hidden after a move.
func (s *Session) Advance() {
	if s.total <= 0 {
		return
	}
	s.Index = (s.Index + 1) % s.total
	s.Revealed = false
}

// Retreat moves to the previous card, wrapping from the first card to the
// last. The answer is always hidden after a move.
func (s *Session) Retreat() {
	if s.total <= 0 {
		return
	}
	s.Index = (s.Index - 1 + s.total) % s.total
	s.Revealed = false
}

// MarkMastered records the current card as mastered and advances.
func (s *Session) MarkMastered() {
	s.mastered[s.Index] = struct{}{}
	s.Revealed = false
	s.Advance()
}

// IsMastered reports whether the card at index i has been mastered in this
// session.
func (s *Session) IsMastered(i int) bool {
	_, ok := s.mastered[i]
	return ok
}

// MasteredCount returns how many distinct cards have been mastered.
func (s *Session) MasteredCount() int {
	return len(s.mastered)
}

// Total returns the deck size the session was created with.
func (s *Session) Total() int {
	return s.total
}
