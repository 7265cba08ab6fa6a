package models

// Card is a question/answer pair. A card is owned by exactly one deck and is
// never referenced on its own.
type Card struct {
	Q string `json:"q"`
	A string `json:"a"`
}

// Deck is a named, ordered collection of flashcards. Decks are written once at
// creation time and are read-only afterwards except for deletion; there is no
// in-place card editing.
type Deck struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Topic      string  `json:"topic"`
	Difficulty string  `json:"difficulty"`
	Cards      []Card  `json:"cards"`
	CreatedAt  float64 `json:"created_at"` // seconds since epoch
}

type GenerateDeckRequest struct {
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty"`
	NumCards   int    `json:"num_cards"`
}
