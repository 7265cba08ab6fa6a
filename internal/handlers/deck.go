package handlers

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/techwithgen-io/beginner-ai-projects/internal/models"
	"github.com/techwithgen-io/beginner-ai-projects/internal/repository"
	"github.com/techwithgen-io/beginner-ai-projects/internal/services"
)

// QuickTopics are one-tap suggestions surfaced on the create page.
var QuickTopics = []string{
	"SQL joins",
	"Python lists",
	"Python dictionaries",
	"OOP basics",
	"Git basics",
	"AI agents (ReAct)",
	"LangChain basics",
}

type DeckHandler struct {
	decks     *repository.DeckRepo
	generator *services.FlashcardGenerator
}

func NewDeckHandler(decks *repository.DeckRepo, generator *services.FlashcardGenerator) *DeckHandler {
	return &DeckHandler{decks: decks, generator: generator}
}

// Generate creates a deck from a topic and saves it immediately. Generation is
// a synchronous blocking round trip; with no credential or a failing model it
// degrades to placeholder cards, so this endpoint always produces a deck.
func (h *DeckHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateDeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "topic is required", r))
		return
	}

	difficulty := strings.TrimSpace(req.Difficulty)
	if difficulty == "" {
		difficulty = "Intermediate"
	}
	numCards := req.NumCards
	if numCards == 0 {
		numCards = 5
	}
	if numCards < 0 {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "num_cards must be greater than 0", r))
		return
	}

	cards := h.generator.Generate(r.Context(), topic, difficulty, numCards)

	now := time.Now()
	deck := models.Deck{
		ID:         repository.NewDeckID(now),
		Name:       deckName(topic),
		Topic:      topic,
		Difficulty: difficulty,
		Cards:      cards,
		CreatedAt:  float64(now.UnixNano()) / 1e9,
	}

	if err := h.decks.Upsert(deck); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to save deck", r))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"deck": deck})
}

func (h *DeckHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"decks": h.decks.ListNewestFirst()})
}

func (h *DeckHandler) Get(w http.ResponseWriter, r *http.Request) {
	deck, ok := h.decks.Get(chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Deck not found", r))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"deck": deck})
}

func (h *DeckHandler) Delete(w http.ResponseWriter, r *http.Request) {
	removed, err := h.decks.Delete(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to delete deck", r))
		return
	}
	if !removed {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Deck not found", r))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Deck deleted"})
}

// ExportCSV streams the deck as two-column question/answer rows with no
// header, the layout Anki and friends import directly.
func (h *DeckHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	deck, ok := h.decks.Get(chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Deck not found", r))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", deck.Name+".csv"))

	writer := csv.NewWriter(w)
	for _, card := range deck.Cards {
		writer.Write([]string{card.Q, card.A})
	}
	writer.Flush()
}

func (h *DeckHandler) Topics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"topics": QuickTopics})
}

func deckName(topic string) string {
	if t := strings.TrimSpace(topic); t != "" {
		return t
	}
	return "Flashcards"
}

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(code, message string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			RequestID: r.Header.Get("X-Request-ID"),
		},
	}
}
