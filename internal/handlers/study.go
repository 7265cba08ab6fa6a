package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/techwithgen-io/beginner-ai-projects/internal/models"
	"github.com/techwithgen-io/beginner-ai-projects/internal/repository"
	"github.com/techwithgen-io/beginner-ai-projects/internal/study"
)

// StudyHandler drives the single study-mode cursor. The session state lives
// here, in one explicit struct guarded by a mutex, and every mutation goes
// through a handler method; the deck is snapshotted at select time, so a
// concurrent deck deletion cannot pull cards out from under the cursor.
type StudyHandler struct {
	decks *repository.DeckRepo
	stats *repository.StatsRepo

	mu      sync.Mutex
	deck    models.Deck
	session *study.Session
}

func NewStudyHandler(decks *repository.DeckRepo, stats *repository.StatsRepo) *StudyHandler {
	return &StudyHandler{decks: decks, stats: stats}
}

type studyView struct {
	DeckID        string `json:"deck_id"`
	Topic         string `json:"topic"`
	Difficulty    string `json:"difficulty"`
	Index         int    `json:"index"`
	Total         int    `json:"total"`
	Revealed      bool   `json:"revealed"`
	Question      string `json:"question"`
	Answer        string `json:"answer,omitempty"`
	Mastered      bool   `json:"mastered"`
	MasteredCount int    `json:"mastered_count"`
}

func (h *StudyHandler) view() studyView {
	s := h.session
	card := h.deck.Cards[s.Index]

	v := studyView{
		DeckID:        s.DeckID,
		Topic:         h.deck.Topic,
		Difficulty:    h.deck.Difficulty,
		Index:         s.Index,
		Total:         s.Total(),
		Revealed:      s.Revealed,
		Question:      card.Q,
		Mastered:      s.IsMastered(s.Index),
		MasteredCount: s.MasteredCount(),
	}
	if s.Revealed {
		v.Answer = card.A
	}
	return v
}

// Select starts studying a deck: fresh cursor at the first card, answer
// hidden, nothing mastered. Selecting counts as a study action for the
// streak.
func (h *StudyHandler) Select(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DeckID string `json:"deck_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	deck, ok := h.decks.Get(req.DeckID)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Deck not found", r))
		return
	}
	if len(deck.Cards) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "This deck has no cards", r))
		return
	}

	h.recordStreak(time.Now())

	h.mu.Lock()
	defer h.mu.Unlock()
	h.deck = deck
	h.session = study.NewSession(deck.ID, len(deck.Cards))

	writeJSON(w, http.StatusOK, h.view())
}

// recordStreak persists the streak update for today. Stats are a best-effort
// local cache: a failed write is logged, never surfaced to the study flow.
func (h *StudyHandler) recordStreak(now time.Time) {
	stats := h.stats.Load()
	today := now.Format(study.DateLayout)
	if stats.LastStudyDate != nil && *stats.LastStudyDate == today {
		return
	}
	if err := h.stats.Save(study.RecordStudy(stats, now)); err != nil {
		log.Printf("failed to persist streak update: %v", err)
	}
}

func (h *StudyHandler) Current(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(*study.Session) {})
}

func (h *StudyHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(s *study.Session) { s.ToggleReveal() })
}

func (h *StudyHandler) Next(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(s *study.Session) { s.Advance() })
}

func (h *StudyHandler) Prev(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(s *study.Session) { s.Retreat() })
}

func (h *StudyHandler) Master(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(s *study.Session) { s.MarkMastered() })
}

// Exit leaves study mode and discards the cursor.
func (h *StudyHandler) Exit(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.session = nil
	h.deck = models.Deck{}
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"message": "Study session ended"})
}

func (h *StudyHandler) withSession(w http.ResponseWriter, r *http.Request, mutate func(*study.Session)) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.session == nil {
		writeJSON(w, http.StatusConflict, errorResp("CONFLICT", "No active study session. Select a deck first.", r))
		return
	}

	mutate(h.session)
	writeJSON(w, http.StatusOK, h.view())
}

// Stats reports the current study streak.
func (h *StudyHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.stats.Load())
}
