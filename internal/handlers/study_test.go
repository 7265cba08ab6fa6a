package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/techwithgen-io/beginner-ai-projects/internal/models"
	"github.com/techwithgen-io/beginner-ai-projects/internal/repository"
)

func newStudyHandler(t *testing.T) (*StudyHandler, *repository.DeckRepo, *repository.StatsRepo) {
	t.Helper()
	dir := t.TempDir()
	decks := repository.NewDeckRepo(dir)
	stats := repository.NewStatsRepo(dir)
	return NewStudyHandler(decks, stats), decks, stats
}

func seedDeck(t *testing.T, repo *repository.DeckRepo, id string, cards int) {
	t.Helper()
	deck := models.Deck{ID: id, Name: id, Topic: "t", Difficulty: "Beginner", CreatedAt: 1}
	for i := 0; i < cards; i++ {
		deck.Cards = append(deck.Cards, models.Card{Q: "q", A: "a"})
	}
	if err := repo.Upsert(deck); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
}

func selectDeck(t *testing.T, h *StudyHandler, id string) studyView {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"deck_id": id})
	rr := httptest.NewRecorder()
	h.Select(rr, httptest.NewRequest(http.MethodPost, "/api/v1/study/select", bytes.NewReader(body)))
	if rr.Code != http.StatusOK {
		t.Fatalf("select failed with %d: %s", rr.Code, rr.Body.String())
	}
	return decodeView(t, rr)
}

func decodeView(t *testing.T, rr *httptest.ResponseRecorder) studyView {
	t.Helper()
	var v studyView
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode study view: %v", err)
	}
	return v
}

func TestStudyHandler_SelectResetsCursor(t *testing.T) {
	h, decks, _ := newStudyHandler(t)
	seedDeck(t, decks, "deck_a", 3)
	seedDeck(t, decks, "deck_b", 2)

	v := selectDeck(t, h, "deck_a")
	if v.Index != 0 || v.Revealed || v.MasteredCount != 0 || v.Total != 3 {
		t.Errorf("fresh session expected, got %+v", v)
	}

	// Move around, then switch decks: the cursor must reset.
	rr := httptest.NewRecorder()
	h.Next(rr, httptest.NewRequest(http.MethodPost, "/api/v1/study/next", nil))
	if decodeView(t, rr).Index != 1 {
		t.Fatal("expected index 1 after next")
	}

	v = selectDeck(t, h, "deck_b")
	if v.Index != 0 || v.Total != 2 || v.MasteredCount != 0 {
		t.Errorf("selecting another deck must reset the session, got %+v", v)
	}
}

func TestStudyHandler_SelectUnknownOrEmptyDeck(t *testing.T) {
	h, decks, _ := newStudyHandler(t)
	seedDeck(t, decks, "deck_empty", 0)

	body, _ := json.Marshal(map[string]string{"deck_id": "deck_missing"})
	rr := httptest.NewRecorder()
	h.Select(rr, httptest.NewRequest(http.MethodPost, "/api/v1/study/select", bytes.NewReader(body)))
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown deck, got %d", rr.Code)
	}

	body, _ = json.Marshal(map[string]string{"deck_id": "deck_empty"})
	rr = httptest.NewRecorder()
	h.Select(rr, httptest.NewRequest(http.MethodPost, "/api/v1/study/select", bytes.NewReader(body)))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty deck, got %d", rr.Code)
	}
}

func TestStudyHandler_WrapAroundNavigation(t *testing.T) {
	h, decks, _ := newStudyHandler(t)
	seedDeck(t, decks, "deck_a", 3)
	selectDeck(t, h, "deck_a")

	rr := httptest.NewRecorder()
	h.Prev(rr, httptest.NewRequest(http.MethodPost, "/api/v1/study/prev", nil))
	if v := decodeView(t, rr); v.Index != 2 {
		t.Errorf("retreat from first card should wrap to last, got %d", v.Index)
	}

	rr = httptest.NewRecorder()
	h.Next(rr, httptest.NewRequest(http.MethodPost, "/api/v1/study/next", nil))
	if v := decodeView(t, rr); v.Index != 0 {
		t.Errorf("advance from last card should wrap to first, got %d", v.Index)
	}
}

func TestStudyHandler_RevealShowsAnswerAndMovingHidesIt(t *testing.T) {
	h, decks, _ := newStudyHandler(t)
	seedDeck(t, decks, "deck_a", 2)
	selectDeck(t, h, "deck_a")

	rr := httptest.NewRecorder()
	h.Reveal(rr, httptest.NewRequest(http.MethodPost, "/api/v1/study/reveal", nil))
	v := decodeView(t, rr)
	if !v.Revealed || v.Answer == "" {
		t.Errorf("reveal should expose the answer, got %+v", v)
	}

	rr = httptest.NewRecorder()
	h.Next(rr, httptest.NewRequest(http.MethodPost, "/api/v1/study/next", nil))
	v = decodeView(t, rr)
	if v.Revealed || v.Answer != "" {
		t.Errorf("moving must hide the answer, got %+v", v)
	}
}

func TestStudyHandler_MasterAdvancesAndCounts(t *testing.T) {
	h, decks, _ := newStudyHandler(t)
	seedDeck(t, decks, "deck_a", 2)
	selectDeck(t, h, "deck_a")

	rr := httptest.NewRecorder()
	h.Master(rr, httptest.NewRequest(http.MethodPost, "/api/v1/study/master", nil))
	v := decodeView(t, rr)

	if v.MasteredCount != 1 || v.Index != 1 || v.Revealed {
		t.Errorf("master should count, advance and hide, got %+v", v)
	}
}

func TestStudyHandler_NoSessionIsConflict(t *testing.T) {
	h, _, _ := newStudyHandler(t)

	rr := httptest.NewRecorder()
	h.Next(rr, httptest.NewRequest(http.MethodPost, "/api/v1/study/next", nil))
	if rr.Code != http.StatusConflict {
		t.Errorf("expected 409 without a session, got %d", rr.Code)
	}
}

func TestStudyHandler_ExitDiscardsSession(t *testing.T) {
	h, decks, _ := newStudyHandler(t)
	seedDeck(t, decks, "deck_a", 2)
	selectDeck(t, h, "deck_a")

	rr := httptest.NewRecorder()
	h.Exit(rr, httptest.NewRequest(http.MethodPost, "/api/v1/study/exit", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("exit failed: %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.Current(rr, httptest.NewRequest(http.MethodGet, "/api/v1/study/", nil))
	if rr.Code != http.StatusConflict {
		t.Errorf("expected 409 after exit, got %d", rr.Code)
	}
}

func TestStudyHandler_SelectRecordsStreak(t *testing.T) {
	h, decks, stats := newStudyHandler(t)
	seedDeck(t, decks, "deck_a", 1)

	selectDeck(t, h, "deck_a")

	got := stats.Load()
	if got.StreakDays != 1 || got.LastStudyDate == nil {
		t.Errorf("selecting a deck should record a study day, got %+v", got)
	}

	// Same-day reselect leaves the streak alone.
	selectDeck(t, h, "deck_a")
	if got := stats.Load(); got.StreakDays != 1 {
		t.Errorf("same-day study must not grow the streak, got %d", got.StreakDays)
	}
}
