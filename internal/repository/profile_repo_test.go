package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/techwithgen-io/beginner-ai-projects/internal/models"
)

func TestProfileRepo_RoundTrip(t *testing.T) {
	repo := NewProfileRepo(t.TempDir())

	p := models.Profile{
		Name:            "Genesis",
		LearningGoal:    "AI agents",
		ExperienceLevel: "beginner",
		Style:           models.StyleExamplesHeavy,
		CreatedAt:       "2026-09-01T10:00:00",
		LastTopic:       "SQL joins",
		StuckPoints:     []string{"recursion"},
		Sessions:        []models.SessionRecap{{Date: "2026-09-01", Summary: "Covered joins."}},
	}
	if err := repo.Save(p); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got := repo.Load()
	if got.Name != p.Name || got.Style != p.Style || got.LastTopic != p.LastTopic {
		t.Errorf("profile fields lost in round trip: %+v", got)
	}
	if len(got.StuckPoints) != 1 || got.StuckPoints[0] != "recursion" {
		t.Errorf("stuck points lost: %+v", got.StuckPoints)
	}
	if len(got.Sessions) != 1 || got.Sessions[0].Date != "2026-09-01" {
		t.Errorf("sessions lost: %+v", got.Sessions)
	}
}

func TestProfileRepo_MissingFileIsEmptyProfile(t *testing.T) {
	repo := NewProfileRepo(t.TempDir())

	got := repo.Load()
	if got.Name != "" || got.Style != "" || len(got.StuckPoints) != 0 {
		t.Errorf("expected empty profile, got %+v", got)
	}
}

func TestProfileRepo_CorruptFileIsEmptyProfile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, profileFile), []byte("not json"), 0o644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	if got := NewProfileRepo(dir).Load(); got.Name != "" {
		t.Errorf("expected empty profile, got %+v", got)
	}
}

func TestProfileRepo_Forget(t *testing.T) {
	repo := NewProfileRepo(t.TempDir())

	if repo.Forget() {
		t.Error("forgetting a missing profile must report false")
	}

	if err := repo.Save(models.Profile{Name: "Genesis"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !repo.Forget() {
		t.Error("expected true when a profile was removed")
	}
	if got := repo.Load(); got.Name != "" {
		t.Errorf("profile should be gone after forget, got %+v", got)
	}
}

func TestStatsRepo_Defaults(t *testing.T) {
	repo := NewStatsRepo(t.TempDir())

	stats := repo.Load()
	if stats.StreakDays != 0 || stats.LastStudyDate != nil {
		t.Errorf("expected zero stats, got %+v", stats)
	}
}

func TestStatsRepo_RoundTrip(t *testing.T) {
	repo := NewStatsRepo(t.TempDir())

	date := "2026-09-01"
	if err := repo.Save(models.StudyStats{StreakDays: 4, LastStudyDate: &date}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got := repo.Load()
	if got.StreakDays != 4 {
		t.Errorf("expected streak 4, got %d", got.StreakDays)
	}
	if got.LastStudyDate == nil || *got.LastStudyDate != date {
		t.Errorf("last study date lost: %+v", got.LastStudyDate)
	}
}

func TestStatsRepo_ClampsNegativeStreak(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, statsFile), []byte(`{"streak_days":-3,"last_study_date":null}`), 0o644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	if got := NewStatsRepo(dir).Load(); got.StreakDays != 0 {
		t.Errorf("negative streak should clamp to 0, got %d", got.StreakDays)
	}
}
