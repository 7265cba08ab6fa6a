package models

// Canonical learning-style tags. Free-text user input is mapped onto these via
// the alias table in services.NormalizeStyle.
const (
	StyleSimpleShort   = "simple_short"
	StyleExamplesHeavy = "examples_heavy"
	StyleStepByStep    = "step_by_step"
	StyleQuizMe        = "quiz_me"
)

// SessionRecap is one entry in the append-only study-recap log.
type SessionRecap struct {
	Date    string `json:"date"`
	Summary string `json:"summary"`
}

// Profile is the single per-installation user-memory record for the study
// buddy. It is considered complete only when Name, LearningGoal,
// ExperienceLevel and Style are all non-blank; an incomplete profile triggers
// onboarding before any chat proceeds.
type Profile struct {
	Name            string         `json:"name"`
	LearningGoal    string         `json:"learning_goal"`
	ExperienceLevel string         `json:"experience_level"`
	Style           string         `json:"style"`
	CreatedAt       string         `json:"created_at"`
	LastTopic       string         `json:"last_topic"`
	StuckPoints     []string       `json:"stuck_points"`
	Sessions        []SessionRecap `json:"sessions"`
}
