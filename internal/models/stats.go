package models

// StudyStats is the single persisted study-streak record. LastStudyDate is nil
// until the first study action is recorded; when set it always holds the most
// recent study date in YYYY-MM-DD form, and StreakDays counts consecutive
// calendar days ending on that date.
type StudyStats struct {
	StreakDays    int     `json:"streak_days"`
	LastStudyDate *string `json:"last_study_date"`
}
