package study

import (
	"time"

	"github.com/techwithgen-io/beginner-ai-projects/internal/models"
)

// DateLayout is the wire form of study dates (ISO calendar date).
const DateLayout = "2006-01-02"

// RecordStudy returns the stats after counting a study action on today's
// date. A day counts once: a second action on the same date changes nothing.
// Studying the day after the recorded date extends the streak by one; any
// other prior state (never studied, unparsable stamp, a gap of two or more
// days, a stamp in the future) restarts the streak at 1.
//
// today is an explicit input rather than a hidden clock so the arithmetic
// stays a pure, testable function. Persisting the result is the caller's job.
func RecordStudy(stats models.StudyStats, today time.Time) models.StudyStats {
	todayStr := today.Format(DateLayout)
	if stats.LastStudyDate != nil && *stats.LastStudyDate == todayStr {
		return stats
	}

	streak := 1
	if stats.LastStudyDate != nil {
		if last, err := time.Parse(DateLayout, *stats.LastStudyDate); err == nil {
			todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
			if todayDate.Sub(last) == 24*time.Hour {
				streak = stats.StreakDays + 1
			}
		}
	}

	return models.StudyStats{StreakDays: streak, LastStudyDate: &todayStr}
}
