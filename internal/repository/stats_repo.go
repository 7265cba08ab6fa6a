package repository

import (
	"path/filepath"

	"github.com/techwithgen-io/beginner-ai-projects/internal/models"
	"github.com/techwithgen-io/beginner-ai-projects/internal/storage"
)

const statsFile = "stats.json"

// StatsRepo persists the single study-streak record.
type StatsRepo struct {
	dir string
}

func NewStatsRepo(memoryDir string) *StatsRepo {
	return &StatsRepo{dir: memoryDir}
}

func (r *StatsRepo) path() string {
	return filepath.Join(r.dir, statsFile)
}

// Load returns the stored stats, or a zero record when the file is missing or
// unparsable. A negative stored streak is clamped to zero.
func (r *StatsRepo) Load() models.StudyStats {
	var stats models.StudyStats
	storage.ReadJSON(r.path(), &stats)
	if stats.StreakDays < 0 {
		stats.StreakDays = 0
	}
	return stats
}

func (r *StatsRepo) Save(stats models.StudyStats) error {
	return storage.WriteJSON(r.path(), stats)
}
