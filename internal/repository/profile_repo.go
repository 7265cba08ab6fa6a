package repository

import (
	"path/filepath"

	"github.com/techwithgen-io/beginner-ai-projects/internal/models"
	"github.com/techwithgen-io/beginner-ai-projects/internal/storage"
)

const profileFile = "user_profile.json"

// ProfileRepo persists the single study-buddy user profile.
type ProfileRepo struct {
	dir string
}

func NewProfileRepo(memoryDir string) *ProfileRepo {
	return &ProfileRepo{dir: memoryDir}
}

func (r *ProfileRepo) path() string {
	return filepath.Join(r.dir, profileFile)
}

// Load returns the stored profile, or an empty one when the file is missing or
// unparsable. An empty profile is incomplete and sends the caller through
// onboarding.
func (r *ProfileRepo) Load() models.Profile {
	var p models.Profile
	storage.ReadJSON(r.path(), &p)
	return p
}

func (r *ProfileRepo) Save(p models.Profile) error {
	return storage.WriteJSON(r.path(), p)
}

// Forget deletes the persisted profile and reports whether one existed. The
// caller is expected to re-run onboarding afterwards.
func (r *ProfileRepo) Forget() bool {
	return storage.Remove(r.path())
}
