package courses

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecodeclub/ekit/slice"
	"github.com/sonar-libras/sonar/internal/database"
	"github.com/sonar-libras/sonar/pkg/models"
)

var ErrModuleNotFound = errors.New("module not found")

// PlayerProgress returns the module completion map kept by the course
// player. The map is per course, not per user.
func (t *Tracker) PlayerProgress(ctx context.Context, courseID string) (map[string]bool, error) {
	progress := map[string]bool{}
	if _, err := database.LoadDocument(ctx, t.store, database.CourseProgressKey(courseID), &progress); err != nil {
		return nil, err
	}
	if progress == nil {
		progress = map[string]bool{}
	}
	return progress, nil
}

// MarkPlayerModule marks moduleID as watched and rewrites the whole map for
// the course. It returns the unrounded share of watched modules.
func (t *Tracker) MarkPlayerModule(ctx context.Context, course models.Course, moduleID string) (float64, error) {
	if _, ok := slice.Find(course.Modules, func(m models.Module) bool { return m.ID == moduleID }); !ok {
		return 0, fmt.Errorf("%w: %s", ErrModuleNotFound, moduleID)
	}

	saved, err := t.PlayerProgress(ctx, course.ID)
	if err != nil {
		return 0, err
	}

	progress := make(map[string]bool, len(course.Modules))
	completed := 0
	for _, m := range course.Modules {
		done := saved[m.ID] || m.ID == moduleID
		progress[m.ID] = done
		if done {
			completed++
		}
	}

	if err := database.SaveDocument(ctx, t.store, database.CourseProgressKey(course.ID), progress); err != nil {
		return 0, err
	}
	return float64(completed) / float64(len(course.Modules)) * 100, nil
}
