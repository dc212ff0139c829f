// Package courses tracks course enrollments and module completion per user.
package courses

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/sonar-libras/sonar/internal/access"
	"github.com/sonar-libras/sonar/internal/database"
	"github.com/sonar-libras/sonar/internal/logging"
	"github.com/sonar-libras/sonar/pkg/models"
)

// Option configures a Tracker
type Option func(*Tracker)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) { t.log = l }
}

// Tracker owns the per-user enrollment collections
type Tracker struct {
	store *database.Store
	now   func() time.Time
	log   *slog.Logger
}

func NewTracker(store *database.Store, opts ...Option) *Tracker {
	t := &Tracker{
		store: store,
		now:   time.Now,
		log:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Progress is round(100 * completed / total), 0 for a course without modules
func Progress(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

// Enroll adds course to the user's enrollments. Enrolling twice returns the
// existing enrollment unchanged.
func (t *Tracker) Enroll(ctx context.Context, userID string, course models.Course) (models.CourseEnrollment, error) {
	if userID == "" {
		return models.CourseEnrollment{}, access.ErrUnauthenticated
	}

	var result models.CourseEnrollment
	err := database.UpdateCollection(ctx, t.store, database.CoursesKey(userID), func(list []models.CourseEnrollment) ([]models.CourseEnrollment, error) {
		if existing, ok := slice.Find(list, func(e models.CourseEnrollment) bool { return e.CourseID == course.ID }); ok {
			result = existing
			return nil, database.ErrUnchanged
		}

		now := t.now()
		result = models.CourseEnrollment{
			CourseID: course.ID,
			Title:    course.Title,
			Level:    course.Level,
			Progress: 0,
			Modules: slice.Map(course.Modules, func(_ int, m models.Module) models.ModuleProgress {
				return models.ModuleProgress{ID: m.ID, Title: m.Title}
			}),
			EnrolledAt:    now,
			LastAccessed:  &now,
			SchemaVersion: models.EnrollmentSchemaVersion,
		}
		return append(list, result), nil
	})
	if err != nil {
		return models.CourseEnrollment{}, fmt.Errorf("enroll in %s: %w", course.ID, err)
	}

	t.log.DebugContext(ctx, "enrolled", "user_id", userID, "course_id", course.ID)
	return result, nil
}

// CompleteModule marks one module of an enrollment as completed and
// recomputes the course progress. An unknown enrollment or module, or a
// module already completed, leaves the collection untouched.
func (t *Tracker) CompleteModule(ctx context.Context, userID, courseID, moduleID string) error {
	err := database.UpdateCollection(ctx, t.store, database.CoursesKey(userID), func(list []models.CourseEnrollment) ([]models.CourseEnrollment, error) {
		i := indexOf(list, courseID)
		if i < 0 {
			return nil, database.ErrUnchanged
		}
		e := &list[i]

		j := -1
		for k, m := range e.Modules {
			if m.ID == moduleID {
				j = k
				break
			}
		}
		if j < 0 || e.Modules[j].Completed {
			return nil, database.ErrUnchanged
		}

		now := t.now()
		e.Modules[j].Completed = true
		e.Modules[j].CompletedAt = &now
		e.Progress = Progress(e.CompletedModules(), len(e.Modules))
		e.LastAccessed = &now
		if e.Progress == 100 && e.CompletedAt == nil {
			e.CompletedAt = &now
		}
		return list, nil
	})
	if err != nil {
		return fmt.Errorf("complete module %s/%s: %w", courseID, moduleID, err)
	}
	return nil
}

// Enrollments lists the user's enrollments in enrollment order
func (t *Tracker) Enrollments(ctx context.Context, userID string) ([]models.CourseEnrollment, error) {
	return database.LoadCollection[models.CourseEnrollment](ctx, t.store, database.CoursesKey(userID))
}

// Enrollment returns the user's enrollment in courseID, if any
func (t *Tracker) Enrollment(ctx context.Context, userID, courseID string) (models.CourseEnrollment, bool, error) {
	list, err := t.Enrollments(ctx, userID)
	if err != nil {
		return models.CourseEnrollment{}, false, err
	}
	e, ok := slice.Find(list, func(e models.CourseEnrollment) bool { return e.CourseID == courseID })
	return e, ok, nil
}

// UpgradeEnrollments brings enrollments written before module tracking to
// the current shape. Their modules come from the catalog, or are generated
// when the course is unknown, and the first round(progress * total / 100)
// are marked completed.
func (t *Tracker) UpgradeEnrollments(ctx context.Context, userID string) error {
	upgraded := 0
	err := database.UpdateCollection(ctx, t.store, database.CoursesKey(userID), func(list []models.CourseEnrollment) ([]models.CourseEnrollment, error) {
		for i := range list {
			if list[i].SchemaVersion >= models.EnrollmentSchemaVersion {
				continue
			}
			upgrade(&list[i])
			upgraded++
		}
		if upgraded == 0 {
			return nil, database.ErrUnchanged
		}
		return list, nil
	})
	if err != nil {
		return fmt.Errorf("upgrade enrollments: %w", err)
	}
	if upgraded > 0 {
		t.log.InfoContext(ctx, "enrollments upgraded", "user_id", userID, "count", upgraded)
	}
	return nil
}

func indexOf(list []models.CourseEnrollment, courseID string) int {
	for i, e := range list {
		if e.CourseID == courseID {
			return i
		}
	}
	return -1
}

func upgrade(e *models.CourseEnrollment) {
	course, known := FindCourse(e.CourseID)
	if known && e.Level == "" {
		e.Level = course.Level
	}

	if len(e.Modules) == 0 {
		modules := GenerateModules(e.CourseID, DefaultModuleCount)
		if known && len(course.Modules) > 0 {
			modules = course.Modules
		}

		done := int(math.Round(float64(e.Progress) * float64(len(modules)) / 100))
		done = max(0, min(done, len(modules)))

		e.Modules = make([]models.ModuleProgress, len(modules))
		for i, m := range modules {
			e.Modules[i] = models.ModuleProgress{ID: m.ID, Title: m.Title, Completed: i < done}
		}
	}

	e.Progress = Progress(e.CompletedModules(), len(e.Modules))
	e.SchemaVersion = models.EnrollmentSchemaVersion
}
