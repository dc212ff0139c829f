package courses

import (
	"context"
	"testing"
	"time"

	"github.com/sonar-libras/sonar/internal/access"
	"github.com/sonar-libras/sonar/internal/database"
	"github.com/sonar-libras/sonar/internal/testutil"
	"github.com/sonar-libras/sonar/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTracker(t *testing.T) (*Tracker, *testutil.Clock, *database.Store) {
	t.Helper()
	store := testutil.NewStore(t)
	clock := testutil.NewClock()
	return NewTracker(store, WithClock(clock.Now)), clock, store
}

func threeModuleCourse() models.Course {
	return models.Course{
		ID:    "c1",
		Title: "Curso",
		Level: LevelBasic,
		Modules: []models.Module{
			{ID: "m1", Title: "Um"},
			{ID: "m2", Title: "Dois"},
			{ID: "m3", Title: "Três"},
		},
	}
}

func TestCatalog(t *testing.T) {
	catalog := Catalog()
	require.Len(t, catalog, 6)

	counts := map[string]int{"3": 16, "4": 10, "5": 20, "6": 12}
	for id, n := range counts {
		c, ok := FindCourse(id)
		require.True(t, ok, id)
		assert.Len(t, c.Modules, n, id)
	}

	c, ok := FindCourse("alfabeto-basico")
	require.True(t, ok)
	assert.Equal(t, "mod1", c.Modules[0].ID)

	_, ok = FindCourse("nope")
	assert.False(t, ok)
}

func TestGenerateModules(t *testing.T) {
	modules := GenerateModules("x", 18)
	require.Len(t, modules, 18)
	assert.Equal(t, "x-module-1", modules[0].ID)
	assert.Equal(t, "Módulo 1: Introdução e Fundamentos", modules[0].Title)
	assert.Equal(t, "Módulo 16: Tecnologia e Comunicação", modules[15].Title)
	assert.Equal(t, "Módulo 17: Conteúdo 17", modules[16].Title)
}

func TestProgress(t *testing.T) {
	tests := []struct {
		completed, total, want int
	}{
		{0, 3, 0},
		{1, 3, 33},
		{2, 3, 67},
		{3, 3, 100},
		{1, 8, 13},
		{0, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Progress(tt.completed, tt.total), "%d/%d", tt.completed, tt.total)
	}
}

func TestEnrollIsIdempotent(t *testing.T) {
	tr, clock, _ := newTestTracker(t)
	ctx := context.Background()

	first, err := tr.Enroll(ctx, "u1", threeModuleCourse())
	require.NoError(t, err)
	assert.Equal(t, 0, first.Progress)
	assert.Len(t, first.Modules, 3)
	assert.Equal(t, models.EnrollmentSchemaVersion, first.SchemaVersion)

	clock.Advance(time.Hour)
	second, err := tr.Enroll(ctx, "u1", threeModuleCourse())
	require.NoError(t, err)
	assert.True(t, first.EnrolledAt.Equal(second.EnrolledAt), "existing enrollment is returned")

	list, err := tr.Enrollments(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	others, err := tr.Enrollments(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, others, "enrollments are per user")
}

func TestEnrollRequiresUser(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	_, err := tr.Enroll(context.Background(), "", threeModuleCourse())
	assert.ErrorIs(t, err, access.ErrUnauthenticated)
}

func TestCompleteModulesInOrder(t *testing.T) {
	tr, clock, _ := newTestTracker(t)
	ctx := context.Background()

	_, err := tr.Enroll(ctx, "u1", threeModuleCourse())
	require.NoError(t, err)

	want := []int{33, 67, 100}
	for i, id := range []string{"m1", "m2", "m3"} {
		clock.Advance(time.Minute)
		require.NoError(t, tr.CompleteModule(ctx, "u1", "c1", id))

		e, ok, err := tr.Enrollment(ctx, "u1", "c1")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, want[i], e.Progress)
		assert.Equal(t, i+1, e.CompletedModules())
		require.NotNil(t, e.Modules[i].CompletedAt)
		assert.True(t, e.Modules[i].CompletedAt.Equal(clock.Now()))
		require.NotNil(t, e.LastAccessed)
		assert.True(t, e.LastAccessed.Equal(clock.Now()))

		if e.Progress < 100 {
			assert.Nil(t, e.CompletedAt)
		} else {
			require.NotNil(t, e.CompletedAt)
			assert.True(t, e.CompletedAt.Equal(clock.Now()))
		}
	}
}

func TestProgressTracksAnyCompletionSequence(t *testing.T) {
	tests := []struct {
		name  string
		steps []string
		want  []int
	}{
		{"out of order with repeat", []string{"m3", "m1", "m3"}, []int{33, 67, 67}},
		{"reverse", []string{"m3", "m2", "m1"}, []int{33, 67, 100}},
		{"unknown module in between", []string{"m2", "nope", "m2", "m1", "m3"}, []int{33, 33, 33, 67, 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, _, _ := newTestTracker(t)
			ctx := context.Background()

			_, err := tr.Enroll(ctx, "u1", threeModuleCourse())
			require.NoError(t, err)

			for i, id := range tt.steps {
				require.NoError(t, tr.CompleteModule(ctx, "u1", "c1", id))

				e, ok, err := tr.Enrollment(ctx, "u1", "c1")
				require.NoError(t, err)
				require.True(t, ok)
				assert.Equal(t, tt.want[i], e.Progress, "after step %d (%s)", i+1, id)
				assert.Equal(t, Progress(e.CompletedModules(), len(e.Modules)), e.Progress)
				assert.Equal(t, e.Progress == 100, e.CompletedAt != nil)
			}
		})
	}
}

func TestCompleteModuleTwiceKeepsFirstStamp(t *testing.T) {
	tr, clock, _ := newTestTracker(t)
	ctx := context.Background()

	_, err := tr.Enroll(ctx, "u1", threeModuleCourse())
	require.NoError(t, err)

	require.NoError(t, tr.CompleteModule(ctx, "u1", "c1", "m2"))
	stamped := clock.Now()
	clock.Advance(time.Hour)
	require.NoError(t, tr.CompleteModule(ctx, "u1", "c1", "m2"))

	e, _, err := tr.Enrollment(ctx, "u1", "c1")
	require.NoError(t, err)
	assert.Equal(t, 33, e.Progress)
	assert.True(t, e.Modules[1].CompletedAt.Equal(stamped))
}

func TestCompleteModuleUnknownIsNoop(t *testing.T) {
	tr, _, store := newTestTracker(t)
	ctx := context.Background()

	require.NoError(t, tr.CompleteModule(ctx, "u1", "c1", "m1"), "no enrollment")
	raw, err := store.Get(ctx, database.CoursesKey("u1"))
	require.NoError(t, err)
	assert.Nil(t, raw)

	_, err = tr.Enroll(ctx, "u1", threeModuleCourse())
	require.NoError(t, err)
	before, err := store.Get(ctx, database.CoursesKey("u1"))
	require.NoError(t, err)

	require.NoError(t, tr.CompleteModule(ctx, "u1", "c1", "m9"), "no module")
	require.NoError(t, tr.CompleteModule(ctx, "u1", "c9", "m1"), "other course")

	after, err := store.Get(ctx, database.CoursesKey("u1"))
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestUpgradeEnrollments(t *testing.T) {
	tr, _, store := newTestTracker(t)
	ctx := context.Background()

	legacy := []models.CourseEnrollment{
		{CourseID: "3", Title: "Interpretação Avançada em Libras", Progress: 50},
		{CourseID: "retired", Title: "Curso antigo", Progress: 30},
		{CourseID: "alfabeto-basico", Title: "Libras Básico", Progress: 0},
		{CourseID: "archived", Title: "Curso arquivado", Progress: 50},
	}
	require.NoError(t, database.SaveCollection(ctx, store, database.CoursesKey("u1"), legacy))

	require.NoError(t, tr.UpgradeEnrollments(ctx, "u1"))
	list, err := tr.Enrollments(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 4)

	catalogued := list[0]
	assert.Len(t, catalogued.Modules, 16)
	assert.Equal(t, 8, catalogued.CompletedModules())
	assert.Equal(t, 50, catalogued.Progress)
	assert.Equal(t, LevelAdvanced, catalogued.Level)
	assert.True(t, catalogued.Modules[7].Completed)
	assert.False(t, catalogued.Modules[8].Completed)

	unknown := list[1]
	assert.Len(t, unknown.Modules, DefaultModuleCount)
	assert.Equal(t, "retired-module-1", unknown.Modules[0].ID)
	assert.Equal(t, 2, unknown.CompletedModules())
	assert.Equal(t, 25, unknown.Progress, "progress is recomputed from modules")

	half := list[3]
	assert.Equal(t, 4, half.CompletedModules())
	assert.Equal(t, 50, half.Progress)

	for _, e := range list {
		assert.Equal(t, models.EnrollmentSchemaVersion, e.SchemaVersion)
	}

	before, err := store.Get(ctx, database.CoursesKey("u1"))
	require.NoError(t, err)
	require.NoError(t, tr.UpgradeEnrollments(ctx, "u1"))
	after, err := store.Get(ctx, database.CoursesKey("u1"))
	require.NoError(t, err)
	assert.Equal(t, before, after, "second upgrade is a no-op")
}

func TestPlayerProgress(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	ctx := context.Background()

	course, ok := FindCourse("numeros-quantidades")
	require.True(t, ok)

	progress, err := tr.PlayerProgress(ctx, course.ID)
	require.NoError(t, err)
	assert.Empty(t, progress)

	pct, err := tr.MarkPlayerModule(ctx, course, "mod1")
	require.NoError(t, err)
	assert.InDelta(t, 100.0/3, pct, 1e-9)

	pct, err = tr.MarkPlayerModule(ctx, course, "mod1")
	require.NoError(t, err)
	assert.InDelta(t, 100.0/3, pct, 1e-9)

	pct, err = tr.MarkPlayerModule(ctx, course, "mod3")
	require.NoError(t, err)
	assert.InDelta(t, 200.0/3, pct, 1e-9)

	progress, err = tr.PlayerProgress(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"mod1": true, "mod2": false, "mod3": true}, progress)

	_, err = tr.MarkPlayerModule(ctx, course, "mod9")
	assert.ErrorIs(t, err, ErrModuleNotFound)
}
