package applicator

import (
	"context"
	"sync"
	"testing"

	"github.com/sonar-libras/sonar/internal/database"
	"github.com/sonar-libras/sonar/internal/idgen"
	"github.com/sonar-libras/sonar/internal/jobs"
	"github.com/sonar-libras/sonar/internal/testutil"
	"github.com/sonar-libras/sonar/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	techCo  = models.Session{ID: "c1", Name: "TechCo", Category: models.CategoryCompany}
	otherCo = models.Session{ID: "c2", Name: "OtherCo", Category: models.CategoryCompany}
	ana     = models.Session{ID: "u1", Name: "Ana", Category: models.CategoryCandidate}
	edu     = models.Session{ID: "u2", Name: "Edu", Category: models.CategoryStudent}
)

type fixture struct {
	store *database.Store
	board *jobs.Board
	app   *Applicator
	job   models.JobPosting
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := testutil.NewStore(t)
	clock := testutil.NewClock()
	board := jobs.NewBoard(store, idgen.NewSequence("job-"), jobs.WithClock(clock.Now))
	app := New(store, board, idgen.NewSequence("app-"), WithClock(clock.Now))

	job, err := board.CreateJob(context.Background(), models.JobFields{
		Title: "Dev", Location: "Recife, PE", Type: models.EmploymentCLT, Mode: models.ModeRemote,
	}, techCo)
	require.NoError(t, err)

	return fixture{store: store, board: board, app: app, job: job}
}

func TestCanApply(t *testing.T) {
	tests := []struct {
		name    string
		session models.Session
		wantErr error
	}{
		{"anonymous", models.Session{}, ErrUnauthenticated},
		{"company", techCo, ErrWrongAccountCategory},
		{"candidate", ana, nil},
		{"student", edu, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanApply(tt.session)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestApplyCreatesPendingApplication(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	app, err := f.app.Apply(ctx, ana, f.job)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationPending, app.Status)
	assert.Equal(t, f.job.ID, app.JobID)
	assert.Equal(t, "Dev", app.JobTitle)
	assert.Equal(t, "TechCo", app.Company)
	assert.Equal(t, ana.ID, app.UserID)

	list, err := f.app.Applications(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, app.ID, list[0].ID)
}

func TestApplyTwiceIsRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.app.Apply(ctx, ana, f.job)
	require.NoError(t, err)
	_, err = f.app.Apply(ctx, ana, f.job)
	require.ErrorIs(t, err, ErrAlreadyApplied)

	list, err := f.app.Applications(ctx, ana.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestApplyConcurrentDuplicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.app.Apply(ctx, ana, f.job)
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, ErrAlreadyApplied)
	}
	assert.Equal(t, 1, ok)

	list, err := f.app.Applications(ctx, ana.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCompanyCannotApply(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.app.Apply(ctx, otherCo, f.job)
	require.ErrorIs(t, err, ErrWrongAccountCategory)

	raw, err := f.store.Get(ctx, database.ApplicationsKey(otherCo.ID))
	require.NoError(t, err)
	assert.Nil(t, raw, "no collection is written")
}

func TestApplyToPausedJob(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.board.SetJobStatus(ctx, techCo, f.job.ID, models.JobPaused))
	paused, err := f.board.GetJob(ctx, f.job.ID)
	require.NoError(t, err)

	_, err = f.app.Apply(ctx, ana, paused)
	assert.ErrorIs(t, err, ErrJobClosed)
}

func TestApplyToSeedJob(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	seed, err := f.board.GetJob(ctx, "1")
	require.NoError(t, err)
	_, err = f.app.Apply(ctx, edu, seed)
	require.NoError(t, err)
	_, err = f.app.Apply(ctx, ana, seed)
	require.NoError(t, err, "the pair is per applicant")
}

func TestReview(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	fromAna, err := f.app.Apply(ctx, ana, f.job)
	require.NoError(t, err)
	fromEdu, err := f.app.Apply(ctx, edu, f.job)
	require.NoError(t, err)
	seed, err := f.board.GetJob(ctx, "2")
	require.NoError(t, err)
	_, err = f.app.Apply(ctx, ana, seed)
	require.NoError(t, err)

	t.Run("applications for job", func(t *testing.T) {
		list, err := f.app.ApplicationsForJob(ctx, techCo, f.job.ID)
		require.NoError(t, err)
		assert.Len(t, list, 2)

		_, err = f.app.ApplicationsForJob(ctx, otherCo, f.job.ID)
		assert.ErrorIs(t, err, jobs.ErrNotOwner)

		_, err = f.app.ApplicationsForJob(ctx, ana, f.job.ID)
		assert.ErrorIs(t, err, ErrWrongAccountCategory)
	})

	t.Run("received", func(t *testing.T) {
		list, err := f.app.Received(ctx, techCo)
		require.NoError(t, err)
		assert.Len(t, list, 2)

		list, err = f.app.Received(ctx, otherCo)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("stranger cannot review", func(t *testing.T) {
		_, err := f.app.SetStatus(ctx, otherCo, ana.ID, fromAna.ID, models.ApplicationViewed)
		assert.ErrorIs(t, err, jobs.ErrNotOwner)
	})

	t.Run("pending to viewed to approved", func(t *testing.T) {
		viewed, err := f.app.SetStatus(ctx, techCo, ana.ID, fromAna.ID, models.ApplicationViewed)
		require.NoError(t, err)
		assert.Equal(t, models.ApplicationViewed, viewed.Status)
		assert.NotNil(t, viewed.UpdatedAt)

		approved, err := f.app.SetStatus(ctx, techCo, ana.ID, fromAna.ID, models.ApplicationApproved)
		require.NoError(t, err)
		assert.Equal(t, models.ApplicationApproved, approved.Status)

		_, err = f.app.SetStatus(ctx, techCo, ana.ID, fromAna.ID, models.ApplicationRejected)
		assert.ErrorIs(t, err, ErrInvalidTransition, "approved is final")
	})

	t.Run("pending to rejected", func(t *testing.T) {
		_, err := f.app.SetStatus(ctx, techCo, edu.ID, fromEdu.ID, models.ApplicationRejected)
		require.NoError(t, err)

		list, err := f.app.Applications(ctx, edu.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ApplicationRejected, list[0].Status)
	})

	t.Run("unknown application", func(t *testing.T) {
		_, err := f.app.SetStatus(ctx, techCo, ana.ID, "nope", models.ApplicationViewed)
		assert.ErrorIs(t, err, ErrApplicationNotFound)
	})
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to models.ApplicationStatus
		want     bool
	}{
		{models.ApplicationPending, models.ApplicationViewed, true},
		{models.ApplicationPending, models.ApplicationApproved, true},
		{models.ApplicationPending, models.ApplicationRejected, true},
		{models.ApplicationViewed, models.ApplicationApproved, true},
		{models.ApplicationViewed, models.ApplicationPending, false},
		{models.ApplicationApproved, models.ApplicationRejected, false},
		{models.ApplicationRejected, models.ApplicationApproved, false},
		{models.ApplicationPending, models.ApplicationPending, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestCompanyStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	second, err := f.board.CreateJob(ctx, models.JobFields{Title: "QA", Type: models.EmploymentPJ, Mode: models.ModeHybrid}, techCo)
	require.NoError(t, err)
	require.NoError(t, f.board.SetJobStatus(ctx, techCo, second.ID, models.JobPaused))

	app, err := f.app.Apply(ctx, ana, f.job)
	require.NoError(t, err)
	_, err = f.app.Apply(ctx, edu, f.job)
	require.NoError(t, err)
	_, err = f.app.SetStatus(ctx, techCo, ana.ID, app.ID, models.ApplicationViewed)
	require.NoError(t, err)

	stats, err := f.app.CompanyStats(ctx, techCo.ID)
	require.NoError(t, err)
	assert.Equal(t, Stats{TotalJobs: 2, ActiveJobs: 1, Applications: 2, Pending: 1}, stats)

	empty, err := f.app.CompanyStats(ctx, otherCo.ID)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, empty)
}
