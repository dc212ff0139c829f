// Package applicator records job applications and lets companies review the
// applications their postings received.
package applicator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/sonar-libras/sonar/internal/access"
	"github.com/sonar-libras/sonar/internal/database"
	"github.com/sonar-libras/sonar/internal/idgen"
	"github.com/sonar-libras/sonar/internal/jobs"
	"github.com/sonar-libras/sonar/internal/logging"
	"github.com/sonar-libras/sonar/pkg/models"
)

var (
	ErrUnauthenticated      = access.ErrUnauthenticated
	ErrWrongAccountCategory = access.ErrWrongAccountCategory

	ErrAlreadyApplied      = errors.New("already applied to this job")
	ErrJobClosed           = errors.New("job is not accepting applications")
	ErrApplicationNotFound = errors.New("application not found")
	ErrInvalidTransition   = errors.New("invalid application status transition")
)

var transitions = map[models.ApplicationStatus][]models.ApplicationStatus{
	models.ApplicationPending: {models.ApplicationViewed, models.ApplicationApproved, models.ApplicationRejected},
	models.ApplicationViewed:  {models.ApplicationApproved, models.ApplicationRejected},
}

// CanTransition reports whether an application may move from one status to another
func CanTransition(from, to models.ApplicationStatus) bool {
	return slice.Contains(transitions[from], to)
}

// Option configures an Applicator
type Option func(*Applicator)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(a *Applicator) { a.now = now }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(a *Applicator) { a.log = l }
}

// Applicator owns the per-user application collections
type Applicator struct {
	store *database.Store
	board *jobs.Board
	ids   idgen.Generator
	now   func() time.Time
	log   *slog.Logger
}

func New(store *database.Store, board *jobs.Board, ids idgen.Generator, opts ...Option) *Applicator {
	a := &Applicator{
		store: store,
		board: board,
		ids:   ids,
		now:   time.Now,
		log:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// CanApply checks whether applicant may apply to jobs at all. Companies
// cannot.
func CanApply(applicant models.Session) error {
	return access.Deny(applicant, models.CategoryCompany)
}

// Apply records a pending application of applicant to job. At most one
// application exists per applicant and job.
func (a *Applicator) Apply(ctx context.Context, applicant models.Session, job models.JobPosting) (models.JobApplication, error) {
	if err := CanApply(applicant); err != nil {
		return models.JobApplication{}, err
	}
	if !job.Active() {
		return models.JobApplication{}, ErrJobClosed
	}

	app := models.JobApplication{
		ID:        a.ids.NewID(),
		JobID:     job.ID,
		JobTitle:  job.Title,
		Company:   job.Company,
		UserID:    applicant.ID,
		AppliedAt: a.now(),
		Status:    models.ApplicationPending,
	}

	err := database.UpdateCollection(ctx, a.store, database.ApplicationsKey(applicant.ID), func(list []models.JobApplication) ([]models.JobApplication, error) {
		if _, ok := slice.Find(list, func(x models.JobApplication) bool { return x.JobID == job.ID }); ok {
			return nil, ErrAlreadyApplied
		}
		return append(list, app), nil
	})
	if err != nil {
		return models.JobApplication{}, err
	}

	a.log.DebugContext(ctx, "application created", "application_id", app.ID, "job_id", job.ID, "user_id", applicant.ID)
	return app, nil
}

// Applications lists the applications sent by userID
func (a *Applicator) Applications(ctx context.Context, userID string) ([]models.JobApplication, error) {
	return database.LoadCollection[models.JobApplication](ctx, a.store, database.ApplicationsKey(userID))
}

// ApplicationsForJob lists every application to jobID. Only the company that
// owns the posting may see them.
func (a *Applicator) ApplicationsForJob(ctx context.Context, company models.Session, jobID string) ([]models.JobApplication, error) {
	if err := access.Require(company, models.CategoryCompany); err != nil {
		return nil, err
	}
	job, err := a.board.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.CompanyID != company.ID {
		return nil, jobs.ErrNotOwner
	}
	return a.received(ctx, map[string]bool{jobID: true})
}

// Received lists every application to any posting owned by company
func (a *Applicator) Received(ctx context.Context, company models.Session) ([]models.JobApplication, error) {
	if err := access.Require(company, models.CategoryCompany); err != nil {
		return nil, err
	}
	owned, err := a.board.CompanyJobs(ctx, company.ID)
	if err != nil {
		return nil, err
	}
	ids := slice.ToMapV(owned, func(j models.JobPosting) (string, bool) { return j.ID, true })
	return a.received(ctx, ids)
}

func (a *Applicator) received(ctx context.Context, jobIDs map[string]bool) ([]models.JobApplication, error) {
	out := []models.JobApplication{}
	if len(jobIDs) == 0 {
		return out, nil
	}

	keys, err := a.store.Keys(ctx, database.ApplicationsPrefix())
	if err != nil {
		return nil, err
	}
	for _, key := range keys {
		list, err := database.LoadCollection[models.JobApplication](ctx, a.store, key)
		if err != nil {
			return nil, err
		}
		out = append(out, slice.FindAll(list, func(x models.JobApplication) bool { return jobIDs[x.JobID] })...)
	}
	return out, nil
}

// SetStatus moves an application of applicantID to status. Only the company
// owning the job may review it, and approved or rejected applications are
// final.
func (a *Applicator) SetStatus(ctx context.Context, company models.Session, applicantID, applicationID string, status models.ApplicationStatus) (models.JobApplication, error) {
	if err := access.Require(company, models.CategoryCompany); err != nil {
		return models.JobApplication{}, err
	}

	current, err := a.find(ctx, applicantID, applicationID)
	if err != nil {
		return models.JobApplication{}, err
	}
	job, err := a.board.GetJob(ctx, current.JobID)
	if err != nil {
		return models.JobApplication{}, err
	}
	if job.CompanyID != company.ID {
		return models.JobApplication{}, jobs.ErrNotOwner
	}

	var updated models.JobApplication
	err = database.UpdateCollection(ctx, a.store, database.ApplicationsKey(applicantID), func(list []models.JobApplication) ([]models.JobApplication, error) {
		for i := range list {
			if list[i].ID != applicationID {
				continue
			}
			if !CanTransition(list[i].Status, status) {
				return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, list[i].Status, status)
			}
			now := a.now()
			list[i].Status = status
			list[i].UpdatedAt = &now
			updated = list[i]
			return list, nil
		}
		return nil, ErrApplicationNotFound
	})
	if err != nil {
		return models.JobApplication{}, err
	}

	a.log.DebugContext(ctx, "application status changed", "application_id", applicationID, "status", status)
	return updated, nil
}

func (a *Applicator) find(ctx context.Context, applicantID, applicationID string) (models.JobApplication, error) {
	list, err := a.Applications(ctx, applicantID)
	if err != nil {
		return models.JobApplication{}, err
	}
	app, ok := slice.Find(list, func(x models.JobApplication) bool { return x.ID == applicationID })
	if !ok {
		return models.JobApplication{}, ErrApplicationNotFound
	}
	return app, nil
}

// Stats are the figures of the company dashboard
type Stats struct {
	TotalJobs    int
	ActiveJobs   int
	Applications int
	Pending      int
}

// CompanyStats summarizes the postings of companyID and the applications
// they received
func (a *Applicator) CompanyStats(ctx context.Context, companyID string) (Stats, error) {
	owned, err := a.board.CompanyJobs(ctx, companyID)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{TotalJobs: len(owned)}
	for _, j := range owned {
		if j.Active() {
			stats.ActiveJobs++
		}
	}

	ids := slice.ToMapV(owned, func(j models.JobPosting) (string, bool) { return j.ID, true })
	received, err := a.received(ctx, ids)
	if err != nil {
		return Stats{}, err
	}
	stats.Applications = len(received)
	for _, x := range received {
		if x.Status == models.ApplicationPending {
			stats.Pending++
		}
	}
	return stats, nil
}
