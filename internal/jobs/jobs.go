// Package jobs manages the global job posting collection: the built-in seed
// postings merged with what companies publish.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/sonar-libras/sonar/internal/access"
	"github.com/sonar-libras/sonar/internal/database"
	"github.com/sonar-libras/sonar/internal/idgen"
	"github.com/sonar-libras/sonar/internal/logging"
	"github.com/sonar-libras/sonar/pkg/models"
)

const seedUpgrade = "merge-seed-jobs"

var (
	// ErrNotCompany is returned when a non-company session tries to publish
	ErrNotCompany = access.ErrWrongAccountCategory

	ErrJobNotFound   = errors.New("job not found")
	ErrNotOwner      = errors.New("job belongs to another company")
	ErrSeedReadOnly  = errors.New("built-in job postings cannot be changed")
	ErrInvalidStatus = errors.New("invalid job status")
)

// Option configures a Board
type Option func(*Board)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(b *Board) { b.now = now }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(b *Board) { b.log = l }
}

// WithSeeds replaces the built-in postings; nil disables them
func WithSeeds(seeds []models.JobPosting) Option {
	return func(b *Board) { b.seeds = seeds }
}

// Board is the job posting collection
type Board struct {
	store   *database.Store
	ids     idgen.Generator
	now     func() time.Time
	log     *slog.Logger
	seeds   []models.JobPosting
	builtin map[string]bool
}

func NewBoard(store *database.Store, ids idgen.Generator, opts ...Option) *Board {
	b := &Board{
		store: store,
		ids:   ids,
		now:   time.Now,
		log:   logging.Discard(),
		seeds: Seeds(),
	}
	b.builtin = slice.ToMapV(Seeds(), func(j models.JobPosting) (string, bool) { return j.ID, true })
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ListJobs returns the seed postings followed by the stored ones,
// de-duplicated by id (first occurrence wins). It never writes.
// Stored copies of built-in postings are skipped, so they only appear
// while seeds are enabled.
func (b *Board) ListJobs(ctx context.Context) ([]models.JobPosting, error) {
	stored, err := database.LoadCollection[models.JobPosting](ctx, b.store, database.KeyJobs)
	if err != nil {
		return nil, err
	}
	stored = slice.FindAll(stored, func(j models.JobPosting) bool { return !b.builtin[j.ID] })
	return merge(b.seeds, stored), nil
}

// MergeSeeds writes the merged seed and stored postings back once per
// database. Later calls are no-ops.
func (b *Board) MergeSeeds(ctx context.Context) error {
	return b.store.RunOnce(ctx, seedUpgrade, func(ctx context.Context, tx *database.Store) error {
		return database.UpdateCollection(ctx, tx, database.KeyJobs, func(stored []models.JobPosting) ([]models.JobPosting, error) {
			return merge(b.seeds, stored), nil
		})
	})
}

// CreateJob publishes a posting owned by company, which must be an
// authenticated company session.
func (b *Board) CreateJob(ctx context.Context, fields models.JobFields, company models.Session) (models.JobPosting, error) {
	if err := access.Require(company, models.CategoryCompany); err != nil {
		return models.JobPosting{}, err
	}

	now := b.now()
	if strings.TrimSpace(fields.Company) == "" {
		fields.Company = company.Name
	}
	fields.Tags = cleanTags(fields.Tags)

	job := models.JobPosting{
		ID:        b.ids.NewID(),
		CompanyID: company.ID,
		JobFields: fields,
		Status:    models.JobActive,
		PostedAt:  now.Format(time.DateOnly),
		CreatedAt: now,
	}

	err := database.UpdateCollection(ctx, b.store, database.KeyJobs, func(stored []models.JobPosting) ([]models.JobPosting, error) {
		return append(stored, job), nil
	})
	if err != nil {
		return models.JobPosting{}, fmt.Errorf("save job: %w", err)
	}

	b.log.DebugContext(ctx, "job created", "job_id", job.ID, "company_id", company.ID)
	return job, nil
}

// GetJob finds a posting by id among seeds and stored postings
func (b *Board) GetJob(ctx context.Context, id string) (models.JobPosting, error) {
	all, err := b.ListJobs(ctx)
	if err != nil {
		return models.JobPosting{}, err
	}
	job, ok := slice.Find(all, func(j models.JobPosting) bool { return j.ID == id })
	if !ok {
		return models.JobPosting{}, ErrJobNotFound
	}
	return job, nil
}

// CompanyJobs lists the postings owned by companyID
func (b *Board) CompanyJobs(ctx context.Context, companyID string) ([]models.JobPosting, error) {
	all, err := b.ListJobs(ctx)
	if err != nil {
		return nil, err
	}
	return slice.FindAll(all, func(j models.JobPosting) bool { return j.CompanyID == companyID }), nil
}

// UpdateJob replaces the form fields of a posting owned by company
func (b *Board) UpdateJob(ctx context.Context, company models.Session, id string, fields models.JobFields) (models.JobPosting, error) {
	var updated models.JobPosting
	err := b.mutate(ctx, company, id, func(jobs []models.JobPosting, i int) []models.JobPosting {
		if strings.TrimSpace(fields.Company) == "" {
			fields.Company = jobs[i].Company
		}
		fields.Tags = cleanTags(fields.Tags)
		jobs[i].JobFields = fields
		updated = jobs[i]
		return jobs
	})
	if err != nil {
		return models.JobPosting{}, err
	}
	b.log.DebugContext(ctx, "job updated", "job_id", id)
	return updated, nil
}

// SetJobStatus pauses or re-activates a posting owned by company
func (b *Board) SetJobStatus(ctx context.Context, company models.Session, id string, status models.JobStatus) error {
	if status != models.JobActive && status != models.JobPaused {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	err := b.mutate(ctx, company, id, func(jobs []models.JobPosting, i int) []models.JobPosting {
		jobs[i].Status = status
		return jobs
	})
	if err != nil {
		return err
	}
	b.log.DebugContext(ctx, "job status changed", "job_id", id, "status", status)
	return nil
}

// DeleteJob removes a posting owned by company
func (b *Board) DeleteJob(ctx context.Context, company models.Session, id string) error {
	err := b.mutate(ctx, company, id, func(jobs []models.JobPosting, i int) []models.JobPosting {
		return append(jobs[:i], jobs[i+1:]...)
	})
	if err != nil {
		return err
	}
	b.log.DebugContext(ctx, "job deleted", "job_id", id)
	return nil
}

// mutate applies fn to the stored posting id after checking that company
// owns it
func (b *Board) mutate(ctx context.Context, company models.Session, id string, fn func(jobs []models.JobPosting, i int) []models.JobPosting) error {
	if err := access.Require(company, models.CategoryCompany); err != nil {
		return err
	}
	if b.isSeed(id) {
		return ErrSeedReadOnly
	}

	return database.UpdateCollection(ctx, b.store, database.KeyJobs, func(stored []models.JobPosting) ([]models.JobPosting, error) {
		i := indexOf(stored, id)
		if i < 0 {
			return nil, ErrJobNotFound
		}
		if stored[i].CompanyID != company.ID {
			return nil, ErrNotOwner
		}
		return fn(stored, i), nil
	})
}

func (b *Board) isSeed(id string) bool {
	if b.builtin[id] {
		return true
	}
	_, ok := slice.Find(b.seeds, func(j models.JobPosting) bool { return j.ID == id })
	return ok
}

func indexOf(jobs []models.JobPosting, id string) int {
	for i, j := range jobs {
		if j.ID == id {
			return i
		}
	}
	return -1
}

func merge(seeds, stored []models.JobPosting) []models.JobPosting {
	seen := make(map[string]bool, len(seeds)+len(stored))
	merged := make([]models.JobPosting, 0, len(seeds)+len(stored))
	for _, list := range [][]models.JobPosting{seeds, stored} {
		for _, j := range list {
			if seen[j.ID] {
				continue
			}
			seen[j.ID] = true
			merged = append(merged, j)
		}
	}
	return merged
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
