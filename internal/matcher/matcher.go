// Package matcher filters job postings and courses for the search screens.
package matcher

import (
	"strings"

	"github.com/sonar-libras/sonar/pkg/models"
	"golang.org/x/text/cases"
)

// AnyLevel matches courses of every level
const AnyLevel = "todos"

// Criteria narrows a job listing. Zero fields impose no constraint.
type Criteria struct {
	Query    string
	Location string
	Type     models.EmploymentType
	Mode     models.WorkMode
}

// Empty reports whether c matches every job
func (c Criteria) Empty() bool {
	return strings.TrimSpace(c.Query) == "" && strings.TrimSpace(c.Location) == "" && c.Type == "" && c.Mode == ""
}

// FilterJobs returns the jobs matching c, preserving their order. The query
// matches a case-insensitive substring of the title, the company or any tag.
func FilterJobs(jobs []models.JobPosting, c Criteria) []models.JobPosting {
	f := newFolder()
	query := f.fold(c.Query)
	location := f.fold(c.Location)

	out := make([]models.JobPosting, 0, len(jobs))
	for _, job := range jobs {
		if c.Type != "" && job.Type != c.Type {
			continue
		}
		if c.Mode != "" && job.Mode != c.Mode {
			continue
		}
		if location != "" && !strings.Contains(f.fold(job.Location), location) {
			continue
		}
		if query != "" && !matchJobQuery(f, job, query) {
			continue
		}
		out = append(out, job)
	}
	return out
}

func matchJobQuery(f folder, job models.JobPosting, query string) bool {
	if strings.Contains(f.fold(job.Title), query) || strings.Contains(f.fold(job.Company), query) {
		return true
	}
	for _, tag := range job.Tags {
		if strings.Contains(f.fold(tag), query) {
			return true
		}
	}
	return false
}

// FilterCourses returns the courses of the given level whose title,
// description or instructor contains query. An empty level or AnyLevel
// matches every level.
func FilterCourses(courses []models.Course, level, query string) []models.Course {
	f := newFolder()
	query = f.fold(query)

	out := make([]models.Course, 0, len(courses))
	for _, course := range courses {
		if level != "" && level != AnyLevel && course.Level != level {
			continue
		}
		if query != "" &&
			!strings.Contains(f.fold(course.Title), query) &&
			!strings.Contains(f.fold(course.Description), query) &&
			!strings.Contains(f.fold(course.Instructor), query) {
			continue
		}
		out = append(out, course)
	}
	return out
}

// folder wraps a case folding Caser. Casers keep state and must not be
// shared between goroutines, so each filter call builds its own.
type folder struct {
	c cases.Caser
}

func newFolder() folder {
	return folder{c: cases.Fold()}
}

func (f folder) fold(s string) string {
	return f.c.String(strings.TrimSpace(s))
}
