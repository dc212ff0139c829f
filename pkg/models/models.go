package models

import "time"

// Category is the account type chosen at registration
type Category string

const (
	CategoryCandidate Category = "candidato"
	CategoryCompany   Category = "empresa"
	CategoryStudent   Category = "aluno"
)

// Valid reports whether c is one of the known account categories
func (c Category) Valid() bool {
	switch c {
	case CategoryCandidate, CategoryCompany, CategoryStudent:
		return true
	}
	return false
}

// User represents a registered identity.
// Password is stored verbatim: this store has no server boundary and must
// never be exposed beyond a local demo.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	Category  Category  `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

// Session returns the user without its password
func (u User) Session() Session {
	return Session{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Category:  u.Category,
		CreatedAt: u.CreatedAt,
	}
}

// Session is the currently authenticated identity. The zero value is anonymous.
type Session struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Category  Category  `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

// Anonymous reports whether s carries no identity
func (s Session) Anonymous() bool {
	return s.ID == ""
}

// EmploymentType is the contract form of a job posting
type EmploymentType string

const (
	EmploymentCLT        EmploymentType = "CLT"
	EmploymentPJ         EmploymentType = "PJ"
	EmploymentInternship EmploymentType = "Estágio"
	EmploymentTemporary  EmploymentType = "Temporário"
	EmploymentFreelance  EmploymentType = "Freelancer"
)

// WorkMode is where the work happens
type WorkMode string

const (
	ModeOnSite WorkMode = "Presencial"
	ModeHybrid WorkMode = "Híbrido"
	ModeRemote WorkMode = "Remoto"
)

// JobStatus is the publication state of a job posting
type JobStatus string

const (
	JobActive JobStatus = "active"
	JobPaused JobStatus = "paused"
)

// JobFields holds everything a company fills in the job form
type JobFields struct {
	Company          string         `json:"company"`
	Site             string         `json:"site,omitempty"`
	Email            string         `json:"email,omitempty"`
	Phone            string         `json:"phone,omitempty"`
	Title            string         `json:"title"`
	Location         string         `json:"location"`
	Type             EmploymentType `json:"type"`
	Mode             WorkMode       `json:"mode"`
	Seniority        string         `json:"seniority,omitempty"`
	Salary           string         `json:"salary,omitempty"`
	Summary          string         `json:"summary,omitempty"`
	Description      string         `json:"description,omitempty"`
	Responsibilities string         `json:"responsibilities,omitempty"`
	Requirements     string         `json:"requirements,omitempty"`
	Benefits         string         `json:"benefits,omitempty"`
	Deadline         string         `json:"deadline,omitempty"`
	ApplyURL         string         `json:"applyUrl,omitempty"`
	Tags             []string       `json:"tags"`
	Highlight        bool           `json:"highlight"`
	AcceptRemote     bool           `json:"acceptRemote"`
	ReceiveEmail     bool           `json:"receiveEmail"`
}

// JobPosting represents an employment opportunity
type JobPosting struct {
	ID        string `json:"id"`
	CompanyID string `json:"companyId"`
	JobFields
	Status    JobStatus `json:"status"`
	PostedAt  string    `json:"postedAt,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Active reports whether the posting accepts applications. Records written
// before status existed count as active.
func (j JobPosting) Active() bool {
	return j.Status == "" || j.Status == JobActive
}

// ModuleProgress is the completion state of one course module
type ModuleProgress struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// EnrollmentSchemaVersion is bumped whenever the stored enrollment shape changes
const EnrollmentSchemaVersion = 2

// CourseEnrollment is a user's progress in one course
type CourseEnrollment struct {
	CourseID      string           `json:"id"`
	Title         string           `json:"title"`
	Level         string           `json:"level,omitempty"`
	Progress      int              `json:"progress"`
	Modules       []ModuleProgress `json:"modules"`
	EnrolledAt    time.Time        `json:"enrolledAt"`
	LastAccessed  *time.Time       `json:"lastAccessed,omitempty"`
	CompletedAt   *time.Time       `json:"completedAt,omitempty"`
	SchemaVersion int              `json:"schemaVersion,omitempty"`
}

// CompletedModules counts modules marked as completed
func (e CourseEnrollment) CompletedModules() int {
	n := 0
	for _, m := range e.Modules {
		if m.Completed {
			n++
		}
	}
	return n
}

// ApplicationStatus is the review state of a job application
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pendente"
	ApplicationViewed   ApplicationStatus = "visualizado"
	ApplicationApproved ApplicationStatus = "aprovado"
	ApplicationRejected ApplicationStatus = "rejeitado"
)

// JobApplication represents a candidate's application to one job posting
type JobApplication struct {
	ID        string            `json:"id"`
	JobID     string            `json:"jobId"`
	JobTitle  string            `json:"jobTitle"`
	Company   string            `json:"company"`
	UserID    string            `json:"userId"`
	AppliedAt time.Time         `json:"appliedAt"`
	Status    ApplicationStatus `json:"status"`
	UpdatedAt *time.Time        `json:"updatedAt,omitempty"`
}

// Course is an entry of the built-in course catalog
type Course struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Level       string   `json:"level"` // basico, intermediario, avancado
	Duration    string   `json:"duration"`
	Instructor  string   `json:"instructor"`
	Modules     []Module `json:"modules"`
}

// Module is one lesson of a catalog course
type Module struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Duration string `json:"duration,omitempty"`
}
