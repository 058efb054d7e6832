package models

import "time"

// PosterStatus represents the review state of a submitted poster
type PosterStatus string

const (
	PosterStatusPending  PosterStatus = "pending"
	PosterStatusApproved PosterStatus = "approved"
	PosterStatusRejected PosterStatus = "rejected"
)

// PaymentState represents the payment state attached to a poster submission
type PaymentState string

const (
	PaymentStatePending   PaymentState = "pending"
	PaymentStateCompleted PaymentState = "completed"
)

// Poster represents a research poster submission
type Poster struct {
	ID            string       `json:"id" validate:"required"`
	Title         string       `json:"title,omitempty"`
	Abstract      string       `json:"abstract,omitempty"`
	AuthorID      string       `json:"author_id,omitempty"`
	AuthorName    string       `json:"author_name,omitempty"`
	University    string       `json:"university,omitempty"`
	PosterURL     string       `json:"poster_url,omitempty"`
	Status        PosterStatus `json:"status,omitempty"`
	PaymentStatus PaymentState `json:"payment_status,omitempty"`
	CreatedAt     time.Time    `json:"created_at,omitempty"`
}

// Viewable reports whether the poster's file may be viewed or downloaded.
// Both approval and completed payment gate the action.
func (p Poster) Viewable() bool {
	return p.Status == PosterStatusApproved && p.PaymentStatus == PaymentStateCompleted
}

// SubmitPosterRequest represents the body of POST /posters
type SubmitPosterRequest struct {
	Title      string `json:"title"`
	Abstract   string `json:"abstract,omitempty"`
	University string `json:"university,omitempty"`
	PosterURL  string `json:"poster_url"`
}

// ReviewPosterRequest represents the body of PUT /posters/{id}/review
type ReviewPosterRequest struct {
	Status PosterStatus `json:"status"`
	Note   string       `json:"note,omitempty"`
}

// UploadResult carries the file identifier returned by an upload endpoint.
// For posters the identifier is replayed as poster_url on submission.
type UploadResult struct {
	FileID string `json:"file_id" validate:"required"`
	URL    string `json:"url,omitempty"`
}

// Article represents a journal article record
type Article struct {
	ID         string    `json:"id" validate:"required"`
	Title      string    `json:"title,omitempty"`
	Abstract   string    `json:"abstract,omitempty"`
	AuthorID   string    `json:"author_id,omitempty"`
	AuthorName string    `json:"author_name,omitempty"`
	FileURL    string    `json:"file_url,omitempty"`
	Identifier string    `json:"identifier,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}

// SubmitArticleRequest represents the body of POST /journal/articles
type SubmitArticleRequest struct {
	Title    string `json:"title"`
	Abstract string `json:"abstract,omitempty"`
	FileURL  string `json:"file_url,omitempty"`
}

// ProfessorProfile represents an entry of the professor network
type ProfessorProfile struct {
	ID                  string   `json:"id" validate:"required"`
	Name                string   `json:"name,omitempty"`
	University          string   `json:"university,omitempty"`
	Department          string   `json:"department,omitempty"`
	ResearchAreas       []string `json:"research_areas,omitempty"`
	Email               string   `json:"email,omitempty"`
	AcceptingUndergrads bool     `json:"accepting_undergrads"`
}

// StudentProfile represents an entry of the student network directory
type StudentProfile struct {
	ID         string   `json:"id" validate:"required"`
	Name       string   `json:"name,omitempty"`
	University string   `json:"university,omitempty"`
	Program    string   `json:"program,omitempty"`
	Year       int      `json:"year,omitempty"`
	Interests  []string `json:"interests,omitempty"`
}

// VolunteerOpportunity represents a volunteer listing
type VolunteerOpportunity struct {
	ID           string    `json:"id" validate:"required"`
	Title        string    `json:"title,omitempty"`
	Organization string    `json:"organization,omitempty"`
	Description  string    `json:"description,omitempty"`
	Type         string    `json:"type,omitempty"`
	Location     string    `json:"location,omitempty"`
	Link         string    `json:"link,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

// ECProfile represents an extracurricular profile entry
type ECProfile struct {
	ID          string   `json:"id" validate:"required"`
	Title       string   `json:"title,omitempty"`
	Category    string   `json:"category,omitempty"`
	University  string   `json:"university,omitempty"`
	Description string   `json:"description,omitempty"`
	Hours       int      `json:"hours,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// ECStats represents the aggregate stats returned by /ec-profiles/stats
type ECStats struct {
	TotalProfiles int            `json:"total_profiles"`
	ByCategory    map[string]int `json:"by_category,omitempty"`
	ByUniversity  map[string]int `json:"by_university,omitempty"`
}

// CheckoutSession is the external payment provider's checkout handle
type CheckoutSession struct {
	SessionID string `json:"session_id" validate:"required"`
	URL       string `json:"url" validate:"required"`
}

// CheckoutStatus represents the state of a checkout session
type CheckoutStatus struct {
	SessionID string       `json:"session_id,omitempty"`
	Status    PaymentState `json:"status" validate:"required"`
}
