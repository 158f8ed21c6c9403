package application

import "time"

// Status is the review state of an application.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// CanTransitionTo reports whether an admin may move the application from
// s to next. Pending may become Approved or Rejected; nothing returns to
// Pending.
func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusPending && (next == StatusApproved || next == StatusRejected)
}

// Application is one internship or job application. Exactly one of
// InternshipID and JobID is set, and StudentID denormalizes the submitter.
type Application struct {
	ID           string    `json:"id"`
	StudentID    string    `json:"studentId"`
	InternshipID string    `json:"internshipId,omitempty"`
	JobID        string    `json:"jobId,omitempty"`
	Status       Status    `json:"status"`
	CoverLetter  string    `json:"coverLetter,omitempty"`
	ResumeName   string    `json:"resumeName,omitempty"`
	SubmittedAt  time.Time `json:"submittedAt,omitempty"`
}
