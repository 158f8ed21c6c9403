// Package application manages internship and job applications: student
// submissions with resume upload, and the admin review workflow.
package application

import (
	"context"
	"io"

	"github.com/imtda/edusite/internal/api"
	"github.com/imtda/edusite/internal/ids"
)

// Service is the typed wrapper over the applications routes.
type Service struct {
	client *api.Client
}

func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// GetAll lists every application for the admin screen.
func (s *Service) GetAll(ctx context.Context) ([]Application, error) {
	return api.List[Application](ctx, s.client, api.CollectionPath(api.ResourceApplications))
}

func (s *Service) GetByID(ctx context.Context, id string) (*Application, error) {
	return api.Object[Application](ctx, s.client, api.DetailPath(api.ResourceApplications, id))
}

// SubmitForInternship files an application against an internship track.
// The resume travels as a multipart upload; resume may be nil.
func (s *Service) SubmitForInternship(ctx context.Context, app Application, resume io.Reader) (*Application, error) {
	if app.InternshipID == "" || app.StudentID == "" {
		return nil, ErrInvalidInput
	}
	return s.submit(ctx, api.SubApplicationsPath(api.ResourceInternships, app.InternshipID), app, resume)
}

// SubmitForJob files an application against an open position.
func (s *Service) SubmitForJob(ctx context.Context, app Application, resume io.Reader) (*Application, error) {
	if app.JobID == "" || app.StudentID == "" {
		return nil, ErrInvalidInput
	}
	return s.submit(ctx, api.SubApplicationsPath(api.ResourceJobs, app.JobID), app, resume)
}

func (s *Service) submit(ctx context.Context, path string, app Application, resume io.Reader) (*Application, error) {
	if app.ID == "" {
		app.ID = ids.New()
	}
	app.Status = StatusPending

	fields := map[string]string{
		"id":        app.ID,
		"studentId": app.StudentID,
		"status":    string(app.Status),
	}
	if app.InternshipID != "" {
		fields["internshipId"] = app.InternshipID
	}
	if app.JobID != "" {
		fields["jobId"] = app.JobID
	}
	if app.CoverLetter != "" {
		fields["coverLetter"] = app.CoverLetter
	}

	fileName := app.ResumeName
	if resume != nil && fileName == "" {
		fileName = "resume.pdf"
	}

	var out Application
	if err := s.client.PostMultipart(ctx, path, fields, "resume", fileName, resume, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStatus performs the admin review transition. Only Pending
// applications move, and never back to Pending.
func (s *Service) UpdateStatus(ctx context.Context, id string, current, next Status) (*Application, error) {
	if !current.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}
	var out Application
	body := map[string]string{"status": string(next)}
	if err := s.client.Patch(ctx, api.ApplicationStatusPath(id), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes an application record.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, api.DetailPath(api.ResourceApplications, id), nil)
}
