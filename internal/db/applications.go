package db

import (
	"context"
	"fmt"

	"github.com/jonathan/job-portal/internal/types"
)

// CreateApplication records a job application.
func (db *DB) CreateApplication(ctx context.Context, req *types.ApplyRequest) (*types.Application, error) {
	var a types.Application
	err := db.pool.QueryRow(ctx,
		`INSERT INTO applications (jobseeker_email, recruiter_email, job_title)
		 VALUES ($1, $2, $3)
		 RETURNING id, jobseeker_email, recruiter_email, job_title, created_at`,
		normalizeEmail(req.JobseekerEmail), normalizeEmail(req.RecruiterEmail), req.JobTitle,
	).Scan(&a.ID, &a.JobseekerEmail, &a.RecruiterEmail, &a.JobTitle, &a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return &a, nil
}

// ListApplicationsByRecruiter returns the applications sent to a recruiter,
// newest first.
func (db *DB) ListApplicationsByRecruiter(ctx context.Context, recruiterEmail string) ([]types.Application, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, jobseeker_email, recruiter_email, job_title, created_at
		 FROM applications WHERE recruiter_email = $1
		 ORDER BY created_at DESC`,
		normalizeEmail(recruiterEmail),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	apps := []types.Application{}
	for rows.Next() {
		var a types.Application
		if err := rows.Scan(&a.ID, &a.JobseekerEmail, &a.RecruiterEmail, &a.JobTitle, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate applications: %w", err)
	}
	return apps, nil
}
