package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/job-portal/internal/types"
)

const jobPostingColumns = `id, job_title, company_name, location, job_type, salary, description,
		        project_details, skills_required, recruiter_email, created_at`

func scanJobPosting(row pgx.Row) (types.JobPosting, error) {
	var p types.JobPosting
	err := row.Scan(&p.ID, &p.Title, &p.Company, &p.Location, &p.JobType, &p.Salary,
		&p.Description, &p.ProjectDetails, &p.SkillsRequired, &p.RecruiterEmail, &p.CreatedAt)
	return p, err
}

// ListJobPostings returns all postings, newest first.
func (db *DB) ListJobPostings(ctx context.Context) ([]types.JobPosting, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+jobPostingColumns+`
		 FROM job_postings ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list job postings: %w", err)
	}
	defer rows.Close()

	postings := []types.JobPosting{}
	for rows.Next() {
		p, err := scanJobPosting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job posting: %w", err)
		}
		postings = append(postings, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate job postings: %w", err)
	}
	return postings, nil
}

// CreateJobPosting stores a posting. fingerprint identifies duplicate
// submissions; a repeat returns ErrDuplicatePosting.
func (db *DB) CreateJobPosting(ctx context.Context, req *types.CreateJobPostingRequest, fingerprint string) (*types.JobPosting, error) {
	p, err := scanJobPosting(db.pool.QueryRow(ctx,
		`INSERT INTO job_postings (job_title, company_name, location, job_type, salary, description,
		                           project_details, skills_required, recruiter_email, content_hash)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+jobPostingColumns,
		req.Title, req.Company, req.Location, req.JobType, req.Salary, req.Description,
		req.ProjectDetails, req.SkillsRequired, req.RecruiterEmail, fingerprint,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicatePosting
		}
		return nil, fmt.Errorf("failed to create job posting: %w", err)
	}
	return &p, nil
}
