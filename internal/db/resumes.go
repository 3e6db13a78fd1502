package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/job-portal/internal/types"
)

const resumeColumns = `id, full_name, email, phone_number, linkedin, education, skills,
		        experience, certifications, hobbies, created_at, updated_at`

func scanResume(row pgx.Row) (types.Resume, error) {
	var r types.Resume
	var educationJSON, experienceJSON []byte
	err := row.Scan(&r.ID, &r.FullName, &r.Email, &r.PhoneNumber, &r.LinkedIn, &educationJSON,
		&r.Skills, &experienceJSON, &r.Certifications, &r.Hobbies, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return r, err
	}
	if err := decodeResumeJSON(&r, educationJSON, experienceJSON); err != nil {
		return r, err
	}
	return r, nil
}

func decodeResumeJSON(r *types.Resume, educationJSON, experienceJSON []byte) error {
	if len(educationJSON) > 0 {
		if err := json.Unmarshal(educationJSON, &r.Education); err != nil {
			return fmt.Errorf("failed to decode education: %w", err)
		}
	}
	r.Experience = []types.Experience{}
	if len(experienceJSON) > 0 {
		if err := json.Unmarshal(experienceJSON, &r.Experience); err != nil {
			return fmt.Errorf("failed to decode experience: %w", err)
		}
	}
	return nil
}

func encodeResumeJSON(r *types.Resume) (educationJSON, experienceJSON []byte, err error) {
	educationJSON, err = json.Marshal(r.Education)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode education: %w", err)
	}
	experience := r.Experience
	if experience == nil {
		experience = []types.Experience{}
	}
	experienceJSON, err = json.Marshal(experience)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode experience: %w", err)
	}
	return educationJSON, experienceJSON, nil
}

// UpsertResume stores a resume keyed by email, replacing any previous one.
func (db *DB) UpsertResume(ctx context.Context, r *types.Resume) (*types.Resume, error) {
	educationJSON, experienceJSON, err := encodeResumeJSON(r)
	if err != nil {
		return nil, err
	}

	saved, err := scanResume(db.pool.QueryRow(ctx,
		`INSERT INTO resumes (full_name, email, phone_number, linkedin, education, skills,
		                      experience, certifications, hobbies)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (email) DO UPDATE SET
		     full_name = EXCLUDED.full_name,
		     phone_number = EXCLUDED.phone_number,
		     linkedin = EXCLUDED.linkedin,
		     education = EXCLUDED.education,
		     skills = EXCLUDED.skills,
		     experience = EXCLUDED.experience,
		     certifications = EXCLUDED.certifications,
		     hobbies = EXCLUDED.hobbies,
		     updated_at = NOW()
		 RETURNING `+resumeColumns,
		r.FullName, normalizeEmail(r.Email), r.PhoneNumber, r.LinkedIn, educationJSON, r.Skills,
		experienceJSON, r.Certifications, r.Hobbies,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to save resume: %w", err)
	}
	return &saved, nil
}

// GetResumeByEmail returns the resume for email, or nil if none.
func (db *DB) GetResumeByEmail(ctx context.Context, email string) (*types.Resume, error) {
	r, err := scanResume(db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE email = $1`,
		normalizeEmail(email),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return &r, nil
}

// ListResumes returns every stored resume.
func (db *DB) ListResumes(ctx context.Context) ([]types.Resume, error) {
	rows, err := db.pool.Query(ctx, `SELECT `+resumeColumns+` FROM resumes ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	resumes := []types.Resume{}
	for rows.Next() {
		r, err := scanResume(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate resumes: %w", err)
	}
	return resumes, nil
}
