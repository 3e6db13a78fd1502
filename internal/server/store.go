package server

import (
	"context"

	"github.com/google/uuid"

	"github.com/jonathan/job-portal/internal/db"
	"github.com/jonathan/job-portal/internal/types"
)

// Store is the persistence used by the handlers. *db.DB implements it.
type Store interface {
	CreateUser(ctx context.Context, username, email, passwordHash, role string) (uuid.UUID, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)

	ListJobPostings(ctx context.Context) ([]types.JobPosting, error)
	CreateJobPosting(ctx context.Context, req *types.CreateJobPostingRequest, fingerprint string) (*types.JobPosting, error)

	UpsertResume(ctx context.Context, r *types.Resume) (*types.Resume, error)
	GetResumeByEmail(ctx context.Context, email string) (*types.Resume, error)
	ListResumes(ctx context.Context) ([]types.Resume, error)

	CreateApplication(ctx context.Context, req *types.ApplyRequest) (*types.Application, error)
	ListApplicationsByRecruiter(ctx context.Context, recruiterEmail string) ([]types.Application, error)

	Ping(ctx context.Context) error
	Close()
}

var _ Store = (*db.DB)(nil)
