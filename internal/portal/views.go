package portal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/job-portal/internal/ranking"
	"github.com/jonathan/job-portal/internal/types"
)

// ErrViewUnavailable is returned when the jobs view cannot be built. It
// wraps the failure of whichever fetch failed first.
var ErrViewUnavailable = errors.New("jobs view unavailable")

// JobsSource is what LoadJobsView fetches from. *Client implements it.
type JobsSource interface {
	ListJobs(ctx context.Context) ([]types.JobPosting, error)
	GetResumeByEmail(ctx context.Context, email string) (*types.Resume, error)
}

// JobsView is the ranked jobs page of a jobseeker.
type JobsView struct {
	Skills ranking.SkillSet
	Jobs   []types.JobPosting
	*ranking.Views
}

// LoadJobsView fetches the job list and the resume of email concurrently
// and ranks the jobs against the resume's skills. Both fetches must succeed;
// no partial view is returned.
func LoadJobsView(ctx context.Context, src JobsSource, email string, c ranking.Criteria, now time.Time) (*JobsView, error) {
	var (
		jobs   []types.JobPosting
		resume *types.Resume
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		jobs, err = src.ListJobs(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		resume, err = src.GetResumeByEmail(gctx, email)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrViewUnavailable, err)
	}
	if resume == nil {
		return nil, fmt.Errorf("%w: resume for %s: %w", ErrViewUnavailable, email, ErrNotFound)
	}

	skills := ranking.ParseSkills(resume.Skills)
	return &JobsView{
		Skills: skills,
		Jobs:   jobs,
		Views:  ranking.BuildViews(jobs, skills, c, now),
	}, nil
}
