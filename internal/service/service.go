// Package service assembles the engine input bundle from GitHub and runs
// one evaluation. All network retrieval happens here, before the pure
// engine is invoked.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/slopguard/slopguard/config"
	"github.com/slopguard/slopguard/internal/engine"
	"github.com/slopguard/slopguard/internal/ghclient"
	"github.com/slopguard/slopguard/internal/log"
	"github.com/slopguard/slopguard/internal/model"
	"github.com/slopguard/slopguard/internal/scoring"
)

// Evaluation is the outcome of one run: the snapshot the engine saw and
// the scoring result. Bypassed is set when the author was allowlisted
// and no checks ran.
type Evaluation struct {
	Snapshot model.Snapshot
	Result   scoring.Result
	Bypassed bool
}

// Service coordinates retrieval and evaluation for single PRs.
type Service struct {
	gh  *ghclient.Client
	cfg *config.Config
}

// New creates a Service.
func New(gh *ghclient.Client, cfg *config.Config) *Service {
	return &Service{gh: gh, cfg: cfg}
}

// Evaluate fetches everything the engine needs for one PR and scores it.
// The allowlist is consulted first: allowlisted authors skip retrieval of
// history and diff data entirely.
func (s *Service) Evaluate(ctx context.Context, owner, repo string, number int, now time.Time) (*Evaluation, error) {
	pr, err := s.gh.FetchPullRequest(ctx, owner, repo, number)
	if err != nil {
		return nil, err
	}

	if s.cfg.IsAllowlisted(pr.Author) {
		log.Info("author allowlisted, skipping evaluation", "author", pr.Author)
		return &Evaluation{
			Snapshot: model.Snapshot{PR: pr},
			Result:   engine.Bypass(pr.Author),
			Bypassed: true,
		}, nil
	}

	snap, err := s.assembleSnapshot(ctx, owner, repo, pr, now)
	if err != nil {
		return nil, err
	}

	eng := engine.New(s.cfg.GetWeights(), s.cfg.GetThresholds())
	result := eng.Evaluate(snap, now)

	log.Info("evaluation complete",
		"pr", fmt.Sprintf("%s/%s#%d", owner, repo, number),
		"score", result.FinalScore,
		"verdict", result.Verdict)

	return &Evaluation{Snapshot: snap, Result: result}, nil
}

// assembleSnapshot fetches the remaining inputs in parallel. The sources
// are independent, so one errgroup pass covers them all.
func (s *Service) assembleSnapshot(ctx context.Context, owner, repo string, pr model.PullRequest, now time.Time) (model.Snapshot, error) {
	snap := model.Snapshot{PR: pr}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		files, err := s.gh.ListChangedFiles(gctx, owner, repo, pr.Number)
		if err != nil {
			return fmt.Errorf("changed files: %w", err)
		}
		mu.Lock()
		snap.Files = files
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		prs, err := s.gh.RecentRepoPRs(gctx, owner, repo, pr.Author, now)
		if err != nil {
			return fmt.Errorf("same-repo history: %w", err)
		}
		mu.Lock()
		snap.RecentRepoPRs = prs
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		prs, err := s.gh.RecentPublicPRs(gctx, pr.Author, now)
		if err != nil {
			return fmt.Errorf("cross-repo history: %w", err)
		}
		mu.Lock()
		snap.RecentPublicPRs = prs
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		stats, err := s.gh.FetchAbandonmentStats(gctx, owner, repo, pr.Author)
		if err != nil {
			return fmt.Errorf("abandonment stats: %w", err)
		}
		mu.Lock()
		snap.Abandonment = stats
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		projectDeps, err := s.gh.ProjectDependencies(gctx, owner, repo, pr.BaseRef)
		if err != nil {
			return fmt.Errorf("project dependencies: %w", err)
		}
		mu.Lock()
		snap.ProjectDeps = projectDeps
		mu.Unlock()
		return nil
	})

	if err := g.Wait(); err != nil {
		return model.Snapshot{}, err
	}

	return snap, nil
}
