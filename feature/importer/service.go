package importer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"dummy-importer/core/dummyapi"
	"dummy-importer/core/reconcile"
	"dummy-importer/core/utils"
	"dummy-importer/feature/importer/models"

	"go.uber.org/zap"
)

// DefaultLimit is the page size used when a run asks for limit 0.
const DefaultLimit = 10

var errDryRun = errors.New("dry run")

// Request selects the page of users to import and how failures are handled.
type Request struct {
	Limit           int
	Skip            int
	DryRun          bool
	ContinueOnError bool
}

// Failure records a user that could not be imported.
type Failure struct {
	DummyID int    `json:"dummy_id"`
	Error   string `json:"error"`
}

// Report summarizes one import run.
type Report struct {
	// Processed is the number of users on the fetched page, not the number changed.
	Processed int             `json:"processed"`
	Limit     int             `json:"limit"`
	Skip      int             `json:"skip"`
	DryRun    bool            `json:"dry_run"`
	Users     reconcile.Tally `json:"users"`
	Banks     reconcile.Tally `json:"banks"`
	Posts     reconcile.Tally `json:"posts"`
	Failures  []Failure       `json:"failures,omitempty"`
}

func (r *Report) add(res *UserResult) {
	r.Users.Add(res.User)
	r.Banks.Add(res.Bank)
	r.Posts.Merge(res.Posts)
}

// Service drives imports and exposes the imported data.
type Service struct {
	api        dummyapi.Client
	store      Store
	reconciler *Reconciler
	logger     *zap.Logger
	cfg        Config
	stats      *statsCache
	mu         sync.Mutex
}

// NewService creates a new import service.
func NewService(api dummyapi.Client, store Store, logger *zap.Logger, cfg Config) *Service {
	return &Service{
		api:        api,
		store:      store,
		reconciler: NewReconciler(api, logger),
		logger:     logger,
		cfg:        cfg,
		stats:      newStatsCache(time.Duration(cfg.StatsCacheSeconds) * time.Second),
	}
}

// Config returns the configuration the service was built with.
func (s *Service) Config() Config {
	return s.cfg
}

// Run imports one page of users with the configured failure policy.
func (s *Service) Run(ctx context.Context, limit, skip int) (*Report, error) {
	return s.Import(ctx, Request{Limit: limit, Skip: skip, ContinueOnError: s.cfg.ContinueOnError})
}

// Import fetches the requested page of users and reconciles every user on it.
//
// By default the first failing user aborts the run and the error is returned
// together with the partial report. With ContinueOnError the failure is recorded
// in the report and the next user is processed. Runs never overlap.
func (s *Service) Import(ctx context.Context, req Request) (*Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !req.DryRun {
		defer s.stats.invalidate()
	}

	limit, skip := req.Limit, req.Skip
	if limit <= 0 {
		limit = DefaultLimit
	}
	if skip < 0 {
		skip = 0
	}

	l := s.logger.With(zap.Int("limit", limit), zap.Int("skip", skip), zap.Bool("dry_run", req.DryRun))
	l.Info("Starting import")

	users := s.api.Fetch(ctx, "users", limit, skip).Records("users")
	report := &Report{Processed: len(users), Limit: limit, Skip: skip, DryRun: req.DryRun}

	for _, raw := range users {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		res, err := s.importUser(ctx, raw, req.DryRun)
		if err != nil {
			dummyID, _ := utils.ToInt(raw["id"])
			if !req.ContinueOnError {
				return report, fmt.Errorf("import user %d: %w", dummyID, err)
			}
			l.Warn("Skipping user", zap.Int("dummy_id", dummyID), zap.Error(err))
			report.Failures = append(report.Failures, Failure{DummyID: dummyID, Error: err.Error()})
			continue
		}
		report.add(res)
	}

	l.Info("Import finished",
		zap.Int("processed", report.Processed),
		zap.Int("users_inserted", report.Users.Inserted),
		zap.Int("users_updated", report.Users.Updated),
		zap.Int("posts", report.Posts.Total()),
		zap.Int("failures", len(report.Failures)),
	)
	return report, nil
}

func (s *Service) importUser(ctx context.Context, raw map[string]any, dryRun bool) (*UserResult, error) {
	if !s.cfg.Transactional && !dryRun {
		return s.reconciler.ReconcileUser(ctx, s.store, raw)
	}

	var res *UserResult
	err := s.store.Transaction(ctx, func(tx Store) error {
		var err error
		res, err = s.reconciler.ReconcileUser(ctx, tx, raw)
		if err != nil {
			return err
		}
		if dryRun {
			return errDryRun
		}
		return nil
	})
	if err != nil && !errors.Is(err, errDryRun) {
		return nil, err
	}
	return res, nil
}

// Stats returns the number of imported rows per table.
// Counts may lag writes from other processes by up to StatsCacheSeconds.
func (s *Service) Stats(ctx context.Context) (*Counts, error) {
	return s.stats.get(ctx, s.store.Counts)
}

// GetUser returns the user with its bank and posts, or nil when absent.
func (s *Service) GetUser(ctx context.Context, dummyID int) (*models.User, error) {
	return s.store.UserDetail(ctx, dummyID)
}

// DeleteUser removes a user with its bank and posts.
func (s *Service) DeleteUser(ctx context.Context, dummyID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.stats.invalidate()
	return s.store.DeleteUser(ctx, dummyID)
}
