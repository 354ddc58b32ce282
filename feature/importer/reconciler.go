package importer

import (
	"context"
	"fmt"

	"dummy-importer/core/dummyapi"
	"dummy-importer/core/reconcile"
	"dummy-importer/feature/importer/models"

	"go.uber.org/zap"
)

// UserResult describes what reconciling one upstream user wrote.
type UserResult struct {
	DummyID int               `json:"dummy_id"`
	User    reconcile.Outcome `json:"user"`
	Bank    reconcile.Outcome `json:"bank"`
	Posts   reconcile.Tally   `json:"posts"`
}

// Reconciler upserts one upstream user with its bank and posts.
type Reconciler struct {
	api    dummyapi.Client
	logger *zap.Logger
}

// NewReconciler creates a new reconciler.
func NewReconciler(api dummyapi.Client, logger *zap.Logger) *Reconciler {
	return &Reconciler{api: api, logger: logger}
}

// ReconcileUser maps raw onto the User row keyed by its upstream id, persists
// the bank before the user and then reconciles the user's posts.
func (r *Reconciler) ReconcileUser(ctx context.Context, store Store, raw map[string]any) (*UserResult, error) {
	rec, err := decodeUser(raw)
	if err != nil {
		return nil, err
	}

	user, userOutcome, err := reconcile.FindOrNew(ctx, store.FindUserByDummyID, rec.ID)
	if err != nil {
		return nil, err
	}

	bank, bankOutcome := user.Bank, reconcile.OutcomeUpdated
	if bank == nil {
		bank, bankOutcome = &models.Bank{}, reconcile.OutcomeInserted
	}

	if err := rec.applyTo(user); err != nil {
		return nil, err
	}
	rec.Bank.applyTo(bank)

	if err := store.SaveBank(ctx, bank); err != nil {
		return nil, err
	}
	user.Bank = bank
	user.BankID = &bank.ID

	userOutcome, err = reconcile.Persist(ctx, userOutcome,
		func(ctx context.Context) error {
			return store.SaveUser(ctx, user)
		},
		func(ctx context.Context) error {
			adopted, err := r.adoptUser(ctx, store, user, rec)
			if adopted {
				bankOutcome = reconcile.OutcomeUpdated
			}
			return err
		},
	)
	if err != nil {
		return nil, err
	}

	result := &UserResult{DummyID: rec.ID, User: userOutcome, Bank: bankOutcome}

	posts := r.api.Fetch(ctx, fmt.Sprintf("posts/user/%d", rec.ID), 0, 0).Records("posts")
	for _, rawPost := range posts {
		outcome, err := r.reconcilePost(ctx, store, user, rawPost)
		if err != nil {
			return nil, fmt.Errorf("user %d: %w", rec.ID, err)
		}
		result.Posts.Add(outcome)
	}

	r.logger.Debug("Reconciled user",
		zap.Int("dummy_id", rec.ID),
		zap.String("user", string(result.User)),
		zap.String("bank", string(result.Bank)),
		zap.Int("posts", result.Posts.Total()),
	)
	return result, nil
}

// adoptUser points user at the row another writer inserted for the same dummy id.
// When that row already owns a bank, the bank created for this attempt is dropped
// and the winner's bank receives the fields instead. It reports whether the
// winner's bank was adopted.
func (r *Reconciler) adoptUser(ctx context.Context, store Store, user *models.User, rec *userRecord) (bool, error) {
	winner, err := store.LockUserByDummyID(ctx, rec.ID)
	if err != nil {
		return false, err
	}
	if winner == nil {
		return false, fmt.Errorf("save user %d: duplicate key but no existing row", rec.ID)
	}

	r.logger.Info("Adopting concurrently inserted user", zap.Int("dummy_id", rec.ID), zap.Uint("id", winner.ID))
	user.ID = winner.ID

	if winner.Bank == nil || winner.Bank.ID == user.Bank.ID {
		return false, nil
	}

	orphan := user.Bank.ID
	rec.Bank.applyTo(winner.Bank)
	if err := store.SaveBank(ctx, winner.Bank); err != nil {
		return false, err
	}
	user.Bank = winner.Bank
	user.BankID = &winner.Bank.ID
	if err := store.DeleteBank(ctx, orphan); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Reconciler) reconcilePost(ctx context.Context, store Store, owner *models.User, raw map[string]any) (reconcile.Outcome, error) {
	rec, err := decodePost(raw)
	if err != nil {
		return "", err
	}

	post, outcome, err := reconcile.FindOrNew(ctx, store.FindPostByDummyID, rec.ID)
	if err != nil {
		return "", err
	}
	rec.applyTo(post, owner)

	return reconcile.Persist(ctx, outcome,
		func(ctx context.Context) error {
			return store.SavePost(ctx, post)
		},
		func(ctx context.Context) error {
			winner, err := store.LockPostByDummyID(ctx, rec.ID)
			if err != nil {
				return err
			}
			if winner == nil {
				return fmt.Errorf("save post %d: duplicate key but no existing row", rec.ID)
			}
			post.ID = winner.ID
			return nil
		},
	)
}
