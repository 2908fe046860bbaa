package service

import (
	"context"
	"errors"
	"fmt"

	"velvet-backend/internal/logger"
	"velvet-backend/internal/notify"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

// MigrationResult is the response shape of the finalize migration. Error is
// populated only for business-level failures; transport failures surface as
// a Go error instead.
type MigrationResult struct {
	Success         bool   `json:"success"`
	Error           string `json:"error,omitempty"`
	MigratedGirls   int    `json:"migrated_girls"`
	MigratedEntries int    `json:"migrated_entries"`
}

var (
	errNoOpenSession    = errors.New("onboarding session not found")
	errAlreadyCompleted = errors.New("onboarding already completed")
)

// MigrationService promotes staging rows into the permanent collections and
// marks the session completed, atomically.
type MigrationService struct {
	sessions SessionStore
	girls    GirlStore
	entries  EntryStore
	txn      TxnFunc
	notifier notify.Notifier
}

func NewMigrationService(sessions SessionStore, girls GirlStore, entries EntryStore, txn TxnFunc, notifier notify.Notifier) *MigrationService {
	return &MigrationService{
		sessions: sessions,
		girls:    girls,
		entries:  entries,
		txn:      txn,
		notifier: notifier,
	}
}

// Run executes the migration for one session. A completed or absent session
// yields {success:false, error}; calling Run twice for the same session can
// therefore never migrate twice.
func (s *MigrationService) Run(ctx context.Context, sessionID bson.ObjectID) (*MigrationResult, error) {
	res := &MigrationResult{}

	err := s.txn(ctx, func(ctx context.Context) error {
		sess, err := s.sessions.FindByID(ctx, sessionID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return errNoOpenSession
			}
			return err
		}
		if sess.Completed {
			return errAlreadyCompleted
		}

		var permGirlID bson.ObjectID
		girl, err := s.girls.FindBySession(ctx, sessionID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		if girl != nil {
			perm, err := s.girls.Promote(ctx, girl)
			if err != nil {
				return fmt.Errorf("promote girl: %w", err)
			}
			permGirlID = perm.ID
			res.MigratedGirls = 1
		}

		entry, err := s.entries.FindBySession(ctx, sessionID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		if entry != nil {
			if _, err := s.entries.Promote(ctx, entry, permGirlID); err != nil {
				return fmt.Errorf("promote data entry: %w", err)
			}
			res.MigratedEntries = 1
		}

		if err := s.sessions.MarkCompleted(ctx, sessionID); err != nil {
			if errors.Is(err, ErrNotFound) {
				// lost the compare-and-set to a concurrent finalize
				return errAlreadyCompleted
			}
			return err
		}
		return nil
	})

	switch {
	case err == nil:
		res.Success = true
		if s.notifier != nil {
			msg := fmt.Sprintf("onboarding completed: session %s (%d girls, %d entries migrated)",
				sessionID.Hex(), res.MigratedGirls, res.MigratedEntries)
			go func() {
				if err := s.notifier.Publish(context.Background(), msg); err != nil {
					logger.Warn("failed to publish completion notice", zap.Error(err))
				}
			}()
		}
	case errors.Is(err, errNoOpenSession), errors.Is(err, errAlreadyCompleted):
		res.Error = err.Error()
	default:
		return nil, err
	}
	return res, nil
}
