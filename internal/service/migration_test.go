package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"velvet-backend/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestMigrationUnknownSession(t *testing.T) {
	sessions := newFakeSessions()
	migration := NewMigrationService(sessions, newFakeGirls(), newFakeEntries(), passthroughTxn, nil)

	res, err := migration.Run(context.Background(), bson.NewObjectID())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Success || res.Error == "" {
		t.Fatalf("expected business failure for unknown session, got %+v", res)
	}
}

func TestMigrationCompletedSessionRejected(t *testing.T) {
	sessions := newFakeSessions()
	sess := &models.OnboardingSession{UserID: bson.NewObjectID(), CurrentStep: 4}
	if err := sessions.Create(context.Background(), sess); err != nil {
		t.Fatalf("seed: %v", err)
	}
	sess.Completed = true

	migration := NewMigrationService(sessions, newFakeGirls(), newFakeEntries(), passthroughTxn, nil)
	res, err := migration.Run(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Success {
		t.Fatalf("expected rejection for completed session, got %+v", res)
	}
	if res.Error != "onboarding already completed" {
		t.Fatalf("unexpected message %q", res.Error)
	}
}

func TestMigrationWithoutStagingRows(t *testing.T) {
	sessions := newFakeSessions()
	sess := &models.OnboardingSession{UserID: bson.NewObjectID(), CurrentStep: 1}
	if err := sessions.Create(context.Background(), sess); err != nil {
		t.Fatalf("seed: %v", err)
	}

	migration := NewMigrationService(sessions, newFakeGirls(), newFakeEntries(), passthroughTxn, nil)
	res, err := migration.Run(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !res.Success {
		t.Fatalf("a session with no staging rows still completes, got %+v", res)
	}
	if res.MigratedGirls != 0 || res.MigratedEntries != 0 {
		t.Fatalf("expected zero migrations, got %+v", res)
	}
	if !sess.Completed {
		t.Fatal("session must be marked completed")
	}
}

func TestMigrationTransportFailurePropagates(t *testing.T) {
	sessions := newFakeSessions()
	sess := &models.OnboardingSession{UserID: bson.NewObjectID(), CurrentStep: 4}
	if err := sessions.Create(context.Background(), sess); err != nil {
		t.Fatalf("seed: %v", err)
	}

	boom := errors.New("connection reset")
	failingTxn := func(ctx context.Context, fn func(ctx context.Context) error) error {
		return boom
	}
	migration := NewMigrationService(sessions, newFakeGirls(), newFakeEntries(), failingTxn, nil)

	res, err := migration.Run(context.Background(), sess.ID)
	if !errors.Is(err, boom) {
		t.Fatalf("expected the transport error, got %v", err)
	}
	if res != nil {
		t.Fatal("transport failures must not produce a result")
	}
}

func TestMigrationPromotesStagingRows(t *testing.T) {
	ctx := context.Background()
	sessions := newFakeSessions()
	girls := newFakeGirls()
	entries := newFakeEntries()

	userID := bson.NewObjectID()
	sess := &models.OnboardingSession{UserID: userID, CurrentStep: 4}
	if err := sessions.Create(ctx, sess); err != nil {
		t.Fatalf("seed session: %v", err)
	}
	girl := &models.OnboardingGirl{SessionID: sess.ID, UserID: userID, Name: "Test Girl", Age: 25, Rating: 8.5}
	if err := girls.Create(ctx, girl); err != nil {
		t.Fatalf("seed girl: %v", err)
	}
	entry := &models.OnboardingDataEntry{
		SessionID: sess.ID, GirlID: girl.ID, UserID: userID,
		Date: time.Now(), Amount: 150.50, DurationMinutes: 90, NumberOfNuts: 3,
	}
	if err := entries.Create(ctx, entry); err != nil {
		t.Fatalf("seed entry: %v", err)
	}

	migration := NewMigrationService(sessions, girls, entries, passthroughTxn, nil)
	res, err := migration.Run(ctx, sess.ID)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !res.Success || res.MigratedGirls != 1 || res.MigratedEntries != 1 {
		t.Fatalf("unexpected result %+v", res)
	}

	perm := girls.promoted[0]
	if perm.UserID != userID || perm.SourceSessionID != sess.ID || perm.Rating != 8.5 {
		t.Fatalf("unexpected promoted girl %+v", perm)
	}
	permEntry := entries.promoted[0]
	if permEntry.GirlID != perm.ID || permEntry.Amount != 150.50 {
		t.Fatalf("unexpected promoted entry %+v", permEntry)
	}
}
