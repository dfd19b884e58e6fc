package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/whatssound/tipservice/internal/database"
	"github.com/whatssound/tipservice/internal/model"
	"github.com/whatssound/tipservice/internal/repository"
	"github.com/whatssound/tipservice/internal/tipping"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.NewTest()
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func newTip(key, senderID, receiverID, amount string, status tipping.Status) *model.Tip {
	now := time.Now()
	value := decimal.RequireFromString(amount)

	return &model.Tip{
		IdempotencyKey: key,
		SenderID:       senderID,
		SenderName:     "Sender " + senderID,
		ReceiverID:     receiverID,
		ReceiverName:   "DJ " + receiverID,
		Amount:         value,
		ProcessorFee:   decimal.Zero,
		PlatformFee:    decimal.Zero,
		NetAmount:      value,
		Currency:       "EUR",
		Status:         status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestTipRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewTipRepository(newTestDB(t))

	tip := newTip("listener-1:a", "listener-1", "dj-1", "10.50", tipping.StatusPending)
	require.NoError(t, repo.Create(ctx, tip))
	assert.NotZero(t, tip.ID)

	t.Run("by id", func(t *testing.T) {
		got, err := repo.GetByID(ctx, tip.ID)

		require.NoError(t, err)
		assert.Equal(t, "listener-1:a", got.IdempotencyKey)
		assert.Equal(t, tipping.StatusPending, got.Status)
		assert.True(t, decimal.RequireFromString("10.50").Equal(got.Amount))
	})

	t.Run("by idempotency key", func(t *testing.T) {
		got, err := repo.GetByIdempotencyKey(ctx, "listener-1:a")

		require.NoError(t, err)
		assert.Equal(t, tip.ID, got.ID)
	})

	t.Run("duplicate key", func(t *testing.T) {
		err := repo.Create(ctx, newTip("listener-1:a", "listener-1", "dj-1", "3.00", tipping.StatusPending))

		assert.ErrorIs(t, err, repository.ErrTipDuplicate)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 9999)
		assert.ErrorIs(t, err, repository.ErrTipNotFound)

		_, err = repo.GetByIdempotencyKey(ctx, "missing")
		assert.ErrorIs(t, err, repository.ErrTipNotFound)
	})
}

func TestTipRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewTipRepository(newTestDB(t))

	tip := newTip("listener-1:a", "listener-1", "dj-1", "10.00", tipping.StatusPending)
	require.NoError(t, repo.Create(ctx, tip))

	now := time.Now()

	t.Run("moves from the expected status", func(t *testing.T) {
		err := repo.UpdateStatus(ctx, repository.StatusUpdate{
			TipID:     tip.ID,
			From:      tipping.StatusPending,
			To:        tipping.StatusCompleted,
			SettledAt: &now,
			UpdatedAt: now,
		})
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, tip.ID)
		require.NoError(t, err)
		assert.Equal(t, tipping.StatusCompleted, got.Status)
		assert.NotNil(t, got.SettledAt)
		assert.Nil(t, got.FailureReason)
	})

	t.Run("stale expected status affects nothing", func(t *testing.T) {
		reason := "declined"
		err := repo.UpdateStatus(ctx, repository.StatusUpdate{
			TipID:         tip.ID,
			From:          tipping.StatusPending,
			To:            tipping.StatusFailed,
			FailureReason: &reason,
			UpdatedAt:     now,
		})

		assert.ErrorIs(t, err, repository.ErrNoRowsAffected)

		got, err := repo.GetByID(ctx, tip.ID)
		require.NoError(t, err)
		assert.Equal(t, tipping.StatusCompleted, got.Status)
	})
}

func TestTipRepository_ListByReceiver(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewTipRepository(newTestDB(t))

	base := time.Now().Add(-time.Hour)
	for i, key := range []string{"s:1", "s:2", "s:3"} {
		tip := newTip(key, "s", "dj-1", "2.00", tipping.StatusTest)
		tip.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, tip))
	}
	require.NoError(t, repo.Create(ctx, newTip("s:4", "s", "dj-2", "2.00", tipping.StatusTest)))

	tips, err := repo.ListByReceiver(ctx, "dj-1", 2, 0)
	require.NoError(t, err)
	require.Len(t, tips, 2)
	assert.Equal(t, "s:3", tips[0].IdempotencyKey)
	assert.Equal(t, "s:2", tips[1].IdempotencyKey)

	tips, err = repo.ListByReceiver(ctx, "dj-1", 2, 2)
	require.NoError(t, err)
	require.Len(t, tips, 1)
	assert.Equal(t, "s:1", tips[0].IdempotencyKey)

	count, err := repo.CountByReceiver(ctx, "dj-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestTipRepository_SettledTotals(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewTipRepository(newTestDB(t))

	session := "session-1"
	seed := []*model.Tip{
		newTip("a:1", "a", "dj-1", "7.00", tipping.StatusCompleted),
		newTip("a:2", "a", "dj-1", "3.25", tipping.StatusTest),
		newTip("a:3", "a", "dj-1", "5.00", tipping.StatusPending),
		newTip("a:4", "a", "dj-1", "4.00", tipping.StatusRefunded),
		newTip("b:1", "b", "dj-1", "2.00", tipping.StatusFailed),
		newTip("b:2", "b", "dj-2", "6.00", tipping.StatusCompleted),
	}
	seed[0].SessionID = &session

	anonymous := newTip("a:5", "a", "dj-1", "1.00", tipping.StatusCompleted)
	anonymous.IsAnonymous = true
	seed = append(seed, anonymous)

	for _, tip := range seed {
		require.NoError(t, repo.Create(ctx, tip))
	}

	t.Run("groups settled tips", func(t *testing.T) {
		totals, err := repo.SettledTotals(ctx, repository.TotalsFilter{})
		require.NoError(t, err)
		require.Len(t, totals, 3)

		byKey := map[string]repository.TipTotal{}
		for _, total := range totals {
			key := total.ReceiverID + "/" + total.SenderID
			if total.IsAnonymous {
				key += "/anonymous"
			}
			byKey[key] = total
		}

		assert.Equal(t, "10.25", byKey["dj-1/a"].Total.StringFixed(2))
		assert.Equal(t, int64(2), byKey["dj-1/a"].TipCount)
		assert.Equal(t, "DJ dj-1", byKey["dj-1/a"].ReceiverName)
		assert.Equal(t, "1.00", byKey["dj-1/a/anonymous"].Total.StringFixed(2))
		assert.Equal(t, "6.00", byKey["dj-2/b"].Total.StringFixed(2))
	})

	t.Run("filters by session", func(t *testing.T) {
		totals, err := repo.SettledTotals(ctx, repository.TotalsFilter{SessionID: session})
		require.NoError(t, err)
		require.Len(t, totals, 1)
		assert.Equal(t, "7.00", totals[0].Total.StringFixed(2))
	})

	t.Run("sender total", func(t *testing.T) {
		total, count, err := repo.SettledTotalBySender(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, "11.25", total.StringFixed(2))
		assert.Equal(t, int64(3), count)
	})

	t.Run("sender without tips", func(t *testing.T) {
		total, count, err := repo.SettledTotalBySender(ctx, "nobody")
		require.NoError(t, err)
		assert.True(t, total.IsZero())
		assert.Zero(t, count)
	})
}

func TestSongRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repository.NewSongRepository(db)

	song := &model.Song{SessionID: "session-1", Title: "Windowlicker", Artist: "Aphex Twin", Votes: 3}
	require.NoError(t, db.Create(song).Error)

	t.Run("add boost", func(t *testing.T) {
		require.NoError(t, repo.AddBoost(ctx, song.ID, 10))
		require.NoError(t, repo.AddBoost(ctx, song.ID, 2))

		got, err := repo.GetByID(ctx, song.ID)
		require.NoError(t, err)
		assert.Equal(t, 12, got.BoostVotes)
		assert.Equal(t, 15, got.Rank())
	})

	t.Run("unknown song", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 9999)
		assert.ErrorIs(t, err, repository.ErrSongNotFound)

		assert.ErrorIs(t, repo.AddBoost(ctx, 9999, 1), repository.ErrSongNotFound)
	})
}

func TestTipEventRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	tips := repository.NewTipRepository(db)
	events := repository.NewTipEventRepository(db)

	first := newTip("a:1", "a", "dj-1", "10.00", tipping.StatusPending)
	second := newTip("a:2", "a", "dj-1", "20.00", tipping.StatusPending)
	require.NoError(t, tips.Create(ctx, first))
	require.NoError(t, tips.Create(ctx, second))

	firstEvent := &model.TipEvent{TipID: first.ID, Kind: model.TipEventKindCharge}
	secondEvent := &model.TipEvent{TipID: second.ID, Kind: model.TipEventKindCharge}
	require.NoError(t, events.Create(ctx, firstEvent))
	require.NoError(t, events.Create(ctx, secondEvent))

	t.Run("finds unpublished in order with the tip", func(t *testing.T) {
		found, err := events.FindUnpublished(ctx, model.TipEventKindCharge, 10)
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, firstEvent.ID, found[0].ID)
		assert.Equal(t, "10.00", found[0].Tip.Amount.StringFixed(2))
		assert.Equal(t, "dj-1", found[0].Tip.ReceiverID)
	})

	t.Run("respects the batch size", func(t *testing.T) {
		found, err := events.FindUnpublished(ctx, model.TipEventKindCharge, 1)
		require.NoError(t, err)
		assert.Len(t, found, 1)
	})

	t.Run("records errors without publishing", func(t *testing.T) {
		require.NoError(t, events.RecordError(ctx, firstEvent.ID, "channel closed"))

		var stored model.TipEvent
		require.NoError(t, db.First(&stored, firstEvent.ID).Error)
		require.NotNil(t, stored.LastError)
		assert.Equal(t, "channel closed", *stored.LastError)
		assert.False(t, stored.Published)
	})

	t.Run("published events are not found again", func(t *testing.T) {
		require.NoError(t, events.MarkPublished(ctx, firstEvent.ID, time.Now()))

		found, err := events.FindUnpublished(ctx, model.TipEventKindCharge, 10)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, secondEvent.ID, found[0].ID)
	})

	t.Run("mark unknown event", func(t *testing.T) {
		err := events.MarkPublished(ctx, 9999, time.Now())
		assert.ErrorIs(t, err, repository.ErrTipEventNotFound)
	})
}

func TestTransactionManager(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	tips := repository.NewTipRepository(db)
	events := repository.NewTipEventRepository(db)
	txManager := repository.NewTransactionManager(db)

	t.Run("commits every write", func(t *testing.T) {
		tip := newTip("a:1", "a", "dj-1", "10.00", tipping.StatusPending)

		err := txManager.WithTx(ctx, func(ctx context.Context) error {
			if err := tips.Create(ctx, tip); err != nil {
				return err
			}
			return events.Create(ctx, &model.TipEvent{TipID: tip.ID, Kind: model.TipEventKindCharge})
		})
		require.NoError(t, err)

		found, err := events.FindUnpublished(ctx, model.TipEventKindCharge, 10)
		require.NoError(t, err)
		assert.Len(t, found, 1)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		failure := errors.New("boom")

		err := txManager.WithTx(ctx, func(ctx context.Context) error {
			if err := tips.Create(ctx, newTip("a:2", "a", "dj-1", "10.00", tipping.StatusPending)); err != nil {
				return err
			}
			return failure
		})
		assert.ErrorIs(t, err, failure)

		_, err = tips.GetByIdempotencyKey(ctx, "a:2")
		assert.ErrorIs(t, err, repository.ErrTipNotFound)
	})
}
