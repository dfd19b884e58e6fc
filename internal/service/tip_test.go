package service_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/whatssound/tipservice/internal/config"
	"github.com/whatssound/tipservice/internal/constants"
	"github.com/whatssound/tipservice/internal/metrics"
	"github.com/whatssound/tipservice/internal/mocks"
	"github.com/whatssound/tipservice/internal/model"
	"github.com/whatssound/tipservice/internal/repository"
	"github.com/whatssound/tipservice/internal/service"
	"github.com/whatssound/tipservice/internal/tipping"
	"github.com/whatssound/tipservice/pkg/paymentprocessor"
	"go.uber.org/zap"
)

type tipDeps struct {
	tips    *mocks.TipRepository
	songs   *mocks.SongRepository
	events  *mocks.TipEventRepository
	tx      *mocks.TxManager
	payment *mocks.PaymentService
	cache   *mocks.LeaderboardCache
}

func testConfig(mode tipping.PaymentMode) *config.Config {
	return &config.Config{
		Tips:        tipping.Config{Mode: mode, Fees: tipping.DefaultFeeConfig()},
		Persistence: config.Persistence{MaxRetries: 3, RetryDelay: time.Millisecond},
		Processor:   paymentprocessor.Config{MaxRetries: 2},
		Redis:       config.Redis{LeaderboardTTL: time.Minute},
	}
}

func newTipService(mode tipping.PaymentMode) (service.TipService, *tipDeps) {
	deps := &tipDeps{
		tips:    &mocks.TipRepository{},
		songs:   &mocks.SongRepository{},
		events:  &mocks.TipEventRepository{},
		tx:      &mocks.TxManager{},
		payment: &mocks.PaymentService{},
		cache:   &mocks.LeaderboardCache{},
	}

	svc := service.NewTipService(deps.tips, deps.songs, deps.events, deps.tx, deps.payment, deps.cache,
		testConfig(mode), metrics.New(prometheus.NewRegistry()), zap.NewNop())

	return svc, deps
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()

	var serviceErr service.Error
	require.True(t, errors.As(err, &serviceErr), "expected service.Error, got %v", err)
	assert.Equal(t, code, serviceErr.Code)
}

func int64Ptr(v int64) *int64 { return &v }

func withID(id int64) func(args mock.Arguments) {
	return func(args mock.Arguments) {
		args.Get(1).(*model.Tip).ID = id
	}
}

func TestTip_QuoteFees(t *testing.T) {
	svc, _ := newTipService(tipping.PaymentModeTest)

	t.Run("flat schedule", func(t *testing.T) {
		quote, err := svc.QuoteFees(10)

		require.NoError(t, err)
		assert.Equal(t, "10.00", quote.GrossAmount.StringFixed(2))
		assert.Equal(t, "0.00", quote.ProcessorFee.StringFixed(2))
		assert.Equal(t, "1.30", quote.PlatformFee.StringFixed(2))
		assert.Equal(t, "8.70", quote.NetAmount.StringFixed(2))
		assert.InDelta(t, 0.87, quote.NetShare, 1e-9)
		assert.Equal(t, "EUR", quote.Currency)
	})

	t.Run("below minimum", func(t *testing.T) {
		_, err := svc.QuoteFees(0.5)

		assertCode(t, err, constants.ErrCodeValidationFailed)
		assert.Equal(t, "Minimum is 1", err.Error())
	})
}

func TestTip_SendTip(t *testing.T) {
	ctx := context.Background()

	cmd := service.SendTipCommand{
		ClientTipID:  "client-1",
		SenderID:     "listener-1",
		SenderName:   "Lucia",
		ReceiverID:   "dj-1",
		ReceiverName: "DJ Nova",
		SessionID:    "session-1",
		SongID:       int64Ptr(7),
		Amount:       10.5,
		Message:      "great set",
	}

	t.Run("test mode settles and boosts the song", func(t *testing.T) {
		svc, deps := newTipService(tipping.PaymentModeTest)

		deps.songs.On("GetByID", ctx, int64(7)).Return(&model.Song{ID: 7}, nil)
		deps.tx.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		deps.tips.On("Create", mock.Anything, mock.MatchedBy(func(tip *model.Tip) bool {
			return tip.IdempotencyKey == "listener-1:client-1" &&
				tip.Status == tipping.StatusTest &&
				tip.PlatformFee.StringFixed(2) == "1.37" &&
				tip.NetAmount.StringFixed(2) == "9.13" &&
				tip.SettledAt != nil
		})).Run(withID(42)).Return(nil)
		deps.songs.On("AddBoost", mock.Anything, int64(7), 10).Return(nil)
		deps.cache.On("Invalidate", ctx).Return(nil)

		result, err := svc.SendTip(ctx, cmd)

		require.NoError(t, err)
		assert.False(t, result.Duplicate)
		assert.Equal(t, int64(42), result.Tip.ID)
		assert.Equal(t, tipping.StatusTest, result.Tip.Status)
		assert.Equal(t, "Lucia", result.Tip.SenderName)
		assert.Equal(t, "session-1", *result.Tip.SessionID)
		deps.events.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		deps.tips.AssertExpectations(t)
		deps.songs.AssertExpectations(t)
		deps.cache.AssertExpectations(t)
	})

	t.Run("live mode writes a charge event", func(t *testing.T) {
		svc, deps := newTipService(tipping.PaymentModeLive)

		deps.songs.On("GetByID", ctx, int64(7)).Return(&model.Song{ID: 7}, nil)
		deps.tx.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		deps.tips.On("Create", mock.Anything, mock.MatchedBy(func(tip *model.Tip) bool {
			return tip.Status == tipping.StatusPending && tip.SettledAt == nil
		})).Run(withID(42)).Return(nil)
		deps.events.On("Create", mock.Anything, mock.MatchedBy(func(event *model.TipEvent) bool {
			return event.TipID == 42 && event.Kind == model.TipEventKindCharge && !event.Published
		})).Return(nil)

		result, err := svc.SendTip(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, tipping.StatusPending, result.Tip.Status)
		assert.Nil(t, result.Tip.SettledAt)
		deps.songs.AssertNotCalled(t, "AddBoost", mock.Anything, mock.Anything, mock.Anything)
		deps.cache.AssertNotCalled(t, "Invalidate", mock.Anything)
		deps.events.AssertExpectations(t)
	})

	t.Run("duplicate returns the stored tip", func(t *testing.T) {
		svc, deps := newTipService(tipping.PaymentModeTest)

		existing := &model.Tip{
			ID:             9,
			IdempotencyKey: "listener-1:client-1",
			SenderID:       "listener-1",
			SenderName:     "Lucia",
			ReceiverID:     "dj-1",
			Amount:         decimal.RequireFromString("10.50"),
			Status:         tipping.StatusTest,
		}

		deps.songs.On("GetByID", ctx, int64(7)).Return(&model.Song{ID: 7}, nil)
		deps.tx.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		deps.tips.On("Create", mock.Anything, mock.Anything).Return(repository.ErrTipDuplicate)
		deps.tips.On("GetByIdempotencyKey", ctx, "listener-1:client-1").Return(existing, nil)

		result, err := svc.SendTip(ctx, cmd)

		require.NoError(t, err)
		assert.True(t, result.Duplicate)
		assert.Equal(t, int64(9), result.Tip.ID)
		deps.tips.AssertNumberOfCalls(t, "Create", 1)
		deps.songs.AssertNotCalled(t, "AddBoost", mock.Anything, mock.Anything, mock.Anything)
		deps.cache.AssertNotCalled(t, "Invalidate", mock.Anything)
	})

	t.Run("anonymous sender is masked", func(t *testing.T) {
		svc, deps := newTipService(tipping.PaymentModeTest)

		anonymous := cmd
		anonymous.SongID = nil
		anonymous.IsAnonymous = true

		deps.tx.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		deps.tips.On("Create", mock.Anything, mock.MatchedBy(func(tip *model.Tip) bool {
			return tip.SenderID == "listener-1" && tip.IsAnonymous
		})).Run(withID(43)).Return(nil)
		deps.cache.On("Invalidate", ctx).Return(nil)

		result, err := svc.SendTip(ctx, anonymous)

		require.NoError(t, err)
		assert.Equal(t, tipping.AnonymousSenderID, result.Tip.SenderID)
		assert.Equal(t, tipping.AnonymousSenderName, result.Tip.SenderName)
	})

	t.Run("missing client id gets a generated one", func(t *testing.T) {
		svc, deps := newTipService(tipping.PaymentModeTest)

		generated := cmd
		generated.ClientTipID = ""
		generated.SongID = nil

		deps.tx.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		deps.tips.On("Create", mock.Anything, mock.MatchedBy(func(tip *model.Tip) bool {
			return strings.HasPrefix(tip.IdempotencyKey, "listener-1:") && len(tip.IdempotencyKey) > len("listener-1:")
		})).Run(withID(44)).Return(nil)
		deps.cache.On("Invalidate", ctx).Return(nil)

		_, err := svc.SendTip(ctx, generated)

		require.NoError(t, err)
		deps.tips.AssertExpectations(t)
	})

	t.Run("rejected before any write", func(t *testing.T) {
		testCases := []struct {
			name    string
			mutate  func(cmd *service.SendTipCommand)
			code    string
			message string
		}{
			{
				name:    "below minimum",
				mutate:  func(cmd *service.SendTipCommand) { cmd.Amount = 0.99 },
				code:    constants.ErrCodeValidationFailed,
				message: "Minimum is 1",
			},
			{
				name:    "above maximum",
				mutate:  func(cmd *service.SendTipCommand) { cmd.Amount = 500.01 },
				code:    constants.ErrCodeValidationFailed,
				message: "Maximum is 500",
			},
			{
				name:    "missing sender",
				mutate:  func(cmd *service.SendTipCommand) { cmd.SenderID = " " },
				code:    constants.ErrCodeValidationFailed,
				message: "Sender is required",
			},
			{
				name:    "missing receiver",
				mutate:  func(cmd *service.SendTipCommand) { cmd.ReceiverID = "" },
				code:    constants.ErrCodeValidationFailed,
				message: "Receiver is required",
			},
			{
				name:   "self tip",
				mutate: func(cmd *service.SendTipCommand) { cmd.ReceiverID = cmd.SenderID },
				code:   constants.ErrCodeSelfTip,
			},
			{
				name:   "message too long",
				mutate: func(cmd *service.SendTipCommand) { cmd.Message = strings.Repeat("x", 281) },
				code:   constants.ErrCodeValidationFailed,
			},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				svc, deps := newTipService(tipping.PaymentModeTest)

				invalid := cmd
				tc.mutate(&invalid)

				_, err := svc.SendTip(ctx, invalid)

				assertCode(t, err, tc.code)
				if tc.message != "" {
					assert.Equal(t, tc.message, err.Error())
				}
				deps.songs.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
				deps.tx.AssertNotCalled(t, "WithTx", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("unknown song", func(t *testing.T) {
		svc, deps := newTipService(tipping.PaymentModeTest)

		deps.songs.On("GetByID", ctx, int64(7)).Return(nil, repository.ErrSongNotFound)

		_, err := svc.SendTip(ctx, cmd)

		assertCode(t, err, constants.ErrCodeSongNotFound)
		deps.tx.AssertNotCalled(t, "WithTx", mock.Anything, mock.Anything)
	})

	t.Run("write retried until it succeeds", func(t *testing.T) {
		svc, deps := newTipService(tipping.PaymentModeTest)

		noSong := cmd
		noSong.SongID = nil

		deps.tx.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		deps.tips.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection reset")).Once()
		deps.tips.On("Create", mock.Anything, mock.Anything).Run(withID(45)).Return(nil).Once()
		deps.cache.On("Invalidate", ctx).Return(nil)

		result, err := svc.SendTip(ctx, noSong)

		require.NoError(t, err)
		assert.Equal(t, int64(45), result.Tip.ID)
		deps.tips.AssertNumberOfCalls(t, "Create", 2)
	})

	t.Run("write failing on every attempt", func(t *testing.T) {
		svc, deps := newTipService(tipping.PaymentModeTest)

		noSong := cmd
		noSong.SongID = nil

		dbErr := errors.New("deadlock found")
		deps.tx.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		deps.tips.On("Create", mock.Anything, mock.Anything).Return(dbErr)

		_, err := svc.SendTip(ctx, noSong)

		assertCode(t, err, constants.ErrCodePersistenceFailed)

		var persistenceErr *service.PersistenceError
		require.True(t, errors.As(err, &persistenceErr))
		assert.Equal(t, "send_tip", persistenceErr.Op)
		assert.Equal(t, 3, persistenceErr.Attempts)
		assert.ErrorIs(t, err, dbErr)
		deps.tips.AssertNumberOfCalls(t, "Create", 3)
		deps.cache.AssertNotCalled(t, "Invalidate", mock.Anything)
	})

	t.Run("cancelled write is reported without retrying", func(t *testing.T) {
		svc, deps := newTipService(tipping.PaymentModeTest)

		noSong := cmd
		noSong.SongID = nil

		deps.tx.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		deps.tips.On("Create", mock.Anything, mock.Anything).Return(fmt.Errorf("insert tip: %w", context.Canceled))

		_, err := svc.SendTip(ctx, noSong)

		assertCode(t, err, constants.ErrCodePersistenceFailed)

		var persistenceErr *service.PersistenceError
		require.True(t, errors.As(err, &persistenceErr))
		assert.Equal(t, "send_tip", persistenceErr.Op)
		assert.Equal(t, 1, persistenceErr.Attempts)
		assert.ErrorIs(t, err, context.Canceled)
		deps.tips.AssertNumberOfCalls(t, "Create", 1)
	})

	t.Run("cache failure does not fail the send", func(t *testing.T) {
		svc, deps := newTipService(tipping.PaymentModeTest)

		noSong := cmd
		noSong.SongID = nil

		deps.tx.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		deps.tips.On("Create", mock.Anything, mock.Anything).Run(withID(46)).Return(nil)
		deps.cache.On("Invalidate", ctx).Return(errors.New("redis down"))

		_, err := svc.SendTip(ctx, noSong)

		assert.NoError(t, err)
	})
}

func pendingTip() *model.Tip {
	return &model.Tip{
		ID:         42,
		SenderID:   "listener-1",
		SenderName: "Lucia",
		ReceiverID: "dj-1",
		SongID:     int64Ptr(7),
		Amount:     decimal.RequireFromString("10.00"),
		Currency:   "EUR",
		Status:     tipping.StatusPending,
	}
}

func TestTip_ApplyEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("confirm completes and boosts", func(t *testing.T) {
		svc, deps := newTipService(tipping.PaymentModeLive)

		deps.tips.On("GetByID", ctx, int64(42)).Return(pendingTip(), nil)
		deps.tx.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		deps.tips.On("UpdateStatus", mock.Anything, mock.MatchedBy(func(update repository.StatusUpdate) bool {
			return update.TipID == 42 &&
				update.From == tipping.StatusPending &&
				update.To == tipping.StatusCompleted &&
				update.SettledAt != nil &&
				update.FailureReason == nil
		})).Return(nil)
		deps.songs.On("AddBoost", mock.Anything, int64(7), 10).Return(nil)
		deps.cache.On("Invalidate", ctx).Return(nil)

		result, err := svc.ApplyEvent(ctx, service.ApplyTipEventCommand{TipID: 42, Event: tipping.EventConfirm})

		require.NoError(t, err)
		assert.Equal(t, tipping.StatusCompleted, result.Tip.Status)
		assert.NotNil(t, result.Tip.SettledAt)
		deps.tips.AssertExpectations(t)
		deps.songs.AssertExpectations(t)
		deps.cache.AssertExpectations(t)
	})

	t.Run("decline records the reason", func(t *testing.T) {
		svc, deps := newTipService(tipping.PaymentModeLive)

		deps.tips.On("GetByID", ctx, int64(42)).Return(pendingTip(), nil)
		deps.tx.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		deps.tips.On("UpdateStatus", mock.Anything, mock.MatchedBy(func(update repository.StatusUpdate) bool {
			return update.To == tipping.StatusFailed &&
				update.FailureReason != nil && *update.FailureReason == "card declined" &&
				update.SettledAt == nil
		})).Return(nil)

		result, err := svc.ApplyEvent(ctx, service.ApplyTipEventCommand{
			TipID:  42,
			Event:  tipping.EventDecline,
			Reason: "card declined",
		})

		require.NoError(t, err)
		assert.Equal(t, tipping.StatusFailed, result.Tip.Status)
		assert.Equal(t, "card declined", *result.Tip.FailureReason)
		deps.songs.AssertNotCalled(t, "AddBoost", mock.Anything, mock.Anything, mock.Anything)
		deps.cache.AssertNotCalled(t, "Invalidate", mock.Anything)
	})

	t.Run("invalid transition has no side effects", func(t *testing.T) {
		svc, deps := newTipService(tipping.PaymentModeTest)

		tip := pendingTip()
		tip.Status = tipping.StatusTest
		deps.tips.On("GetByID", ctx, int64(42)).Return(tip, nil)

		_, err := svc.ApplyEvent(ctx, service.ApplyTipEventCommand{TipID: 42, Event: tipping.EventRefund})

		assertCode(t, err, constants.ErrCodeInvalidTransition)

		var transitionErr *tipping.InvalidTransitionError
		require.True(t, errors.As(err, &transitionErr))
		assert.Equal(t, tipping.StatusTest, transitionErr.From)
		deps.tx.AssertNotCalled(t, "WithTx", mock.Anything, mock.Anything)
		deps.payment.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything)
	})

	t.Run("concurrent change is a conflict", func(t *testing.T) {
		svc, deps := newTipService(tipping.PaymentModeLive)

		deps.tips.On("GetByID", ctx, int64(42)).Return(pendingTip(), nil)
		deps.tx.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		deps.tips.On("UpdateStatus", mock.Anything, mock.Anything).Return(repository.ErrNoRowsAffected)

		_, err := svc.ApplyEvent(ctx, service.ApplyTipEventCommand{TipID: 42, Event: tipping.EventConfirm})

		assertCode(t, err, constants.ErrCodeTransitionConflict)
		deps.tips.AssertNumberOfCalls(t, "UpdateStatus", 1)
		deps.songs.AssertNotCalled(t, "AddBoost", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("live refund goes through the processor first", func(t *testing.T) {
		svc, deps := newTipService(tipping.PaymentModeLive)

		tip := pendingTip()
		tip.Status = tipping.StatusCompleted
		deps.tips.On("GetByID", ctx, int64(42)).Return(tip, nil)
		deps.payment.On("Refund", ctx, service.RefundPaymentCommand{
			ChargeKey:      "charge-42",
			Amount:         tip.Amount,
			Currency:       "EUR",
			IdempotencyKey: "refund-42",
			Reason:         "requested",
		}).Return(nil)
		deps.tx.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		deps.tips.On("UpdateStatus", mock.Anything, mock.MatchedBy(func(update repository.StatusUpdate) bool {
			return update.From == tipping.StatusCompleted && update.To == tipping.StatusRefunded
		})).Return(nil)
		deps.cache.On("Invalidate", ctx).Return(nil)

		result, err := svc.ApplyEvent(ctx, service.ApplyTipEventCommand{
			TipID:  42,
			Event:  tipping.EventRefund,
			Reason: "requested",
		})

		require.NoError(t, err)
		assert.Equal(t, tipping.StatusRefunded, result.Tip.Status)
		deps.payment.AssertExpectations(t)
		deps.songs.AssertNotCalled(t, "AddBoost", mock.Anything, mock.Anything, mock.Anything)
		deps.cache.AssertExpectations(t)
	})

	t.Run("failed refund leaves the tip untouched", func(t *testing.T) {
		svc, deps := newTipService(tipping.PaymentModeLive)

		tip := pendingTip()
		tip.Status = tipping.StatusCompleted
		deps.tips.On("GetByID", ctx, int64(42)).Return(tip, nil)
		deps.payment.On("Refund", ctx, mock.Anything).
			Return(service.NewServiceError(constants.ErrCodeRefundTimeout, errors.New("TIMEOUT")))

		_, err := svc.ApplyEvent(ctx, service.ApplyTipEventCommand{TipID: 42, Event: tipping.EventRefund})

		assertCode(t, err, constants.ErrCodeRefundTimeout)
		deps.tx.AssertNotCalled(t, "WithTx", mock.Anything, mock.Anything)
	})

	t.Run("missing song does not fail the transition", func(t *testing.T) {
		svc, deps := newTipService(tipping.PaymentModeLive)

		deps.tips.On("GetByID", ctx, int64(42)).Return(pendingTip(), nil)
		deps.tx.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		deps.tips.On("UpdateStatus", mock.Anything, mock.Anything).Return(nil)
		deps.songs.On("AddBoost", mock.Anything, int64(7), 10).Return(repository.ErrSongNotFound)
		deps.cache.On("Invalidate", ctx).Return(nil)

		result, err := svc.ApplyEvent(ctx, service.ApplyTipEventCommand{TipID: 42, Event: tipping.EventConfirm})

		require.NoError(t, err)
		assert.Equal(t, tipping.StatusCompleted, result.Tip.Status)
	})

	t.Run("unknown tip", func(t *testing.T) {
		svc, deps := newTipService(tipping.PaymentModeLive)

		deps.tips.On("GetByID", ctx, int64(99)).Return(nil, repository.ErrTipNotFound)

		_, err := svc.ApplyEvent(ctx, service.ApplyTipEventCommand{TipID: 99, Event: tipping.EventConfirm})

		assertCode(t, err, constants.ErrCodeTipNotFound)
	})
}

func TestTip_GetAndList(t *testing.T) {
	ctx := context.Background()

	anonymous := model.Tip{
		ID:          1,
		SenderID:    "listener-1",
		SenderName:  "Lucia",
		ReceiverID:  "dj-1",
		Amount:      decimal.RequireFromString("5.00"),
		Status:      tipping.StatusCompleted,
		IsAnonymous: true,
	}
	named := model.Tip{
		ID:         2,
		SenderID:   "listener-2",
		SenderName: "Marco",
		ReceiverID: "dj-1",
		Amount:     decimal.RequireFromString("3.00"),
		Status:     tipping.StatusTest,
	}

	t.Run("get masks anonymous sender", func(t *testing.T) {
		svc, deps := newTipService(tipping.PaymentModeTest)
		deps.tips.On("GetByID", ctx, int64(1)).Return(&anonymous, nil)

		view, err := svc.GetTip(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, tipping.AnonymousSenderID, view.SenderID)
		assert.Equal(t, tipping.AnonymousSenderName, view.SenderName)
	})

	t.Run("list applies default paging", func(t *testing.T) {
		svc, deps := newTipService(tipping.PaymentModeTest)
		deps.tips.On("ListByReceiver", ctx, "dj-1", 20, 0).Return([]model.Tip{anonymous, named}, nil)
		deps.tips.On("CountByReceiver", ctx, "dj-1").Return(int64(2), nil)

		result, err := svc.ListReceivedTips(ctx, service.ListTipsQuery{ReceiverID: "dj-1", Offset: -5})

		require.NoError(t, err)
		assert.Equal(t, int64(2), result.Total)
		require.Len(t, result.Tips, 2)
		assert.Equal(t, tipping.AnonymousSenderName, result.Tips[0].SenderName)
		assert.Equal(t, "Marco", result.Tips[1].SenderName)
	})

	t.Run("list caps the limit", func(t *testing.T) {
		svc, deps := newTipService(tipping.PaymentModeTest)
		deps.tips.On("ListByReceiver", ctx, "dj-1", 100, 10).Return([]model.Tip{}, nil)
		deps.tips.On("CountByReceiver", ctx, "dj-1").Return(int64(0), nil)

		result, err := svc.ListReceivedTips(ctx, service.ListTipsQuery{ReceiverID: "dj-1", Limit: 1000, Offset: 10})

		require.NoError(t, err)
		assert.Empty(t, result.Tips)
		assert.NotNil(t, result.Tips)
	})
}
