package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/whatssound/tipservice/internal/cache"
	"github.com/whatssound/tipservice/internal/config"
	"github.com/whatssound/tipservice/internal/constants"
	"github.com/whatssound/tipservice/internal/metrics"
	"github.com/whatssound/tipservice/internal/model"
	"github.com/whatssound/tipservice/internal/repository"
	"github.com/whatssound/tipservice/internal/tipping"
	"go.uber.org/zap"
)

const (
	MaxMessageLength = 280

	defaultListLimit = 20
	maxListLimit     = 100
)

type TipService interface {
	QuoteFees(amount float64) (FeeQuote, error)
	SendTip(ctx context.Context, cmd SendTipCommand) (TipResult, error)
	ApplyEvent(ctx context.Context, cmd ApplyTipEventCommand) (TipResult, error)
	GetTip(ctx context.Context, id int64) (TipView, error)
	ListReceivedTips(ctx context.Context, query ListTipsQuery) (ListTipsResult, error)
}

type Tip struct {
	tipRepo      repository.TipRepository
	songRepo     repository.SongRepository
	tipEventRepo repository.TipEventRepository
	txManager    repository.TxManager
	payment      PaymentService
	cache        cache.LeaderboardCache
	cfg          tipping.Config
	persister    persister
	metrics      *metrics.Metrics
	logger       *zap.Logger
}

func NewTipService(tipRepo repository.TipRepository, songRepo repository.SongRepository,
	tipEventRepo repository.TipEventRepository, txManager repository.TxManager, payment PaymentService,
	leaderboardCache cache.LeaderboardCache, cfg *config.Config, metrics *metrics.Metrics, logger *zap.Logger) TipService {
	return &Tip{
		tipRepo:      tipRepo,
		songRepo:     songRepo,
		tipEventRepo: tipEventRepo,
		txManager:    txManager,
		payment:      payment,
		cache:        leaderboardCache,
		cfg:          cfg.Tips,
		persister:    newPersister(cfg.Persistence, metrics, logger),
		metrics:      metrics,
		logger:       logger,
	}
}

// ChargeKey is the processor idempotency key of the charge for a tip. Refunds
// reference the charge by it.
func ChargeKey(tipID int64) string {
	return fmt.Sprintf("charge-%d", tipID)
}

func (t *Tip) QuoteFees(amount float64) (FeeQuote, error) {
	breakdown, err := tipping.ComputeFees(amount, t.cfg.Fees)
	if err != nil {
		return FeeQuote{}, fromDomain(err)
	}

	return FeeQuote{
		FeeBreakdown: breakdown,
		Currency:     t.currency(),
		NetShare:     breakdown.NetShare(),
	}, nil
}

func (t *Tip) SendTip(ctx context.Context, cmd SendTipCommand) (TipResult, error) {
	fees, err := tipping.ComputeFees(cmd.Amount, t.cfg.Fees)
	if err != nil {
		return TipResult{}, fromDomain(err)
	}

	senderID := strings.TrimSpace(cmd.SenderID)
	receiverID := strings.TrimSpace(cmd.ReceiverID)

	if senderID == "" {
		return TipResult{}, validationFailed("sender_id", "Sender is required")
	}

	if receiverID == "" {
		return TipResult{}, validationFailed("receiver_id", "Receiver is required")
	}

	if senderID == receiverID {
		return TipResult{}, NewServiceError(constants.ErrCodeSelfTip, ErrSelfTip)
	}

	if utf8.RuneCountInString(cmd.Message) > MaxMessageLength {
		return TipResult{}, validationFailed("message", fmt.Sprintf("Message is longer than %d characters", MaxMessageLength))
	}

	if cmd.SongID != nil {
		if _, err := t.songRepo.GetByID(ctx, *cmd.SongID); err != nil {
			if errors.Is(err, repository.ErrSongNotFound) {
				return TipResult{}, NewServiceError(constants.ErrCodeSongNotFound, err)
			}

			t.logger.Error("Failed to load song", zap.Int64("songID", *cmd.SongID), zap.Error(err))
			return TipResult{}, NewServiceError(constants.ErrCodeInternalError, err)
		}
	}

	status, err := tipping.InitialStatus(t.cfg.Mode)
	if err != nil {
		return TipResult{}, NewServiceError(constants.ErrCodeInternalError, err)
	}

	clientTipID := strings.TrimSpace(cmd.ClientTipID)
	if clientTipID == "" {
		clientTipID = uuid.NewString()
	}

	now := time.Now()
	tip := model.Tip{
		IdempotencyKey: senderID + ":" + clientTipID,
		SenderID:       senderID,
		SenderName:     strings.TrimSpace(cmd.SenderName),
		ReceiverID:     receiverID,
		ReceiverName:   strings.TrimSpace(cmd.ReceiverName),
		SongID:         cmd.SongID,
		Amount:         fees.GrossAmount,
		ProcessorFee:   fees.ProcessorFee,
		PlatformFee:    fees.PlatformFee,
		NetAmount:      fees.NetAmount,
		Currency:       t.currency(),
		Status:         status,
		IsAnonymous:    cmd.IsAnonymous,
		Message:        cmd.Message,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if cmd.SessionID != "" {
		sessionID := cmd.SessionID
		tip.SessionID = &sessionID
	}

	if tipping.IsSettled(status) {
		tip.SettledAt = &now
	}

	err = t.persister.persist(ctx, "send_tip", func(ctx context.Context) error {
		tip.ID = 0

		return t.txManager.WithTx(ctx, func(ctx context.Context) error {
			if err := t.tipRepo.Create(ctx, &tip); err != nil {
				return err
			}

			if tipping.EntersBoost(status) {
				return t.applyBoost(ctx, &tip)
			}

			return t.tipEventRepo.Create(ctx, &model.TipEvent{
				TipID:     tip.ID,
				Kind:      model.TipEventKindCharge,
				CreatedAt: now,
				UpdatedAt: now,
			})
		})
	})

	if errors.Is(err, repository.ErrTipDuplicate) {
		return t.existingTip(ctx, tip.IdempotencyKey)
	}

	if err != nil {
		t.logger.Error("Send tip failed",
			zap.String("idempotencyKey", tip.IdempotencyKey),
			zap.Error(err))
		return TipResult{}, err
	}

	t.metrics.RecordTipCreated(string(status), fees.GrossAmount.InexactFloat64(), fees.PlatformFee.InexactFloat64())
	t.logger.Info("Tip created",
		zap.Int64("tipID", tip.ID),
		zap.String("status", string(status)),
		zap.String("amount", tip.Amount.StringFixed(2)))

	if tipping.IsSettled(status) {
		t.invalidateLeaderboards(ctx)
	}

	return TipResult{Tip: newTipView(&tip)}, nil
}

func (t *Tip) ApplyEvent(ctx context.Context, cmd ApplyTipEventCommand) (TipResult, error) {
	tip, err := t.getTip(ctx, cmd.TipID)
	if err != nil {
		return TipResult{}, err
	}

	from := tip.Status
	next, err := tipping.Transition(from, cmd.Event)
	if err != nil {
		t.logger.Info("Rejected tip transition",
			zap.Int64("tipID", tip.ID),
			zap.String("status", string(from)),
			zap.String("event", string(cmd.Event)))
		return TipResult{}, fromDomain(err)
	}

	if cmd.Event == tipping.EventRefund && t.cfg.Mode == tipping.PaymentModeLive {
		err := t.payment.Refund(ctx, RefundPaymentCommand{
			ChargeKey:      ChargeKey(tip.ID),
			Amount:         tip.Amount,
			Currency:       tip.Currency,
			IdempotencyKey: fmt.Sprintf("refund-%d", tip.ID),
			Reason:         cmd.Reason,
		})
		if err != nil {
			return TipResult{}, err
		}
	}

	now := time.Now()
	update := repository.StatusUpdate{TipID: tip.ID, From: from, To: next, UpdatedAt: now}

	if next == tipping.StatusFailed {
		reason := strings.TrimSpace(cmd.Reason)
		if reason == "" {
			reason = string(cmd.Event)
		}
		update.FailureReason = &reason
	}

	if tipping.IsSettled(next) {
		update.SettledAt = &now
	}

	err = t.persister.persist(ctx, "apply_event", func(ctx context.Context) error {
		return t.txManager.WithTx(ctx, func(ctx context.Context) error {
			if err := t.tipRepo.UpdateStatus(ctx, update); err != nil {
				return err
			}

			if tipping.EntersBoost(next) {
				return t.applyBoost(ctx, tip)
			}

			return nil
		})
	})

	if errors.Is(err, repository.ErrNoRowsAffected) {
		t.logger.Info("Tip status changed concurrently",
			zap.Int64("tipID", tip.ID),
			zap.String("expected", string(from)),
			zap.String("event", string(cmd.Event)))
		return TipResult{}, NewServiceError(constants.ErrCodeTransitionConflict, err)
	}

	if err != nil {
		return TipResult{}, err
	}

	t.metrics.RecordTransition(string(from), string(next))
	t.logger.Info("Tip transitioned",
		zap.Int64("tipID", tip.ID),
		zap.String("from", string(from)),
		zap.String("to", string(next)))

	if tipping.IsSettled(from) != tipping.IsSettled(next) {
		t.invalidateLeaderboards(ctx)
	}

	tip.Status = next
	tip.FailureReason = update.FailureReason
	if update.SettledAt != nil {
		tip.SettledAt = update.SettledAt
	}
	tip.UpdatedAt = now

	return TipResult{Tip: newTipView(tip)}, nil
}

func (t *Tip) GetTip(ctx context.Context, id int64) (TipView, error) {
	tip, err := t.getTip(ctx, id)
	if err != nil {
		return TipView{}, err
	}

	return newTipView(tip), nil
}

func (t *Tip) ListReceivedTips(ctx context.Context, query ListTipsQuery) (ListTipsResult, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	offset := query.Offset
	if offset < 0 {
		offset = 0
	}

	tips, err := t.tipRepo.ListByReceiver(ctx, query.ReceiverID, limit, offset)
	if err != nil {
		t.logger.Error("Failed to list tips", zap.String("receiverID", query.ReceiverID), zap.Error(err))
		return ListTipsResult{}, NewServiceError(constants.ErrCodeInternalError, err)
	}

	total, err := t.tipRepo.CountByReceiver(ctx, query.ReceiverID)
	if err != nil {
		t.logger.Error("Failed to count tips", zap.String("receiverID", query.ReceiverID), zap.Error(err))
		return ListTipsResult{}, NewServiceError(constants.ErrCodeInternalError, err)
	}

	views := make([]TipView, 0, len(tips))
	for i := range tips {
		views = append(views, newTipView(&tips[i]))
	}

	return ListTipsResult{Tips: views, Total: total}, nil
}

func (t *Tip) getTip(ctx context.Context, id int64) (*model.Tip, error) {
	tip, err := t.tipRepo.GetByID(ctx, id)
	if err == nil {
		return tip, nil
	}

	if errors.Is(err, repository.ErrTipNotFound) {
		return nil, NewServiceError(constants.ErrCodeTipNotFound, err)
	}

	t.logger.Error("Failed to load tip", zap.Int64("tipID", id), zap.Error(err))
	return nil, NewServiceError(constants.ErrCodeInternalError, err)
}

func (t *Tip) existingTip(ctx context.Context, idempotencyKey string) (TipResult, error) {
	existing, err := t.tipRepo.GetByIdempotencyKey(ctx, idempotencyKey)
	if err != nil {
		t.logger.Error("Failed to load duplicate tip",
			zap.String("idempotencyKey", idempotencyKey),
			zap.Error(err))
		return TipResult{}, NewServiceError(constants.ErrCodeInternalError, err)
	}

	t.logger.Info("Duplicate tip, returning stored one",
		zap.Int64("tipID", existing.ID),
		zap.String("idempotencyKey", idempotencyKey))

	return TipResult{Tip: newTipView(existing), Duplicate: true}, nil
}

// applyBoost credits the tip's song. A song that no longer exists is skipped.
func (t *Tip) applyBoost(ctx context.Context, tip *model.Tip) error {
	if tip.SongID == nil {
		return nil
	}

	votes := tipping.BoostVotes(tip.Amount)
	if votes == 0 {
		return nil
	}

	err := t.songRepo.AddBoost(ctx, *tip.SongID, votes)
	if errors.Is(err, repository.ErrSongNotFound) {
		t.logger.Warn("Boosted song not found",
			zap.Int64("tipID", tip.ID),
			zap.Int64("songID", *tip.SongID))
		return nil
	}

	return err
}

func (t *Tip) invalidateLeaderboards(ctx context.Context) {
	if err := t.cache.Invalidate(ctx); err != nil {
		t.logger.Warn("Failed to invalidate leaderboard cache", zap.Error(err))
	}
}

func (t *Tip) currency() string {
	if t.cfg.Fees.Currency == "" {
		return tipping.DefaultCurrency
	}

	return t.cfg.Fees.Currency
}
