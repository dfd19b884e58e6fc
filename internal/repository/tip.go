package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/whatssound/tipservice/internal/model"
	"github.com/whatssound/tipservice/internal/tipping"
	"gorm.io/gorm"
)

type StatusUpdate struct {
	TipID         int64
	From          tipping.Status
	To            tipping.Status
	FailureReason *string
	SettledAt     *time.Time
	UpdatedAt     time.Time
}

type TotalsFilter struct {
	SessionID string
}

// TipTotal is one settled (receiver, sender, anonymity) group.
type TipTotal struct {
	ReceiverID   string
	ReceiverName string
	SenderID     string
	SenderName   string
	IsAnonymous  bool
	Total        decimal.Decimal
	TipCount     int64
}

type TipRepository interface {
	Create(ctx context.Context, tip *model.Tip) error
	GetByID(ctx context.Context, id int64) (*model.Tip, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*model.Tip, error)
	UpdateStatus(ctx context.Context, update StatusUpdate) error
	ListByReceiver(ctx context.Context, receiverID string, limit, offset int) ([]model.Tip, error)
	CountByReceiver(ctx context.Context, receiverID string) (int64, error)
	SettledTotals(ctx context.Context, filter TotalsFilter) ([]TipTotal, error)
	SettledTotalBySender(ctx context.Context, senderID string) (decimal.Decimal, int64, error)
}

type Tip struct {
	db *gorm.DB
}

func NewTipRepository(db *gorm.DB) TipRepository {
	return &Tip{db: db}
}

func (t *Tip) Create(ctx context.Context, tip *model.Tip) error {
	err := GetTx(ctx, t.db).Create(tip).Error
	if err == nil {
		return nil
	}

	if isDuplicateKey(err) {
		return ErrTipDuplicate
	}

	return err
}

func (t *Tip) GetByID(ctx context.Context, id int64) (*model.Tip, error) {
	var tip model.Tip

	err := GetTx(ctx, t.db).Where("id = ?", id).First(&tip).Error
	if err == nil {
		return &tip, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTipNotFound
	}

	return nil, err
}

func (t *Tip) GetByIdempotencyKey(ctx context.Context, key string) (*model.Tip, error) {
	var tip model.Tip

	err := GetTx(ctx, t.db).Where("idempotency_key = ?", key).First(&tip).Error
	if err == nil {
		return &tip, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTipNotFound
	}

	return nil, err
}

// UpdateStatus moves a tip from update.From to update.To only if it is still in
// update.From. ErrNoRowsAffected means another writer got there first.
func (t *Tip) UpdateStatus(ctx context.Context, update StatusUpdate) error {
	values := map[string]any{
		"status":     string(update.To),
		"updated_at": update.UpdatedAt,
	}

	if update.FailureReason != nil {
		values["failure_reason"] = *update.FailureReason
	}

	if update.SettledAt != nil {
		values["settled_at"] = *update.SettledAt
	}

	result := GetTx(ctx, t.db).Model(&model.Tip{}).
		Where("id = ? AND status = ?", update.TipID, string(update.From)).
		Updates(values)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}

	return nil
}

func (t *Tip) ListByReceiver(ctx context.Context, receiverID string, limit, offset int) ([]model.Tip, error) {
	var tips []model.Tip

	err := GetTx(ctx, t.db).Where("receiver_id = ?", receiverID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&tips).Error
	if err != nil {
		return nil, err
	}

	return tips, nil
}

func (t *Tip) CountByReceiver(ctx context.Context, receiverID string) (int64, error) {
	var count int64

	err := GetTx(ctx, t.db).Model(&model.Tip{}).
		Where("receiver_id = ?", receiverID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (t *Tip) SettledTotals(ctx context.Context, filter TotalsFilter) ([]TipTotal, error) {
	var totals []TipTotal

	query := GetTx(ctx, t.db).Model(&model.Tip{}).
		Select("receiver_id, MAX(receiver_name) AS receiver_name, sender_id, MAX(sender_name) AS sender_name, " +
			"is_anonymous, SUM(amount) AS total, COUNT(*) AS tip_count").
		Where("status IN ?", settledStatuses())

	if filter.SessionID != "" {
		query = query.Where("session_id = ?", filter.SessionID)
	}

	err := query.Group("receiver_id, sender_id, is_anonymous").
		Order("receiver_id, sender_id").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	for i := range totals {
		totals[i].Total = totals[i].Total.Round(2)
	}

	return totals, nil
}

func (t *Tip) SettledTotalBySender(ctx context.Context, senderID string) (decimal.Decimal, int64, error) {
	var row struct {
		Total    decimal.Decimal
		TipCount int64
	}

	err := GetTx(ctx, t.db).Model(&model.Tip{}).
		Select("COALESCE(SUM(amount), 0) AS total, COUNT(*) AS tip_count").
		Where("sender_id = ? AND status IN ?", senderID, settledStatuses()).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, 0, err
	}

	return row.Total.Round(2), row.TipCount, nil
}

func settledStatuses() []string {
	statuses := tipping.SettledStatuses()
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}
