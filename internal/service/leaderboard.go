package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/whatssound/tipservice/internal/cache"
	"github.com/whatssound/tipservice/internal/config"
	"github.com/whatssound/tipservice/internal/constants"
	"github.com/whatssound/tipservice/internal/metrics"
	"github.com/whatssound/tipservice/internal/repository"
	"github.com/whatssound/tipservice/internal/tipping"
	"go.uber.org/zap"
)

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
)

type LeaderboardService interface {
	DJLeaderboard(ctx context.Context, query LeaderboardQuery) ([]LeaderboardEntry, error)
	SupporterLeaderboard(ctx context.Context, query LeaderboardQuery) ([]LeaderboardEntry, error)
	GoldenBoostBalance(ctx context.Context, senderID string) (GoldenBoostBalance, error)
}

type Leaderboard struct {
	tipRepo repository.TipRepository
	cache   cache.LeaderboardCache
	ttl     time.Duration
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewLeaderboardService(tipRepo repository.TipRepository, leaderboardCache cache.LeaderboardCache,
	cfg *config.Config, metrics *metrics.Metrics, logger *zap.Logger) LeaderboardService {
	return &Leaderboard{
		tipRepo: tipRepo,
		cache:   leaderboardCache,
		ttl:     cfg.Redis.LeaderboardTTL,
		metrics: metrics,
		logger:  logger,
	}
}

// scoreboard accumulates settled totals per entity in first-seen order.
type scoreboard struct {
	order  []string
	names  map[string]string
	totals map[string]decimal.Decimal
	boosts map[string]int
}

func newScoreboard() *scoreboard {
	return &scoreboard{
		names:  map[string]string{},
		totals: map[string]decimal.Decimal{},
		boosts: map[string]int{},
	}
}

func (s *scoreboard) add(id, name string, total decimal.Decimal) {
	if _, seen := s.totals[id]; !seen {
		s.order = append(s.order, id)
		s.totals[id] = decimal.Zero
	}

	if s.names[id] == "" {
		s.names[id] = name
	}

	s.totals[id] = s.totals[id].Add(total)
}

func (s *scoreboard) entities() []tipping.RankedEntity {
	entities := make([]tipping.RankedEntity, 0, len(s.order))
	for _, id := range s.order {
		name := s.names[id]
		if strings.TrimSpace(name) == "" {
			name = id
		}

		entities = append(entities, tipping.RankedEntity{
			ID:             id,
			DisplayName:    name,
			PrimaryScore:   s.boosts[id],
			SecondaryScore: s.totals[id].Round(2).InexactFloat64(),
		})
	}

	return entities
}

func (l *Leaderboard) DJLeaderboard(ctx context.Context, query LeaderboardQuery) ([]LeaderboardEntry, error) {
	return l.cached(ctx, cache.BoardDJs, query, func(rows []repository.TipTotal) ([]tipping.RankedEntity, error) {
		djs := newScoreboard()
		// boosts count per sender, whether or not the sender tipped anonymously
		perSender := map[[2]string]decimal.Decimal{}
		var pairs [][2]string

		for _, row := range rows {
			djs.add(row.ReceiverID, row.ReceiverName, row.Total)

			pair := [2]string{row.ReceiverID, row.SenderID}
			if _, seen := perSender[pair]; !seen {
				pairs = append(pairs, pair)
			}
			perSender[pair] = perSender[pair].Add(row.Total)
		}

		for _, pair := range pairs {
			boosts, err := tipping.CountGoldenBoosts(perSender[pair].InexactFloat64())
			if err != nil {
				return nil, err
			}
			djs.boosts[pair[0]] += boosts
		}

		return djs.entities(), nil
	})
}

func (l *Leaderboard) SupporterLeaderboard(ctx context.Context, query LeaderboardQuery) ([]LeaderboardEntry, error) {
	return l.cached(ctx, cache.BoardSupporters, query, func(rows []repository.TipTotal) ([]tipping.RankedEntity, error) {
		supporters := newScoreboard()

		for _, row := range rows {
			// a blank name on a named row falls back to the sender ID in entities
			name := row.SenderName
			if row.IsAnonymous {
				name = tipping.AnonymousSenderName
			}

			supporters.add(tipping.SenderDisplayID(row.SenderID, row.IsAnonymous), name, row.Total)
		}

		for _, id := range supporters.order {
			boosts, err := tipping.CountGoldenBoosts(supporters.totals[id].InexactFloat64())
			if err != nil {
				return nil, err
			}
			supporters.boosts[id] = boosts
		}

		return supporters.entities(), nil
	})
}

func (l *Leaderboard) GoldenBoostBalance(ctx context.Context, senderID string) (GoldenBoostBalance, error) {
	senderID = strings.TrimSpace(senderID)
	if senderID == "" {
		return GoldenBoostBalance{}, validationFailed("sender_id", "Sender is required")
	}

	total, count, err := l.tipRepo.SettledTotalBySender(ctx, senderID)
	if err != nil {
		l.logger.Error("Failed to load sender total", zap.String("senderID", senderID), zap.Error(err))
		return GoldenBoostBalance{}, NewServiceError(constants.ErrCodeInternalError, err)
	}

	boosts, err := tipping.CountGoldenBoosts(total.InexactFloat64())
	if err != nil {
		return GoldenBoostBalance{}, fromDomain(err)
	}

	threshold := decimal.NewFromInt(tipping.GoldenBoostThreshold)

	return GoldenBoostBalance{
		SenderID:     senderID,
		TotalTipped:  total,
		TipCount:     count,
		GoldenBoosts: boosts,
		NextBoostIn:  threshold.Sub(total.Mod(threshold)),
	}, nil
}

func (l *Leaderboard) cached(ctx context.Context, board string, query LeaderboardQuery,
	build func(rows []repository.TipTotal) ([]tipping.RankedEntity, error)) ([]LeaderboardEntry, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}

	key := cache.LeaderboardKey(board, query.SessionID, limit)

	if entries, ok := l.fromCache(ctx, board, key); ok {
		return entries, nil
	}

	rows, err := l.tipRepo.SettledTotals(ctx, repository.TotalsFilter{SessionID: query.SessionID})
	if err != nil {
		l.logger.Error("Failed to load settled totals", zap.String("board", board), zap.Error(err))
		return nil, NewServiceError(constants.ErrCodeInternalError, err)
	}

	entities, err := build(rows)
	if err != nil {
		return nil, fromDomain(err)
	}

	ranked := tipping.RankEntities(entities)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	entries := newLeaderboard(ranked)
	l.store(ctx, key, entries)

	return entries, nil
}

func (l *Leaderboard) fromCache(ctx context.Context, board, key string) ([]LeaderboardEntry, bool) {
	raw, err := l.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			l.logger.Warn("Leaderboard cache read failed", zap.String("key", key), zap.Error(err))
		}
		l.metrics.RecordCacheLookup(board, false)
		return nil, false
	}

	var entries []LeaderboardEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		l.logger.Warn("Discarding unreadable cached leaderboard", zap.String("key", key), zap.Error(err))
		l.metrics.RecordCacheLookup(board, false)
		return nil, false
	}

	l.metrics.RecordCacheLookup(board, true)

	return entries, true
}

func (l *Leaderboard) store(ctx context.Context, key string, entries []LeaderboardEntry) {
	raw, err := json.Marshal(entries)
	if err != nil {
		return
	}

	if err := l.cache.Set(ctx, key, raw, l.ttl); err != nil {
		l.logger.Warn("Leaderboard cache write failed", zap.String("key", key), zap.Error(err))
	}
}
