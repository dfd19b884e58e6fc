package v1

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/whatssound/tipservice/internal/api/contract"
	"github.com/whatssound/tipservice/internal/api/validator"
	"github.com/whatssound/tipservice/internal/cache"
	"github.com/whatssound/tipservice/internal/constants"
	"github.com/whatssound/tipservice/internal/metrics"
	"github.com/whatssound/tipservice/internal/service"
	"github.com/whatssound/tipservice/internal/tipping"
	"go.uber.org/zap"
)

type Handler struct {
	logger      *zap.Logger
	tips        service.TipService
	leaderboard service.LeaderboardService
	XValidator  validator.IXValidator
	metrics     *metrics.Metrics
}

func NewHandler(logger *zap.Logger, tips service.TipService, leaderboard service.LeaderboardService,
	XValidator validator.IXValidator, metrics *metrics.Metrics) *Handler {
	return &Handler{
		logger:      logger,
		tips:        tips,
		leaderboard: leaderboard,
		XValidator:  XValidator,
		metrics:     metrics,
	}
}

func (h *Handler) Pong(c *fiber.Ctx) error {
	return c.SendString("pong")
}

func (h *Handler) QuoteFees(c *fiber.Ctx) error {
	var request FeeQuoteRequest
	if responseError := h.XValidator.Validator(&request, constants.MessageErrorFormat, c); responseError.Code != "" {
		return c.JSON(responseError)
	}

	amount, err := strconv.ParseFloat(request.Amount, 64)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(contract.Failure(c,
			constants.ErrCodeValidationFailed, "Amount must be a number"))
	}

	quote, err := h.tips.QuoteFees(amount)
	if err != nil {
		return err
	}

	return c.JSON(contract.Success(c, constants.FeeQuoted, quote))
}

func (h *Handler) SendTip(c *fiber.Ctx) error {
	start := time.Now()

	var request SendTipRequest
	if responseError := h.XValidator.Validator(&request, constants.MessageErrorFormat, c); responseError.Code != "" {
		h.logger.Warn("Invalid send tip request", zap.String("message", responseError.Message))
		return c.JSON(responseError)
	}

	result, err := h.tips.SendTip(c.UserContext(), service.SendTipCommand{
		ClientTipID:  request.ClientTipID,
		SenderID:     request.SenderID,
		SenderName:   request.SenderName,
		ReceiverID:   request.ReceiverID,
		ReceiverName: request.ReceiverName,
		SessionID:    request.SessionID,
		SongID:       request.SongID,
		Amount:       request.Amount,
		IsAnonymous:  request.IsAnonymous,
		Message:      request.Message,
	})
	if err != nil {
		h.logger.Warn("Send tip failed",
			zap.Error(err),
			zap.String("receiverID", request.ReceiverID),
			zap.String("clientTipID", request.ClientTipID))
		return err
	}

	h.logger.Info("Tip accepted",
		zap.Int64("tipID", result.Tip.ID),
		zap.Bool("duplicate", result.Duplicate),
		zap.Duration("duration", time.Since(start)))

	if result.Duplicate {
		return c.JSON(contract.Success(c, constants.TipAlreadyExists, result))
	}

	return c.Status(fiber.StatusCreated).JSON(contract.Success(c, constants.TipCreated, result))
}

func (h *Handler) GetTip(c *fiber.Ctx) error {
	tipID, responseError := h.tipID(c)
	if responseError.Code != "" {
		return c.JSON(responseError)
	}

	tip, err := h.tips.GetTip(c.UserContext(), tipID)
	if err != nil {
		return err
	}

	return c.JSON(contract.Success(c, constants.TipRetrieved, tip))
}

func (h *Handler) TransitionTip(c *fiber.Ctx) error {
	tipID, responseError := h.tipID(c)
	if responseError.Code != "" {
		return c.JSON(responseError)
	}

	var request TransitionRequest
	if responseError := h.XValidator.Validator(&request, constants.MessageErrorFormat, c); responseError.Code != "" {
		return c.JSON(responseError)
	}

	result, err := h.tips.ApplyEvent(c.UserContext(), service.ApplyTipEventCommand{
		TipID:  tipID,
		Event:  tipping.Event(request.Event),
		Reason: request.Reason,
	})
	if err != nil {
		h.logger.Warn("Tip transition failed",
			zap.Error(err),
			zap.Int64("tipID", tipID),
			zap.String("event", request.Event))
		return err
	}

	return c.JSON(contract.Success(c, constants.TipTransitioned, result))
}

func (h *Handler) ListReceivedTips(c *fiber.Ctx) error {
	var path UserPath
	if responseError := h.validateParams(c, &path); responseError.Code != "" {
		return c.JSON(responseError)
	}

	var request ListTipsRequest
	if responseError := h.XValidator.Validator(&request, constants.MessageErrorFormat, c); responseError.Code != "" {
		return c.JSON(responseError)
	}

	result, err := h.tips.ListReceivedTips(c.UserContext(), service.ListTipsQuery{
		ReceiverID: path.UserID,
		Limit:      request.Limit,
		Offset:     request.Offset,
	})
	if err != nil {
		return err
	}

	return c.JSON(contract.Success(c, constants.TipsListed, result))
}

func (h *Handler) DJLeaderboard(c *fiber.Ctx) error {
	return h.renderLeaderboard(c, cache.BoardDJs, h.leaderboard.DJLeaderboard)
}

func (h *Handler) SupporterLeaderboard(c *fiber.Ctx) error {
	return h.renderLeaderboard(c, cache.BoardSupporters, h.leaderboard.SupporterLeaderboard)
}

func (h *Handler) GoldenBoostBalance(c *fiber.Ctx) error {
	var path UserPath
	if responseError := h.validateParams(c, &path); responseError.Code != "" {
		return c.JSON(responseError)
	}

	balance, err := h.leaderboard.GoldenBoostBalance(c.UserContext(), path.UserID)
	if err != nil {
		return err
	}

	return c.JSON(contract.Success(c, constants.BalanceRetrieved, balance))
}

func (h *Handler) renderLeaderboard(c *fiber.Ctx, board string,
	load func(ctx context.Context, query service.LeaderboardQuery) ([]service.LeaderboardEntry, error)) error {
	var request LeaderboardRequest
	if responseError := h.XValidator.Validator(&request, constants.MessageErrorFormat, c); responseError.Code != "" {
		return c.JSON(responseError)
	}

	entries, err := load(c.UserContext(), service.LeaderboardQuery{SessionID: request.SessionID, Limit: request.Limit})
	if err != nil {
		h.logger.Error("Failed to build leaderboard", zap.String("board", board), zap.Error(err))
		return err
	}

	return c.JSON(contract.Success(c, constants.LeaderboardRendered, LeaderboardResponse{
		Board:     board,
		SessionID: request.SessionID,
		Entries:   entries,
	}))
}

func (h *Handler) tipID(c *fiber.Ctx) (int64, contract.Response) {
	var path TipPath
	responseError := h.validateParams(c, &path)
	return path.TipID, responseError
}

func (h *Handler) validateParams(c *fiber.Ctx, out any) contract.Response {
	if err := c.ParamsParser(out); err != nil {
		c.Status(fiber.StatusBadRequest)
		return contract.Failure(c, constants.ErrCodeInvalidRequestBody,
			constants.GetErrorMessage(constants.ErrCodeInvalidRequestBody))
	}

	if errs := h.XValidator.Validate(out); len(errs) > 0 {
		h.metrics.RecordValidationError(errs[0].FailedField, errs[0].Tag)
		c.Status(fiber.StatusUnprocessableEntity)
		return contract.Failure(c, constants.ErrCodeValidationFailed,
			fmt.Sprintf(constants.MessageErrorFormat, errs[0].FailedField))
	}

	return contract.Response{}
}
