package contract

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/whatssound/tipservice/internal/constants"
)

type Response struct {
	Successful bool   `json:"successful"`
	Code       string `json:"code"`
	Message    string `json:"message,omitempty"`
	TrackID    string `json:"x_track_id"`
	Result     any    `json:"result"`
}

// TrackID returns the request id set by the requestid middleware.
func TrackID(c *fiber.Ctx) string {
	id, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
	return id
}

func Success(c *fiber.Ctx, message string, result any) Response {
	return Response{
		Successful: true,
		Code:       constants.CodeSuccess,
		Message:    message,
		TrackID:    TrackID(c),
		Result:     result,
	}
}

func Failure(c *fiber.Ctx, code, message string) Response {
	return Response{
		Code:    code,
		Message: message,
		TrackID: TrackID(c),
	}
}
