package middleware

import (
	"encoding/json"
	"gestor-turnos/logger"
	"gestor-turnos/types"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

// maxLoggedBody caps the bodies copied into the logs table.
const maxLoggedBody = 4096

// RequestLog tags every request with an id and hands a copy of the
// exchange to the async logger. A nil logger only sets the id.
func RequestLog(asyncLogger *logger.AsyncLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(HeaderRequestID)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		c.Locals("request_id", requestID)
		c.Set(HeaderRequestID, requestID)

		start := time.Now()
		err := c.Next()
		if err != nil {
			// Let the error handler write the response before it is logged.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
			err = nil
		}

		if asyncLogger != nil {
			asyncLogger.Log(types.LogEntry{
				RequestID:       requestID,
				Username:        Username(c),
				Method:          c.Method(),
				URL:             c.OriginalURL(),
				RequestBody:     truncate(c.Body()),
				ResponseBody:    truncate(c.Response().Body()),
				RequestHeaders:  headersJSON(c.GetReqHeaders()),
				ResponseHeaders: headersJSON(c.GetRespHeaders()),
				StatusCode:      c.Response().StatusCode(),
				Latency:         time.Since(start),
				CreatedAt:       start,
			})
		}
		return err
	}
}

// RequestID returns the id assigned by RequestLog.
func RequestID(c *fiber.Ctx) string {
	id, _ := c.Locals("request_id").(string)
	return id
}

func headersJSON(h map[string][]string) string {
	delete(h, fiber.HeaderAuthorization)
	delete(h, fiber.HeaderCookie)
	b, err := json.Marshal(h)
	if err != nil {
		return ""
	}
	return string(b)
}

func truncate(b []byte) string {
	if len(b) <= maxLoggedBody {
		return string(b)
	}
	return string(b[:maxLoggedBody]) + "...(truncated)"
}
