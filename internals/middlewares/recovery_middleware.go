package middlewares

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// RecoveryMiddleware turns a panic into a 500 handled by the app error handler.
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			zap.L().Error("panic recovered",
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
				zap.String("panic", fmt.Sprint(e)),
				zap.Stack("stack"),
			)
		},
	})
}
