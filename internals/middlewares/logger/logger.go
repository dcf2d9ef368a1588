package logger

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/utils"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const localRequestID = "request_id"

// InitLogger builds the process logger and installs it as zap's global.
// Development gets a console encoder; everything else gets JSON.
func InitLogger(env, level string) (*zap.Logger, error) {
	var cfg zap.Config
	if strings.EqualFold(env, "development") {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	lvl := zapcore.InfoLevel
	if err := lvl.Set(strings.ToLower(strings.TrimSpace(level))); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(l)
	return l, nil
}

// RequestTimeout bounds the user context every handler passes to the DB.
const RequestTimeout = 5 * time.Second

// LoggerMiddleware assigns a request id, sets the request deadline and logs
// one line per request.
func LoggerMiddleware(l *zap.Logger) fiber.Handler {
	if l == nil {
		l = zap.L()
	}
	return func(c *fiber.Ctx) error {
		start := time.Now()

		rid := strings.TrimSpace(c.Get(fiber.HeaderXRequestID))
		if rid == "" {
			rid = utils.UUID()
		}
		c.Locals(localRequestID, rid)
		c.Set(fiber.HeaderXRequestID, rid)

		ctx, cancel := context.WithTimeout(c.Context(), RequestTimeout)
		defer cancel()
		c.SetUserContext(ctx)

		err := c.Next()
		if err != nil {
			// let the app error handler write the response before we read the status
			if hErr := c.App().ErrorHandler(c, err); hErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		fields := []zap.Field{
			zap.String("request_id", rid),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
		}
		if uid, ok := c.Locals("user_id").(string); ok && uid != "" {
			fields = append(fields, zap.String("user_id", uid))
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			l.Error("request", fields...)
		case status >= fiber.StatusBadRequest:
			l.Warn("request", fields...)
		default:
			l.Info("request", fields...)
		}
		return nil
	}
}

// FromCtx returns the global logger tagged with the request id.
func FromCtx(c *fiber.Ctx) *zap.Logger {
	l := zap.L()
	if rid, ok := c.Locals(localRequestID).(string); ok && rid != "" {
		return l.With(zap.String("request_id", rid))
	}
	return l
}
