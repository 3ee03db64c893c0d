package middleware

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/cloudwego/hertz/pkg/app"
	"go.uber.org/zap"

	"staffclock/config"
	"staffclock/pkg/errors"
	"staffclock/pkg/logger"
	"staffclock/pkg/response"
)

// RecoverMiddleware converts panics into the uniform error envelope. Every
// server-side fault must leave the boundary as {status: "error", message}.
func RecoverMiddleware() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		defer func() {
			if err := recover(); err != nil {
				handlePanic(ctx, c, err)
			}
		}()

		c.Next(ctx)
	}
}

func handlePanic(ctx context.Context, c *app.RequestContext, err interface{}) {
	logger.Logger.Error("[PANIC RECOVERED]",
		zap.String("panic", fmt.Sprintf("%v", err)),
		zap.String("path", string(c.Path())),
		zap.String("method", string(c.Method())),
		zap.String("client_ip", c.ClientIP()),
		zap.String("request_id", GetRequestID(c)),
		zap.ByteString("stack", debug.Stack()),
	)

	errDef := errors.InternalError
	if !config.Cfg.IsProduction() {
		errDef = errDef.WithMessage(fmt.Sprintf("Internal error: %v", err))
	}
	response.Error(ctx, c, errDef)
}
