package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"staffclock/internal/handler"
	"staffclock/internal/middleware"
)

func Register(h *server.Hertz) {
	h.Use(middleware.RecoverMiddleware())
	h.Use(middleware.CORSMiddleware())
	h.Use(middleware.RequestIDMiddleware())

	v1 := h.Group("/v1")

	// The web client posts a single action envelope.
	v1.POST("/timeclock", handler.Dispatch)

	// REST-shaped routes over the same handlers.
	timeclock := v1.Group("/timeclock")
	{
		timeclock.POST("/checkin", handler.CheckIn)
		timeclock.POST("/checkout", handler.CheckOut)
		timeclock.GET("/history", handler.History)
		timeclock.GET("/today", handler.Today)
	}
}
