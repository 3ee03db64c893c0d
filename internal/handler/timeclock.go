package handler

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app"

	"staffclock/internal/model/dto"
	"staffclock/internal/service"
	pkgerrors "staffclock/pkg/errors"
	"staffclock/pkg/response"
)

// Dispatch handles the single action envelope the web client posts.
// POST /v1/timeclock
func Dispatch(ctx context.Context, c *app.RequestContext) {
	var req dto.TimeClockRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	switch req.Action {
	case "checkin":
		checkIn(ctx, c, req)
	case "checkout":
		checkOut(ctx, c, req)
	case "getHistory":
		history(ctx, c, dto.HistoryQuery{Month: req.Month, Year: req.Year})
	default:
		response.Error(ctx, c, pkgerrors.InvalidRequest.WithMessage("unknown action: "+req.Action))
	}
}

// CheckIn records the first check-in of the date.
// POST /v1/timeclock/checkin
func CheckIn(ctx context.Context, c *app.RequestContext) {
	var req dto.TimeClockRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}
	checkIn(ctx, c, req)
}

// CheckOut completes the date's record.
// POST /v1/timeclock/checkout
func CheckOut(ctx context.Context, c *app.RequestContext) {
	var req dto.TimeClockRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}
	checkOut(ctx, c, req)
}

// History lists day records, filtered by month/year or most-recent-first.
// GET /v1/timeclock/history
func History(ctx context.Context, c *app.RequestContext) {
	var q dto.HistoryQuery
	if err := c.BindAndValidate(&q); err != nil {
		response.BindError(ctx, c, err)
		return
	}
	history(ctx, c, q)
}

// Today returns the current date's record for status displays.
// GET /v1/timeclock/today
func Today(ctx context.Context, c *app.RequestContext) {
	view, err := service.TimeClock().Today(ctx, time.Now())
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, response.Envelope{Record: view})
}

func checkIn(ctx context.Context, c *app.RequestContext, req dto.TimeClockRequest) {
	result, err := service.TimeClock().CheckIn(ctx, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	env := response.Envelope{Record: result}
	if result.AlreadyCheckedIn {
		// Soft success, not a hard failure: the stored time is untouched.
		env.Message = pkgerrors.AlreadyCheckedIn.Message
	}
	response.Success(ctx, c, env)
}

func checkOut(ctx context.Context, c *app.RequestContext, req dto.TimeClockRequest) {
	result, err := service.TimeClock().CheckOut(ctx, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, response.Envelope{
		Record:   result,
		Duration: result.Duration,
	})
}

func history(ctx context.Context, c *app.RequestContext, q dto.HistoryQuery) {
	views, err := service.TimeClock().History(ctx, q)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, response.Envelope{History: views})
}
