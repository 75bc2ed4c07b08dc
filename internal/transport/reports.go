package transport

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rpggio/agenda/internal/domain/event"
	"github.com/rpggio/agenda/internal/domain/report"
)

type reportRoutes struct {
	reports ReportService
}

func (r *reportRoutes) eventsByPeriod(c echo.Context) error {
	start, err := event.ParseDateParam("startDate", c.QueryParam("startDate"))
	if err != nil {
		return err
	}
	end, err := event.ParseDateParam("endDate", c.QueryParam("endDate"))
	if err != nil {
		return err
	}
	var from, to time.Time
	if start != nil {
		from = *start
	}
	if end != nil {
		to = *end
	}
	result, err := r.reports.EventsByPeriod(c.Request().Context(), c.QueryParam("email"), from, to)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (r *reportRoutes) clientProductivity(c echo.Context) error {
	stats, err := r.reports.ClientProductivity(c.Request().Context(), c.QueryParam("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"data": stats})
}

func (r *reportRoutes) temporalTrends(c echo.Context) error {
	months, err := queryInt(c, "months", report.DefaultTrendMonths)
	if err != nil {
		return err
	}
	result, err := r.reports.TemporalTrends(c.Request().Context(), c.QueryParam("email"), months)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (r *reportRoutes) timeConflicts(c echo.Context) error {
	date, err := event.ParseDateParam("date", c.QueryParam("date"))
	if err != nil {
		return err
	}
	result, err := r.reports.TimeConflicts(c.Request().Context(), c.QueryParam("email"), date)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
