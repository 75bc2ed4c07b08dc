package transport

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rpggio/agenda/internal/domain/event"
	"github.com/rpggio/agenda/internal/domain/interchange"
)

type eventRoutes struct {
	events      EventService
	interchange InterchangeService
}

func (r *eventRoutes) list(c echo.Context) error {
	events, err := r.events.ListByOwner(c.Request().Context(), c.QueryParam("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"data": events})
}

func (r *eventRoutes) search(c echo.Context) error {
	var in event.SearchInput
	if err := c.Bind(&in); err != nil {
		return malformedBody(err)
	}
	req, err := in.SearchRequest()
	if err != nil {
		return err
	}
	page, err := r.events.Search(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

func (r *eventRoutes) upcoming(c echo.Context) error {
	days, err := queryInt(c, "days", event.DefaultUpcoming)
	if err != nil {
		return err
	}
	events, err := r.events.Upcoming(c.Request().Context(), c.QueryParam("email"), days)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"data": events})
}

func (r *eventRoutes) byType(c echo.Context) error {
	events, err := r.events.ByType(c.Request().Context(), c.QueryParam("email"), c.QueryParam("type"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"data": events})
}

func (r *eventRoutes) byClient(c echo.Context) error {
	events, err := r.events.ByClient(c.Request().Context(), c.QueryParam("email"), c.QueryParam("client"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"data": events})
}

func (r *eventRoutes) statistics(c echo.Context) error {
	stats, err := r.events.Statistics(c.Request().Context(), c.QueryParam("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"data": stats})
}

func (r *eventRoutes) get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	evt, err := r.events.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, evt)
}

func (r *eventRoutes) create(c echo.Context) error {
	var in event.Input
	if err := c.Bind(&in); err != nil {
		return malformedBody(err)
	}
	req, err := in.CreateRequest()
	if err != nil {
		return err
	}
	evt, err := r.events.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/events/%d", evt.ID))
	return c.JSON(http.StatusCreated, evt)
}

func (r *eventRoutes) update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var in event.Input
	if err := c.Bind(&in); err != nil {
		return malformedBody(err)
	}
	req, err := in.UpdateRequest()
	if err != nil {
		return err
	}
	evt, err := r.events.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, evt)
}

func (r *eventRoutes) delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := r.events.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (r *eventRoutes) export(c echo.Context) error {
	format, err := interchange.ParseFormat(c.QueryParam("format"))
	if err != nil {
		return err
	}
	email := c.QueryParam("email")

	var buf bytes.Buffer
	if err := r.interchange.ExportTo(c.Request().Context(), email, format, &buf); err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", format.Filename(email)))
	return c.Blob(http.StatusOK, format.ContentType(), buf.Bytes())
}

func (r *eventRoutes) importEvents(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return malformedBody(err)
	}
	created, err := r.interchange.Import(c.Request().Context(), payload)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"created": created})
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id must be a positive integer")
	}
	return id, nil
}

func queryInt(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be an integer")
	}
	return n, nil
}

func malformedBody(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, "malformed request body").SetInternal(err)
}
