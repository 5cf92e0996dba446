package report

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clinicmanager/clinicmanager/internal/platform/auth"
	"github.com/clinicmanager/clinicmanager/internal/platform/errs"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	reports := api.Group("/report", auth.RequireRole("admin"))
	reports.GET("/summary", h.Summary)
}

func (h *Handler) Summary(c echo.Context) error {
	start, err := parseDate(c.QueryParam("start"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid start, want RFC3339 or YYYY-MM-DD")
	}
	end, err := parseDate(c.QueryParam("end"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid end, want RFC3339 or YYYY-MM-DD")
	}

	summary, err := h.svc.GenerateSummary(c.Request().Context(), start, end)
	if err != nil {
		return errs.HTTP(err)
	}
	return c.JSON(http.StatusOK, summary)
}

func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
