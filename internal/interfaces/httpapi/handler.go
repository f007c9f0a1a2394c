package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/football-data/internal/platform/logging"
	"github.com/riskibarqy/football-data/internal/usecase"
)

// UpdateRunner triggers a sync run. Satisfied by usecase.UpdateService.
type UpdateRunner interface {
	UpdateAll(ctx context.Context) (usecase.RunReport, error)
	UpdateForDay(ctx context.Context, day int) (usecase.RunReport, error)
}

type Handler struct {
	browser   *usecase.Browser
	updater   UpdateRunner
	logger    *logging.Logger
	validator *validator.Validate
}

func NewHandler(browser *usecase.Browser, updater UpdateRunner, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		browser:   browser,
		updater:   updater,
		logger:    logger,
		validator: validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

type pageParams struct {
	Limit  int `validate:"gte=0,lte=100"`
	Offset int `validate:"gte=0"`
}

func (h *Handler) pageFromQuery(r *http.Request) (pageParams, error) {
	page := pageParams{}
	var err error

	if page.Limit, err = queryInt(r, "limit", 0); err != nil {
		return page, err
	}
	if page.Offset, err = queryInt(r, "offset", 0); err != nil {
		return page, err
	}
	if err := h.validator.Struct(page); err != nil {
		return page, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return page, nil
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, name)
	}
	return value, nil
}

func queryInt64(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, name)
	}
	return value, nil
}

func queryDate(r *http.Request, name string) (time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return time.Time{}, nil
	}
	value, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be a YYYY-MM-DD date", usecase.ErrInvalidInput, name)
	}
	return value, nil
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}
	return value, nil
}
