package httpapi

import (
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/football-data/internal/usecase"
)

const maxInternalJobBodyBytes = 1 << 20

type internalUpdateRequest struct {
	Day *int `json:"day" validate:"omitempty,gte=0,lte=6"`
}

type sweepReportDTO struct {
	Players   int64 `json:"players"`
	Teams     int64 `json:"teams"`
	Venues    int64 `json:"venues"`
	Seasons   int64 `json:"seasons"`
	Leagues   int64 `json:"leagues"`
	Countries int64 `json:"countries"`
}

type runReportDTO struct {
	Day        int            `json:"day"`
	Phases     []string       `json:"phases"`
	APICalls   int            `json:"apiCalls"`
	DurationMs int64          `json:"durationMs"`
	Created    int            `json:"created"`
	Updated    int            `json:"updated"`
	Skipped    int            `json:"skipped"`
	Swept      sweepReportDTO `json:"swept"`
}

func runReportToDTO(run usecase.RunReport) runReportDTO {
	phases := make([]string, 0, len(run.Phases))
	for _, phase := range run.Phases {
		phases = append(phases, string(phase))
	}

	dto := runReportDTO{
		Day:        run.Day,
		Phases:     phases,
		APICalls:   run.APICalls,
		DurationMs: run.Duration.Milliseconds(),
		Swept: sweepReportDTO{
			Players:   run.Swept.Players,
			Teams:     run.Swept.Teams,
			Venues:    run.Swept.Venues,
			Seasons:   run.Swept.Seasons,
			Leagues:   run.Swept.Leagues,
			Countries: run.Swept.Countries,
		},
	}
	if run.Sync != nil {
		dto.Created = run.Sync.Created
		dto.Updated = run.Sync.Updated
		dto.Skipped = run.Sync.Skipped
	}
	return dto
}

// RunUpdateJob triggers a sync run. An optional body selects the day
// of week to plan for; without one, today's plan runs.
func (h *Handler) RunUpdateJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunUpdateJob")
	defer span.End()

	if h.updater == nil {
		writeError(ctx, w, fmt.Errorf("%w: update service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	req, err := h.decodeInternalUpdateRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var run usecase.RunReport
	if req.Day != nil {
		run, err = h.updater.UpdateForDay(ctx, *req.Day)
	} else {
		run, err = h.updater.UpdateAll(ctx)
	}
	if err != nil {
		h.logger.WarnContext(ctx, "update job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, runReportToDTO(run))
}

func (h *Handler) decodeInternalUpdateRequest(r *http.Request) (internalUpdateRequest, error) {
	req := internalUpdateRequest{}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxInternalJobBodyBytes))
	if err != nil {
		return req, fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
	}
	if len(body) == 0 {
		return req, nil
	}

	if err := sonic.Unmarshal(body, &req); err != nil {
		return req, fmt.Errorf("%w: malformed JSON body", usecase.ErrInvalidInput)
	}
	if err := h.validator.Struct(req); err != nil {
		return req, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return req, nil
}
