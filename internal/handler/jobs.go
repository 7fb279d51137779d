package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/DJCELL1/KP-Workshop-Tool/internal/board"
	"github.com/DJCELL1/KP-Workshop-Tool/internal/model"
	"github.com/go-chi/chi/v5"
)

// TimestampLayout formats the board timestamp.
const TimestampLayout = "02 Jan 2006 15:04"

const maxStageBody = 4096

// JobsResponse is the body of GET /api/jobs. Partial is set when Cin7
// failed part way through the fetch.
type JobsResponse struct {
	Jobs       map[model.Stage][]model.Order `json:"jobs"`
	Timestamp  string                        `json:"timestamp"`
	TotalCount int                           `json:"totalCount"`
	Partial    bool                          `json:"partial"`
}

// JobsHandler returns every kickplate job grouped by stage.
func JobsHandler(svc BoardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b := svc.FetchBoard(r.Context())
		if b.Truncated {
			slog.Warn("Serving partial board", "total", b.TotalCount)
		}

		writeJSON(w, http.StatusOK, NewJobsResponse(b))
	}
}

// NewJobsResponse shapes a board snapshot for the wire.
func NewJobsResponse(b board.Board) JobsResponse {
	return JobsResponse{
		Jobs:       b.JobsByStage,
		Timestamp:  b.FetchedAt.Format(TimestampLayout),
		TotalCount: b.TotalCount,
		Partial:    b.Truncated,
	}
}

type stageResponse struct {
	NewStage string `json:"newStage,omitempty"`
	Error    string `json:"error,omitempty"`
	OrderID  int64  `json:"orderId,omitempty"`
	Success  bool   `json:"success"`
}

// MoveStageHandler changes the stage of the order named in the path.
func MoveStageHandler(svc BoardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.NotFound(w, r)
			return
		}

		stage, err := readStage(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, stageResponse{Error: "Missing 'stage' in request body"})
			return
		}

		result := svc.MoveJob(r.Context(), orderID, model.Stage(stage))
		if !result.Success {
			msg := result.Error
			if msg == "" {
				msg = "Unknown error"
			}
			writeJSON(w, http.StatusInternalServerError, stageResponse{Error: msg, OrderID: orderID})
			return
		}

		writeJSON(w, http.StatusOK, stageResponse{Success: true, OrderID: orderID, NewStage: stage})
	}
}

// readStage returns the "stage" member of the body. A non-string value is
// returned as its raw JSON text and left to stage validation.
func readStage(r *http.Request) (string, error) {
	body, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, maxStageBody))
	if err != nil {
		return "", err
	}

	var req map[string]json.RawMessage
	if err := json.Unmarshal(body, &req); err != nil {
		return "", err
	}
	raw, ok := req["stage"]
	if !ok {
		return "", errors.New("stage is required")
	}

	var stage string
	if err := json.Unmarshal(raw, &stage); err == nil {
		return stage, nil
	}
	return string(bytes.TrimSpace(raw)), nil
}
