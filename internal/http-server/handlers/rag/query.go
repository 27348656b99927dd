package rag

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Ro706/Project-MARS/entity"
	"github.com/Ro706/Project-MARS/internal/lib/api/response"
	"github.com/Ro706/Project-MARS/internal/lib/sl"
	ragservice "github.com/Ro706/Project-MARS/internal/service/rag"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// Query dispatches one question to the answer provider. Diagnostic
// detail from a failed dispatch is logged but never returned to the
// client.
func Query(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.rag"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req entity.QueryRequest
		if err := render.Bind(r, &req); err != nil {
			logger.Error("invalid query request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Query is required"))
			return
		}

		answer, err := handler.Query(r.Context(), req.Query)
		if err != nil {
			status, msg := dispatchFailure(logger, err)
			render.Status(r, status)
			render.JSON(w, r, response.Error(msg))
			return
		}

		logger.With(slog.Float64("reward_score", answer.RewardScore)).Debug("query answered")
		render.JSON(w, r, answer)
	}
}

func dispatchFailure(logger *slog.Logger, err error) (int, string) {
	var procErr *ragservice.ProcessError
	var parseErr *ragservice.ParseError

	switch {
	case errors.Is(err, ragservice.ErrEmptyQuery):
		return http.StatusBadRequest, "Query is required"
	case errors.Is(err, ragservice.ErrDeadline):
		logger.Error("query deadline exceeded", sl.Err(err))
		return http.StatusGatewayTimeout, "Query timed out"
	case errors.As(err, &procErr):
		logger.With(
			slog.Int("exit_code", procErr.ExitCode),
			slog.String("stderr", procErr.Stderr),
		).Error("answer process failed")
		return http.StatusBadGateway, "Failed to process query"
	case errors.As(err, &parseErr):
		logger.With(
			slog.String("output", parseErr.Output),
		).Error("answer output unparseable")
		return http.StatusInternalServerError, "Failed to parse answer"
	default:
		logger.Error("query dispatch", sl.Err(err))
		return http.StatusInternalServerError, "Failed to process query"
	}
}
