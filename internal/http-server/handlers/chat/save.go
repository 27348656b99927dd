package chat

import (
	"log/slog"
	"net/http"

	"github.com/Ro706/Project-MARS/entity"
	"github.com/Ro706/Project-MARS/internal/lib/api/cont"
	"github.com/Ro706/Project-MARS/internal/lib/api/response"
	"github.com/Ro706/Project-MARS/internal/lib/sl"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func Save(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.chat"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		user := cont.GetUser(r.Context())

		var req entity.SaveChatRequest
		if err := render.Bind(r, &req); err != nil {
			logger.Error("invalid save request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("At least one message is required"))
			return
		}

		if err := handler.SaveChat(user, req.Messages); err != nil {
			logger.Error("save chat", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to save chat"))
			return
		}

		logger.With(slog.Int("messages", len(req.Messages))).Debug("chat saved")
		render.JSON(w, r, response.Ok("Chat saved successfully"))
	}
}
