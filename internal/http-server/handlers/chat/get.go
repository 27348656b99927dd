package chat

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Ro706/Project-MARS/entity"
	repository "github.com/Ro706/Project-MARS/internal/database"
	"github.com/Ro706/Project-MARS/internal/lib/api/cont"
	"github.com/Ro706/Project-MARS/internal/lib/api/response"
	"github.com/Ro706/Project-MARS/internal/lib/sl"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type ChatResponse struct {
	Success bool         `json:"success"`
	Chat    *entity.Chat `json:"chat"`
}

func Get(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.chat"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		user := cont.GetUser(r.Context())
		chatID := chi.URLParam(r, "id")

		chat, err := handler.Chat(user, chatID)
		if errors.Is(err, repository.ErrNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("Chat not found"))
			return
		}
		if errors.Is(err, repository.ErrForbidden) {
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("Not allowed"))
			return
		}
		if err != nil {
			logger.Error("get chat", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to fetch chat"))
			return
		}

		render.JSON(w, r, ChatResponse{Success: true, Chat: chat})
	}
}
