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

type HistoryResponse struct {
	Success bool          `json:"success"`
	Chats   []entity.Chat `json:"chats"`
}

func History(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.chat"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		user := cont.GetUser(r.Context())

		chats, err := handler.ChatHistory(user)
		if err != nil {
			logger.Error("chat history", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to fetch chat history"))
			return
		}

		render.JSON(w, r, HistoryResponse{Success: true, Chats: chats})
	}
}
