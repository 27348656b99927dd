package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Ro706/Project-MARS/entity"
	"github.com/Ro706/Project-MARS/internal/lib/api/response"
	"github.com/Ro706/Project-MARS/internal/lib/sl"
	authservice "github.com/Ro706/Project-MARS/internal/service/auth"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func Login(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.auth"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req entity.LoginRequest
		if err := render.Bind(r, &req); err != nil {
			logger.Error("invalid login request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		token, err := handler.Login(req.Email, req.Password)
		if errors.Is(err, authservice.ErrBadCredentials) {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("Please try to login with correct credentials"))
			return
		}
		if err != nil {
			logger.Error("login", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to log in"))
			return
		}

		logger.With(slog.String("email", req.Email)).Info("user logged in")
		render.JSON(w, r, TokenResponse{Success: true, AuthToken: token})
	}
}
