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

type TokenResponse struct {
	Success   bool   `json:"success"`
	AuthToken string `json:"authtoken"`
}

func Signup(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.auth"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req entity.SignupRequest
		if err := render.Bind(r, &req); err != nil {
			logger.Error("invalid signup request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		token, err := handler.Signup(req.Name, req.Email, req.Password)
		if errors.Is(err, authservice.ErrEmailTaken) {
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error("A user with this email already exists"))
			return
		}
		if err != nil {
			logger.Error("signup", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to create user"))
			return
		}

		logger.With(slog.String("email", req.Email)).Info("user signed up")
		render.JSON(w, r, TokenResponse{Success: true, AuthToken: token})
	}
}
