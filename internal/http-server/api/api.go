package api

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/Ro706/Project-MARS/internal/config"
	authhandler "github.com/Ro706/Project-MARS/internal/http-server/handlers/auth"
	chathandler "github.com/Ro706/Project-MARS/internal/http-server/handlers/chat"
	"github.com/Ro706/Project-MARS/internal/http-server/handlers/errors"
	raghandler "github.com/Ro706/Project-MARS/internal/http-server/handlers/rag"
	"github.com/Ro706/Project-MARS/internal/http-server/middleware/authenticate"
	"github.com/Ro706/Project-MARS/internal/lib/sl"
	"github.com/Ro706/Project-MARS/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

type Handler interface {
	authenticate.Authenticate
	authhandler.Core
	chathandler.Core
	raghandler.Core
}

// New builds the router and serves it; it blocks until the listener
// fails or the server stops.
func New(conf *config.Config, log *slog.Logger, handler Handler) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	router.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authhandler.Signup(log, handler))
			r.Post("/login", authhandler.Login(log, handler))
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticate.New(log, handler))

			r.Route("/chat", func(r chi.Router) {
				r.Post("/save", chathandler.Save(log, handler))
				r.Get("/history", chathandler.History(log, handler))
				r.Get("/{id}", chathandler.Get(log, handler))
				r.Delete("/{id}", chathandler.Delete(log, handler))
			})

			r.Route("/rag", func(r chi.Router) {
				r.Post("/query", raghandler.Query(log, handler))
			})
		})
	})

	// embedded browser client
	router.Handle("/*", web.Handler())

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:  router,
		ErrorLog: httpLog,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	server.log.Info("starting api server", slog.String("address", serverAddress))

	return server.httpServer.Serve(listener)
}
