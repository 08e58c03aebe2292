package httpapi

import (
	stdhttp "net/http"

	"videobot/internal/http/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds the bot's small HTTP surface: a liveness root for the
// hosting platform and a health endpoint that checks the database.
func NewRouter(app *handlers.App) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, middleware.Logger)

	r.Get("/", app.Root)
	r.Get("/v1/healthz", app.Health)

	return r
}
