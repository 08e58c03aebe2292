package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
)

// App holds the dependencies of the HTTP surface.
type App struct {
	DB *pgxpool.Pool
}

func NewApp(db *pgxpool.Pool) *App {
	return &App{DB: db}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
