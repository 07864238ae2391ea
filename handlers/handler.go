package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/padraicbc/poloapi/config"
	"github.com/padraicbc/poloapi/notify"
)

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	db  *bun.DB
	hub *notify.Hub
	cfg *config.Config
}

// New creates a Handler with the given database connection, change hub
// and configuration.
func New(db *bun.DB, hub *notify.Hub, cfg *config.Config) *Handler {
	return &Handler{db: db, hub: hub, cfg: cfg}
}

// scanErr maps a bun scan error onto the HTTP boundary: absent rows are
// an empty state, everything else is a write/read failure.
func scanErr(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return echo.NewHTTPError(http.StatusNotFound, what+" not found")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
