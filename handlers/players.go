package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/poloapi/models"
	"github.com/padraicbc/poloapi/notify"
)

type playerRequest struct {
	Name  *string  `json:"name"`
	Level *float64 `json:"level"`
	Notes *string  `json:"notes"`
}

// Players returns all active players, alphabetical.
func (h *Handler) Players(c echo.Context) error {
	var players []models.Player
	err := h.db.NewSelect().Model(&players).
		Where("p.active").
		OrderExpr("p.name ASC").
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, players)
}

// CreatePlayer registers a club member.
func (h *Handler) CreatePlayer(c echo.Context) error {
	var req playerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	player := &models.Player{Active: true}
	if req.Name != nil {
		player.Name = strings.TrimSpace(*req.Name)
	}
	if player.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if req.Level != nil {
		if !models.ValidLevel(*req.Level) {
			return echo.NewHTTPError(http.StatusBadRequest, "level must be a half-point handicap between -2 and 10")
		}
		player.Level = *req.Level
	}
	if req.Notes != nil {
		player.Notes = *req.Notes
	}

	if _, err := h.db.NewInsert().Model(player).Exec(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.hub.Publish(notify.TopicPlayers)
	return c.JSON(http.StatusCreated, player)
}

// UpdatePlayer applies a partial update.
func (h *Handler) UpdatePlayer(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad player id")
	}

	var req playerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	player := &models.Player{}
	if err := h.db.NewSelect().Model(player).
		Where("p.player_id = ?", id).
		Scan(ctx); err != nil {
		return scanErr(err, "player")
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "name cannot be empty")
		}
		player.Name = name
	}
	if req.Level != nil {
		if !models.ValidLevel(*req.Level) {
			return echo.NewHTTPError(http.StatusBadRequest, "level must be a half-point handicap between -2 and 10")
		}
		player.Level = *req.Level
	}
	if req.Notes != nil {
		player.Notes = *req.Notes
	}
	player.UpdatedAt = time.Now()

	if _, err := h.db.NewUpdate().Model(player).
		Column("name", "level", "notes", "updated_at").
		Where("player_id = ?", id).
		Exec(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.hub.Publish(notify.TopicPlayers)
	return c.JSON(http.StatusOK, player)
}

// DeletePlayer soft-deletes a player. Past practices keep referencing
// the id; the planner treats unknown ids as zero-handicap ghosts.
func (h *Handler) DeletePlayer(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad player id")
	}

	res, err := h.db.NewUpdate().Model((*models.Player)(nil)).
		Set("active = false").
		Set("updated_at = now()").
		Where("player_id = ?", id).
		Exec(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "player not found")
	}

	h.hub.Publish(notify.TopicPlayers)
	return c.NoContent(http.StatusOK)
}
