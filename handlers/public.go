package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/poloapi/models"
	"github.com/padraicbc/poloapi/planner"
)

// publicPractice is the slimmed-down practice shown to non-administrators.
type publicPractice struct {
	PracticeID       int          `json:"practiceID"`
	Name             string       `json:"name"`
	Date             string       `json:"date"`
	Status           string       `json:"status"`
	Teams            models.Teams `json:"teams"`
	ConfirmedPlayers []int        `json:"confirmedPlayers"`
	ConfirmedCount   int          `json:"confirmedCount"`
}

type publicPlayer struct {
	PlayerID int     `json:"playerID"`
	Name     string  `json:"name"`
	Level    float64 `json:"level"`
}

// PublicPractices lists upcoming practices (planned or in progress, today
// or later) for the attendance-confirmation view, soonest first.
func (h *Handler) PublicPractices(c echo.Context) error {
	var practices []models.Practice
	err := h.db.NewSelect().Model(&practices).
		Where("pr.status IN (?, ?)", models.PracticePlanned, models.PracticeInProgress).
		Where("pr.date >= ?", planner.Today()).
		OrderExpr("pr.date ASC, pr.practice_id ASC").
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	out := make([]publicPractice, len(practices))
	for i, p := range practices {
		out[i] = publicPractice{
			PracticeID:       p.PracticeID,
			Name:             p.Name,
			Date:             p.Date,
			Status:           p.Status,
			Teams:            p.Teams,
			ConfirmedPlayers: p.ConfirmedPlayers,
			ConfirmedCount:   len(p.ConfirmedPlayers),
		}
	}
	return c.JSON(http.StatusOK, out)
}

// PublicPlayers lists active players so attendees can pick their own name.
func (h *Handler) PublicPlayers(c echo.Context) error {
	var players []models.Player
	err := h.db.NewSelect().Model(&players).
		Where("p.active").
		OrderExpr("p.name ASC").
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	out := make([]publicPlayer, len(players))
	for i, p := range players {
		out[i] = publicPlayer{PlayerID: p.PlayerID, Name: p.Name, Level: p.Level}
	}
	return c.JSON(http.StatusOK, out)
}

// ConfirmAttendance toggles a player's RSVP on a practice. Idempotent in
// pairs: toggling twice restores the original set. Team membership is
// not required.
func (h *Handler) ConfirmAttendance(c echo.Context) error {
	p, err := h.loadPractice(c)
	if err != nil {
		return err
	}

	var req struct {
		PlayerID int `json:"playerId"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ctx := c.Request().Context()
	if err := h.playerExists(ctx, req.PlayerID); err != nil {
		return err
	}

	confirmed := planner.ToggleConfirmation(p, req.PlayerID)

	if err := h.savePractice(ctx, p, "confirmed_players"); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"confirmed":        confirmed,
		"confirmedPlayers": p.ConfirmedPlayers,
	})
}
