package handlers

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/padraicbc/poloapi/models"
	"github.com/padraicbc/poloapi/notify"
	"github.com/padraicbc/poloapi/planner"
)

// practiceView wraps the stored aggregate with the figures the planner
// derives on every read: handicaps, balance, per-horse usage and scores.
type practiceView struct {
	*models.Practice
	HandicapA    float64     `json:"handicapA"`
	HandicapB    float64     `json:"handicapB"`
	BalanceDelta float64     `json:"balanceDelta"`
	Unbalanced   bool        `json:"unbalanced"`
	HorseUsage   map[int]int `json:"horseUsage"`
	TotalScoreA  int         `json:"totalScoreA"`
	TotalScoreB  int         `json:"totalScoreB"`
	Winner       string      `json:"winner,omitempty"`
}

func (h *Handler) viewOf(ctx context.Context, p *models.Practice) (*practiceView, error) {
	var players []models.Player
	if err := h.db.NewSelect().Model(&players).Scan(ctx); err != nil {
		return nil, err
	}
	idx := planner.PlayerIndex(players)

	a := planner.TeamHandicap(p.Teams.A, idx)
	b := planner.TeamHandicap(p.Teams.B, idx)
	delta := planner.BalanceDelta(a, b)
	scoreA, scoreB := planner.TotalScore(p)

	v := &practiceView{
		Practice:     p,
		HandicapA:    a,
		HandicapB:    b,
		BalanceDelta: delta,
		Unbalanced:   planner.Unbalanced(delta, h.cfg.BalanceThreshold),
		HorseUsage:   planner.UsageCounts(p),
		TotalScoreA:  scoreA,
		TotalScoreB:  scoreB,
	}
	if p.Status == models.PracticeCompleted {
		v.Winner = planner.Winner(p)
	}
	return v, nil
}

// Practices returns all practices, newest date first, optionally
// filtered by status.
func (h *Handler) Practices(c echo.Context) error {
	status := c.QueryParam("status")
	if status != "" && !models.ValidPracticeStatus(status) {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown status")
	}

	var practices []models.Practice
	q := h.db.NewSelect().Model(&practices).
		OrderExpr("pr.date DESC, pr.practice_id DESC")
	if status != "" {
		q = q.Where("pr.status = ?", status)
	}
	if err := q.Scan(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, practices)
}

// GetPractice returns one practice with derived figures.
func (h *Handler) GetPractice(c echo.Context) error {
	p, err := h.loadPractice(c)
	if err != nil {
		return err
	}
	view, err := h.viewOf(c.Request().Context(), p)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, view)
}

// CreatePractice sets up a planned practice with the requested number of
// empty chukkers.
func (h *Handler) CreatePractice(c echo.Context) error {
	var req struct {
		Name         string `json:"name"`
		Date         string `json:"date"`
		ChukkerCount int    `json:"chukkerCount"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if req.Date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date is required")
	}
	if _, err := time.Parse(planner.DateLayout, req.Date); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	if req.ChukkerCount == 0 {
		req.ChukkerCount = 4
	}
	if req.ChukkerCount < 1 || req.ChukkerCount > 8 {
		return echo.NewHTTPError(http.StatusBadRequest, "chukkerCount must be between 1 and 8")
	}

	p := &models.Practice{
		Name:             strings.TrimSpace(req.Name),
		Date:             req.Date,
		Status:           models.PracticePlanned,
		Teams:            models.Teams{A: []int{}, B: []int{}},
		Chukkers:         models.NewChukkers(req.ChukkerCount),
		ConfirmedPlayers: []int{},
	}
	if _, err := h.db.NewInsert().Model(p).Exec(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.hub.Publish(notify.TopicPractices)
	return c.JSON(http.StatusCreated, p)
}

// UpdatePractice edits name, date or status directly. Setting status here
// bypasses the start/complete flow; it exists for manual corrections.
func (h *Handler) UpdatePractice(c echo.Context) error {
	p, err := h.loadPractice(c)
	if err != nil {
		return err
	}

	var req struct {
		Name   *string `json:"name"`
		Date   *string `json:"date"`
		Status *string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Date != nil {
		if _, err := time.Parse(planner.DateLayout, *req.Date); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
		}
		p.Date = *req.Date
	}
	if req.Status != nil {
		if !models.ValidPracticeStatus(*req.Status) {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown status")
		}
		p.Status = *req.Status
	}

	if err := h.savePractice(c.Request().Context(), p, "name", "date", "status"); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// DeletePractice removes a practice outright. Completed practices keep
// their workload logs; those belong to the horses.
func (h *Handler) DeletePractice(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad practice id")
	}

	res, err := h.db.NewDelete().Model((*models.Practice)(nil)).
		Where("practice_id = ?", id).
		Exec(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "practice not found")
	}

	h.hub.Publish(notify.TopicPractices)
	return c.NoContent(http.StatusOK)
}

// AssignTeam puts a player on side A or B, or with an empty team removes
// them from both sides and scrubs their chukker assignments.
func (h *Handler) AssignTeam(c echo.Context) error {
	p, err := h.loadPractice(c)
	if err != nil {
		return err
	}

	var req struct {
		PlayerID int    `json:"playerId"`
		Team     string `json:"team"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Team != "" && req.Team != models.TeamA && req.Team != models.TeamB {
		return echo.NewHTTPError(http.StatusBadRequest, "team must be A, B or empty")
	}
	if err := h.playerExists(c.Request().Context(), req.PlayerID); err != nil {
		return err
	}

	planner.AssignToTeam(p, req.PlayerID, req.Team)

	if err := h.savePractice(c.Request().Context(), p, "teams", "chukkers"); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// MovePlayer switches a player between sides, keeping their horse
// pairings.
func (h *Handler) MovePlayer(c echo.Context) error {
	p, err := h.loadPractice(c)
	if err != nil {
		return err
	}

	var req struct {
		PlayerID int    `json:"playerId"`
		To       string `json:"to"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.To != models.TeamA && req.To != models.TeamB {
		return echo.NewHTTPError(http.StatusBadRequest, "to must be A or B")
	}
	if err := h.playerExists(c.Request().Context(), req.PlayerID); err != nil {
		return err
	}

	planner.MovePlayer(p, req.PlayerID, req.To)

	if err := h.savePractice(c.Request().Context(), p, "teams"); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// AddChukker appends an empty chukker.
func (h *Handler) AddChukker(c echo.Context) error {
	p, err := h.loadPractice(c)
	if err != nil {
		return err
	}

	planner.AddChukker(p)

	if err := h.savePractice(c.Request().Context(), p, "chukkers"); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// RemoveChukker drops one chukker and renumbers the rest contiguously.
func (h *Handler) RemoveChukker(c echo.Context) error {
	p, err := h.loadPractice(c)
	if err != nil {
		return err
	}
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad chukker number")
	}

	if err := planner.RemoveChukker(p, number); err != nil {
		return chukkerErr(err)
	}

	if err := h.savePractice(c.Request().Context(), p, "chukkers"); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// SetScore records one chukker's goals. Scores only mean anything once
// the practice is under way.
func (h *Handler) SetScore(c echo.Context) error {
	p, err := h.loadPractice(c)
	if err != nil {
		return err
	}
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad chukker number")
	}
	if p.Status == models.PracticePlanned {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "practice has not started")
	}

	var req struct {
		ScoreA int `json:"scoreA"`
		ScoreB int `json:"scoreB"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := planner.SetScore(p, number, req.ScoreA, req.ScoreB); err != nil {
		return chukkerErr(err)
	}

	if err := h.savePractice(c.Request().Context(), p, "chukkers"); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// AssignHorse upserts a player/horse pairing in one chukker. Breaking the
// availability or daily-cap rules yields a warning in the response; the
// write still goes through.
func (h *Handler) AssignHorse(c echo.Context) error {
	p, err := h.loadPractice(c)
	if err != nil {
		return err
	}
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad chukker number")
	}

	var req struct {
		PlayerID int `json:"playerId"`
		HorseID  int `json:"horseId"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if planner.OnTeam(p, req.PlayerID) == "" {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "player is not on a team")
	}

	ctx := c.Request().Context()
	warning := ""
	if req.HorseID != 0 {
		horse := &models.Horse{}
		if err := h.db.NewSelect().Model(horse).
			Where("h.horse_id = ?", req.HorseID).
			Scan(ctx); err != nil {
			return scanErr(err, "horse")
		}
		warning = planner.AssignmentWarning(p, *horse, number, req.PlayerID)
	}

	if err := planner.AssignHorse(p, number, req.PlayerID, req.HorseID); err != nil {
		return chukkerErr(err)
	}

	if err := h.savePractice(ctx, p, "chukkers"); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"practice": p,
		"warning":  warning,
	})
}

// StartPractice moves planned → in-progress and unlocks score entry.
func (h *Handler) StartPractice(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad practice id")
	}

	res, err := h.db.NewUpdate().Model((*models.Practice)(nil)).
		Set("status = ?", models.PracticeInProgress).
		Set("updated_at = now()").
		Where("practice_id = ? AND status = ?", id, models.PracticePlanned).
		Exec(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return echo.NewHTTPError(http.StatusConflict, "practice is not in the planned state")
	}

	h.hub.Publish(notify.TopicPractices)
	return c.NoContent(http.StatusOK)
}

// CompletePractice closes an in-progress practice and commits its horse
// usage to the workload ledger. The log inserts and the status flip share
// one transaction: either every horse gets exactly one entry and the
// practice completes, or nothing changes and the action can be retried
// without double-counting.
func (h *Handler) CompletePractice(c echo.Context) error {
	p, err := h.loadPractice(c)
	if err != nil {
		return err
	}

	usage := planner.UsageCounts(p)
	entries := make([]models.HorseLog, 0, len(usage))
	horseIDs := make([]int, 0, len(usage))
	for id := range usage {
		horseIDs = append(horseIDs, id)
	}
	sort.Ints(horseIDs)

	name := p.Name
	if name == "" {
		name = "Unnamed"
	}
	for _, horseID := range horseIDs {
		entries = append(entries, models.HorseLog{
			HorseID:       horseID,
			Date:          p.Date,
			Type:          models.LogWorkload,
			ChukkersDelta: usage[horseID],
			Note:          "Practice: " + name,
		})
	}

	ctx := c.Request().Context()
	err = h.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().Model((*models.Practice)(nil)).
			Set("status = ?", models.PracticeCompleted).
			Set("completed_at = now()").
			Set("updated_at = now()").
			Where("practice_id = ? AND status = ?", p.PracticeID, models.PracticeInProgress).
			Exec(ctx)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return errNotInProgress
		}
		if len(entries) == 0 {
			return nil
		}
		_, err = tx.NewInsert().Model(&entries).Exec(ctx)
		return err
	})
	if err != nil {
		if errors.Is(err, errNotInProgress) {
			return echo.NewHTTPError(http.StatusConflict, "practice is not in progress")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.hub.Publish(notify.TopicPractices)
	for _, horseID := range horseIDs {
		h.hub.Publish(notify.LogTopic(horseID))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"horsesLogged": len(entries),
	})
}

// Summary renders the WhatsApp-ready text for a practice.
func (h *Handler) Summary(c echo.Context) error {
	p, err := h.loadPractice(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	var players []models.Player
	if err := h.db.NewSelect().Model(&players).Scan(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	var horses []models.Horse
	if err := h.db.NewSelect().Model(&horses).Scan(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.String(http.StatusOK, planner.ShareText(p, players, horses))
}

var errNotInProgress = errors.New("practice is not in progress")

func (h *Handler) loadPractice(c echo.Context) (*models.Practice, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "bad practice id")
	}

	p := &models.Practice{}
	if err := h.db.NewSelect().Model(p).
		Where("pr.practice_id = ?", id).
		Scan(c.Request().Context()); err != nil {
		return nil, scanErr(err, "practice")
	}
	return p, nil
}

// savePractice writes the mutated columns back. Whole jsonb fields go
// out at once; concurrent editors are last-write-wins.
func (h *Handler) savePractice(ctx context.Context, p *models.Practice, cols ...string) error {
	p.UpdatedAt = time.Now()
	cols = append(cols, "updated_at")

	if _, err := h.db.NewUpdate().Model(p).
		Column(cols...).
		Where("practice_id = ?", p.PracticeID).
		Exec(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.hub.Publish(notify.TopicPractices)
	return nil
}

func (h *Handler) playerExists(ctx context.Context, id int) error {
	exists, err := h.db.NewSelect().Model((*models.Player)(nil)).
		Where("player_id = ?", id).
		Exists(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !exists {
		return echo.NewHTTPError(http.StatusNotFound, "player not found")
	}
	return nil
}

func chukkerErr(err error) error {
	switch {
	case errors.Is(err, planner.ErrChukkerNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, planner.ErrLastChukker):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}
