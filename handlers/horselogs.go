package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/poloapi/models"
	"github.com/padraicbc/poloapi/notify"
	"github.com/padraicbc/poloapi/planner"
)

const defaultLogPage = 30

// HorseLogs returns a horse's activity log, newest first, paginated by
// limit/offset.
func (h *Handler) HorseLogs(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad horse id")
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 || limit > 200 {
		limit = defaultLogPage
	}
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	if offset < 0 {
		offset = 0
	}

	var logs []models.HorseLog
	err = h.db.NewSelect().Model(&logs).
		Where("hl.horse_id = ?", id).
		OrderExpr("hl.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, logs)
}

// CreateHorseLog appends one entry by hand: a workload correction, a note
// or a health record.
func (h *Handler) CreateHorseLog(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad horse id")
	}

	var req struct {
		Date          string `json:"date"`
		Type          string `json:"type"`
		ChukkersDelta int    `json:"chukkersDelta"`
		Note          string `json:"note"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if req.Type == "" {
		req.Type = models.LogWorkload
	}
	if !models.ValidLogType(req.Type) {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown log type")
	}
	if req.Date == "" {
		req.Date = planner.Today()
	}
	if _, err := time.Parse(planner.DateLayout, req.Date); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	if req.Type != models.LogWorkload {
		req.ChukkersDelta = 0
	} else if req.ChukkersDelta < -5 || req.ChukkersDelta > 5 {
		return echo.NewHTTPError(http.StatusBadRequest, "chukkersDelta must be between -5 and 5")
	}

	ctx := c.Request().Context()
	exists, err := h.db.NewSelect().Model((*models.Horse)(nil)).
		Where("horse_id = ?", id).
		Exists(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !exists {
		return echo.NewHTTPError(http.StatusNotFound, "horse not found")
	}

	entry := &models.HorseLog{
		HorseID:       id,
		Date:          req.Date,
		Type:          req.Type,
		ChukkersDelta: req.ChukkersDelta,
		Note:          req.Note,
	}
	if _, err := h.db.NewInsert().Model(entry).Exec(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.hub.Publish(notify.LogTopic(id))
	return c.JSON(http.StatusCreated, entry)
}

// DeleteHorseLog removes a single entry. Entries are never edited in
// place; delete and re-add instead.
func (h *Handler) DeleteHorseLog(c echo.Context) error {
	horseID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad horse id")
	}
	logID, err := strconv.Atoi(c.Param("logID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad log id")
	}

	res, err := h.db.NewDelete().Model((*models.HorseLog)(nil)).
		Where("id = ? AND horse_id = ?", logID, horseID).
		Exec(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "log entry not found")
	}

	h.hub.Publish(notify.LogTopic(horseID))
	return c.NoContent(http.StatusOK)
}

// Workload reports today's and this week's chukker totals for a horse,
// recomputed from the log on every read.
func (h *Handler) Workload(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad horse id")
	}

	ctx := c.Request().Context()
	horse := &models.Horse{}
	if err := h.db.NewSelect().Model(horse).
		Where("h.horse_id = ?", id).
		Scan(ctx); err != nil {
		return scanErr(err, "horse")
	}

	today := planner.Today()
	var logs []models.HorseLog
	err = h.db.NewSelect().Model(&logs).
		Where("hl.horse_id = ? AND hl.type = ?", id, models.LogWorkload).
		Where("hl.date >= ?::date - interval '6 days'", today).
		Scan(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"horseID":    horse.HorseID,
		"date":       today,
		"today":      planner.DailyWorkload(logs, today),
		"week":       planner.WeeklyWorkload(logs, today),
		"max":        horse.MaxChukkersPerDay,
		"overworked": planner.Overworked(logs, today, horse.MaxChukkersPerDay),
	})
}
