package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/poloapi/models"
	"github.com/padraicbc/poloapi/notify"
	"github.com/padraicbc/poloapi/planner"
)

type horseRequest struct {
	Name              *string `json:"name"`
	Status            *string `json:"status"`
	Suitability       *string `json:"suitability"`
	Temperament       *string `json:"temperament"`
	MaxChukkersPerDay *int    `json:"maxChukkersPerDay"`
	Notes             *string `json:"notes"`
}

// Horses returns all active horses, alphabetical, optionally filtered by
// roster status.
func (h *Handler) Horses(c echo.Context) error {
	status := c.QueryParam("status")
	if status != "" && !models.ValidStatus(status) {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown status")
	}

	var horses []models.Horse
	q := h.db.NewSelect().Model(&horses).
		Where("h.active").
		OrderExpr("h.name ASC")
	if status != "" {
		q = q.Where("h.status = ?", status)
	}

	if err := q.Scan(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, horses)
}

// GetHorse returns one horse by id, active or not. Past practices keep
// referencing soft-deleted horses.
func (h *Handler) GetHorse(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad horse id")
	}

	horse := &models.Horse{}
	if err := h.db.NewSelect().Model(horse).
		Where("h.horse_id = ?", id).
		Scan(c.Request().Context()); err != nil {
		return scanErr(err, "horse")
	}
	return c.JSON(http.StatusOK, horse)
}

// CreateHorse inserts a new horse onto the roster.
func (h *Handler) CreateHorse(c echo.Context) error {
	var req horseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	horse := &models.Horse{
		Status:            models.StatusAvailable,
		Suitability:       models.SuitabilityIntermediate,
		Temperament:       models.TemperamentMedium,
		MaxChukkersPerDay: 2,
		Active:            true,
	}
	if req.Name != nil {
		horse.Name = strings.TrimSpace(*req.Name)
	}
	if horse.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if err := applyHorseFields(horse, &req); err != nil {
		return err
	}

	if _, err := h.db.NewInsert().Model(horse).Exec(c.Request().Context()); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
			return echo.NewHTTPError(http.StatusConflict, "horse already exists")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.hub.Publish(notify.TopicHorses)
	return c.JSON(http.StatusCreated, horse)
}

// UpdateHorse applies a partial update. Status transitions are
// unconstrained; eligibility for assignments is checked where horses are
// picked, not here.
func (h *Handler) UpdateHorse(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad horse id")
	}

	var req horseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	horse := &models.Horse{}
	ctx := c.Request().Context()
	if err := h.db.NewSelect().Model(horse).
		Where("h.horse_id = ?", id).
		Scan(ctx); err != nil {
		return scanErr(err, "horse")
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "name cannot be empty")
		}
		horse.Name = name
	}
	if err := applyHorseFields(horse, &req); err != nil {
		return err
	}
	horse.UpdatedAt = time.Now()

	if _, err := h.db.NewUpdate().Model(horse).
		Column("name", "status", "suitability", "temperament", "max_chukkers_per_day", "notes", "updated_at").
		Where("horse_id = ?", id).
		Exec(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.hub.Publish(notify.TopicHorses)
	return c.JSON(http.StatusOK, horse)
}

// DeleteHorse soft-deletes: the horse drops off the roster but its log
// history stays attributable.
func (h *Handler) DeleteHorse(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad horse id")
	}

	res, err := h.db.NewUpdate().Model((*models.Horse)(nil)).
		Set("active = false").
		Set("updated_at = now()").
		Where("horse_id = ?", id).
		Exec(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "horse not found")
	}

	h.hub.Publish(notify.TopicHorses)
	return c.NoContent(http.StatusOK)
}

// QuickChukker appends today's workload in one tap. Only available
// horses take quick increments.
func (h *Handler) QuickChukker(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad horse id")
	}

	var req struct {
		Delta int `json:"delta"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Delta == 0 {
		req.Delta = 1
	}
	if req.Delta < -5 || req.Delta > 5 {
		return echo.NewHTTPError(http.StatusBadRequest, "delta must be between -5 and 5")
	}

	ctx := c.Request().Context()
	horse := &models.Horse{}
	if err := h.db.NewSelect().Model(horse).
		Where("h.horse_id = ? AND h.active", id).
		Scan(ctx); err != nil {
		return scanErr(err, "horse")
	}
	if horse.Status != models.StatusAvailable {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "horse is not available")
	}

	entry := &models.HorseLog{
		HorseID:       id,
		Date:          planner.Today(),
		Type:          models.LogWorkload,
		ChukkersDelta: req.Delta,
	}
	if _, err := h.db.NewInsert().Model(entry).Exec(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.hub.Publish(notify.LogTopic(id))
	return c.JSON(http.StatusCreated, entry)
}

func applyHorseFields(horse *models.Horse, req *horseRequest) error {
	if req.Status != nil {
		if !models.ValidStatus(*req.Status) {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown status")
		}
		horse.Status = *req.Status
	}
	if req.Suitability != nil {
		if !models.ValidSuitability(*req.Suitability) {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown suitability")
		}
		horse.Suitability = *req.Suitability
	}
	if req.Temperament != nil {
		if !models.ValidTemperament(*req.Temperament) {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown temperament")
		}
		horse.Temperament = *req.Temperament
	}
	if req.MaxChukkersPerDay != nil {
		if *req.MaxChukkersPerDay < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "maxChukkersPerDay must be at least 1")
		}
		horse.MaxChukkersPerDay = *req.MaxChukkersPerDay
	}
	if req.Notes != nil {
		horse.Notes = *req.Notes
	}
	return nil
}
