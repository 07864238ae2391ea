package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/poloapi/models"
	"github.com/padraicbc/poloapi/notify"
)

// Stream pushes whole-collection snapshots over server-sent events. The
// client gets the current snapshot immediately and a fresh one after
// every change; there are no diffs to reconcile.
func (h *Handler) Stream(c echo.Context) error {
	topic := c.Param("collection")
	switch topic {
	case notify.TopicHorses, notify.TopicPlayers, notify.TopicPractices:
	default:
		return echo.NewHTTPError(http.StatusNotFound, "unknown collection")
	}

	ctx := c.Request().Context()
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)

	signals, cancel := h.hub.Subscribe(topic)
	defer cancel()

	if err := h.writeSnapshot(ctx, res, topic); err != nil {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-signals:
			if err := h.writeSnapshot(ctx, res, topic); err != nil {
				return nil
			}
		}
	}
}

func (h *Handler) writeSnapshot(ctx context.Context, res *echo.Response, topic string) error {
	var payload interface{}
	var err error

	switch topic {
	case notify.TopicHorses:
		var horses []models.Horse
		err = h.db.NewSelect().Model(&horses).
			Where("h.active").
			OrderExpr("h.name ASC").
			Scan(ctx)
		payload = horses
	case notify.TopicPlayers:
		var players []models.Player
		err = h.db.NewSelect().Model(&players).
			Where("p.active").
			OrderExpr("p.name ASC").
			Scan(ctx)
		payload = players
	case notify.TopicPractices:
		var practices []models.Practice
		err = h.db.NewSelect().Model(&practices).
			OrderExpr("pr.date DESC, pr.practice_id DESC").
			Scan(ctx)
		payload = practices
	}
	if err != nil {
		return err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(res, "data: %s\n\n", data); err != nil {
		return err
	}
	res.Flush()
	return nil
}
