package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"github.com/padraicbc/poloapi/config"
	"github.com/padraicbc/poloapi/notify"
)

func newTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	t.Helper()
	sqldb, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqldb.Close() })

	db := bun.NewDB(sqldb, pgdialect.New())
	cfg := &config.Config{BalanceThreshold: 2}
	return New(db, notify.NewHub(), cfg), mock
}

func practiceRow() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"practice_id", "name", "date", "status",
		"teams", "chukkers", "confirmed_players",
		"created_at", "updated_at", "completed_at",
	}).AddRow(
		1, "Sábado", "2026-03-14", "planned",
		[]byte(`{"A":[1],"B":[]}`),
		[]byte(`[{"number":1,"assignments":[],"scoreA":0,"scoreB":0}]`),
		[]byte(`[]`),
		now, now, nil,
	)
}

func postJSON(t *testing.T, body string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("1")
	return c
}

func TestMovePlayerUnknownPlayer(t *testing.T) {
	t.Parallel()

	h, mock := newTestHandler(t)
	mock.ExpectQuery(`SELECT .+ FROM "practices"`).WillReturnRows(practiceRow())
	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	err := h.MovePlayer(postJSON(t, `{"playerId":99,"to":"B"}`))

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusNotFound, he.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovePlayerBadTeam(t *testing.T) {
	t.Parallel()

	h, mock := newTestHandler(t)
	mock.ExpectQuery(`SELECT .+ FROM "practices"`).WillReturnRows(practiceRow())

	err := h.MovePlayer(postJSON(t, `{"playerId":1,"to":"C"}`))

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovePlayerWritesDisjointRosters(t *testing.T) {
	t.Parallel()

	h, mock := newTestHandler(t)
	mock.ExpectQuery(`SELECT .+ FROM "practices"`).WillReturnRows(practiceRow())
	mock.ExpectQuery(`SELECT EXISTS`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectExec(`UPDATE "practices"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c := postJSON(t, `{"playerId":1,"to":"B"}`)
	require.NoError(t, h.MovePlayer(c))

	body := c.Response().Writer.(*httptest.ResponseRecorder).Body.String()
	assert.Contains(t, body, `"teams":{"A":[],"B":[1]}`)
	assert.NoError(t, mock.ExpectationsWereMet())
}
