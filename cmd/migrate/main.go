// cmd/migrate/main.go
// Imports the legacy MySQL stable-book into the local PostgreSQL database:
// ponies become horses, members become players. Rows already present (by
// name) are left untouched, so the import can be re-run.
//
// Usage:
//
//	MYSQL_DSN="user:pass@tcp(host:3306)/clubdata?parseTime=true" \
//	DB_PASS="pgpass" \
//	go run ./cmd/migrate
package main

import (
	"context"
	"database/sql"
	"log"

	_ "github.com/go-sql-driver/mysql"
	"github.com/uptrace/bun"

	"github.com/padraicbc/poloapi/config"
	bundb "github.com/padraicbc/poloapi/db"
	"github.com/padraicbc/poloapi/models"
)

const batchSize = 500

func main() {
	ctx := context.Background()

	cfg := config.LoadMigrate()
	if cfg.MySQLDSN == "" {
		log.Fatal("MYSQL_DSN must be set")
	}

	mdb, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal("open mysql:", err)
	}
	defer mdb.Close()

	pdb := bundb.Setup(cfg)
	defer pdb.Close()

	if err := bundb.CreateTables(ctx, pdb); err != nil {
		log.Fatal("create tables:", err)
	}

	horses, err := importHorses(ctx, mdb, pdb)
	if err != nil {
		log.Fatal("import horses:", err)
	}
	players, err := importPlayers(ctx, mdb, pdb)
	if err != nil {
		log.Fatal("import players:", err)
	}

	log.Printf("imported %d horses, %d players", horses, players)
}

func importHorses(ctx context.Context, mdb *sql.DB, pdb *bun.DB) (int, error) {
	rows, err := mdb.QueryContext(ctx,
		`SELECT name, status, max_chukkers, COALESCE(notes, '') FROM ponies ORDER BY name`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	batch := make([]models.Horse, 0, batchSize)
	total := 0

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		_, err := pdb.NewInsert().Model(&batch).
			On("CONFLICT (name) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return err
		}
		total += len(batch)
		batch = batch[:0]
		return nil
	}

	for rows.Next() {
		var h models.Horse
		if err := rows.Scan(&h.Name, &h.Status, &h.MaxChukkersPerDay, &h.Notes); err != nil {
			return total, err
		}
		if !models.ValidStatus(h.Status) {
			h.Status = models.StatusAvailable
		}
		if h.MaxChukkersPerDay < 1 {
			h.MaxChukkersPerDay = 2
		}
		h.Suitability = models.SuitabilityIntermediate
		h.Temperament = models.TemperamentMedium
		h.Active = true

		batch = append(batch, h)
		if len(batch) == batchSize {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}
	if err := rows.Err(); err != nil {
		return total, err
	}
	return total, flush()
}

func importPlayers(ctx context.Context, mdb *sql.DB, pdb *bun.DB) (int, error) {
	rows, err := mdb.QueryContext(ctx,
		`SELECT name, handicap, COALESCE(notes, '') FROM members ORDER BY name`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	batch := make([]models.Player, 0, batchSize)
	total := 0

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		_, err := pdb.NewInsert().Model(&batch).Exec(ctx)
		if err != nil {
			return err
		}
		total += len(batch)
		batch = batch[:0]
		return nil
	}

	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.Name, &p.Level, &p.Notes); err != nil {
			return total, err
		}
		if !models.ValidLevel(p.Level) {
			p.Level = 0
		}
		p.Active = true

		batch = append(batch, p)
		if len(batch) == batchSize {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}
	if err := rows.Err(); err != nil {
		return total, err
	}
	return total, flush()
}
