package postgres

import (
	"context"
	"database/sql"

	"pet-adoption-backend/internal/domain/stats"
)

type StatsRepo struct {
	db *sql.DB
}

func NewStatsRepo(db *sql.DB) *StatsRepo {
	return &StatsRepo{db: db}
}

func (r *StatsRepo) Totals(ctx context.Context) (stats.Totals, error) {
	var t stats.Totals

	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM pets GROUP BY status`)
	if err != nil {
		return stats.Totals{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return stats.Totals{}, err
		}
		t.PetsTotal += n
		switch status {
		case "available":
			t.PetsAvailable = n
		case "pending":
			t.PetsPending = n
		case "adopted":
			t.PetsAdopted = n
		}
	}
	if err := rows.Err(); err != nil {
		return stats.Totals{}, err
	}

	appRows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM applications GROUP BY status`)
	if err != nil {
		return stats.Totals{}, err
	}
	defer appRows.Close()

	for appRows.Next() {
		var status string
		var n int
		if err := appRows.Scan(&status, &n); err != nil {
			return stats.Totals{}, err
		}
		t.ApplicationsTotal += n
		switch status {
		case "pending":
			t.ApplicationsPending = n
		case "approved":
			t.ApplicationsApproved = n
		case "rejected":
			t.ApplicationsRejected = n
		}
	}
	return t, appRows.Err()
}
