package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JMMonte/Accounting-suite/pkg/allowance"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrReportNotFound = errors.New("report not found")

type Repository interface {
	Store(ctx context.Context, report Report) (Report, error)
	Get(ctx context.Context, uid string) (Report, error)
	List(ctx context.Context) ([]Report, error)
	Delete(ctx context.Context, uid string) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewReportRepo(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r RepositoryImpl) Store(ctx context.Context, report Report) (Report, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return Report{}, err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO expense_report (
					uid,
					year,
					month,
					max_daily,
					max_total,
					total,
					created_at
				) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`

	var reportId int
	err = tx.QueryRow(ctx, query,
		report.Uid,
		report.Year,
		int(report.Month),
		report.MaxDaily,
		report.MaxTotal,
		report.Total,
		report.CreatedAt,
	).Scan(&reportId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return Report{}, err
	}

	dayQuery := `INSERT INTO expense_report_day (
					report_id,
					date,
					rate,
					tier,
					start_time,
					end_time,
					objective,
					location,
					trip_id
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, day := range report.Days {
		_, err := tx.Exec(ctx, dayQuery,
			reportId,
			day.Date,
			day.Rate,
			int(day.Tier),
			day.Start,
			day.End,
			day.Objective,
			day.Location,
			day.TripId,
		)
		if err != nil {
			err := fmt.Errorf("could not execute query: %w", err)
			log.Error(err)
			return Report{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Report{}, fmt.Errorf("could not commit transaction: %w", err)
	}

	report.Id = reportId
	return report, nil
}

func (r RepositoryImpl) Get(ctx context.Context, uid string) (Report, error) {
	query := `SELECT id, year, month, max_daily, max_total, total, created_at
				FROM expense_report WHERE uid = $1`

	var report Report
	var month int
	err := r.db.QueryRow(ctx, query, uid).Scan(
		&report.Id,
		&report.Year,
		&month,
		&report.MaxDaily,
		&report.MaxTotal,
		&report.Total,
		&report.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Report{}, ErrReportNotFound
		}
		err := fmt.Errorf("could not query report: %w", err)
		log.Error(err)
		return Report{}, err
	}
	report.Uid = uid
	report.Month = time.Month(month)

	days, err := r.listDays(ctx, report.Id)
	if err != nil {
		return Report{}, err
	}
	report.Days = days
	return report, nil
}

func (r RepositoryImpl) listDays(ctx context.Context, reportId int) ([]allowance.Day, error) {
	query := `SELECT date, rate, tier, start_time, end_time, objective, location, trip_id
				FROM expense_report_day WHERE report_id = $1 ORDER BY date`
	rows, err := r.db.Query(ctx, query, reportId)
	if err != nil {
		err := fmt.Errorf("could not query report days: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var days []allowance.Day
	for rows.Next() {
		var day allowance.Day
		var tier int
		if err := rows.Scan(
			&day.Date,
			&day.Rate,
			&tier,
			&day.Start,
			&day.End,
			&day.Objective,
			&day.Location,
			&day.TripId,
		); err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		day.Tier = allowance.Tier(tier)
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return days, nil
}

// List returns report summaries without their day records, newest first.
func (r RepositoryImpl) List(ctx context.Context) ([]Report, error) {
	query := `SELECT id, uid, year, month, max_daily, max_total, total, created_at
				FROM expense_report ORDER BY year DESC, month DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query reports: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var reports []Report
	for rows.Next() {
		var report Report
		var month int
		if err := rows.Scan(
			&report.Id,
			&report.Uid,
			&report.Year,
			&month,
			&report.MaxDaily,
			&report.MaxTotal,
			&report.Total,
			&report.CreatedAt,
		); err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		report.Month = time.Month(month)
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return reports, nil
}

func (r RepositoryImpl) Delete(ctx context.Context, uid string) (bool, error) {
	query := "DELETE FROM expense_report WHERE uid = $1"
	result, err := r.db.Exec(ctx, query, uid)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}
