package psql

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/peter-kozarec/aphelion/pkg/backtest"
	"github.com/peter-kozarec/aphelion/pkg/common"
)

func Connect(ctx context.Context, host, port, user, pass, db string) (*sql.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", host, port, user, pass, db)
	dbConn, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := dbConn.PingContext(ctx); err != nil {
		return nil, err
	}

	return dbConn, nil
}

func InsertBacktestReport(ctx context.Context, db *sql.DB, runId int64, report backtest.Report) error {
	query := `
	INSERT INTO vrx_backtest_reports (
		run_id,
		series,
		alpha,
		observations,
		violations,
		violation_ratio,
		kupiec_lr_stat,
		kupiec_p_value,
		christoffersen_lr_stat,
		christoffersen_p_value
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (run_id, series, alpha) DO NOTHING;
	`

	_, err := db.ExecContext(
		ctx,
		query,
		runId,
		report.Series,
		report.Alpha,
		report.Observations,
		report.Violations,
		report.ViolationRatio,
		report.Kupiec.LRStat,
		report.Kupiec.PValue,
		report.Christoffersen.LRStat,
		report.Christoffersen.PValue,
	)

	return err
}

func InsertExceedance(ctx context.Context, db *sql.DB, runId int64, exceedance common.Exceedance) error {
	query := `
	INSERT INTO vrx_exceedances (
		run_id,
		symbol,
		ts,
		realized_return,
		var_threshold,
		confidence
	) VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (run_id, symbol, ts) DO NOTHING;
	`

	_, err := db.ExecContext(
		ctx,
		query,
		runId,
		exceedance.Symbol,
		exceedance.TimeStamp,
		exceedance.Return,
		exceedance.VaR,
		exceedance.Confidence,
	)

	return err
}
