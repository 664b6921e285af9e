package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/peter-kozarec/aphelion/pkg/common"
	"github.com/peter-kozarec/aphelion/pkg/timeseries"
	"github.com/peter-kozarec/aphelion/pkg/utility"
)

const storeComponentName = "data.duckdb.store"

// Store persists fitted conditional volatility paths per symbol, one
// table per symbol.
type Store struct {
	dataSourceName string
	db             *sql.DB
}

func NewStore(dataSourceName string) *Store {
	return &Store{
		dataSourceName: dataSourceName,
	}
}

func (s *Store) Connect() error {
	db, err := sql.Open("duckdb", s.dataSourceName)
	if err != nil {
		return fmt.Errorf("unable to open duckdb %q: %w", s.dataSourceName, err)
	}
	s.db = db
	return nil
}

func (s *Store) Close() {
	_ = s.db.Close()
}

// SaveVolatility replaces the stored conditional volatility path of symbol
// with sigma.
func (s *Store) SaveVolatility(ctx context.Context, symbol string, sigma *timeseries.Series) error {
	table := fmt.Sprintf("%s_volatility", symbol)

	createStmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (ts TIMESTAMP PRIMARY KEY, sigma DOUBLE)`, table)
	if _, err := s.db.ExecContext(ctx, createStmt); err != nil {
		return fmt.Errorf("error creating table %s: %w", table, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s`, table)); err != nil {
		return fmt.Errorf("error clearing table %s: %w", table, err)
	}

	insertStmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`INSERT INTO %s (ts, sigma) VALUES (?, ?)`, table))
	if err != nil {
		return fmt.Errorf("error preparing insert: %w", err)
	}
	defer func() {
		_ = insertStmt.Close()
	}()

	for i := 0; i < sigma.Len(); i++ {
		if _, err := insertStmt.ExecContext(ctx, sigma.Time(i), sigma.Value(i)); err != nil {
			return fmt.Errorf("error inserting row %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// LoadVolatility streams the stored path of symbol between from and to in
// ascending time order.
func (s *Store) LoadVolatility(ctx context.Context, symbol string, from, to time.Time, handler func(volatility common.Volatility) error) error {

	query := fmt.Sprintf(`SELECT ts, sigma FROM %s_volatility WHERE ts BETWEEN ? AND ? ORDER BY ts`, symbol)

	rows, err := s.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return fmt.Errorf("error preparing query: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var volatility common.Volatility
		timeStamp := time.Time{}
		if err := rows.Scan(&timeStamp, &volatility.Sigma); err != nil {
			return fmt.Errorf("error scanning row: %w", err)
		}
		volatility.TimeStamp = timeStamp
		volatility.Symbol = symbol
		volatility.Source = storeComponentName
		volatility.ExecutionID = utility.GetExecutionID()
		volatility.TraceID = utility.CreateTraceID()

		if err := handler(volatility); err != nil {
			return fmt.Errorf("error processing volatility: %w", err)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error scanning rows: %w", err)
	}

	return nil
}
