package middleware

import (
	"context"
	"database/sql"

	"github.com/peter-kozarec/aphelion/pkg/bus"
	"github.com/peter-kozarec/aphelion/pkg/common"
	"github.com/peter-kozarec/aphelion/pkg/data/db/psql"
	"go.uber.org/zap"
)

// Ledger mirrors every VaR breach into postgres as it happens, so a run
// that dies half way still leaves its exceedance trail behind.
type Ledger struct {
	logger *zap.Logger
	db     *sql.DB
	runId  int64
}

func NewLedger(logger *zap.Logger, db *sql.DB, runId int64) *Ledger {
	return &Ledger{
		logger: logger,
		db:     db,
		runId:  runId,
	}
}

func (l *Ledger) WithExceedance(handler bus.ExceedanceEventHandler) bus.ExceedanceEventHandler {
	return func(ctx context.Context, exceedance common.Exceedance) {
		go func() {
			if err := psql.InsertExceedance(ctx, l.db, l.runId, exceedance); err != nil {
				l.logger.Warn("unable to insert exceedance", zap.Error(err))
			}
		}()
		handler(ctx, exceedance)
	}
}
