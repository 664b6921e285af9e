package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/peter-kozarec/aphelion/cmd/vrx"
	"github.com/peter-kozarec/aphelion/internal/dbg"
	"github.com/peter-kozarec/aphelion/pkg/backtest"
	"github.com/peter-kozarec/aphelion/pkg/bus"
	"github.com/peter-kozarec/aphelion/pkg/common"
	"github.com/peter-kozarec/aphelion/pkg/data/csvio"
	"github.com/peter-kozarec/aphelion/pkg/data/db/psql"
	"github.com/peter-kozarec/aphelion/pkg/data/duckdb"
	"github.com/peter-kozarec/aphelion/pkg/data/mapper"
	"github.com/peter-kozarec/aphelion/pkg/datasource"
	"github.com/peter-kozarec/aphelion/pkg/datasource/historical"
	"github.com/peter-kozarec/aphelion/pkg/middleware"
	"github.com/peter-kozarec/aphelion/pkg/models/egarch"
	"github.com/peter-kozarec/aphelion/pkg/risk"
	"github.com/peter-kozarec/aphelion/pkg/timeseries"
)

func main() {
	logger := dbg.NewDevLogger()
	defer func() {
		_ = logger.Sync()
	}()

	logger.Info(fmt.Sprintf("vrx backtest %s", vrx.Version))
	defer logger.Info("done")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGKILL)
	defer cancel()

	m := mapper.NewReader[mapper.BinaryBar](BarDataSource)
	if err := m.Open(); err != nil {
		logger.Fatal("error opening bar data reader", zap.Error(err))
	}
	defer m.Close()

	returns, err := calibrationReturns(m)
	if err != nil {
		logger.Fatal("error loading calibration series", zap.Error(err))
	}

	fitted, err := egarch.NewModel().Fit(returns)
	if err != nil {
		logger.Fatal("error fitting volatility model", zap.Error(err))
	}
	logger.Info("volatility model fitted",
		zap.Float64("mu", fitted.Params.Mu),
		zap.Float64("omega", fitted.Params.Omega),
		zap.Float64("alpha", fitted.Params.Alpha),
		zap.Float64("gamma", fitted.Params.Gamma),
		zap.Float64("beta", fitted.Params.Beta),
		zap.String("innovation", fitted.Innovation.Name()),
		zap.Float64("log_likelihood", fitted.LogLikelihood),
		zap.Float64("aic", fitted.AIC),
		zap.Int("iterations", fitted.Iterations))

	persistVolatility(ctx, logger, fitted.Volatility)

	// Create
	monitor := middleware.NewMonitor(logger, MonitorFlags)
	performance := middleware.NewPerformance(logger)

	router := bus.NewRouter(logger, RouterEventCapacity)

	aggregator := risk.NewAggregator(logger, router)
	riskMonitor, err := risk.NewMonitor(logger, router, fitted.Params, fitted.Innovation, Alpha, returns.Values())
	if err != nil {
		logger.Fatal("error creating risk monitor", zap.Error(err))
	}
	audit := backtest.NewAudit(logger, router, SeriesName, Alpha)

	var ledger *middleware.Ledger
	var ledgerDb *sql.DB
	runId := time.Now().Unix()
	if pgHost != "" {
		ledgerDb, err = psql.Connect(ctx, pgHost, pgPort, pgUser, pgPass, pgDatabase)
		if err != nil {
			logger.Fatal("unable to connect to ledger database", zap.Error(err))
		}
		defer func() {
			_ = ledgerDb.Close()
		}()
		ledger = middleware.NewLedger(logger, ledgerDb, runId)
	}

	// Initialize
	router.BarHandler = performance.WithBar(monitor.WithBar(aggregator.OnBar))
	router.ReturnHandler = performance.WithReturn(monitor.WithReturn(
		bus.MergeHandlers[common.Return](riskMonitor.OnReturn, audit.OnReturn)))
	router.VolatilityHandler = monitor.WithVolatility(middleware.NoopVolatilityHdl)
	router.ForecastHandler = performance.WithForecast(monitor.WithForecast(audit.OnForecast))

	exceedanceHandler := middleware.NoopExceedanceHdl
	if ledger != nil {
		exceedanceHandler = ledger.WithExceedance(exceedanceHandler)
	}
	router.ExceedanceHandler = monitor.WithExceedance(exceedanceHandler)

	// Replay the archive through the pipeline
	reader := historical.NewBarReader(m, Symbol, BacktestStart, BacktestEnd)
	go router.ExecLoop(ctx, datasource.CreateBarDispatcher(router, reader))
	defer router.PrintStatistics()
	defer performance.PrintStatistics()

	if err := <-router.Done(); err != nil {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, mapper.ErrEof) {
			logger.Error("error during replay", zap.Error(err))
		}
	}

	report, err := audit.GenerateReport()
	if err != nil {
		logger.Fatal("error generating coverage report", zap.Error(err))
	}
	report.Print(logger)

	exportResults(logger, fitted.Volatility, report)

	if ledgerDb != nil {
		mirrorReport(ctx, logger, ledgerDb, runId, report)
	}
}

func calibrationReturns(m *mapper.Reader[mapper.BinaryBar]) (*timeseries.Series, error) {
	reader := historical.NewBarReader(m, Symbol, BacktestStart, BacktestEnd)

	var times []time.Time
	var closes []float64
	for {
		bar, err := reader.GetNext()
		if err != nil {
			if errors.Is(err, mapper.ErrEof) {
				break
			}
			return nil, err
		}
		closePrice, ok := bar.Close.Float64()
		if !ok {
			return nil, fmt.Errorf("close %s is not representable", bar.Close)
		}
		times = append(times, bar.TimeStamp)
		closes = append(closes, closePrice)
	}

	prices, err := timeseries.New(ExportName, times, closes)
	if err != nil {
		return nil, err
	}
	return timeseries.LogReturns(prices)
}

func persistVolatility(ctx context.Context, logger *zap.Logger, sigma *timeseries.Series) {
	store := duckdb.NewStore(VolatilityStore)
	if err := store.Connect(); err != nil {
		logger.Error("error opening volatility store", zap.Error(err))
		return
	}
	defer store.Close()

	if err := store.SaveVolatility(ctx, ExportName, sigma); err != nil {
		logger.Error("error persisting volatility", zap.Error(err))
		return
	}
	logger.Info("volatility persisted",
		zap.String("store", VolatilityStore),
		zap.Int("rows", sigma.Len()))
}

func exportResults(logger *zap.Logger, sigma *timeseries.Series, report *backtest.Report) {
	volatilityPath := csvio.Path(ExportDir, ExportName+"_volatility")
	if err := csvio.WriteVolatility(volatilityPath, sigma); err != nil {
		logger.Error("error exporting volatility", zap.Error(err))
	} else {
		logger.Info("volatility exported", zap.String("path", volatilityPath))
	}

	reportPath := csvio.Path(ExportDir, ExportName+"_backtest")
	if err := csvio.WriteReports(reportPath, []backtest.Report{*report}); err != nil {
		logger.Error("error exporting report", zap.Error(err))
	} else {
		logger.Info("report exported", zap.String("path", reportPath))
	}
}

func mirrorReport(ctx context.Context, logger *zap.Logger, db *sql.DB, runId int64, report *backtest.Report) {
	if err := psql.InsertBacktestReport(ctx, db, runId, *report); err != nil {
		logger.Error("error mirroring report", zap.Error(err))
		return
	}
	logger.Info("report mirrored", zap.Int64("run_id", runId))
}
