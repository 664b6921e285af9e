package main

import (
	"os"
	"time"

	"github.com/peter-kozarec/aphelion/pkg/middleware"
)

var BacktestStart = time.Date(2010, 1, 4, 0, 0, 0, 0, time.UTC)
var BacktestEnd = time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

var pgHost = os.Getenv("VrxPgHost")
var pgPort = os.Getenv("VrxPgPort")
var pgUser = os.Getenv("VrxPgUser")
var pgPass = os.Getenv("VrxPgPass")
var pgDatabase = os.Getenv("VrxPgDatabase")

const (
	RouterEventCapacity = 100
	BarDataSource       = "data/spx_daily.bin"
	Symbol              = "SPX"
	SeriesName          = "spx returns"
	ExportName          = "spx"
	Alpha               = 0.01
	VolatilityStore     = "data/risk.db"
	ExportDir           = "export"
	MonitorFlags        = middleware.MonitorExceedances
)
