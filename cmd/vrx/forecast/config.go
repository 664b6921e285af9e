package main

const (
	IbexDataSource = "data/IBEX_clean.csv"
	SpxDataSource  = "data/SPX_clean.csv"
	ExportDir      = "export"

	MaxAROrder   = 3
	MaxMAOrder   = 3
	Differencing = 1
	GridWorkers  = 4
)

var ForecastHorizons = []int{1, 5, 10, 21}
