package main

const (
	IbexDataSource = "data/IBEX_clean.csv"
	SpxDataSource  = "data/SPX_clean.csv"
	ExportDir      = "export"
)
