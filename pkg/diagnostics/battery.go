package diagnostics

type BatteryEntry struct {
	Name      string
	Statistic float64
	PValue    float64
}

// Battery applies the full residual test suite with default lags and
// returns one entry per statistic, in a fixed order suitable for tabular
// export.
func Battery(values []float64) ([]BatteryEntry, error) {
	adf, err := ADF(values)
	if err != nil {
		return nil, err
	}
	lb, err := LjungBox(values, DefaultLjungBoxLags)
	if err != nil {
		return nil, err
	}
	jb, err := JarqueBera(values)
	if err != nil {
		return nil, err
	}
	arch, err := ArchLM(values, DefaultArchLMLags)
	if err != nil {
		return nil, err
	}

	return []BatteryEntry{
		{Name: "adf", Statistic: adf.Statistic, PValue: adf.PValue},
		{Name: "ljung_box", Statistic: lb.Statistic, PValue: lb.PValue},
		{Name: "jarque_bera", Statistic: jb.Statistic, PValue: jb.PValue},
		{Name: "arch_lm", Statistic: arch.LM.Statistic, PValue: arch.LM.PValue},
		{Name: "arch_lm_f", Statistic: arch.F.Statistic, PValue: arch.F.PValue},
	}, nil
}
