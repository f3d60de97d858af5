package ports

// TrendTest is an ordered-alternative hypothesis test over dose groups.
type TrendTest interface {
	// Name identifies the test in logs and reports.
	Name() string

	// PValue tests H0 (no stochastic ordering of outcome by dose) against the
	// configured monotonic alternative. groups holds the observation values
	// per dose level, ordered by increasing dose. Returns an error when the
	// test is mathematically undefined for the sample (degenerate input).
	PValue(groups [][]float64) (float64, error)
}
