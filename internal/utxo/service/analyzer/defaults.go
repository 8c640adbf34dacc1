package analyzer

const (
	DefaultScanFromHeight uint64 = 0
	DefaultScanToHeight   uint64 = 99

	DefaultRatioHeight uint64 = 399810

	// DayLayout is the accepted calendar date format.
	DayLayout = "2006-01-02"
)
