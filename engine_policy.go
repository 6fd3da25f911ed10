package rtlweaver

// CoveragePolicy decides how Apply treats regions the provider left unfilled.
type CoveragePolicy int

const (
	// CoveragePartial keeps unfilled regions as their original text (default).
	CoveragePartial CoveragePolicy = iota
	// CoverageStrict fails Apply with *IncompleteCoverageError when any
	// scanned region has no patch.
	CoverageStrict
)
