package pdf

const (
	// DefaultSigmaTrunc is the number of standard deviations a dictionary
	// kernel extends on each side of its center before truncation.
	DefaultSigmaTrunc = 5.0

	// DefaultSigThresh is the number of standard deviations the direct
	// (non-dictionary) path evaluates before clipping the Gaussian.
	DefaultSigThresh = 5.0

	// DefaultWtThresh keeps observations with weight above
	// DefaultWtThresh * max(weights).
	DefaultWtThresh = 1e-3

	// DefaultCdfThresh drops the observations whose cumulative normalized
	// weight (in ascending weight order) exceeds 1 - DefaultCdfThresh.
	DefaultCdfThresh = 2e-4
)
