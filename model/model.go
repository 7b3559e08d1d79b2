package model

// Observation is one noisy measurement: a value with a Gaussian uncertainty
// and an optional weight. Weight zero means "unset" and defaults to 1.
type Observation struct {
	Value  float64 `json:"v,omitempty"`
	Sigma  float64 `json:"s,omitempty"`
	Weight float64 `json:"w,omitempty"`
}

// QuantizedObservation is an observation already mapped onto a dictionary:
// a grid index for the mean and a dictionary index for the sigma bucket.
type QuantizedObservation struct {
	GridIndex int     `json:"gi"`
	DictIndex int     `json:"di"`
	Weight    float64 `json:"w,omitempty"`
}

type Density struct {
	X     float64
	Value float64
}
