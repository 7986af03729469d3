package prediction

// Prediction represents a classification result returned by the inference
// service for one uploaded crop image. It exists only for the duration of a
// single request/response cycle.
type Prediction struct {
	Label      string  // Label is the predicted class (e.g. disease name)
	Confidence float64 // Confidence in [0, 1]
	Health     *Health // Health is an optional healthy/diseased breakdown
}

// Health holds the healthy versus diseased percentage split for an image.
type Health struct {
	HealthyPct  float64
	DiseasedPct float64
}
