package bot

// LocationWeight is the chance of exploring one location.
type LocationWeight struct {
	ID     string
	Weight float64
}

// Tuning holds the probabilities of the heuristic brain.
type Tuning struct {
	// TopPick is the chance of playing the best card rather than a random positive one.
	TopPick float64
	// CounterJobChange and CounterOther are the chances of invalidating those threats.
	CounterJobChange float64
	CounterOther     float64
	// Locations favour the destination with the best expected value.
	Locations []LocationWeight
}

// DefaultTuning mirrors the standard AI opponents.
var DefaultTuning = Tuning{
	TopPick:          0.8,
	CounterJobChange: 0.7,
	CounterOther:     0.3,
	Locations: []LocationWeight{
		{ID: "library", Weight: 0.45},
		{ID: "home", Weight: 0.35},
		{ID: "park", Weight: 0.20},
	},
}
