package judger

import "strconv"

// PointsOutput is the name of the output that exposes the final score
const PointsOutput = "Points"

// Score accumulates points of a suite run
type Score struct {
	Earned    float64 `json:"earned"`
	Available float64 `json:"available"`

	// HasPoints distinguishes scoring zero from not using points at all
	HasPoints bool `json:"hasPoints"`
}

// AddAvailable adds the points that can be earned
func (s Score) AddAvailable(points float64) Score {
	s.Available += points
	s.HasPoints = true
	return s
}

// AddEarned adds earned points
func (s Score) AddEarned(points float64) Score {
	s.Earned += points
	s.HasPoints = true
	return s
}

// String formats the score as earned/available
func (s Score) String() string {
	return formatPoints(s.Earned) + "/" + formatPoints(s.Available)
}

func formatPoints(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
