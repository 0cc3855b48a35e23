package searcher

import "math"

// ucb1 scores children of one parent. The log term only depends on the
// parent's visits, so it is computed once per selection.
type ucb1 struct {
	numerator float64
}

func newUCB1(cSquared float64, parentVisits int) ucb1 {
	if parentVisits <= 0 {
		panic("cannot compute UCB1: parent has no visits")
	}
	return ucb1{numerator: cSquared * math.Log(float64(parentVisits))}
}

// score = w/n + sqrt(c^2*ln(N)/n)
func (u ucb1) score(wins float64, visits int) float64 {
	if visits == 0 {
		panic("cannot compute UCB1: 0 visits")
	}
	n := float64(visits)
	return wins/n + math.Sqrt(u.numerator/n)
}
