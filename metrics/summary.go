package metrics

import "math"

// Summary holds the reduced statistics of one histogram over an inclusive
// value range. Min and Max are -1 when no bucket in the range is nonzero.
type Summary struct {
	Count  int
	Min    int
	Max    int
	Mean   float64
	StdDev float64
}

// Summarize reduces hist over the inclusive bucket range [lo, hi]. Counts
// are summed, the mean is count-weighted and StdDev is the population
// standard deviation. An empty range (all-zero histogram, or a frame with
// no valid blocks) yields a zero Summary with -1 min/max sentinels rather
// than a division by zero.
func Summarize(hist []int, lo, hi int) Summary {
	if lo < 0 {
		lo = 0
	}
	if hi >= len(hist) {
		hi = len(hist) - 1
	}

	s := Summary{Min: -1, Max: -1}
	sum := 0
	for v := lo; v <= hi; v++ {
		c := hist[v]
		if c == 0 {
			continue
		}
		s.Count += c
		sum += v * c
		if s.Min == -1 {
			s.Min = v
		}
		s.Max = v
	}
	if s.Count == 0 {
		return s
	}

	s.Mean = float64(sum) / float64(s.Count)
	var sumSquare float64
	for v := lo; v <= hi; v++ {
		diff := float64(v) - s.Mean
		sumSquare += diff * diff * float64(hist[v])
	}
	s.StdDev = math.Sqrt(sumSquare / float64(s.Count))
	return s
}
