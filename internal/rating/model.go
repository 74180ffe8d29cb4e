package rating

// Summary is the cached aggregate of visible review ratings for a cook or a
// meal. Only this package writes it back to storage.
type Summary struct {
	Average float64
	Count   int
}

// Summarize computes the arithmetic mean and count of ratings. An empty set
// yields the zero Summary.
func Summarize(ratings []int) Summary {
	if len(ratings) == 0 {
		return Summary{}
	}

	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return Summary{
		Average: float64(sum) / float64(len(ratings)),
		Count:   len(ratings),
	}
}
