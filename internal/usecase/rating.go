package usecase

// AverageRating returns the arithmetic mean of the given ratings, or 0 when
// there are none. Listing queries compute the same aggregate in the store;
// this is the single-book path.
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return float64(sum) / float64(len(ratings))
}
