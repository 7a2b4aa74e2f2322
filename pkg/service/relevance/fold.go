package relevance

// boundedFold awards step points for every item accepted by match, in order,
// and stops as soon as the running total reaches limit. It returns the points
// awarded and the accepted items.
func boundedFold[T any](items []T, step, limit int, match func(T) bool) (int, []T) {
	points := 0
	matched := []T{}
	for _, item := range items {
		if points >= limit {
			break
		}
		if !match(item) {
			continue
		}
		points += step
		matched = append(matched, item)
	}
	if points > limit {
		points = limit
	}
	return points, matched
}

// awardOnce grants points for the first item accepted by match
func awardOnce[T any](items []T, points int, match func(T) bool) (int, []T) {
	return boundedFold(items, points, points, match)
}
