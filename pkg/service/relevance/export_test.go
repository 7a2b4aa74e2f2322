package relevance

// BoundedFold is exported for testing
func BoundedFold(items []string, step, limit int, match func(string) bool) (int, []string) {
	return boundedFold(items, step, limit, match)
}

// AwardOnce is exported for testing
func AwardOnce(items []string, points int, match func(string) bool) (int, []string) {
	return awardOnce(items, points, match)
}
