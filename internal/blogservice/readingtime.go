package blogservice

import "strings"

// wordsPerMinute is the fixed reading speed used for the estimate.
const wordsPerMinute = 200

// EstimateReadingTime returns the estimated minutes to read the body, rounded
// up. An empty body reads in zero minutes.
func EstimateReadingTime(body string) int {
	words := len(strings.Fields(body))
	if words == 0 {
		return 0
	}
	return (words + wordsPerMinute - 1) / wordsPerMinute
}
