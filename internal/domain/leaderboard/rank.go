package leaderboard

import "sort"

// Entry is one leaderboard row with its 1-based position. Ties never share a
// rank; the comparator below breaks them deterministically.
type Entry struct {
	Rank int
	Summary
}

// Rank total-orders the summaries into a leaderboard. Keys, applied until one
// discriminates: higher percentage, higher total points, earlier first
// submission, then attendee email ascending. Percentage and points can only
// diverge when attendees hold different prediction counts; the points key is
// kept as an independent tie-break rather than assumed redundant. Email is
// the final key, so the order is a strict total order: emails are unique per
// aggregate. Ranks in the result are exactly 1..N.
func Rank(summaries []Summary) []Entry {
	ordered := make([]Summary, len(summaries))
	copy(ordered, summaries)

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Percentage != b.Percentage {
			return a.Percentage > b.Percentage
		}
		if a.TotalPoints != b.TotalPoints {
			return a.TotalPoints > b.TotalPoints
		}
		if !a.FirstPredictedAt.Equal(b.FirstPredictedAt) {
			return a.FirstPredictedAt.Before(b.FirstPredictedAt)
		}
		return a.Email < b.Email
	})

	out := make([]Entry, 0, len(ordered))
	for i, summary := range ordered {
		out = append(out, Entry{Rank: i + 1, Summary: summary})
	}
	return out
}
