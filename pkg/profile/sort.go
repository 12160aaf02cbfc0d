package profile

import "sort"

// SortedByDateDesc returns the achievements ordered by date descending. The
// sort is stable, so same-date entries keep their insertion order. The input
// slice is never modified.
func SortedByDateDesc(list []Achievement) []Achievement {
	out := cloneAchievements(list)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}
