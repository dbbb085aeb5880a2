package lint

import (
	"sort"

	"github.com/leapstack-labs/leapa11y/pkg/core"
)

// Aggregate folds findings into groups keyed by (name, criterion, level).
//
// Findings are first stable-sorted by level rank, highest first, so instances
// inside a group follow that order; groups are then stable-sorted by the same
// rank. Ties keep discovery order at both levels.
func Aggregate(findings []core.Finding) []core.IssueGroup {
	sorted := make([]core.Finding, len(findings))
	copy(sorted, findings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Level.Rank() > sorted[j].Level.Rank()
	})

	index := make(map[core.GroupKey]int)
	var groups []core.IssueGroup
	for _, f := range sorted {
		key := f.Key()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, core.IssueGroup{
				Name:      f.Name,
				Criterion: f.Criterion,
				Level:     f.Level,
			})
		}
		groups[i].Count++
		groups[i].Issues = append(groups[i].Issues, f.Detail())
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Level.Rank() > groups[j].Level.Rank()
	})
	return groups
}

// CountIssues returns the number of findings folded into groups.
func CountIssues(groups []core.IssueGroup) int {
	total := 0
	for _, g := range groups {
		total += g.Count
	}
	return total
}
