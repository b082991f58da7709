package state

import (
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

const globMeta = "*?["

// Match returns the indexes of labels matching query, best match first. An
// empty query matches everything in order. Queries containing glob
// metacharacters are matched as case-insensitive globs; everything else is
// matched fuzzily, falling back to substring matching.
func Match(labels []string, query string) []int {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		all := make([]int, len(labels))
		for i := range labels {
			all[i] = i
		}
		return all
	}
	if strings.ContainsAny(trimmed, globMeta) {
		if g, err := glob.Compile(strings.ToLower(trimmed)); err == nil {
			return matchGlob(labels, g)
		}
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) > 0 {
		sort.SliceStable(ranks, func(i, j int) bool {
			if ranks[i].Distance != ranks[j].Distance {
				return ranks[i].Distance < ranks[j].Distance
			}
			return ranks[i].OriginalIndex < ranks[j].OriginalIndex
		})
		out := make([]int, len(ranks))
		for i, rank := range ranks {
			out[i] = rank.OriginalIndex
		}
		return out
	}
	lower := strings.ToLower(trimmed)
	var out []int
	for i, label := range labels {
		if strings.Contains(strings.ToLower(label), lower) {
			out = append(out, i)
		}
	}
	return out
}

func matchGlob(labels []string, g glob.Glob) []int {
	var out []int
	for i, label := range labels {
		if g.Match(strings.ToLower(label)) {
			out = append(out, i)
		}
	}
	return out
}
