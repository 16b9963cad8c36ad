package route

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Destinations are the routes reachable without an identifier, in menu order.
func Destinations() []Route {
	return []Route{
		HomeRoute(),
		DiaryListRoute(),
		NewDiary(),
		TransactionListRoute(),
		NewTransaction(),
		PomodoroTimerRoute(),
		PomodoroHistoryRoute(),
		TempRoute(),
	}
}

type scored struct {
	route Route
	score float64
	order int
}

// Search ranks Destinations against query by title. Substring hits rank
// first, then titles within a normalized edit distance of 0.5. An empty
// query returns every destination. limit <= 0 means no limit.
func Search(query string, limit int) []Route {
	all := Destinations()
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return truncate(all, limit)
	}

	var hits []scored
	for i, r := range all {
		title := strings.ToLower(r.Title())
		if strings.Contains(title, q) {
			hits = append(hits, scored{route: r, score: 0, order: i})
			continue
		}
		if d := distance(q, title); d <= 0.5 {
			hits = append(hits, scored{route: r, score: d, order: i})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score < hits[j].score
		}
		return hits[i].order < hits[j].order
	})

	out := make([]Route, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.route)
	}
	return truncate(out, limit)
}

// distance is the levenshtein distance normalized by the longer string.
func distance(a, b string) float64 {
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 0
	}
	return float64(levenshtein.ComputeDistance(a, b)) / float64(longest)
}

func truncate(rs []Route, limit int) []Route {
	if limit > 0 && len(rs) > limit {
		return rs[:limit]
	}
	return rs
}
