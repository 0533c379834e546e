package catalog

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

type suggestion struct {
	name string
	dist int
}

// Suggest returns up to limit record names close to query, for the "no
// plants found" view. Both the full names and their individual words are
// compared so that "monstra" finds "Swiss Cheese Monstera".
func Suggest(records []PlantRecord, query string, limit int) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || len(q) < 3 || limit <= 0 {
		return nil
	}
	best := make(map[string]int)
	for _, r := range records {
		d := closestDistance(q, r.Name, r.ScientificName)
		if d > distanceLimit(len(q)) {
			continue
		}
		if prev, ok := best[r.Name]; !ok || d < prev {
			best[r.Name] = d
		}
	}

	cands := make([]suggestion, 0, len(best))
	for name, d := range best {
		cands = append(cands, suggestion{name: name, dist: d})
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].dist == cands[j].dist {
			return cands[i].name < cands[j].name
		}
		return cands[i].dist < cands[j].dist
	})
	if len(cands) > limit {
		cands = cands[:limit]
	}
	out := make([]string, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.name)
	}
	return out
}

func closestDistance(q string, fields ...string) int {
	best := -1
	for _, field := range fields {
		field = strings.ToLower(field)
		if field == "" {
			continue
		}
		candidates := append([]string{field}, strings.Fields(field)...)
		for _, c := range candidates {
			d := levenshtein.ComputeDistance(q, c)
			if best < 0 || d < best {
				best = d
			}
		}
	}
	if best < 0 {
		return len(q)
	}
	return best
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
