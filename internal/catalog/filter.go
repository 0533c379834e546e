package catalog

import "strings"

// Matches reports whether the record passes the search query: a
// case-insensitive substring match on Name or ScientificName. The empty
// query matches everything.
func (r PlantRecord) Matches(query string) bool {
	q := strings.ToLower(query)
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Name), q) ||
		strings.Contains(strings.ToLower(r.ScientificName), q)
}

// Filter returns the records matching query, preserving order. The input is
// not modified.
func Filter(records []PlantRecord, query string) []PlantRecord {
	out := make([]PlantRecord, 0, len(records))
	for _, r := range records {
		if r.Matches(query) {
			out = append(out, r)
		}
	}
	return out
}
