package rank

import (
	"sort"
	"strconv"
	"strings"
)

// Options bounds one getTopCables invocation.
type Options struct {
	Limit       int
	SearchQuery string
}

// ScanLimit returns the number of newest specs to pull before scoring and
// pruning, generous enough that pruning rarely starves the final page.
func ScanLimit(limit int) int {
	if limit <= 0 {
		return limit
	}
	n := limit * 40
	if n < limit {
		return limit
	}
	return n
}

// BuildTopCables runs the full pipeline over a scanned candidate slice:
// score, pick best spec per variant, hydrate is assumed done by the caller,
// prune legacy rows, dedupe by sku, filter to ready quality, optionally
// apply the search boost, then return the first limit rows.
func BuildTopCables(candidates []Candidate, opts Options) []TopCableRow {
	rows := make([]TopCableRow, 0, len(candidates))
	for _, c := range candidates {
		rows = append(rows, TopCableRow{Candidate: c, Score: Score(c)})
	}

	rows = PickBestSpecPerVariant(rows)
	rows = PruneLegacyRows(rows)
	rows = DedupeBySKU(rows)
	rows = FilterReady(rows)

	query := strings.TrimSpace(opts.SearchQuery)
	if query != "" {
		rows = applySearchBoost(rows, query)
	} else {
		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].Score != rows[j].Score {
				return rows[i].Score > rows[j].Score
			}
			return rows[i].SpecCreatedAt.After(rows[j].SpecCreatedAt)
		})
	}

	limit := opts.Limit
	if limit <= 0 || limit > len(rows) {
		limit = len(rows)
	}
	return rows[:limit]
}

func applySearchBoost(rows []TopCableRow, query string) []TopCableRow {
	lowerQuery := strings.ToLower(query)
	queryConnectors := extractConnectorTokens(lowerQuery)
	queryWatts, hasWattsQuery := extractWattsToken(lowerQuery)

	type scored struct {
		row   TopCableRow
		boost int
	}
	boosted := make([]scored, 0, len(rows))
	for _, r := range rows {
		b := 0
		if fuzzyBrandMatch(lowerQuery, strings.ToLower(r.Brand)) {
			b += 6
		}
		if len(queryConnectors) > 0 && connectorsMatch(queryConnectors, r.ConnectorFrom, r.ConnectorTo) {
			b += 8
		}
		if hasWattsQuery && r.MaxWatts != nil && int(*r.MaxWatts) == queryWatts {
			b += 5
		}
		boosted = append(boosted, scored{row: r, boost: b})
	}

	sort.SliceStable(boosted, func(i, j int) bool {
		si, sj := boosted[i], boosted[j]
		totalI := si.boost*100 + si.row.Score
		totalJ := sj.boost*100 + sj.row.Score
		if totalI != totalJ {
			return totalI > totalJ
		}
		return si.row.SpecCreatedAt.After(sj.row.SpecCreatedAt)
	})

	out := make([]TopCableRow, len(boosted))
	for i, s := range boosted {
		out[i] = s.row
	}
	return out
}

// extractConnectorTokens finds normalize.Connector-shaped substrings
// ("usb-c", "usb-a", "lightning", "micro-usb", "thunderbolt") in the query.
func extractConnectorTokens(lowerQuery string) []string {
	candidates := []string{"usb-c", "usb-a", "usb c", "usb a", "lightning", "micro-usb", "microusb", "thunderbolt"}
	var found []string
	for _, c := range candidates {
		if strings.Contains(lowerQuery, c) {
			found = append(found, c)
		}
	}
	return found
}

func connectorsMatch(tokens []string, connectorFrom, connectorTo string) bool {
	from, to := strings.ToLower(connectorFrom), strings.ToLower(connectorTo)
	for _, t := range tokens {
		normalized := strings.ReplaceAll(t, " ", "-")
		if strings.Contains(from, normalized) || strings.Contains(to, normalized) ||
			strings.Contains(normalized, from) || strings.Contains(normalized, to) {
			return true
		}
	}
	return false
}

func extractWattsToken(lowerQuery string) (int, bool) {
	fields := strings.Fields(lowerQuery)
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSuffix(f, "w"))
		if err == nil && (strings.HasSuffix(f, "w") || (i+1 < len(fields) && (fields[i+1] == "w" || fields[i+1] == "watt" || fields[i+1] == "watts"))) {
			return n, true
		}
	}
	return 0, false
}

// fuzzyBrandMatch matches on substring first, falling back to a bounded
// Levenshtein distance so a misspelled brand in the query still matches.
func fuzzyBrandMatch(lowerQuery, lowerBrand string) bool {
	if lowerBrand == "" {
		return false
	}
	if strings.Contains(lowerQuery, lowerBrand) {
		return true
	}
	for _, word := range strings.Fields(lowerQuery) {
		if levenshtein(word, lowerBrand) <= maxEditDistance(lowerBrand) {
			return true
		}
	}
	return false
}

func maxEditDistance(s string) int {
	if len(s) <= 4 {
		return 1
	}
	return 2
}

func levenshtein(a, b string) int {
	la, lb := len(a), len(b)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}
	prev := make([]int, lb+1)
	cur := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		cur[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := cur[j-1] + 1
			sub := prev[j-1] + cost
			m := del
			if ins < m {
				m = ins
			}
			if sub < m {
				m = sub
			}
			cur[j] = m
		}
		prev, cur = cur, prev
	}
	return prev[lb]
}
