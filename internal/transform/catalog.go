package transform

// Contracts returns the distinct contract values across resolved
// purchases, in first-seen order. Purchases without a contract are
// ignored.
func Contracts(purchases []PurchaseRow) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, p := range purchases {
		if p.Contract == "" || seen[p.Contract] {
			continue
		}
		seen[p.Contract] = true
		out = append(out, p.Contract)
	}
	return out
}

// AvailableMonths returns the union of month buckets seen across
// purchases and aggregated distributions, in first-seen order. It
// drives the month filter options in the UI.
func AvailableMonths(purchases []PurchaseRow, distributions []Distribution) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	add := func(bucket string) {
		if !seen[bucket] {
			seen[bucket] = true
			out = append(out, bucket)
		}
	}

	for _, p := range purchases {
		for _, bucket := range p.MonthKeys() {
			add(bucket)
		}
	}
	for _, d := range distributions {
		for _, bucket := range d.MonthKeys() {
			add(bucket)
		}
	}
	return out
}
