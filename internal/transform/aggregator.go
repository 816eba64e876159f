package transform

import (
	"fmt"
	"time"
)

// deliveryDateFormats are tried in order against the raw cell. The
// sheet is maintained by hand, so both US-style slashes and ISO dates
// show up.
var deliveryDateFormats = []string{
	"1/2/2006",
	"01/02/2006",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	time.RFC3339,
}

// deliveryBucket parses a delivery date cell into its "year-month"
// bucket key. The month number is not zero-padded, matching the
// purchase month-column buckets.
func deliveryBucket(cell string) (string, error) {
	if cell == "" {
		return "", fmt.Errorf("empty delivery date")
	}
	for _, format := range deliveryDateFormats {
		if t, err := time.Parse(format, cell); err == nil {
			return fmt.Sprintf("%d-%d", t.Year(), int(t.Month())), nil
		}
	}
	return "", fmt.Errorf("unparseable delivery date %q", cell)
}

// AggregateDistributions groups resolved distribution rows by
// (hub, distribution site) pair, bucketing each pair's rows by delivery
// month. Rows whose delivery date cannot be parsed are dropped entirely
// rather than contributing an empty group; the count of such rows is
// returned for logging.
func AggregateDistributions(rows []DistributionRow) ([]Distribution, int) {
	type pair struct{ hub, site string }

	index := make(map[pair]*Distribution)
	var order []pair
	skipped := 0

	for _, row := range rows {
		bucket, err := deliveryBucket(row.DeliveryDate)
		if err != nil {
			skipped++
			continue
		}

		key := pair{row.Hub, row.DistributionSite}
		group, ok := index[key]
		if !ok {
			group = &Distribution{
				Hub:                 row.Hub,
				DistributionSite:    row.DistributionSite,
				HubID:               row.HubID,
				HubGeo:              row.HubGeo,
				DistributionSiteID:  row.DistributionSiteID,
				DistributionSiteGeo: row.DistributionSiteGeo,
				OwnershipFlags:      row.OwnershipFlags,
				Months:              map[string][]DistributionRow{},
			}
			index[key] = group
			order = append(order, key)
		}

		if _, seen := group.Months[bucket]; !seen {
			group.monthKeys = append(group.monthKeys, bucket)
		}
		group.Months[bucket] = append(group.Months[bucket], row)
	}

	out := make([]Distribution, 0, len(order))
	for _, key := range order {
		out = append(out, *index[key])
	}
	return out, skipped
}
