package transform

import (
	"fmt"
	"strconv"
	"strings"
)

// ResolveDistributions resolves each distribution row's hub and
// distribution-site names against the registry and enriches the row
// with both locations' identity and the site's flags. Rows referencing
// an unknown (or geocode-less, which is the same thing) location on
// either end are dropped; the count of dropped rows is returned for
// logging.
func ResolveDistributions(records []Record, reg *Registry) ([]DistributionRow, int) {
	rows := make([]DistributionRow, 0, len(records))
	dropped := 0

	for _, rec := range records {
		hub, hubOK := reg.Lookup(rec.Get("hub"))
		site, siteOK := reg.Lookup(rec.Get("distributionSite"))
		if !hubOK || !siteOK {
			dropped++
			continue
		}

		rows = append(rows, DistributionRow{
			Hub:                 hub.Name,
			DistributionSite:    site.Name,
			HubID:               hub.ID,
			HubGeo:              *hub.Geocode,
			DistributionSiteID:  site.ID,
			DistributionSiteGeo: *site.Geocode,
			OwnershipFlags:      site.OwnershipFlags,
			DeliveryDate:        rec.Get("deliveryDate"),
			Extra:               extraFields(rec, "hub", "distributionSite", "deliveryDate"),
		})
	}
	return rows, dropped
}

// ResolvePurchases resolves purchase rows the same way (hub
// organization and farm; flags come from the farm) and additionally
// detects month-value columns, collecting them into the Months map
// keyed by "year-month" bucket. Month columns stay in Extra as well so
// the serialized record keeps them at the top level.
func ResolvePurchases(records []Record, reg *Registry) ([]PurchaseRow, int) {
	rows := make([]PurchaseRow, 0, len(records))
	dropped := 0

	for _, rec := range records {
		org, orgOK := reg.Lookup(rec.Get("hubOrganization"))
		farm, farmOK := reg.Lookup(rec.Get("farmName"))
		if !orgOK || !farmOK {
			dropped++
			continue
		}

		row := PurchaseRow{
			HubOrganization:    org.Name,
			FarmName:           farm.Name,
			HubOrganizationID:  org.ID,
			HubOrganizationGeo: *org.Geocode,
			FarmNameID:         farm.ID,
			FarmNameGeo:        *farm.Geocode,
			OwnershipFlags:     farm.OwnershipFlags,
			Contract:           rec.Get("contract"),
			Months:             map[string]string{},
			Extra:              map[string]string{},
		}

		for _, k := range rec.Keys() {
			if k == "hubOrganization" || k == "farmName" || k == "contract" || !rec.Has(k) {
				continue
			}
			v := rec.Get(k)
			row.Extra[k] = v
			if bucket, ok := monthBucket(k); ok {
				if _, seen := row.Months[bucket]; !seen {
					row.monthKeys = append(row.monthKeys, bucket)
				}
				row.Months[bucket] = v
			}
		}

		rows = append(rows, row)
	}
	return rows, dropped
}

func extraFields(rec Record, exclude ...string) map[string]string {
	skip := make(map[string]bool, len(exclude))
	for _, k := range exclude {
		skip[k] = true
	}
	extra := map[string]string{}
	for _, k := range rec.Keys() {
		if !skip[k] && rec.Has(k) {
			extra[k] = rec.Get(k)
		}
	}
	return extra
}

var monthNumbers = map[string]int{
	"january": 1, "jan": 1,
	"february": 2, "feb": 2,
	"march": 3, "mar": 3,
	"april": 4, "apr": 4,
	"may": 5,
	"june": 6, "jun": 6,
	"july": 7, "jul": 7,
	"august": 8, "aug": 8,
	"september": 9, "sep": 9, "sept": 9,
	"october": 10, "oct": 10,
	"november": 11, "nov": 11,
	"december": 12, "dec": 12,
}

// monthBucket reports whether a record key names a month-value column
// and returns its bucket. Both spellings the sheet has used are
// recognized: year-first ("2021June") and month-first ("june2021").
// Buckets are "year-month" with the month number not zero-padded,
// matching the delivery-date buckets.
func monthBucket(key string) (string, bool) {
	if len(key) <= 4 {
		return "", false
	}
	if y, ok := parseYear(key[:4]); ok {
		if m, ok := monthToken(key[4:]); ok {
			return fmt.Sprintf("%d-%d", y, m), true
		}
	}
	if y, ok := parseYear(key[len(key)-4:]); ok {
		if m, ok := monthToken(key[:len(key)-4]); ok {
			return fmt.Sprintf("%d-%d", y, m), true
		}
	}
	return "", false
}

func parseYear(s string) (int, bool) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	y, err := strconv.Atoi(s)
	return y, err == nil
}

func monthToken(s string) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if m, ok := monthNumbers[s]; ok {
		return m, true
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= 12 {
		return n, true
	}
	return 0, false
}
