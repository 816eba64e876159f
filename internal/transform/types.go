package transform

import (
	"encoding/json"
)

// Geocode is a latitude/longitude pair kept as the source's numeric
// strings, serialized as a 2-element JSON array.
type Geocode [2]string

// OwnershipFlags are the demographic attributes of a location. They are
// copied onto relationship records at resolution time.
type OwnershipFlags struct {
	BipocOwned       bool `json:"bipocOwned"`
	WomanOwned       bool `json:"womanOwned"`
	CertifiedOrganic bool `json:"certifiedOrganic"`
	SchoolSite       bool `json:"schoolSite"`
	FoodBankPartner  bool `json:"foodBankPartner"`
}

// Location is a named site (farm, hub, distributor...) from the address
// sheet. ID is the zero-based index of the name's first occurrence and
// is stable only within one fetch.
type Location struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Category []string `json:"category"`
	Geocode  *Geocode `json:"geocode"`
	OwnershipFlags
	Address       *string `json:"address"`
	Description   *string `json:"description"`
	LocationImage *string `json:"locationImage"`
}

// DistributionRow is one resolved row of the distributions sheet: a
// delivery from a hub to a distribution site, enriched with the
// identity, coordinates and flags of both ends. Flags are the
// distribution site's.
type DistributionRow struct {
	Hub                 string
	DistributionSite    string
	HubID               int
	HubGeo              Geocode
	DistributionSiteID  int
	DistributionSiteGeo Geocode
	OwnershipFlags
	DeliveryDate string
	// Extra carries the sheet columns not consumed above, emitted at
	// the top level of the JSON object like the named fields.
	Extra map[string]string
}

func (d DistributionRow) MarshalJSON() ([]byte, error) {
	m := map[string]any{
		"hub":                 d.Hub,
		"distributionSite":    d.DistributionSite,
		"hubId":               d.HubID,
		"hubGeo":              d.HubGeo,
		"distributionSiteId":  d.DistributionSiteID,
		"distributionSiteGeo": d.DistributionSiteGeo,
		"bipocOwned":          d.BipocOwned,
		"womanOwned":          d.WomanOwned,
		"certifiedOrganic":    d.CertifiedOrganic,
		"schoolSite":          d.SchoolSite,
		"foodBankPartner":     d.FoodBankPartner,
	}
	if d.DeliveryDate != "" {
		m["deliveryDate"] = d.DeliveryDate
	} else {
		m["deliveryDate"] = nil
	}
	for k, v := range d.Extra {
		m[k] = v
	}
	return json.Marshal(m)
}

// PurchaseRow is one resolved row of the purchases sheet: a financial
// relationship from a hub organization to a farm. Flags are the farm's.
// Months maps detected month-column buckets (e.g. "2021-6") to the raw
// cell values; the raw month columns also remain in Extra so they still
// appear at the top level of the serialized record.
type PurchaseRow struct {
	HubOrganization    string
	FarmName           string
	HubOrganizationID  int
	HubOrganizationGeo Geocode
	FarmNameID         int
	FarmNameGeo        Geocode
	OwnershipFlags
	Contract  string
	Months    map[string]string
	monthKeys []string
	Extra     map[string]string
}

// MonthKeys returns the month buckets in sheet column order.
func (p PurchaseRow) MonthKeys() []string { return p.monthKeys }

func (p PurchaseRow) MarshalJSON() ([]byte, error) {
	m := map[string]any{
		"hubOrganization":    p.HubOrganization,
		"farmName":           p.FarmName,
		"hubOrganizationId":  p.HubOrganizationID,
		"hubOrganizationGeo": p.HubOrganizationGeo,
		"farmNameId":         p.FarmNameID,
		"farmNameGeo":        p.FarmNameGeo,
		"bipocOwned":         p.BipocOwned,
		"womanOwned":         p.WomanOwned,
		"certifiedOrganic":   p.CertifiedOrganic,
		"schoolSite":         p.SchoolSite,
		"foodBankPartner":    p.FoodBankPartner,
		"months":             p.Months,
	}
	if p.Contract != "" {
		m["contract"] = p.Contract
	} else {
		m["contract"] = nil
	}
	for k, v := range p.Extra {
		m[k] = v
	}
	return json.Marshal(m)
}

// Distribution is the aggregated hub→site relationship: one record per
// distinct (hub, distribution site) pair, with the underlying rows
// grouped into month buckets.
type Distribution struct {
	Hub                 string
	DistributionSite    string
	HubID               int
	HubGeo              Geocode
	DistributionSiteID  int
	DistributionSiteGeo Geocode
	OwnershipFlags
	Months    map[string][]DistributionRow
	monthKeys []string
}

// MonthKeys returns the month buckets in delivery encounter order.
func (d Distribution) MonthKeys() []string { return d.monthKeys }

func (d Distribution) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"hub":                 d.Hub,
		"distributionSite":    d.DistributionSite,
		"hubId":               d.HubID,
		"hubGeo":              d.HubGeo,
		"distributionSiteId":  d.DistributionSiteID,
		"distributionSiteGeo": d.DistributionSiteGeo,
		"bipocOwned":          d.BipocOwned,
		"womanOwned":          d.WomanOwned,
		"certifiedOrganic":    d.CertifiedOrganic,
		"schoolSite":          d.SchoolSite,
		"foodBankPartner":     d.FoodBankPartner,
		"months":              d.Months,
	})
}

// Dataset is the full payload handed to the HTTP boundary.
type Dataset struct {
	Locations       []*Location    `json:"locations"`
	Distributions   []Distribution `json:"distributions"`
	Purchases       []PurchaseRow  `json:"purchases"`
	Contracts       []string       `json:"contracts"`
	AvailableMonths []string       `json:"availableMonths"`
}
