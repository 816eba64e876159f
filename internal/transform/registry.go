package transform

// Registry is the name-keyed index of unique locations built from the
// address sheet. Only locations with a usable geocode are registered;
// anything else can never be rendered or matched.
type Registry struct {
	list   []*Location
	byName map[string]*Location

	// Dropped counts address rows skipped for a missing or malformed
	// geocode. Surfaced for logging only.
	Dropped int
}

// Locations returns the unique locations in first-seen order.
func (r *Registry) Locations() []*Location { return r.list }

// Lookup resolves a location name. A hit always has a geocode.
func (r *Registry) Lookup(name string) (*Location, bool) {
	loc, ok := r.byName[name]
	return loc, ok
}

// BuildRegistry indexes parsed address rows by name. The first
// occurrence of a name wins for every field except category, which
// accumulates one entry per occurrence. IDs are the zero-based index of
// the name's first registered occurrence.
func BuildRegistry(records []Record, truthyToken string) *Registry {
	reg := &Registry{
		list:   make([]*Location, 0, len(records)),
		byName: make(map[string]*Location, len(records)),
	}

	for i, rec := range records {
		name := rec.Get("name")

		if existing, ok := reg.byName[name]; ok {
			if cat := rec.Get("category"); cat != "" {
				existing.Category = append(existing.Category, cat)
			}
			continue
		}

		geo, ok := parseGeocode(rec.Get("geocode"))
		if !ok {
			reg.Dropped++
			continue
		}

		loc := &Location{
			ID:      i,
			Name:    name,
			Geocode: geo,
			OwnershipFlags: OwnershipFlags{
				BipocOwned:       rec.Get("bipocOwned") == truthyToken,
				WomanOwned:       rec.Get("womanOwned") == truthyToken,
				CertifiedOrganic: rec.Get("certifiedOrganic") == truthyToken,
				SchoolSite:       rec.Get("schoolSite") == truthyToken,
				FoodBankPartner:  rec.Get("foodBankPartner") == truthyToken,
			},
			Address:       optional(rec, "address"),
			Description:   optional(rec, "description"),
			LocationImage: optional(rec, "locationImage"),
		}
		if cat := rec.Get("category"); cat != "" {
			loc.Category = append(loc.Category, cat)
		}

		reg.list = append(reg.list, loc)
		reg.byName[name] = loc
	}

	return reg
}

func optional(rec Record, key string) *string {
	if !rec.Has(key) {
		return nil
	}
	v := rec.Get(key)
	return &v
}
