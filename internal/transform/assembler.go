package transform

// Assemble composes the pipeline outputs into the response payload.
// Pure composition; every derived collection comes from the structures
// already built upstream.
func Assemble(reg *Registry, distributions []Distribution, purchases []PurchaseRow) *Dataset {
	return &Dataset{
		Locations:       reg.Locations(),
		Distributions:   distributions,
		Purchases:       purchases,
		Contracts:       Contracts(purchases),
		AvailableMonths: AvailableMonths(purchases, distributions),
	}
}
