package transform

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/foodshedmap/foodshedmap/internal/config"
	"github.com/foodshedmap/foodshedmap/internal/sheets"
)

// Pipeline runs the full sheet-to-dataset transformation for one
// request. It holds no per-request state; everything is rebuilt from
// scratch on every Run.
type Pipeline struct {
	Sheets        *sheets.Client
	SpreadsheetID string
	Schema        config.SheetSchema
}

func NewPipeline(client *sheets.Client, spreadsheetID string, schema config.SheetSchema) *Pipeline {
	return &Pipeline{
		Sheets:        client,
		SpreadsheetID: spreadsheetID,
		Schema:        schema,
	}
}

// Run fetches the three sheets concurrently with the caller's token,
// validates their headers, and transforms them into one dataset. An
// upstream fetch error short-circuits the request (returned as
// *sheets.APIError); unresolvable references and malformed cells only
// degrade by omission and are logged.
func (p *Pipeline) Run(ctx context.Context, token string) (*Dataset, error) {
	var addressGrid, distributionGrid, purchaseGrid [][]string

	g, ctx := errgroup.WithContext(ctx)
	fetch := func(rng string, dst *[][]string) func() error {
		return func() error {
			grid, err := p.Sheets.Values(ctx, p.SpreadsheetID, rng, token)
			if err != nil {
				return err
			}
			*dst = grid
			return nil
		}
	}
	g.Go(fetch(p.Schema.Addresses.Range, &addressGrid))
	g.Go(fetch(p.Schema.Distributions.Range, &distributionGrid))
	g.Go(fetch(p.Schema.Purchases.Range, &purchaseGrid))
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := ValidateHeaders(p.Schema.Addresses.Name, addressGrid, p.Schema.Addresses.Headers); err != nil {
		return nil, err
	}
	if err := ValidateHeaders(p.Schema.Distributions.Name, distributionGrid, p.Schema.Distributions.Headers); err != nil {
		return nil, err
	}
	if err := ValidateHeaders(p.Schema.Purchases.Name, purchaseGrid, p.Schema.Purchases.Headers); err != nil {
		return nil, err
	}

	registry := BuildRegistry(ParseRows(addressGrid), p.Schema.TruthyToken)
	if registry.Dropped > 0 {
		log.Printf("[Transform] skipped %d address rows without a usable geocode", registry.Dropped)
	}

	distributionRows, dropped := ResolveDistributions(ParseRows(distributionGrid), registry)
	if dropped > 0 {
		log.Printf("[Transform] dropped %d distribution rows with unresolvable locations", dropped)
	}

	purchases, dropped := ResolvePurchases(ParseRows(purchaseGrid), registry)
	if dropped > 0 {
		log.Printf("[Transform] dropped %d purchase rows with unresolvable locations", dropped)
	}

	distributions, skipped := AggregateDistributions(distributionRows)
	if skipped > 0 {
		log.Printf("[Transform] dropped %d distribution rows with unparseable delivery dates", skipped)
	}

	return Assemble(registry, distributions, purchases), nil
}
