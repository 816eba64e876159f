package main

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/joho/godotenv"

	"github.com/foodshedmap/foodshedmap/internal/config"
	"github.com/foodshedmap/foodshedmap/internal/sheets"
	"github.com/foodshedmap/foodshedmap/internal/transform"
)

// Fetches the spreadsheet with GOOGLE_ACCESS_TOKEN and prints the
// transformed dataset as tables. Useful for checking sheet edits
// without a frontend.
func main() {
	_ = godotenv.Load()

	token := os.Getenv("GOOGLE_ACCESS_TOKEN")
	if token == "" {
		log.Fatal("GOOGLE_ACCESS_TOKEN is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	pipeline := transform.NewPipeline(sheets.NewClient(cfg.SheetsBaseURL), cfg.SpreadsheetID, cfg.Schema)
	dataset, err := pipeline.Run(context.Background(), token)
	if err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("Locations")
	t.AppendHeader(table.Row{"ID", "Name", "Categories", "Geocode", "BIPOC", "Woman", "Organic"})
	for _, loc := range dataset.Locations {
		geo := ""
		if loc.Geocode != nil {
			geo = loc.Geocode[0] + ", " + loc.Geocode[1]
		}
		t.AppendRow(table.Row{loc.ID, loc.Name, strings.Join(loc.Category, "/"), geo, loc.BipocOwned, loc.WomanOwned, loc.CertifiedOrganic})
	}
	t.Render()

	d := table.NewWriter()
	d.SetOutputMirror(os.Stdout)
	d.SetTitle("Distributions")
	d.AppendHeader(table.Row{"Hub", "Distribution Site", "Months", "Deliveries"})
	for _, dist := range dataset.Distributions {
		deliveries := 0
		for _, rows := range dist.Months {
			deliveries += len(rows)
		}
		d.AppendRow(table.Row{dist.Hub, dist.DistributionSite, strings.Join(dist.MonthKeys(), ", "), deliveries})
	}
	d.Render()

	p := table.NewWriter()
	p.SetOutputMirror(os.Stdout)
	p.SetTitle("Purchases")
	p.AppendHeader(table.Row{"Hub Organization", "Farm", "Contract", "Months"})
	for _, purchase := range dataset.Purchases {
		p.AppendRow(table.Row{purchase.HubOrganization, purchase.FarmName, purchase.Contract, strings.Join(purchase.MonthKeys(), ", ")})
	}
	p.Render()

	log.Printf("Contracts: %s", strings.Join(dataset.Contracts, ", "))
	log.Printf("Available months: %s", strings.Join(dataset.AvailableMonths, ", "))
}
