// Package testkit provides fixtures shared by package tests: a seeded sales
// table generator and a testify mock of the dataset repository.
package testkit

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"time"

	"chartlab/domain/dataset"
)

// SalesHeaders is the column order of generated sales tables
var SalesHeaders = []string{"order_id", "region", "month", "revenue", "units", "returned", "note"}

// SalesGeneratorConfig configures the sales data generator
type SalesGeneratorConfig struct {
	Rows        int       `json:"rows"`
	Regions     []string  `json:"regions"`
	StartDate   time.Time `json:"start_date"`
	Months      int       `json:"months"`
	MissingRate float64   `json:"missing_rate"` // share of revenue cells left blank
	NoiseRate   float64   `json:"noise_rate"`   // share of revenue cells written as "N/A"
	Seed        int64     `json:"seed"`
}

// DefaultSalesConfig returns sensible defaults for sales data generation
func DefaultSalesConfig() SalesGeneratorConfig {
	return SalesGeneratorConfig{
		Rows:        200,
		Regions:     []string{"North", "South", "East", "West"},
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Months:      6,
		MissingRate: 0.05,
		NoiseRate:   0.02,
		Seed:        42,
	}
}

// SalesDataGenerator generates order tables mixing numeric, categorical,
// boolean and dirty cells
type SalesDataGenerator struct {
	config SalesGeneratorConfig
}

// NewSalesDataGenerator creates a generator; equal seeds give equal output
func NewSalesDataGenerator(config SalesGeneratorConfig) *SalesDataGenerator {
	if len(config.Regions) == 0 {
		config.Regions = DefaultSalesConfig().Regions
	}
	if config.Months <= 0 {
		config.Months = 1
	}
	return &SalesDataGenerator{config: config}
}

// Generate builds the typed dataset
func (g *SalesDataGenerator) Generate() dataset.Dataset {
	rng := rand.New(rand.NewSource(g.config.Seed))
	rows := make([]dataset.Row, 0, g.config.Rows)
	for i := 0; i < g.config.Rows; i++ {
		rows = append(rows, g.order(rng, i))
	}
	return dataset.New(append([]string(nil), SalesHeaders...), rows)
}

// CSV renders the generated rows as an upload file
func (g *SalesDataGenerator) CSV() []byte {
	ds := g.Generate()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(ds.Headers)
	for _, row := range ds.Rows {
		record := make([]string, len(ds.Headers))
		for j, h := range ds.Headers {
			record[j] = row.Get(h).String()
		}
		_ = w.Write(record)
	}
	w.Flush()
	return buf.Bytes()
}

func (g *SalesDataGenerator) order(rng *rand.Rand, i int) dataset.Row {
	units := 1 + rng.Intn(9)
	price := 5 + rng.Float64()*45
	month := g.config.StartDate.AddDate(0, rng.Intn(g.config.Months), 0)

	row := dataset.Row{
		"order_id": dataset.NewText(fmt.Sprintf("order_%05d", i+1)),
		"region":   dataset.NewText(g.config.Regions[rng.Intn(len(g.config.Regions))]),
		"month":    dataset.NewText(month.Format("2006-01")),
		"units":    dataset.NewNumber(float64(units)),
		"returned": dataset.NewBool(rng.Float64() < 0.08),
		"note":     dataset.Missing(),
	}

	// whole cents keep the CSV round trip exact
	revenue := math.Round(float64(units)*price*100) / 100
	switch r := rng.Float64(); {
	case r < g.config.MissingRate:
		row["revenue"] = dataset.Missing()
	case r < g.config.MissingRate+g.config.NoiseRate:
		row["revenue"] = dataset.NewText("N/A")
	default:
		row["revenue"] = dataset.NewNumber(revenue)
	}

	if rng.Float64() < 0.1 {
		row["note"] = dataset.NewText("rush " + strconv.Itoa(units))
	}
	return row
}
