package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"sort"
	"strings"
	"time"

	"promo-insights-be/internal/constant"

	"github.com/fatih/color"
)

// Generates a synthetic promotions dataset in the delimited-text form the
// dashboard ingests. Useful for local development when no export from the
// planning system is at hand.

var (
	regions = map[string][]string{
		"SEA":    {"Vietnam", "Thailand", "Indonesia", "Philippines"},
		"Europe": {"Germany", "France", "Poland", "Spain"},
		"Asia":   {"Japan", "South Korea", "India", "China"},
	}
	channels   = []string{"Modern Trade", "Traditional Trade", "E-Commerce", "Discounter"}
	categories = []string{"Beverages", "Snacks", "Dairy", "Household", "Personal Care"}
	brands     = []string{"Aurora", "Northpeak", "Velvet", "Crisply", "PureLine", "Zestas"}
	customers  = []string{"MegaMart", "QuickShop", "ValueHouse", "UrbanRetail", "FreshCo"}
	statuses   = []string{"COMPLETED", "ONGOING", "PLANNED"}
	rags       = []string{"RED", "AMBER", "GREEN"}
)

func main() {
	out := flag.String("out", "promotions.csv", "output file path")
	rows := flag.Int("rows", 500, "number of promotion rows to generate")
	seed := flag.Int64("seed", 0, "random seed (0 = time-based)")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("Error: cannot create %s: %v", *out, err)
	}
	defer f.Close()

	header := []string{
		constant.ColPromoID, constant.ColPromoName, constant.ColRegion, constant.ColCountry,
		constant.ColChannel, constant.ColCategory, constant.ColBrand, constant.ColCustomer,
		constant.ColPromStatus, constant.ColRAGActual, constant.ColRAGPlanned,
		constant.ColStartProm, constant.ColEndProm, constant.ColWeek,
		constant.ColTotalSales, constant.ColBaselineSales, constant.ColUpliftValue,
		constant.ColProfit, constant.ColROI,
	}
	fmt.Fprintln(f, strings.Join(header, ","))

	color.Cyan("🌱 Generating %d promotions into %s (seed %d)\n", *rows, *out, *seed)

	for i := 0; i < *rows; i++ {
		fmt.Fprintln(f, strings.Join(makeRow(rng, i), ","))
	}

	color.Green("Done: %d rows written", *rows)
}

func makeRow(rng *rand.Rand, i int) []string {
	region := pick(rng, keys(regions))
	country := pick(rng, regions[region])
	brand := pick(rng, brands)
	category := pick(rng, categories)

	year := 2024 + rng.Intn(2)
	week := 1 + rng.Intn(52)
	start := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, (week-1)*7)
	end := start.AddDate(0, 0, 7+rng.Intn(21))

	baseline := 50_000 + rng.Float64()*450_000
	uplift := baseline * (0.05 + rng.Float64()*0.6)
	total := baseline + uplift
	profit := uplift * (0.1 + rng.Float64()*0.4)
	roi := profit / (uplift * 0.5)

	name := fmt.Sprintf("%s %s %s Push", brand, category, start.Format("Jan"))
	// Quote names with commas the way real exports do.
	if rng.Intn(10) == 0 {
		name = fmt.Sprintf("\"%s, %s Edition\"", name, country)
	}

	row := []string{
		fmt.Sprintf("P%05d", i+1),
		name,
		region,
		country,
		pick(rng, channels),
		category,
		brand,
		pick(rng, customers),
		pick(rng, statuses),
		pick(rng, rags),
		pick(rng, rags),
		start.Format(constant.DateLayout),
		end.Format(constant.DateLayout),
		fmt.Sprintf("%d", week),
		fmt.Sprintf("%.2f", total),
		fmt.Sprintf("%.2f", baseline),
		fmt.Sprintf("%.2f", uplift),
		fmt.Sprintf("%.2f", profit),
		fmt.Sprintf("%.3f", roi),
	}

	// Sprinkle in the nulls the ingester needs to tolerate.
	if rng.Intn(20) == 0 {
		row[17] = "null"
	}
	if rng.Intn(25) == 0 {
		row[18] = ""
	}
	return row
}

func pick(rng *rand.Rand, options []string) string {
	return options[rng.Intn(len(options))]
}

func keys(m map[string][]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	// Map order is random; a fixed -seed should still give a fixed file.
	sort.Strings(out)
	return out
}
