package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"cricket-mcs/cmd/mockgen/engine"
)

func main() {
	scenario := flag.String("scenario", "balanced", "Scenario to generate: balanced, batting, bowling")
	outDir := flag.String("out", "./data", "Output directory for match files")
	count := flag.Int("count", 50, "Number of matches to generate")
	balls := flag.Int("balls", 120, "Deliveries per innings")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	flag.Parse()

	cfg := engine.GeneratorConfig{
		Scenario: *scenario,
		Count:    *count,
		Balls:    *balls,
		Seed:     *seed,
		Start:    time.Now().AddDate(0, 0, -*count),
	}

	fmt.Printf("Generating scenario '%s' (Count: %d, Balls: %d) to %s...\n", cfg.Scenario, cfg.Count, cfg.Balls, *outDir)

	matches, err := engine.Generate(cfg)
	if err != nil {
		fmt.Printf("Failed to generate matches: %v\n", err)
		os.Exit(1)
	}

	if err := engine.Save(*outDir, matches); err != nil {
		fmt.Printf("Failed to save mock data: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Done.")
}
