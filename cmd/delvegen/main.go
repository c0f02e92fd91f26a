package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/stonelantern/delvegen/internal/config"
	"github.com/stonelantern/delvegen/internal/database"
	"github.com/stonelantern/delvegen/internal/evaluate"
	"github.com/stonelantern/delvegen/internal/logger"
	"github.com/stonelantern/delvegen/internal/narrative"
	"github.com/stonelantern/delvegen/internal/render"
)

// runOutput is the JSON document written by --format json. cmd/mapgen reads
// the same shape back.
type runOutput struct {
	MasterSeed  int64               `json:"master_seed"`
	GeneratedAt time.Time           `json:"generated_at"`
	Candidate   *evaluate.Candidate `json:"candidate"`
}

func main() {
	configFile := flag.String("config", "data/config.yaml", "Path to config YAML file")
	seed := flag.Int64("seed", 0, "Master seed (default: config value, then current time)")
	candidates := flag.Int("candidates", 0, "Number of candidates to generate (default: config value)")
	workers := flag.Int("workers", 0, "Number of parallel workers (default: config value)")
	format := flag.String("format", "ascii", "Output format: ascii or json")
	outputFile := flag.String("output", "", "Output file (empty for stdout)")
	narrate := flag.Bool("narrate", false, "Force narration even when disabled in config")
	save := flag.Bool("save", false, "Archive the result even when the database is disabled in config")
	showLegend := flag.Bool("legend", true, "Show legend after the ASCII map")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger.Initialize(cfg.Logging)

	if *candidates > 0 {
		cfg.Evaluation.Candidates = *candidates
	}
	if *workers > 0 {
		cfg.Evaluation.Workers = *workers
	}

	masterSeed := *seed
	if masterSeed == 0 {
		masterSeed = cfg.Evaluation.MasterSeed
	}
	if masterSeed == 0 {
		masterSeed = time.Now().UnixNano()
	}
	logger.Info("Generating dungeon",
		"master_seed", masterSeed,
		"candidates", cfg.Evaluation.Candidates,
		"workers", cfg.Evaluation.Workers)

	winner, err := evaluate.SelectBest(cfg.Blueprint(), cfg.Evaluation.Candidates,
		cfg.Evaluation.Weights, masterSeed, cfg.Evaluation.Workers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generation failed: %v\n", err)
		os.Exit(1)
	}

	if *narrate {
		cfg.Narration.Enabled = true
	}
	narrative.NewNarrator(cfg.Narration).Annotate(winner.Dungeon)

	if cfg.Database.Enabled || *save {
		archiveRun(cfg.Database, masterSeed, winner)
	}

	var out string
	switch *format {
	case "json":
		doc := runOutput{
			MasterSeed:  masterSeed,
			GeneratedAt: time.Now().UTC(),
			Candidate:   winner,
		}
		encoded, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding output: %v\n", err)
			os.Exit(1)
		}
		out = string(encoded) + "\n"
	case "ascii":
		out = fmt.Sprintf("Dungeon (seed %d, score %.3f, %d rooms)\n\n",
			masterSeed, winner.Score, winner.Dungeon.RoomCount())
		out += render.ASCII(winner.Dungeon) + "\n"
		if *showLegend {
			out += render.Legend(winner.Dungeon) + "\n"
		}
		out += render.Summary(winner.Dungeon)
	default:
		fmt.Fprintf(os.Stderr, "Unknown format %q (want ascii or json)\n", *format)
		os.Exit(1)
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, []byte(out), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Dungeon written to %s\n", *outputFile)
	} else {
		fmt.Print(out)
	}
}

// archiveRun saves the winner, logging instead of failing: the generated
// dungeon has already been produced and should still reach the user.
func archiveRun(cfg config.DatabaseConfig, masterSeed int64, winner *evaluate.Candidate) {
	db, err := database.Open(database.Config{
		Driver: cfg.Driver,
		Path:   cfg.Path,
		DSN:    cfg.DSN,
	})
	if err != nil {
		logger.Error("failed to open archive", "error", err)
		return
	}
	defer db.Close()

	id, err := db.SaveRun(masterSeed, winner)
	if err != nil {
		logger.Error("failed to archive run", "error", err)
		return
	}
	logger.Info("Run archived", "run_id", id, "master_seed", masterSeed)
}
