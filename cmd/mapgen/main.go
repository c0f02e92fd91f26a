package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/stonelantern/delvegen/internal/dungeon"
	"github.com/stonelantern/delvegen/internal/evaluate"
	"github.com/stonelantern/delvegen/internal/render"
)

// runDocument matches the JSON written by delvegen --format json and by the
// explorer API.
type runDocument struct {
	MasterSeed int64               `json:"master_seed"`
	Candidate  *evaluate.Candidate `json:"candidate"`
}

func main() {
	inputFile := flag.String("input", "", "Path to a dungeon JSON file (from delvegen --format json)")
	outputFile := flag.String("output", "", "Output file (empty for stdout)")
	showLegend := flag.Bool("legend", true, "Show legend")
	showRooms := flag.Bool("rooms", true, "Show per-room details")
	flag.Parse()

	if *inputFile == "" {
		fmt.Fprintln(os.Stderr, "mapgen: -input is required")
		flag.Usage()
		os.Exit(1)
	}

	data, err := os.ReadFile(*inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	d, masterSeed, err := decodeDungeon(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing JSON: %v\n", err)
		os.Exit(1)
	}

	var output strings.Builder
	output.WriteString(fmt.Sprintf("Dungeon Map (Seed: %d, Rooms: %d)\n", masterSeed, d.RoomCount()))
	output.WriteString(strings.Repeat("=", 40) + "\n\n")
	output.WriteString(render.ASCII(d) + "\n")
	if *showLegend {
		output.WriteString(render.Legend(d) + "\n")
	}
	if *showRooms {
		output.WriteString(render.Summary(d))
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, []byte(output.String()), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Map written to %s\n", *outputFile)
	} else {
		fmt.Print(output.String())
	}
}

// decodeDungeon accepts either a full run document or a bare dungeon object.
func decodeDungeon(data []byte) (*dungeon.Dungeon, int64, error) {
	var doc runDocument
	if err := json.Unmarshal(data, &doc); err == nil && doc.Candidate != nil && doc.Candidate.Dungeon != nil {
		return doc.Candidate.Dungeon, doc.MasterSeed, nil
	}

	d := dungeon.NewDungeon()
	if err := json.Unmarshal(data, d); err != nil {
		return nil, 0, err
	}
	if d.RoomCount() == 0 {
		return nil, 0, fmt.Errorf("no rooms found in input")
	}
	return d, 0, nil
}
