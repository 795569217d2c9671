package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kagamiz/mapsolver/pkg/config"
	"github.com/kagamiz/mapsolver/pkg/mapio"
	"github.com/kagamiz/mapsolver/pkg/mapsvg"
	"github.com/kagamiz/mapsolver/pkg/room"
	"github.com/kagamiz/mapsolver/pkg/solver"
	"github.com/kagamiz/mapsolver/pkg/verify"
)

const version = "1.0.0"

var (
	inputPath  = flag.String("input", "", "Path to walk input JSON file: {\"n\":int,\"doors\":string,\"labels\":[int]} (required)")
	configPath = flag.String("config", "", "Path to YAML tuning configuration file (optional, defaults are used otherwise)")
	outputDir  = flag.String("output", ".", "Output directory for generated files")
	format     = flag.String("format", "json", "Export format: json, svg, or all")
	strategy   = flag.String("strategy", "", "Force a solve strategy by name (dfs, annealing); empty selects by room count")
	seedFlag   = flag.Uint64("seed", 0, "Override the seed from config (0 = use config seed)")
	doVerify   = flag.Bool("verify", false, "Run round-trip verification on the solved map and print the report")
	verbose    = flag.Bool("verbose", false, "Enable verbose output")
	versionF   = flag.Bool("version", false, "Print version and exit")
	help       = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *versionF {
		fmt.Printf("mapsolver version %s\n", version)
		os.Exit(0)
	}
	if *help {
		printHelp()
		os.Exit(0)
	}
	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -input flag is required")
		printUsage()
		os.Exit(1)
	}

	validFormats := map[string]bool{"json": true, "svg": true, "all": true}
	if !validFormats[*format] {
		fmt.Fprintf(os.Stderr, "Error: invalid format %q, must be one of: json, svg, all\n", *format)
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	if *verbose {
		fmt.Printf("Loading walk input from %s\n", *inputPath)
	}
	in, err := mapio.LoadWalkInput(*inputPath)
	if err != nil {
		return fmt.Errorf("failed to load walk input: %w", err)
	}

	cfg := config.Default()
	if *configPath != "" {
		if *verbose {
			fmt.Printf("Loading configuration from %s\n", *configPath)
		}
		cfg, err = config.LoadConfig(*configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}
	if *seedFlag != 0 {
		if *verbose {
			fmt.Printf("Overriding seed from %d to %d\n", cfg.Seed, *seedFlag)
		}
		cfg.Seed = *seedFlag
	}

	if *verbose {
		fmt.Printf("Using seed: %d\n", cfg.Seed)
		fmt.Printf("Room count: %d, walk length: %d\n", in.N, len(in.Doors))
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	start := time.Now()
	m, err := solve(ctx, in, cfg)
	if err != nil {
		return fmt.Errorf("solve failed: %w", err)
	}
	elapsed := time.Since(start)
	if *verbose {
		fmt.Printf("Solved in %v (%d rooms, %d connections)\n", elapsed, m.N(), len(m.Connections))
	}

	if *doVerify {
		report := verify.Verify(in.N, in.Doors, in.Labels, m)
		fmt.Print(report.Summary())
		if !report.Passed {
			return fmt.Errorf("verification failed")
		}
	}

	baseName := fmt.Sprintf("map_%d", cfg.Seed)

	if *format == "json" || *format == "all" {
		if err := exportJSON(m, baseName); err != nil {
			return err
		}
	}
	if *format == "svg" || *format == "all" {
		if err := exportSVG(m, baseName); err != nil {
			return err
		}
	}

	fmt.Printf("Successfully solved map (seed=%d) in %v\n", cfg.Seed, elapsed)
	return nil
}

func solve(ctx context.Context, in *mapio.WalkInput, cfg *config.Config) (*room.MapData, error) {
	name := strings.TrimSpace(*strategy)
	if name == "" {
		return solver.Solve(ctx, in.N, in.Doors, in.Labels, cfg)
	}
	s, err := solver.Get(name)
	if err != nil {
		return nil, err
	}
	return s.Solve(ctx, in.N, in.Doors, in.Labels, cfg)
}

func exportJSON(m *room.MapData, baseName string) error {
	filename := filepath.Join(*outputDir, baseName+".json")
	if *verbose {
		fmt.Printf("Exporting JSON to %s\n", filename)
	}
	if err := mapio.SaveJSONToFile(m, filename); err != nil {
		return fmt.Errorf("failed to export JSON: %w", err)
	}
	return nil
}

func exportSVG(m *room.MapData, baseName string) error {
	filename := filepath.Join(*outputDir, baseName+".svg")
	if *verbose {
		fmt.Printf("Exporting SVG to %s\n", filename)
	}
	opts := mapsvg.DefaultOptions()
	opts.Title = fmt.Sprintf("Reconstructed Map (%d rooms)", m.N())
	if err := mapsvg.SaveToFile(m, filename, opts); err != nil {
		return fmt.Errorf("failed to export SVG: %w", err)
	}
	return nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "\nUsage: mapsolver -input <walk.json> [options]")
	fmt.Fprintln(os.Stderr, "\nRun 'mapsolver -help' for detailed help")
}

func printHelp() {
	fmt.Printf("mapsolver version %s\n\n", version)
	fmt.Println("Reconstructs a hidden 6-door labelled map from one observed walk.")
	fmt.Println("\nUsage:")
	fmt.Println("  mapsolver -input <walk.json> [options]")
	fmt.Println("\nRequired Flags:")
	fmt.Println("  -input string")
	fmt.Println("        Path to walk input JSON: {\"n\":int,\"doors\":string,\"labels\":[int]}")
	fmt.Println("\nOptional Flags:")
	fmt.Println("  -config string")
	fmt.Println("        Path to YAML tuning configuration file")
	fmt.Println("  -output string")
	fmt.Println("        Output directory for generated files (default: current directory)")
	fmt.Println("  -format string")
	fmt.Println("        Export format: json, svg, or all (default: json)")
	fmt.Println("  -strategy string")
	fmt.Println("        Force dfs or annealing; empty selects by room count")
	fmt.Println("  -seed uint")
	fmt.Println("        Override the seed from config (0 = use config seed)")
	fmt.Println("  -verify")
	fmt.Println("        Run round-trip verification and print the report")
	fmt.Println("  -verbose")
	fmt.Println("        Enable verbose output")
	fmt.Println("  -version")
	fmt.Println("        Print version and exit")
	fmt.Println("  -help")
	fmt.Println("        Show this help message")
	fmt.Println("\nExamples:")
	fmt.Println("  mapsolver -input walk.json -format all -output ./out")
	fmt.Println("  mapsolver -input walk.json -strategy annealing -verify")
}
