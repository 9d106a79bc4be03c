package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"cluetrainer/internal/abbrev"
	"cluetrainer/internal/config"
	"cluetrainer/internal/database"
	"cluetrainer/internal/models"
	"cluetrainer/internal/repository"
)

func main() {
	// Define subcommands
	cluesCmd := flag.NewFlagSet("clues", flag.ExitOnError)
	abbrevCmd := flag.NewFlagSet("abbreviations", flag.ExitOnError)

	// Clue-load flags
	cluesCSV := cluesCmd.String("csv", "", "Path to the clues CSV file (required)")

	// Abbreviation-parse flags
	abbrevInput := abbrevCmd.String("input", "", "Path to the raw abbreviation list (required)")
	abbrevOutput := abbrevCmd.String("output", "./data/abbreviations.json", "Output JSON path")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "clues":
		cluesCmd.Parse(os.Args[2:])
		if *cluesCSV == "" {
			fmt.Println("Error: -csv flag is required")
			cluesCmd.PrintDefaults()
			os.Exit(1)
		}
		handleClues(*cluesCSV)

	case "abbreviations":
		abbrevCmd.Parse(os.Args[2:])
		if *abbrevInput == "" {
			fmt.Println("Error: -input flag is required")
			abbrevCmd.PrintDefaults()
			os.Exit(1)
		}
		handleAbbreviations(*abbrevInput, *abbrevOutput)

	default:
		printUsage()
		os.Exit(1)
	}
}

func handleClues(csvPath string) {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations to ensure schema is up to date
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	file, err := os.Open(csvPath)
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	log.Printf("Loading clues from: %s", csvPath)

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	clueRepo := repository.NewClueRepository(tx)

	inserted, skipped, err := loadClues(file, clueRepo)
	if err != nil {
		log.Fatalf("Failed to load clues: %v", err)
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit transaction: %v", err)
	}

	log.Printf("Load complete: %d inserted, %d skipped", inserted, skipped)
}

// loadClues reads CSV records and inserts them. Header names map to
// clue columns; rows missing clue or answer are skipped.
func loadClues(r io.Reader, clueRepo *repository.ClueRepository) (inserted, skipped int, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return inserted, skipped, fmt.Errorf("failed to read CSV record: %w", err)
		}

		clue := &models.Clue{
			Clue:       field(record, "clue"),
			Answer:     field(record, "answer"),
			Definition: field(record, "definition"),
			PuzzleName: field(record, "puzzle_name"),
			PuzzleDate: field(record, "puzzle_date"),
			SourceURL:  field(record, "source_url"),
		}
		if rowid, err := strconv.ParseInt(field(record, "rowid"), 10, 64); err == nil {
			clue.Rowid = rowid
		}

		if clue.Clue == "" || clue.Answer == "" {
			skipped++
			continue
		}

		if err := clueRepo.Insert(clue); err != nil {
			return inserted, skipped, err
		}
		inserted++
	}

	return inserted, skipped, nil
}

func handleAbbreviations(inputPath, outputPath string) {
	file, err := os.Open(inputPath)
	if err != nil {
		log.Fatalf("Failed to open input file: %v", err)
	}
	defer file.Close()

	dataset, err := abbrev.Parse(file)
	if err != nil {
		log.Fatalf("Failed to parse abbreviations: %v", err)
	}

	if err := dataset.Save(outputPath); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}

	log.Printf("Parsed %d abbreviation entries to %s", len(dataset.Entries), outputPath)
}

func printUsage() {
	fmt.Println("Usage: dataload <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  clues          Load clues into the database from a CSV file")
	fmt.Println("  abbreviations  Parse a raw abbreviation list into JSON")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  dataload clues -csv ./clues.csv")
	fmt.Println("  dataload abbreviations -input ./abbreviations.rtf -output ./data/abbreviations.json")
}
