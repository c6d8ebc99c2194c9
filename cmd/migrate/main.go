package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"

	"chartlab/adapters/excel"
	"chartlab/adapters/postgres"
	"chartlab/domain/dataset"
	"chartlab/internal"
	"chartlab/internal/config"
	ingest "chartlab/internal/dataset"
)

func main() {
	if len(os.Args) < 3 {
		log.Fatal("Usage: migrate <database_url> <data_dir>")
	}

	databaseURL := os.Args[1]
	dataDir := os.Args[2]

	log.Printf("Importing datasets from %s into %s", dataDir, databaseURL)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	cfg.Database.URL = databaseURL
	cfg.Database.AutoMigrate = true

	ctx := context.Background()
	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	logger := internal.NewLoggerTo(os.Stderr, internal.ParseLogLevel(cfg.Logging.Level), false)
	processor := ingest.NewProcessor(postgres.NewDatasetRepository(db), nil, cfg.Upload, nil, logger)

	files, err := findDataFiles(dataDir)
	if err != nil {
		log.Fatalf("Failed to find data files: %v", err)
	}

	log.Printf("Found %d data files to import", len(files))

	migrated, skipped := importFiles(ctx, processor, files)
	log.Printf("Import complete: %d migrated, %d skipped", migrated, skipped)
}

// importFiles stores every file it can parse; rejected files are logged and counted
func importFiles(ctx context.Context, processor *ingest.Processor, files []string) (migrated, skipped int) {
	for _, file := range files {
		stored, err := processor.ProcessFile(ctx, file, dataset.SourceCLI)
		if err != nil {
			log.Printf("Skipping %s: %v", file, err)
			skipped++
			continue
		}

		migrated++
		log.Printf("Imported dataset %s from %s (%d rows)", stored.ID, filepath.Base(file), stored.RowCount)
	}
	return migrated, skipped
}

func findDataFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() || strings.HasPrefix(info.Name(), ".") {
			return nil
		}
		if _, err := excel.DetectFileType(path); err == nil {
			files = append(files, path)
		}

		return nil
	})

	return files, err
}
