package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"salary-benchmark-lab/internal/importer"
	"salary-benchmark-lab/internal/storage"
	"salary-benchmark-lab/internal/storage/migrations"
	pgstore "salary-benchmark-lab/internal/storage/postgres"
)

func main() {
	file := flag.String("file", "", "CSV file with target positions (required)")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	dryRun := flag.Bool("dry-run", false, "Parse and report without writing to the database")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Error: --file is required")
		flag.Usage()
		os.Exit(1)
	}
	if !*dryRun && *postgresDSN == "" {
		fmt.Fprintln(os.Stderr, "Error: --postgres-dsn is required (or use --dry-run)")
		os.Exit(1)
	}

	f, err := os.Open(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %s: %v\n", *file, err)
		os.Exit(1)
	}
	defer f.Close()

	result, err := importer.ReadPositions(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading positions: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Parsed %d rows: %d positions, %d rejected\n",
		result.RowsRead, len(result.Positions), result.RowsRejected)

	if *dryRun {
		for _, p := range result.Positions {
			fmt.Printf("  %s  %s (%s)\n", p.PositionID, p.Name, p.Category)
		}
		return
	}

	ctx := context.Background()

	pool, err := pgstore.NewPool(ctx, *postgresDSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to postgres: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "Error running migrations: %v\n", err)
		os.Exit(1)
	}

	store := pgstore.NewPositionStore(pool)
	inserted, skipped := 0, 0
	for _, p := range result.Positions {
		if err := store.Insert(ctx, p); err != nil {
			if errors.Is(err, storage.ErrDuplicateKey) {
				skipped++
				continue
			}
			fmt.Fprintf(os.Stderr, "Error inserting %s: %v\n", p.PositionID, err)
			os.Exit(1)
		}
		inserted++
	}

	fmt.Printf("Imported %d positions (%d already present)\n", inserted, skipped)
}
