package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"storefront-analytics/internal/config"
	"storefront-analytics/internal/database"
	"storefront-analytics/internal/sampledata"
)

func main() {
	truncate := flag.Bool("truncate", false, "remove existing rows before loading")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := config.NewLogger(cfg.Logger)
	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to create connection pool: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	var dbName string
	if err := pool.QueryRow(ctx, "SELECT current_database()").Scan(&dbName); err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Connected to database: %s\n", dbName)

	if err := sampledata.CreateSchema(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if *truncate {
		if err := sampledata.Truncate(ctx, pool); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		fmt.Println("Existing rows removed")
	}

	ds := sampledata.Demo(time.Now())
	if err := sampledata.Load(ctx, pool, ds); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Loaded %d users, %d products, %d transactions, %d transaction details\n",
		len(ds.Users), len(ds.Products), len(ds.Transactions), len(ds.Details))
}
