// Database initialization script: creates the profiles table and the
// unique email index that turns concurrent first-time signups into a
// detectable conflict instead of silent duplicates.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"financial-health-engine/internal/services/database"
)

const schema = `
CREATE EXTENSION IF NOT EXISTS "uuid-ossp";

CREATE TABLE IF NOT EXISTS profiles (
	id                   UUID PRIMARY KEY,
	name                 TEXT NOT NULL,
	phone                TEXT NOT NULL,
	email                TEXT NOT NULL,
	net_monthly_income   DOUBLE PRECISION,
	net_monthly_expenses DOUBLE PRECISION,
	net_monthly_emis     DOUBLE PRECISION,
	total_assets         DOUBLE PRECISION,
	total_loans          DOUBLE PRECISION,
	total_liquid_assets  DOUBLE PRECISION,
	savings_ratio        DOUBLE PRECISION,
	expense_ratio        DOUBLE PRECISION,
	leverage_ratio       DOUBLE PRECISION,
	solvency_ratio       DOUBLE PRECISION,
	liquidity_ratio      DOUBLE PRECISION,
	debt_to_income_ratio DOUBLE PRECISION,
	created_at           TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at           TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE UNIQUE INDEX IF NOT EXISTS profiles_email_unique
	ON profiles (LOWER(email));

CREATE INDEX IF NOT EXISTS profiles_created_at_idx
	ON profiles (created_at DESC);
`

func main() {
	fmt.Println("=== Database Initialization Script ===")
	fmt.Println()

	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Could not load .env file: %v\n", err)
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		fmt.Println("DATABASE_URL environment variable not set")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	fmt.Println("Connecting to PostgreSQL server...")
	db, err := database.NewFromURL(databaseURL)
	if err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	fmt.Println("Connected, applying schema...")
	if _, err := db.ExecContext(ctx, schema); err != nil {
		fmt.Printf("Failed to apply schema: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Schema applied successfully!")
}
