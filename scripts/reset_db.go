package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("========================================")
	fmt.Println("   Reset Database for Testing")
	fmt.Println("========================================")
	fmt.Println()
	fmt.Println("WARNING: This will DELETE ALL BUSINESS DATA!")
	fmt.Println()
	fmt.Println("This will:")
	fmt.Println("  - Delete all follow-ups, deliveries, payments and purchases")
	fmt.Println("  - Delete all stock rows and products")
	fmt.Println("  - Delete all customers")
	fmt.Println("  - Delete all users")
	fmt.Println("  - Reset all ID sequences")
	fmt.Println()
	fmt.Print("Type 'yes' to confirm: ")

	var confirm string
	fmt.Scanln(&confirm)

	if confirm != "yes" {
		fmt.Println("Reset cancelled.")
		return
	}

	godotenv.Load()

	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbUser := getEnv("DB_USER", "postgres")
	dbPassword := getEnv("DB_PASSWORD", "postgres")
	dbName := getEnv("DB_NAME", "andhara_db")

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		dbUser, dbPassword, dbHost, dbPort, dbName)

	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}
	defer pool.Close()

	fmt.Println()
	fmt.Println("Resetting database...")

	ctx := context.Background()

	// Children before parents, to satisfy the foreign keys.
	statements := []string{
		"DELETE FROM customer_service",
		"DELETE FROM delivery",
		"DELETE FROM payment",
		"DELETE FROM purchase_product",
		"DELETE FROM purchase",
		"DELETE FROM branch_stock",
		"DELETE FROM product",
		"DELETE FROM cliente",
		"DELETE FROM users",
		"ALTER SEQUENCE purchase_id_purchase_seq RESTART WITH 1",
		"ALTER SEQUENCE payment_id_payment_seq RESTART WITH 1",
		"ALTER SEQUENCE delivery_id_delivery_seq RESTART WITH 1",
		"ALTER SEQUENCE customer_service_id_customer_service_seq RESTART WITH 1",
		"ALTER SEQUENCE product_product_id_seq RESTART WITH 1",
		"ALTER SEQUENCE users_id_seq RESTART WITH 1",
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			log.Fatalf("Failed: %s: %v\n", stmt, err)
		}
	}

	fmt.Println("Database reset complete.")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
