package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	mode := flag.String("mode", "up", "migration mode: up or down")
	dir := flag.String("dir", "migrations", "migrations directory")
	flag.Parse()

	m, err := migrate.New("file://"+*dir, databaseURL())
	if err != nil {
		log.Fatalf("failed to init migrations: %v", err)
	}
	defer m.Close()

	switch *mode {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-1)
	default:
		log.Fatalf("unknown mode: %s (use 'up' or 'down')", *mode)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Println("nothing to migrate")
		return
	}
	if err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	log.Println("migrations applied")
}

func databaseURL() string {
	if url := os.Getenv("DB_URL"); url != "" {
		return url
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
	)
}
