package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// Runs a single migration by name, or every *.up.sql in order when
// invoked with "up".
func main() {
	if len(os.Args) < 2 {
		log.Fatal("a migration name (or \"up\") is required.")
	}
	migrationName := os.Args[1]

	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}

	db, err := sql.Open("postgres", dbConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	basePath := filepath.Join(".", "internal", "adapters", "repository", "postgres", "migrations")

	var files []string
	if migrationName == "up" {
		files, err = allUpMigrations(basePath)
	} else {
		files, err = matchingMigrations(basePath, migrationName)
	}
	if err != nil {
		log.Fatal(err)
	}

	for _, name := range files {
		content, err := os.ReadFile(filepath.Join(basePath, name))
		if err != nil {
			log.Fatal(err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			log.Fatalf("Failed to execute %s: %v", name, err)
		}

		fmt.Printf("Applied %s\n", name)
	}
}

func allUpMigrations(basePath string) ([]string, error) {
	entries, err := os.ReadDir(basePath)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, f := range entries {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".up.sql") {
			continue
		}
		names = append(names, f.Name())
	}
	sort.Strings(names)

	if len(names) == 0 {
		return nil, fmt.Errorf("no up migrations found in %s", basePath)
	}
	return names, nil
}

func matchingMigrations(basePath string, migrationName string) ([]string, error) {
	regex, err := regexp.Compile(fmt.Sprintf(`^.*%s\.sql`, regexp.QuoteMeta(migrationName)))
	if err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}

	entries, err := os.ReadDir(basePath)
	if err != nil {
		return nil, err
	}

	for _, f := range entries {
		if f.IsDir() {
			continue
		}
		if regex.MatchString(f.Name()) {
			return []string{f.Name()}, nil
		}
	}

	return nil, fmt.Errorf("migration file not found")
}

func dbConnString() string {
	dbName := os.Getenv("POSTGRES_DB")
	user := os.Getenv("POSTGRES_USER")
	password := os.Getenv("POSTGRES_PASSWORD")
	host := os.Getenv("POSTGRES_HOST")
	port := os.Getenv("POSTGRES_PORT")
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbName)
}
