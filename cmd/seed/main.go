// Command main runs the database seeder for Husq.
package main

import (
	"flag"
	"log"

	"husq/internal/config"
	"husq/internal/database"
	"husq/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numHusqs := flag.Int("husqs", 200, "Number of husqs to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:    *numUsers,
		NumHusqs:    *numHusqs,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
