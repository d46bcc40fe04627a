package main

import (
	"flag"
	"log"

	"github.com/JonasLeetTheWay/fyyur-go/internal/config"
	"github.com/JonasLeetTheWay/fyyur-go/internal/database"
)

func main() {
	seed := flag.Bool("seed", true, "insert the sample venues, artists and shows into an empty store")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Connect to database (runs migrations)
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close(db)

	if *seed {
		if err := database.SeedData(db); err != nil {
			log.Fatal("Failed to seed data:", err)
		}
	}

	log.Println("Database migration completed successfully")
}
