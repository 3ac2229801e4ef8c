// Command main runs the database seeder for Telanix.
package main

import (
	"flag"
	"log"

	"telanix/internal/config"
	"telanix/internal/database"
	"telanix/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	skipBcrypt := flag.Bool("skip-bcrypt", false, "Store plaintext placeholder passwords (dev only, much faster)")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d users, clean=%v\n", *numUsers, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if _, err = database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(database.DB, seed.Options{
		NumUsers:   *numUsers,
		SkipBcrypt: *skipBcrypt,
	})

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("❌ Cleanup failed: %v", err)
		}
	}

	if _, err := s.Seed(); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}
}
