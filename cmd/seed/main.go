// Command seed fills the development database with demo data.
package main

import (
	"flag"
	"log"

	"mirador/internal/config"
	"mirador/internal/database"
	"mirador/internal/seed"
)

func main() {
	users := flag.Int("users", 12, "number of users to create")
	postsPerUser := flag.Int("posts", 4, "posts per user")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Env == "production" || cfg.Env == "prod" {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	opts := seed.DefaultOptions()
	opts.Users = *users
	opts.PostsPerUser = *postsPerUser

	if err := seed.Seed(db, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
