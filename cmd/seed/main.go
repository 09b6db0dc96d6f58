// Command seed fills the posts table with generated data.
package main

import (
	"context"
	"flag"
	"log"

	"postboard/internal/config"
	"postboard/internal/database"
	"postboard/internal/seed"
)

func main() {
	numPosts := flag.Int("posts", 50, "Number of posts to create")
	numDeleted := flag.Int("deleted", 0, "Number of additional soft-deleted posts")
	maxDays := flag.Int("max-days", 90, "Spread created_at over this many days")
	shouldClean := flag.Bool("clean", false, "Remove every post before seeding")
	dryRun := flag.Bool("dry-run", false, "Generate posts without writing them")
	flag.Parse()

	log.Printf("Target: %d posts, %d deleted, clean=%v, dry-run=%v", *numPosts, *numDeleted, *shouldClean, *dryRun)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	if err := database.ApplySchema(ctx, db, cfg); err != nil {
		log.Fatalf("Schema apply failed: %v", err)
	}

	s := seed.NewSeeder(db, seed.Options{DryRun: *dryRun, MaxDays: *maxDays})

	if *shouldClean && !*dryRun {
		if err := s.ClearAll(ctx); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if _, err := s.SeedPosts(ctx, *numPosts); err != nil {
		log.Fatalf("Post seeding failed: %v", err)
	}
	if *numDeleted > 0 && !*dryRun {
		if _, err := s.SeedDeleted(ctx, *numDeleted); err != nil {
			log.Fatalf("Deleted post seeding failed: %v", err)
		}
	}

	log.Println("All done.")
}
