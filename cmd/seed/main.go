// Command seed fills a development database with demo employers, job
// seekers, postings, applications and CVs.
package main

import (
	"context"
	"flag"
	"log"

	"jobmatch-backend/config"
	"jobmatch-backend/internal/seed"
	"jobmatch-backend/pkg/database"
	"jobmatch-backend/pkg/logger"
)

func main() {
	defaults := seed.DefaultOptions()
	employers := flag.Int("employers", defaults.Employers, "Number of employers to create")
	seekers := flag.Int("seekers", defaults.Seekers, "Number of job seekers to create")
	jobs := flag.Int("jobs", defaults.JobsPerEmployer, "Postings per employer")
	apps := flag.Int("applications", defaults.ApplicationsPerSeeker, "Applications per job seeker")
	seedValue := flag.Int64("seed", 0, "Random seed (0 uses the clock)")
	clean := flag.Bool("clean", false, "Delete existing rows before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("Refusing to seed a production database")
	}
	logger.Init(cfg.Env)

	db, err := database.NewPostgresConnection(cfg.DBUrl, database.PoolConfig{
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	ctx := context.Background()
	s := seed.NewSeeder(db, seed.Options{
		Employers:             *employers,
		Seekers:               *seekers,
		JobsPerEmployer:       *jobs,
		ApplicationsPerSeeker: *apps,
		Seed:                  *seedValue,
	})

	if *clean {
		if err := s.Clear(ctx); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	sum, err := s.Run(ctx)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Printf("Seeded %d users, %d postings, %d applications, %d CV records",
		sum.Users, sum.Jobs, sum.Applications, sum.Records)
}
