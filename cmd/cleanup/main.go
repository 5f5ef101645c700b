package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/vowlink/wedding_go_server/config"
	"github.com/vowlink/wedding_go_server/internal/database"
	"github.com/vowlink/wedding_go_server/internal/repository"
	"github.com/vowlink/wedding_go_server/internal/service"
)

var dryRun = flag.Bool("dry-run", false, "Only report expired subscriptions, don't clear them")

// 一次性清理过期订阅，server 内置的定时任务挂掉时可以手动补跑
func main() {
	flag.Parse()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}

	listingRepo := repository.NewListingRepository(db)
	now := time.Now()

	if *dryRun {
		expired, err := listingRepo.ListExpiredSubscriptions(now)
		if err != nil {
			log.Fatalf("Failed to list expired subscriptions: %v", err)
		}
		for _, listing := range expired {
			log.Printf("Would clear: listing %d (%s), plan %s expired at %s",
				listing.ID, listing.BusinessName, listing.SubscriptionPlan,
				listing.SubscriptionEndDate.Format(time.RFC3339))
		}
		log.Printf("Dry run complete, %d expired subscriptions found", len(expired))
		return
	}

	cleared, err := service.SweepExpiredSubscriptions(listingRepo, now)
	if err != nil {
		log.Fatalf("Sweep failed: %v", err)
	}
	log.Printf("Cleanup complete, cleared %d expired subscriptions", cleared)
}
