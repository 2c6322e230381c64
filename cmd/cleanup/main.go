package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/qs3c/travelbuddy_go_server/config"
	"github.com/qs3c/travelbuddy_go_server/internal/database"
	"github.com/qs3c/travelbuddy_go_server/internal/model"
	"github.com/qs3c/travelbuddy_go_server/internal/repository"
)

var (
	dryRun      = flag.Bool("dry-run", true, "Dry run mode, don't actually delete records")
	expireHours = flag.Int("expire-hours", 24, "Hours to keep unsettled pending payments")
)

// 定期清理长期未结算的 PENDING 支付记录。
// 结账会话被用户放弃后网关不一定回调，这些记录会一直留在 PENDING 态。
func main() {
	flag.Parse()

	log.Println("Starting payment cleanup task...")
	log.Printf("Mode: dry-run=%v, expire-hours=%d", *dryRun, *expireHours)

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
		log.Fatalf("Failed to connect to database: %v", err)
	}

	before := time.Now().Add(-time.Duration(*expireHours) * time.Hour)

	if *dryRun {
		var count int64
		err := db.Model(&model.Payment{}).
			Where("status = ? AND created_at < ?", model.PaymentStatusPending, before).
			Count(&count).Error
		if err != nil {
			log.Fatalf("Failed to count stale payments: %v", err)
		}
		log.Printf("Would delete %d stale pending payments (older than %s)", count, before.Format(time.RFC3339))
		log.Println("DRY RUN MODE - Run with -dry-run=false to actually delete")
		return
	}

	paymentRepo := repository.NewPaymentRepository(db)
	deleted, err := paymentRepo.DeleteStalePending(before)
	if err != nil {
		log.Fatalf("Failed to delete stale payments: %v", err)
	}

	log.Printf("Deleted %d stale pending payments", deleted)
	log.Println("Cleanup completed")
}
