package postgres

import (
	"log"

	"github.com/LavaJover/shvark-recovery-service/internal/config"
	"github.com/LavaJover/shvark-recovery-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.RecoveryConfig) *gorm.DB {
	dsn := cfg.RecoveryDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(
		&models.VaultModel{},
		&models.GuardianModel{},
		&models.RecoveryRequestModel{},
		&models.GuardianVoteModel{},
		&models.MultiSigRuleModel{},
		&models.ApprovalRequestModel{},
		&models.ApprovalVoteModel{},
	)

	return db
}
