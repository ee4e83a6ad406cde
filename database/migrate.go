package database

import (
	"github.com/yeremiapane/pos-ledger/models"
	"github.com/yeremiapane/pos-ledger/utils"
	"gorm.io/gorm"
)

// Migrate creates the collection and change log tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Collection{}, &models.DBChange{}); err != nil {
		return err
	}

	for _, table := range []interface{}{&models.Collection{}, &models.DBChange{}} {
		if !db.Migrator().HasTable(table) {
			utils.ErrorLogger.Printf("Table for %T missing after migration", table)
			continue
		}
		utils.InfoLogger.Printf("Table verified: %T", table)
	}
	return nil
}
