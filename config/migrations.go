package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
	"malgeunsoft.com/launchpad/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250301_create_core_tables",
			Migrate: func(tx *gorm.DB) error {
				// gen_random_uuid needs pgcrypto on Postgres < 13
				if err := tx.Exec("CREATE EXTENSION IF NOT EXISTS pgcrypto").Error; err != nil {
					return err
				}
				return tx.AutoMigrate(&models.Quote{}, &models.Product{}, &models.Resource{},
					&models.Customer{}, &models.QuoteTemplate{})
			},
		},
		{
			ID: "20250420_add_quote_indexes",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.Exec("CREATE INDEX IF NOT EXISTS idx_quotes_status ON quotes (status)").Error; err != nil {
					return err
				}
				if err := tx.Exec("CREATE INDEX IF NOT EXISTS idx_quotes_created_by ON quotes (created_by)").Error; err != nil {
					return err
				}
				return tx.Exec("CREATE INDEX IF NOT EXISTS idx_quotes_quote_date ON quotes (quote_date)").Error
			},
		},
		{
			ID: "20250610_add_resource_stored_name",
			Migrate: func(tx *gorm.DB) error {
				return tx.Exec("ALTER TABLE resources ADD COLUMN IF NOT EXISTS stored_name varchar(500)").Error
			},
		},
	})

	return m.Migrate()
}
