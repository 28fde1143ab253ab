package main

import (
	"log"
	"os"

	"rental-marketplace-be/internal/model"
	"rental-marketplace-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Step 1: Setting up extensions...")
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	models := model.All()
	log.Printf("Step 2: Running AutoMigrate for %d tables...", len(models))
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// Constraints AutoMigrate cannot express.
	log.Println("Step 3: Creating checks, triggers and views...")
	postMigrationSQL := []string{
		`DO $$ BEGIN
		   ALTER TABLE withdrawal_requests ADD CONSTRAINT chk_withdrawal_deduction
		   CHECK (deduction_amount >= 0 AND deduction_amount <= amount);
		 EXCEPTION WHEN duplicate_object THEN NULL; END $$;`,

		`DO $$ BEGIN
		   ALTER TABLE users ADD CONSTRAINT chk_wallet_balance_non_negative CHECK (wallet_balance >= 0);
		 EXCEPTION WHEN duplicate_object THEN NULL; END $$;`,

		`CREATE OR REPLACE FUNCTION set_current_timestamp_updated_at() RETURNS trigger LANGUAGE plpgsql AS $$
		DECLARE _new_value TIMESTAMP WITH TIME ZONE;
		BEGIN
		  _new_value := now();
		  IF NEW.updated_at IS DISTINCT FROM _new_value THEN NEW.updated_at = _new_value; END IF;
		  RETURN NEW;
		END; $$;`,

		`CREATE OR REPLACE VIEW landlord_payment_history AS
		 SELECT p.landlord_id, p.tenant_id, u.full_name AS tenant_name, r.title AS room_title,
		        p.amount, p.payment_method, p.status, p.transaction_id, p.paid_at, p.created_at
		 FROM payments p
		 JOIN users u ON p.tenant_id = u.id
		 JOIN rooms r ON p.room_id = r.id
		 ORDER BY p.created_at DESC;`,
	}
	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
