package db

import (
	"fmt"
	"log"
	"os"

	"campus_equipment_lending/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate models: ", err)
	}
	log.Println("Database connected")
	return DB
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Admin{},
		&models.Borrower{},
		&models.Equipment{},
		&models.Request{},
		&models.EquipmentHistory{},
		&models.Notification{},
		&models.ActivityLog{},
	); err != nil {
		return err
	}

	// 同一设备最多一条 approved 请求
	if err := db.Exec(fmt.Sprintf(`
	  CREATE UNIQUE INDEX IF NOT EXISTS %s_one_approved_per_equipment
	  ON %s (equipment_id)
	  WHERE status = 'approved';
	`, models.RequestTable, models.RequestTable)).Error; err != nil {
		return err
	}

	// 未读通知查询更快
	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_unread_user_ts_desc
	  ON %s (user_id, timestamp DESC)
	  WHERE read = FALSE;
	`, models.NotificationTable, models.NotificationTable)).Error; err != nil {
		return err
	}

	return nil
}
