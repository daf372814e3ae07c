package entity

import "gorm.io/gorm"

// AutoMigrate migrates all CityFlow tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// accounts
		&User{},

		// procurement
		&Supplier{},
		&Part{},
		&BatchOrder{},
		&PartOrder{},

		// field operations
		&Asset{},
		&MaintenanceLog{},

		// equipment
		&InventoryItem{},
		&EquipmentRequest{},

		// citizen intake
		&Complaint{},
	)
}
