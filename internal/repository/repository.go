package repository

import (
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

// Repositories CityFlow仓库集合
type Repositories struct {
	User      *UserRepository
	Supplier  *SupplierRepository
	Part      *PartRepository
	Order     *OrderRepository
	Asset     *AssetRepository
	Inventory *InventoryRepository
	Complaint *ComplaintRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:      NewUserRepository(db),
		Supplier:  NewSupplierRepository(db),
		Part:      NewPartRepository(db),
		Order:     NewOrderRepository(db),
		Asset:     NewAssetRepository(db),
		Inventory: NewInventoryRepository(db),
		Complaint: NewComplaintRepository(db),
	}
}

// IsNotFound reports whether err means the row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, ErrNotFound)
}
