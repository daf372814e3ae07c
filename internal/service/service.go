package service

import (
	"errors"

	"github.com/kleenkanteen/cityflow/internal/config"
	"github.com/kleenkanteen/cityflow/internal/mail"
	"github.com/kleenkanteen/cityflow/internal/repository"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrInvalidState is returned when an operation is not allowed in the
// entity's current status (e.g. adding line items to a submitted order).
var ErrInvalidState = errors.New("invalid state")

// Services CityFlow服务集合
type Services struct {
	Auth      *AuthService
	Supplier  *SupplierService
	Part      *PartService
	Order     *OrderService
	Asset     *AssetService
	Inventory *InventoryService
	Complaint *ComplaintService
	Dashboard *DashboardService
}

// NewServices 创建服务集合
func NewServices(repos *repository.Repositories, db *gorm.DB, rdb *redis.Client, mailClient *mail.Client, minioClient *minio.Client, cfg *config.Config, logger *zap.Logger) *Services {
	return &Services{
		Auth:      NewAuthService(repos.User, rdb, cfg),
		Supplier:  NewSupplierService(repos.Supplier),
		Part:      NewPartService(repos.Part, repos.Supplier),
		Order:     NewOrderService(repos.Order, repos.Part, repos.Supplier),
		Asset:     NewAssetService(repos.Asset),
		Inventory: NewInventoryService(repos.Inventory, mailClient, logger),
		Complaint: NewComplaintService(repos.Complaint, minioClient, cfg.MinIO.Bucket),
		Dashboard: NewDashboardService(db),
	}
}
