package repository

import (
	"context"

	"github.com/kleenkanteen/cityflow/internal/entity"
	"gorm.io/gorm"
)

type ComplaintRepository struct {
	db *gorm.DB
}

func NewComplaintRepository(db *gorm.DB) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

func (r *ComplaintRepository) Create(ctx context.Context, complaint *entity.Complaint) error {
	return r.db.WithContext(ctx).Create(complaint).Error
}

func (r *ComplaintRepository) GetByID(ctx context.Context, id string) (*entity.Complaint, error) {
	var complaint entity.Complaint
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&complaint).Error; err != nil {
		return nil, err
	}
	return &complaint, nil
}

func (r *ComplaintRepository) Update(ctx context.Context, complaint *entity.Complaint) error {
	return r.db.WithContext(ctx).Save(complaint).Error
}

func (r *ComplaintRepository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Complaint{})
	return res.RowsAffected, res.Error
}

func (r *ComplaintRepository) List(ctx context.Context, status string) ([]entity.Complaint, error) {
	query := r.db.WithContext(ctx).Model(&entity.Complaint{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var complaints []entity.Complaint
	err := query.Order("created_at DESC").Find(&complaints).Error
	return complaints, err
}
