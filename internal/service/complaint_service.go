package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/kleenkanteen/cityflow/internal/entity"
	"github.com/kleenkanteen/cityflow/internal/repository"
	"github.com/minio/minio-go/v7"
	"gorm.io/gorm"
)

// ComplaintService 市民投诉服务
// Photos live in object storage; the complaint row only keeps the object key.
type ComplaintService struct {
	complaintRepo *repository.ComplaintRepository
	minioClient   *minio.Client
	bucket        string
}

func NewComplaintService(complaintRepo *repository.ComplaintRepository, minioClient *minio.Client, bucket string) *ComplaintService {
	return &ComplaintService{
		complaintRepo: complaintRepo,
		minioClient:   minioClient,
		bucket:        bucket,
	}
}

type CreateComplaintRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email" binding:"omitempty,email"`
	Description string `json:"description" binding:"required"`
	Location    string `json:"location" binding:"required"`
	ImageURL    string `json:"image_url"`
}

func (s *ComplaintService) Create(ctx context.Context, req *CreateComplaintRequest) (*entity.Complaint, error) {
	complaint := &entity.Complaint{
		Name:        req.Name,
		Email:       req.Email,
		Description: req.Description,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
		Status:      entity.ComplaintStatusPending,
	}
	if err := s.complaintRepo.Create(ctx, complaint); err != nil {
		return nil, fmt.Errorf("failed to create complaint: %w", err)
	}
	return complaint, nil
}

func (s *ComplaintService) List(ctx context.Context, status string) ([]entity.Complaint, error) {
	return s.complaintRepo.List(ctx, status)
}

type UpdateComplaintRequest struct {
	Status   string `json:"status" binding:"required,oneof=pending in_progress resolved"`
	Reviewed *bool  `json:"reviewed"`
}

func (s *ComplaintService) UpdateStatus(ctx context.Context, id string, req *UpdateComplaintRequest) (*entity.Complaint, error) {
	complaint, err := s.complaintRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	complaint.Status = req.Status
	if req.Status == entity.ComplaintStatusResolved && complaint.Resolved == nil {
		now := time.Now()
		complaint.Resolved = &now
	}
	if req.Reviewed != nil {
		complaint.Reviewed = *req.Reviewed
	}

	if err := s.complaintRepo.Update(ctx, complaint); err != nil {
		return nil, fmt.Errorf("failed to update complaint: %w", err)
	}
	return complaint, nil
}

// AttachPhoto stores a photo for the complaint and records its object key.
// A second upload replaces the key; the old object is left for bucket
// lifecycle rules to reap.
func (s *ComplaintService) AttachPhoto(ctx context.Context, id string, reader io.Reader, size int64, contentType, fileName string) (*entity.Complaint, error) {
	complaint, err := s.complaintRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.minioClient == nil {
		return nil, fmt.Errorf("photo storage not configured: %w", ErrInvalidState)
	}

	objectName := fmt.Sprintf("complaints/%s/%s%s", id, uuid.New().String(), filepath.Ext(fileName))
	_, err = s.minioClient.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store photo: %w", err)
	}

	complaint.PhotoPath = objectName
	if err := s.complaintRepo.Update(ctx, complaint); err != nil {
		return nil, fmt.Errorf("failed to update complaint: %w", err)
	}
	return complaint, nil
}

// Photo streams the complaint's stored photo. The caller closes the reader.
func (s *ComplaintService) Photo(ctx context.Context, id string) (io.ReadCloser, string, int64, error) {
	complaint, err := s.complaintRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", 0, err
	}
	if complaint.PhotoPath == "" {
		return nil, "", 0, gorm.ErrRecordNotFound
	}
	if s.minioClient == nil {
		return nil, "", 0, fmt.Errorf("photo storage not configured: %w", ErrInvalidState)
	}

	object, err := s.minioClient.GetObject(ctx, s.bucket, complaint.PhotoPath, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", 0, fmt.Errorf("failed to fetch photo: %w", err)
	}
	stat, err := object.Stat()
	if err != nil {
		object.Close()
		return nil, "", 0, fmt.Errorf("failed to stat photo: %w", err)
	}
	return object, stat.ContentType, stat.Size, nil
}

func (s *ComplaintService) Delete(ctx context.Context, id string) error {
	rows, err := s.complaintRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete complaint: %w", err)
	}
	if rows == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
