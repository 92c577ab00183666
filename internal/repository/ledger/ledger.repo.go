package ledger

import (
	"context"
	"errors"
	"pos-terminal/internal/common/models"
	database "pos-terminal/internal/pkg/db"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("ledger record not found")

type IRepository interface {
	CreateHandoff(ctx context.Context, h *models.PaymentHandoff) error
	FindHandoffByOrderID(ctx context.Context, orderID string) (*models.PaymentHandoff, error)
	MarkHandoffPaid(ctx context.Context, orderID string, paidAt time.Time) error

	RecordOrphan(ctx context.Context, o *models.OrphanedOrder) error
	ListOrphans(ctx context.Context, includeResolved bool) ([]models.OrphanedOrder, error)
	FindOrphan(ctx context.Context, id string) (*models.OrphanedOrder, error)
	ResolveOrphan(ctx context.Context, id string, resolvedAt time.Time) error
	RecordOrphanAttempt(ctx context.Context, id, errMsg string) error
}

type Repository struct {
	db *database.Database
}

func NewRepo(db *database.Database) IRepository {
	return &Repository{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (r *Repository) CreateHandoff(ctx context.Context, h *models.PaymentHandoff) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *Repository) FindHandoffByOrderID(ctx context.Context, orderID string) (*models.PaymentHandoff, error) {
	var h models.PaymentHandoff
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&h).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &h, nil
}

func (r *Repository) MarkHandoffPaid(ctx context.Context, orderID string, paidAt time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&models.PaymentHandoff{}).
		Where("order_id = ?", orderID).
		Updates(map[string]any{"status": models.HandoffStatusPaid, "paid_at": paidAt})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) RecordOrphan(ctx context.Context, o *models.OrphanedOrder) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *Repository) ListOrphans(ctx context.Context, includeResolved bool) ([]models.OrphanedOrder, error) {
	orphans := []models.OrphanedOrder{}
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if !includeResolved {
		q = q.Where("resolved = ?", false)
	}
	if err := q.Find(&orphans).Error; err != nil {
		return nil, err
	}
	return orphans, nil
}

func (r *Repository) FindOrphan(ctx context.Context, id string) (*models.OrphanedOrder, error) {
	var o models.OrphanedOrder
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&o).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &o, nil
}

func (r *Repository) ResolveOrphan(ctx context.Context, id string, resolvedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.OrphanedOrder{}).
		Where("id = ?", id).
		Updates(map[string]any{"resolved": true, "resolved_at": resolvedAt}).Error
}

func (r *Repository) RecordOrphanAttempt(ctx context.Context, id, errMsg string) error {
	return r.db.WithContext(ctx).
		Model(&models.OrphanedOrder{}).
		Where("id = ?", id).
		Updates(map[string]any{"attempts": gorm.Expr("attempts + 1"), "error": errMsg}).Error
}
