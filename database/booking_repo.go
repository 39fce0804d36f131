package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/studiomezzo/studio-site-backend/models"
	"gorm.io/gorm"
)

type BookingRepo struct {
	db *gorm.DB
}

func NewBookingRepo(db *gorm.DB) *BookingRepo {
	return &BookingRepo{db}
}

// Add inserts a new booking lead. Bookings carry no dedup key: submitting
// twice creates two records.
func (r *BookingRepo) Add(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

// FindAll returns all bookings, newest first
func (r *BookingRepo) FindAll(ctx context.Context) ([]*models.Booking, error) {
	var bookings []*models.Booking
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&bookings).Error
	return bookings, err
}

// Delete removes one booking by id
func (r *BookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Booking{}, "id = ?", id).Error
}

// DeleteMany removes a batch of bookings and reports how many rows went away
func (r *BookingRepo) DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Delete(&models.Booking{}, "id IN ?", ids)
	return result.RowsAffected, result.Error
}
