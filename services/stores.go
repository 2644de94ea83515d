package services

import (
	"context"
	"io"
	"time"

	"travel-app/models"
	"travel-app/services/chapa"
)

type ListingStore interface {
	List(ctx context.Context, page, limit int) ([]models.Listing, int64, error)
	All(ctx context.Context) ([]models.Listing, error)
	GetByID(ctx context.Context, id uint) (*models.Listing, error)
	Create(ctx context.Context, listing *models.Listing) error
	Update(ctx context.Context, listing *models.Listing) error
	Delete(ctx context.Context, id uint) error
}

type BookingStore interface {
	List(ctx context.Context, userID uint, page, limit int) ([]models.Booking, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Booking, error)
	Create(ctx context.Context, booking *models.Booking) error
	Update(ctx context.Context, booking *models.Booking) error
	Delete(ctx context.Context, id uint) error
}

type ReviewStore interface {
	List(ctx context.Context, listingID *uint, page, limit int) ([]models.Review, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Review, error)
	GetByListingAndUser(ctx context.Context, listingID, userID uint) (*models.Review, error)
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id uint) error
}

type PaymentStore interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, id uint) (*models.Payment, error)
	SetTransaction(ctx context.Context, id uint, txRef string, raw []byte) error
	TransitionStatus(ctx context.Context, id uint, to models.PaymentStatus, raw []byte) (bool, error)
	FailStalePending(ctx context.Context, before time.Time) (int64, error)
}

type UserStore interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	FirstOrCreate(ctx context.Context, user *models.User) error
}

// Gateway là cổng thanh toán bên ngoài
type Gateway interface {
	Initialize(ctx context.Context, req chapa.InitializeRequest) (*chapa.InitializeResponse, error)
	Verify(ctx context.Context, txRef string) (*chapa.VerifyResponse, error)
}

// Cache lưu tạm dữ liệu đọc nhiều
type Cache interface {
	Get(ctx context.Context, key string, target interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// ImageUploader upload ảnh và trả về URL công khai
type ImageUploader interface {
	Upload(ctx context.Context, file io.Reader, folder string) (string, error)
}
