package services

import (
	"context"
	"strings"

	"travel-app/dto"
	apperrors "travel-app/errors"
	"travel-app/models"
	"travel-app/services/logger"
	"travel-app/services/notification"
	"travel-app/validator"

	"gorm.io/datatypes"
)

type BookingService struct {
	bookings BookingStore
	listings ListingStore
	users    UserStore
	sender   notification.Sender
	log      logger.Logger
}

func NewBookingService(bookings BookingStore, listings ListingStore, users UserStore, sender notification.Sender, log logger.Logger) *BookingService {
	return &BookingService{bookings: bookings, listings: listings, users: users, sender: sender, log: log}
}

// List trả về booking của user đang đăng nhập
func (s *BookingService) List(ctx context.Context, actorID uint, page, limit int) ([]models.Booking, int64, error) {
	return s.bookings.List(ctx, actorID, page, limit)
}

// Create tạo booking cho user đang đăng nhập rồi gửi email xác nhận (không chờ)
func (s *BookingService) Create(ctx context.Context, actorID uint, req dto.CreateBookingRequest) (*models.Booking, error) {
	listing, err := s.listings.GetByID(ctx, req.ListingID)
	if err != nil {
		return nil, err
	}

	start, err := validator.ParseDate("start_date", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := validator.ParseDate("end_date", req.EndDate)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		ListingID: listing.ID,
		UserID:    actorID,
		StartDate: datatypes.Date(start),
		EndDate:   datatypes.Date(end),
	}
	if err := booking.ValidateDates(); err != nil {
		return nil, err
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.notify(ctx, booking, listing)
	return booking, nil
}

func (s *BookingService) notify(ctx context.Context, booking *models.Booking, listing *models.Listing) {
	if s.sender == nil {
		return
	}
	user, err := s.users.GetByID(ctx, booking.UserID)
	if err != nil || user.Email == "" {
		s.log.Warn("booking %d: no email for user %d, confirmation skipped", booking.ID, booking.UserID)
		return
	}
	s.sender.Send(user.Email, notification.NewBookingDetails(booking, listing))
}

func (s *BookingService) Get(ctx context.Context, actorID, id uint) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.UserID != actorID {
		return nil, apperrors.ErrForbidden
	}
	return booking, nil
}

// Update đổi ngày booking; partial = false yêu cầu đủ start_date và end_date (PUT)
func (s *BookingService) Update(ctx context.Context, actorID, id uint, req dto.UpdateBookingRequest, partial bool) (*models.Booking, error) {
	if !partial {
		if missing := req.Complete(); len(missing) > 0 {
			return nil, apperrors.NewAppError(apperrors.ErrCodeRequiredField,
				"Missing required fields: "+strings.Join(missing, ", "), nil)
		}
	}
	booking, err := s.Get(ctx, actorID, id)
	if err != nil {
		return nil, err
	}
	if req.StartDate != nil {
		start, err := validator.ParseDate("start_date", *req.StartDate)
		if err != nil {
			return nil, err
		}
		booking.StartDate = datatypes.Date(start)
	}
	if req.EndDate != nil {
		end, err := validator.ParseDate("end_date", *req.EndDate)
		if err != nil {
			return nil, err
		}
		booking.EndDate = datatypes.Date(end)
	}
	if err := booking.ValidateDates(); err != nil {
		return nil, err
	}
	booking.Listing = nil
	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) Delete(ctx context.Context, actorID, id uint) error {
	if _, err := s.Get(ctx, actorID, id); err != nil {
		return err
	}
	return s.bookings.Delete(ctx, id)
}
