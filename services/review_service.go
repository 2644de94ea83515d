package services

import (
	"context"
	"fmt"
	"time"

	"travel-app/dto"
	apperrors "travel-app/errors"
	"travel-app/models"
	"travel-app/services/logger"
)

const reviewCacheTTL = 10 * time.Minute

func reviewListPrefix(listingID uint) string {
	return fmt.Sprintf("reviews:listing:%d:", listingID)
}

type cachedReviewPage struct {
	Items []models.Review `json:"items"`
	Total int64           `json:"total"`
}

type ReviewService struct {
	reviews  ReviewStore
	listings ListingStore
	cache    Cache
	log      logger.Logger
}

func NewReviewService(reviews ReviewStore, listings ListingStore, cache Cache, log logger.Logger) *ReviewService {
	return &ReviewService{reviews: reviews, listings: listings, cache: cache, log: log}
}

// List trả về review, review theo listing được cache trong Redis
func (s *ReviewService) List(ctx context.Context, listingID *uint, page, limit int) ([]models.Review, int64, error) {
	if listingID == nil {
		return s.reviews.List(ctx, nil, page, limit)
	}
	if _, err := s.listings.GetByID(ctx, *listingID); err != nil {
		return nil, 0, err
	}

	key := fmt.Sprintf("%spage:%d:limit:%d", reviewListPrefix(*listingID), page, limit)
	if s.cache != nil {
		var cached cachedReviewPage
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.log.Warn("read review cache %s: %v", key, err)
		} else if found {
			return cached.Items, cached.Total, nil
		}
	}

	reviews, total, err := s.reviews.List(ctx, listingID, page, limit)
	if err != nil {
		return nil, 0, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, cachedReviewPage{Items: reviews, Total: total}, reviewCacheTTL); err != nil {
			s.log.Warn("write review cache %s: %v", key, err)
		}
	}
	return reviews, total, nil
}

func (s *ReviewService) Get(ctx context.Context, id uint) (*models.Review, error) {
	return s.reviews.GetByID(ctx, id)
}

// Create tạo review, mỗi user chỉ được đánh giá một listing một lần
func (s *ReviewService) Create(ctx context.Context, actorID uint, req dto.CreateReviewRequest) (*models.Review, error) {
	if _, err := s.listings.GetByID(ctx, req.ListingID); err != nil {
		return nil, err
	}
	existing, err := s.reviews.GetByListingAndUser(ctx, req.ListingID, actorID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrReviewExists
	}

	review := &models.Review{
		ListingID: req.ListingID,
		UserID:    actorID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := review.ValidateRating(); err != nil {
		return nil, err
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	s.invalidate(ctx, review.ListingID)
	return review, nil
}

// Update sửa review; partial = false yêu cầu có rating (PUT)
func (s *ReviewService) Update(ctx context.Context, actorID, id uint, req dto.UpdateReviewRequest, partial bool) (*models.Review, error) {
	if !partial && req.Rating == nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeRequiredField, "Missing required fields: rating", nil)
	}
	review, err := s.owned(ctx, actorID, id)
	if err != nil {
		return nil, err
	}
	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Comment != nil || !partial {
		review.Comment = req.Comment
	}
	if err := review.ValidateRating(); err != nil {
		return nil, err
	}
	review.User = nil
	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, err
	}
	s.invalidate(ctx, review.ListingID)
	return review, nil
}

func (s *ReviewService) Delete(ctx context.Context, actorID, id uint) error {
	review, err := s.owned(ctx, actorID, id)
	if err != nil {
		return err
	}
	if err := s.reviews.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, review.ListingID)
	return nil
}

func (s *ReviewService) invalidate(ctx context.Context, listingID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePrefix(ctx, reviewListPrefix(listingID)); err != nil {
		s.log.Warn("invalidate reviews of listing %d: %v", listingID, err)
	}
}

func (s *ReviewService) owned(ctx context.Context, actorID, id uint) (*models.Review, error) {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if review.UserID != actorID {
		return nil, apperrors.ErrForbidden
	}
	return review, nil
}
