package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"travel-app/dto"
	apperrors "travel-app/errors"
	"travel-app/models"
	"travel-app/services/logger"
)

const (
	listingCachePrefix = "listings:"
	listingCacheTTL    = 10 * time.Minute
	listingImageFolder = "listings"
)

func listingPageKey(page, limit int) string {
	return fmt.Sprintf("listings:page:%d:limit:%d", page, limit)
}

func listingDetailKey(id uint) string {
	return fmt.Sprintf("listings:detail:%d", id)
}

type cachedListingPage struct {
	Items []models.Listing `json:"items"`
	Total int64            `json:"total"`
}

type ListingService struct {
	listings ListingStore
	cache    Cache
	uploader ImageUploader
	log      logger.Logger
}

// NewListingService nhận cache và uploader có thể nil
func NewListingService(listings ListingStore, cache Cache, uploader ImageUploader, log logger.Logger) *ListingService {
	return &ListingService{listings: listings, cache: cache, uploader: uploader, log: log}
}

func (s *ListingService) List(ctx context.Context, page, limit int) ([]models.Listing, int64, error) {
	key := listingPageKey(page, limit)
	if s.cache != nil {
		var cached cachedListingPage
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.log.Warn("read listing cache %s: %v", key, err)
		} else if found {
			return cached.Items, cached.Total, nil
		}
	}

	listings, total, err := s.listings.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, cachedListingPage{Items: listings, Total: total}, listingCacheTTL); err != nil {
			s.log.Warn("write listing cache %s: %v", key, err)
		}
	}
	return listings, total, nil
}

func (s *ListingService) Get(ctx context.Context, id uint) (*models.Listing, error) {
	key := listingDetailKey(id)
	if s.cache != nil {
		var cached models.Listing
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.log.Warn("read listing cache %s: %v", key, err)
		} else if found {
			return &cached, nil
		}
	}

	listing, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, listing, listingCacheTTL); err != nil {
			s.log.Warn("write listing cache %s: %v", key, err)
		}
	}
	return listing, nil
}

// Create tạo listing với owner là người gửi request
func (s *ListingService) Create(ctx context.Context, ownerID uint, req dto.CreateListingRequest) (*models.Listing, error) {
	listing := &models.Listing{
		Title:         strings.TrimSpace(req.Title),
		Description:   req.Description,
		PricePerNight: *req.PricePerNight,
		Location:      strings.TrimSpace(req.Location),
		Amenities:     models.Amenities(req.Amenities),
		OwnerID:       ownerID,
	}
	if err := listing.ValidatePrice(); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeValidation, err.Error(), err)
	}
	if err := s.listings.Create(ctx, listing); err != nil {
		return nil, err
	}
	s.invalidate(ctx, 0)
	return s.listings.GetByID(ctx, listing.ID)
}

// Update cập nhật listing; partial = false yêu cầu đủ các trường (PUT)
func (s *ListingService) Update(ctx context.Context, actorID, id uint, req dto.UpdateListingRequest, partial bool) (*models.Listing, error) {
	if !partial {
		if missing := req.Complete(); len(missing) > 0 {
			return nil, apperrors.NewAppError(apperrors.ErrCodeRequiredField,
				"Missing required fields: "+strings.Join(missing, ", "), nil)
		}
	}
	listing, err := s.ownedListing(ctx, actorID, id)
	if err != nil {
		return nil, err
	}
	req.Apply(listing)
	if err := listing.ValidatePrice(); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeValidation, err.Error(), err)
	}
	if err := s.listings.Update(ctx, listing); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return s.listings.GetByID(ctx, id)
}

// Delete xóa listing, booking và review liên quan bị xóa theo
func (s *ListingService) Delete(ctx context.Context, actorID, id uint) error {
	if _, err := s.ownedListing(ctx, actorID, id); err != nil {
		return err
	}
	if err := s.listings.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	if s.cache != nil {
		_ = s.cache.DeletePrefix(ctx, reviewListPrefix(id))
	}
	return nil
}

func (s *ListingService) Search(ctx context.Context, query string, limit int) ([]ScoredListing, error) {
	all, err := s.listings.All(ctx)
	if err != nil {
		return nil, err
	}
	return SearchListings(query, all, limit), nil
}

// UploadImage upload ảnh đại diện cho listing, chỉ owner được phép
func (s *ListingService) UploadImage(ctx context.Context, actorID, id uint, file io.Reader) (*models.Listing, error) {
	if s.uploader == nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidOperation, "Image upload is not configured", nil)
	}
	listing, err := s.ownedListing(ctx, actorID, id)
	if err != nil {
		return nil, err
	}
	url, err := s.uploader.Upload(ctx, file, listingImageFolder)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInternal, "Upload failed", err)
	}
	listing.ImageURL = url
	if err := s.listings.Update(ctx, listing); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return listing, nil
}

func (s *ListingService) ownedListing(ctx context.Context, actorID, id uint) (*models.Listing, error) {
	listing, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.OwnerID != actorID {
		return nil, apperrors.ErrForbidden
	}
	listing.Owner = nil
	return listing, nil
}

// invalidate xóa cache danh sách và chi tiết (id = 0 thì chỉ xóa danh sách)
func (s *ListingService) invalidate(ctx context.Context, id uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePrefix(ctx, listingCachePrefix+"page:"); err != nil {
		s.log.Warn("invalidate listing pages: %v", err)
	}
	if id != 0 {
		if err := s.cache.Delete(ctx, listingDetailKey(id)); err != nil {
			s.log.Warn("invalidate listing %d: %v", id, err)
		}
	}
}
