package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"travel-app/dto"
	apperrors "travel-app/errors"
	"travel-app/repository/repotest"
	"travel-app/services/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUploader struct {
	url    string
	err    error
	folder string
	body   string
}

func (u *stubUploader) Upload(ctx context.Context, file io.Reader, folder string) (string, error) {
	b, _ := io.ReadAll(file)
	u.body = string(b)
	u.folder = folder
	return u.url, u.err
}

func newListingFixture() (*ListingService, *repotest.Store, *memCache, *stubUploader) {
	store := repotest.NewStore()
	cache := newMemCache()
	uploader := &stubUploader{url: "https://res.cloudinary.com/demo/listings/1.jpg"}
	return NewListingService(store.Listings(), cache, uploader, logger.Nop{}), store, cache, uploader
}

func createReq(title string) dto.CreateListingRequest {
	return dto.CreateListingRequest{
		Title:         title,
		Description:   "Cozy place",
		PricePerNight: ptr(80.5),
		Location:      "Đà Lạt",
		Amenities:     []string{"wifi"},
	}
}

func TestListingService_CreateAttachesOwner(t *testing.T) {
	svc, store, _, _ := newListingFixture()
	owner := seedUser(store.Users(), "Alice")

	listing, err := svc.Create(context.Background(), owner.ID, createReq("  Pine villa "))
	require.NoError(t, err)
	assert.Equal(t, "Pine villa", listing.Title)
	assert.Equal(t, owner.ID, listing.OwnerID)
	require.NotNil(t, listing.Owner)
	assert.Equal(t, "alice@example.com", listing.Owner.Email)
}

func TestListingService_ListUsesCache(t *testing.T) {
	svc, store, cache, _ := newListingFixture()
	owner := seedUser(store.Users(), "Alice")
	ctx := context.Background()
	_, err := svc.Create(ctx, owner.ID, createReq("One"))
	require.NoError(t, err)

	items, total, err := svc.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int64(1), total)
	assert.True(t, cache.has(listingPageKey(1, 10)))

	_, _, err = svc.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)

	// tạo mới thì cache trang bị xóa
	_, err = svc.Create(ctx, owner.ID, createReq("Two"))
	require.NoError(t, err)
	assert.False(t, cache.has(listingPageKey(1, 10)))
	_, total, err = svc.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestListingService_UpdateRules(t *testing.T) {
	svc, store, cache, _ := newListingFixture()
	owner := seedUser(store.Users(), "Alice")
	other := seedUser(store.Users(), "Bob")
	ctx := context.Background()
	listing, err := svc.Create(ctx, owner.ID, createReq("One"))
	require.NoError(t, err)
	_, err = svc.Get(ctx, listing.ID)
	require.NoError(t, err)

	_, err = svc.Update(ctx, owner.ID, listing.ID, dto.UpdateListingRequest{Title: ptr("Only title")}, false)
	assert.Equal(t, apperrors.ErrCodeRequiredField, apperrors.Code(err))
	assert.Equal(t, "Missing required fields: description, price_per_night, location", apperrors.Message(err))

	_, err = svc.Update(ctx, other.ID, listing.ID, dto.UpdateListingRequest{Title: ptr("Hijack")}, true)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = svc.Update(ctx, owner.ID, listing.ID, dto.UpdateListingRequest{PricePerNight: ptr(-1.0)}, true)
	assert.Equal(t, 400, apperrors.HTTPStatus(err))

	updated, err := svc.Update(ctx, owner.ID, listing.ID, dto.UpdateListingRequest{Title: ptr("Renamed")}, true)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "Cozy place", updated.Description)
	assert.False(t, cache.has(listingDetailKey(listing.ID)))
}

func TestListingService_DeleteCascadesAndChecksOwner(t *testing.T) {
	svc, store, _, _ := newListingFixture()
	owner := seedUser(store.Users(), "Alice")
	guest := seedUser(store.Users(), "Bob")
	ctx := context.Background()
	listing, err := svc.Create(ctx, owner.ID, createReq("One"))
	require.NoError(t, err)

	reviews := NewReviewService(store.Reviews(), store.Listings(), nil, logger.Nop{})
	review, err := reviews.Create(ctx, guest.ID, dto.CreateReviewRequest{ListingID: listing.ID, Rating: 5})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, guest.ID, listing.ID), apperrors.ErrForbidden)
	require.NoError(t, svc.Delete(ctx, owner.ID, listing.ID))

	_, err = svc.Get(ctx, listing.ID)
	assert.ErrorIs(t, err, apperrors.ErrListingNotFound)
	_, err = reviews.Get(ctx, review.ID)
	assert.ErrorIs(t, err, apperrors.ErrReviewNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, owner.ID, listing.ID), apperrors.ErrListingNotFound)
}

func TestListingService_Search(t *testing.T) {
	svc, store, _, _ := newListingFixture()
	owner := seedUser(store.Users(), "Alice")
	ctx := context.Background()
	_, err := svc.Create(ctx, owner.ID, createReq("Pine villa"))
	require.NoError(t, err)
	req := createReq("Sea view")
	req.Location = "Nha Trang"
	req.Amenities = []string{"pool"}
	_, err = svc.Create(ctx, owner.ID, req)
	require.NoError(t, err)

	results, err := svc.Search(ctx, "da lat", 10)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "Pine villa", results[0].Listing.Title)
}

func TestListingService_UploadImage(t *testing.T) {
	svc, store, _, uploader := newListingFixture()
	owner := seedUser(store.Users(), "Alice")
	ctx := context.Background()
	listing, err := svc.Create(ctx, owner.ID, createReq("One"))
	require.NoError(t, err)

	updated, err := svc.UploadImage(ctx, owner.ID, listing.ID, strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	assert.Equal(t, uploader.url, updated.ImageURL)
	assert.Equal(t, "listings", uploader.folder)
	assert.Equal(t, "jpeg-bytes", uploader.body)

	uploader.err = errors.New("cloudinary down")
	_, err = svc.UploadImage(ctx, owner.ID, listing.ID, strings.NewReader("x"))
	assert.Equal(t, 500, apperrors.HTTPStatus(err))

	noUpload := NewListingService(store.Listings(), nil, nil, logger.Nop{})
	_, err = noUpload.UploadImage(ctx, owner.ID, listing.ID, strings.NewReader("x"))
	assert.Equal(t, apperrors.ErrCodeInvalidOperation, apperrors.Code(err))
}
