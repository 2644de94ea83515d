package services

import (
	"testing"

	"travel-app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchFixture() []models.Listing {
	return []models.Listing{
		{ID: 1, Title: "Villa view đồi thông", Location: "Đà Lạt", Description: "Yên tĩnh, gần hồ", Amenities: models.Amenities{"wifi", "bếp"}},
		{ID: 2, Title: "Beach house", Location: "Nha Trang", Description: "Steps from the sea", Amenities: models.Amenities{"pool", "wifi"}},
		{ID: 3, Title: "Old quarter loft", Location: "Hà Nội", Description: "Near the lake", Amenities: models.Amenities{"parking"}},
	}
}

func TestNormalizeInput(t *testing.T) {
	assert.Equal(t, "da lat", normalizeInput("  Đà Lạt "))
	assert.Equal(t, "ha noi", normalizeInput("HÀ NỘI"))
}

func TestCalculateSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, calculateSimilarity("", ""))
	assert.Equal(t, 1.0, calculateSimilarity("abc", "abc"))
	// thay thế tính chi phí 2
	assert.InDelta(t, 0.5, calculateSimilarity("pool", "poll"), 0.0001)
	assert.Less(t, calculateSimilarity("hanoi", "beach"), minSimilarity)
}

func TestSearchListings_AccentInsensitiveLocation(t *testing.T) {
	results := SearchListings("da lat", searchFixture(), 10)
	require.NotEmpty(t, results)
	assert.Equal(t, uint(1), results[0].Listing.ID)
	assert.GreaterOrEqual(t, results[0].Score, locationScore)
}

func TestSearchListings_AmenityMatch(t *testing.T) {
	results := SearchListings("pool", searchFixture(), 10)
	require.Len(t, results, 1)
	assert.Equal(t, uint(2), results[0].Listing.ID)
}

func TestSearchListings_OrderAndLimit(t *testing.T) {
	results := SearchListings("wifi", searchFixture(), 10)
	require.Len(t, results, 2)
	// cùng điểm thì xếp theo ID tăng dần
	assert.Equal(t, results[0].Score, results[1].Score)
	assert.Equal(t, uint(1), results[0].Listing.ID)
	assert.Equal(t, uint(2), results[1].Listing.ID)

	limited := SearchListings("wifi", searchFixture(), 1)
	assert.Len(t, limited, 1)
}

func TestSearchListings_EmptyInputs(t *testing.T) {
	assert.Empty(t, SearchListings("   ", searchFixture(), 10))
	assert.Empty(t, SearchListings("da lat", nil, 10))
	assert.Empty(t, SearchListings("zzzzqqq", searchFixture(), 10))
}
