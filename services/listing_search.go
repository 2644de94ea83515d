package services

import (
	"sort"
	"strings"
	"sync"

	"travel-app/models"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

const (
	locationScore     = 13
	titleScore        = 10
	tokenScore        = 3
	maxTokenScore     = 9
	amenityScore      = 4
	maxAmenityScore   = 12
	minSimilarity     = 0.6
	amenitySimilarity = 0.7
)

// ScoredListing là listing kèm điểm phù hợp với truy vấn
type ScoredListing struct {
	Listing models.Listing
	Score   int
}

// Hàm chuẩn hóa chuỗi: bỏ dấu, chữ thường
func normalizeInput(input string) string {
	input = strings.TrimSpace(input)
	return strings.ToLower(unidecode.Unidecode(input))
}

// Tạo đối tượng closestmatch cho danh sách từ khóa
func createMatcher(keywords []string) *closestmatch.ClosestMatch {
	return closestmatch.New(keywords, []int{2, 3})
}

// Tính độ tương đồng giữa hai chuỗi
func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/float64(maxLen)
}

// Tạo danh sách location duy nhất cho closestmatch
func prepareLocationList(listings []models.Listing) []string {
	unique := make(map[string]bool)
	for _, l := range listings {
		if v := normalizeInput(l.Location); v != "" {
			unique[v] = true
		}
	}
	out := make([]string, 0, len(unique))
	for v := range unique {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func calculateLocationScore(query string, l models.Listing, cmLocation *closestmatch.ClosestMatch) int {
	location := normalizeInput(l.Location)
	if location == "" {
		return 0
	}
	if strings.Contains(location, query) || strings.Contains(query, location) {
		return locationScore
	}
	if cmLocation != nil && cmLocation.Closest(query) == location && calculateSimilarity(query, location) >= minSimilarity {
		return locationScore
	}
	return 0
}

func calculateTitleScore(query string, l models.Listing) int {
	title := normalizeInput(l.Title)
	if title == "" {
		return 0
	}
	if strings.Contains(title, query) || calculateSimilarity(query, title) >= minSimilarity {
		return titleScore
	}
	return 0
}

func calculateTokenScore(query string, l models.Listing) int {
	words := map[string]bool{}
	for _, field := range []string{l.Title, l.Location, l.Description} {
		for _, w := range strings.Fields(normalizeInput(field)) {
			words[strings.Trim(w, ".,;:!?()")] = true
		}
	}
	score := 0
	for _, token := range strings.Fields(query) {
		if len(token) < 2 || !words[token] {
			continue
		}
		score += tokenScore
		if score >= maxTokenScore {
			return maxTokenScore
		}
	}
	return score
}

func calculateAmenityScore(query string, amenities []string) int {
	score := 0
	for _, a := range amenities {
		amenity := normalizeInput(a)
		if amenity == "" {
			continue
		}
		if strings.Contains(query, amenity) || calculateSimilarity(query, amenity) > amenitySimilarity {
			score += amenityScore
			if score >= maxAmenityScore {
				return maxAmenityScore
			}
		}
	}
	return score
}

func calculateScore(query string, l models.Listing, cmLocation *closestmatch.ClosestMatch) int {
	return calculateLocationScore(query, l, cmLocation) +
		calculateTitleScore(query, l) +
		calculateTokenScore(query, l) +
		calculateAmenityScore(query, l.Amenities)
}

// SearchListings chấm điểm song song từng listing và trả về các listing có điểm > 0,
// sắp xếp theo điểm giảm dần
func SearchListings(query string, listings []models.Listing, limit int) []ScoredListing {
	normalizedQuery := normalizeInput(query)
	if normalizedQuery == "" || len(listings) == 0 {
		return []ScoredListing{}
	}

	var cmLocation *closestmatch.ClosestMatch
	if locations := prepareLocationList(listings); len(locations) > 0 {
		cmLocation = createMatcher(locations)
	}

	scoreCh := make(chan ScoredListing, len(listings))
	var wg sync.WaitGroup
	for _, l := range listings {
		wg.Add(1)
		go func(l models.Listing) {
			defer wg.Done()
			if score := calculateScore(normalizedQuery, l, cmLocation); score > 0 {
				scoreCh <- ScoredListing{Listing: l, Score: score}
			}
		}(l)
	}
	go func() {
		wg.Wait()
		close(scoreCh)
	}()

	results := []ScoredListing{}
	for scored := range scoreCh {
		results = append(results, scored)
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Listing.ID < results[j].Listing.ID
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
