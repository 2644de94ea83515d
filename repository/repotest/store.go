// Package repotest cung cấp repository lưu trong bộ nhớ cho test
package repotest

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	apperrors "travel-app/errors"
	"travel-app/models"

	"gorm.io/datatypes"
)

// Store giữ toàn bộ dữ liệu trong bộ nhớ, an toàn khi dùng đồng thời
type Store struct {
	mu       sync.Mutex
	nextID   uint
	users    map[uint]models.User
	listings map[uint]models.Listing
	bookings map[uint]models.Booking
	reviews  map[uint]models.Review
	payments map[uint]models.Payment
}

func NewStore() *Store {
	return &Store{
		users:    map[uint]models.User{},
		listings: map[uint]models.Listing{},
		bookings: map[uint]models.Booking{},
		reviews:  map[uint]models.Review{},
		payments: map[uint]models.Payment{},
	}
}

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

func (s *Store) Users() *Users       { return &Users{s} }
func (s *Store) Listings() *Listings { return &Listings{s} }
func (s *Store) Bookings() *Bookings { return &Bookings{s} }
func (s *Store) Reviews() *Reviews   { return &Reviews{s} }
func (s *Store) Payments() *Payments { return &Payments{s} }

func page[T any](items []T, p, limit int) []T {
	if p < 1 {
		p = 1
	}
	start := (p - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

type Users struct{ s *Store }

func (r *Users) GetByID(ctx context.Context, id uint) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return &u, nil
}

func (r *Users) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *Users) Create(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return apperrors.NewAppError(apperrors.ErrCodeDBDuplicate, "Duplicate record", nil)
		}
	}
	user.ID = r.s.id()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.s.users[user.ID] = *user
	return nil
}

func (r *Users) FirstOrCreate(ctx context.Context, user *models.User) error {
	if existing, err := r.GetByEmail(ctx, user.Email); err == nil {
		*user = *existing
		return nil
	}
	return r.Create(ctx, user)
}

type Listings struct{ s *Store }

func (r *Listings) sorted() []models.Listing {
	out := make([]models.Listing, 0, len(r.s.listings))
	for _, l := range r.s.listings {
		if u, ok := r.s.users[l.OwnerID]; ok {
			u := u
			l.Owner = &u
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *Listings) List(ctx context.Context, p, limit int) ([]models.Listing, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := r.sorted()
	return page(all, p, limit), int64(len(all)), nil
}

func (r *Listings) All(ctx context.Context) ([]models.Listing, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.sorted(), nil
}

func (r *Listings) GetByID(ctx context.Context, id uint) (*models.Listing, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.listings[id]
	if !ok {
		return nil, apperrors.ErrListingNotFound
	}
	if u, ok := r.s.users[l.OwnerID]; ok {
		l.Owner = &u
	}
	return &l, nil
}

func (r *Listings) Create(ctx context.Context, listing *models.Listing) error {
	if err := listing.ValidatePrice(); err != nil {
		return apperrors.NewAppError(apperrors.ErrCodeDBConstraint, "Constraint violation", err)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[listing.OwnerID]; !ok {
		return apperrors.NewAppError(apperrors.ErrCodeDBConstraint, "Constraint violation", nil)
	}
	listing.ID = r.s.id()
	listing.CreatedAt = time.Now()
	listing.UpdatedAt = listing.CreatedAt
	stored := *listing
	stored.Owner = nil
	r.s.listings[listing.ID] = stored
	return nil
}

func (r *Listings) Update(ctx context.Context, listing *models.Listing) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.listings[listing.ID]; !ok {
		return apperrors.ErrListingNotFound
	}
	listing.UpdatedAt = time.Now()
	stored := *listing
	stored.Owner = nil
	r.s.listings[listing.ID] = stored
	return nil
}

func (r *Listings) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.listings[id]; !ok {
		return apperrors.ErrListingNotFound
	}
	for bid, b := range r.s.bookings {
		if b.ListingID == id {
			delete(r.s.bookings, bid)
		}
	}
	for rid, rv := range r.s.reviews {
		if rv.ListingID == id {
			delete(r.s.reviews, rid)
		}
	}
	delete(r.s.listings, id)
	return nil
}

type Bookings struct{ s *Store }

func (r *Bookings) List(ctx context.Context, userID uint, p, limit int) ([]models.Booking, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Booking{}
	for _, b := range r.s.bookings {
		if userID == 0 || b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, p, limit), int64(len(out)), nil
}

func (r *Bookings) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, apperrors.ErrBookingNotFound
	}
	return &b, nil
}

func (r *Bookings) Create(ctx context.Context, booking *models.Booking) error {
	if err := booking.BeforeSave(nil); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.listings[booking.ListingID]; !ok {
		return apperrors.NewAppError(apperrors.ErrCodeDBConstraint, "Constraint violation", nil)
	}
	booking.ID = r.s.id()
	booking.CreatedAt = time.Now()
	stored := *booking
	stored.Listing, stored.User = nil, nil
	r.s.bookings[booking.ID] = stored
	return nil
}

func (r *Bookings) Update(ctx context.Context, booking *models.Booking) error {
	if err := booking.BeforeSave(nil); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bookings[booking.ID]; !ok {
		return apperrors.ErrBookingNotFound
	}
	stored := *booking
	stored.Listing, stored.User = nil, nil
	r.s.bookings[booking.ID] = stored
	return nil
}

func (r *Bookings) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bookings[id]; !ok {
		return apperrors.ErrBookingNotFound
	}
	delete(r.s.bookings, id)
	return nil
}

type Reviews struct{ s *Store }

func (r *Reviews) List(ctx context.Context, listingID *uint, p, limit int) ([]models.Review, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Review{}
	for _, rv := range r.s.reviews {
		if listingID == nil || rv.ListingID == *listingID {
			out = append(out, rv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return page(out, p, limit), int64(len(out)), nil
}

func (r *Reviews) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rv, ok := r.s.reviews[id]
	if !ok {
		return nil, apperrors.ErrReviewNotFound
	}
	return &rv, nil
}

func (r *Reviews) GetByListingAndUser(ctx context.Context, listingID, userID uint) (*models.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rv := range r.s.reviews {
		if rv.ListingID == listingID && rv.UserID == userID {
			rv := rv
			return &rv, nil
		}
	}
	return nil, nil
}

func (r *Reviews) Create(ctx context.Context, review *models.Review) error {
	if err := review.BeforeSave(nil); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rv := range r.s.reviews {
		if rv.ListingID == review.ListingID && rv.UserID == review.UserID {
			return apperrors.ErrReviewExists
		}
	}
	review.ID = r.s.id()
	review.CreatedAt = time.Now()
	review.UpdatedAt = review.CreatedAt
	stored := *review
	stored.Listing, stored.User = nil, nil
	r.s.reviews[review.ID] = stored
	return nil
}

func (r *Reviews) Update(ctx context.Context, review *models.Review) error {
	if err := review.BeforeSave(nil); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.reviews[review.ID]; !ok {
		return apperrors.ErrReviewNotFound
	}
	review.UpdatedAt = time.Now()
	stored := *review
	stored.Listing, stored.User = nil, nil
	r.s.reviews[review.ID] = stored
	return nil
}

func (r *Reviews) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.reviews[id]; !ok {
		return apperrors.ErrReviewNotFound
	}
	delete(r.s.reviews, id)
	return nil
}

type Payments struct{ s *Store }

func (r *Payments) Create(ctx context.Context, payment *models.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if payment.Status == "" {
		payment.Status = models.PaymentStatusPending
	}
	payment.ID = r.s.id()
	payment.CreatedAt = time.Now()
	payment.UpdatedAt = payment.CreatedAt
	r.s.payments[payment.ID] = *payment
	return nil
}

func (r *Payments) GetByID(ctx context.Context, id uint) (*models.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payments[id]
	if !ok {
		return nil, apperrors.ErrPaymentNotFound
	}
	return &p, nil
}

func (r *Payments) SetTransaction(ctx context.Context, id uint, txRef string, raw []byte) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payments[id]
	if !ok {
		return apperrors.ErrPaymentNotFound
	}
	ref := txRef
	p.TransactionID = &ref
	if len(raw) > 0 && json.Valid(raw) {
		p.GatewayResponse = datatypes.JSON(raw)
	}
	r.s.payments[id] = p
	return nil
}

func (r *Payments) TransitionStatus(ctx context.Context, id uint, to models.PaymentStatus, raw []byte) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payments[id]
	if !ok {
		return false, nil
	}
	if p.Status.IsTerminal() {
		return false, nil
	}
	if err := p.Transition(to); err != nil {
		return false, err
	}
	if len(raw) > 0 && json.Valid(raw) {
		p.GatewayResponse = datatypes.JSON(raw)
	}
	p.UpdatedAt = time.Now()
	r.s.payments[id] = p
	return true, nil
}

func (r *Payments) FailStalePending(ctx context.Context, before time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, p := range r.s.payments {
		if p.Status == models.PaymentStatusPending && !p.HasTransaction() && p.CreatedAt.Before(before) {
			p.Status = models.PaymentStatusFailed
			r.s.payments[id] = p
			n++
		}
	}
	return n, nil
}

// Backdate lùi thời điểm tạo payment, dùng để test job quét payment treo
func (r *Payments) Backdate(id uint, d time.Duration) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.payments[id]; ok {
		p.CreatedAt = p.CreatedAt.Add(-d)
		r.s.payments[id] = p
	}
}
