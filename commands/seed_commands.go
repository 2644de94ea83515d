package commands

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"travel-app/models"
	"travel-app/services"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

const (
	SeedUserCount    = 3
	SeedListingCount = 5
	SeedPassword     = "pass1234"
)

// Command định nghĩa interface cho các command
type Command interface {
	Execute(ctx context.Context) error
}

// SeedUsersCommand tạo user1..user3 nếu chưa tồn tại
type SeedUsersCommand struct {
	users services.UserStore
	out   []models.User
}

func NewSeedUsersCommand(users services.UserStore) *SeedUsersCommand {
	return &SeedUsersCommand{users: users}
}

func (c *SeedUsersCommand) Execute(ctx context.Context) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	c.out = c.out[:0]
	for i := 1; i <= SeedUserCount; i++ {
		user := models.User{
			Name:     fmt.Sprintf("user%d", i),
			Email:    fmt.Sprintf("user%d@example.com", i),
			Password: string(hash),
		}
		if err := c.users.FirstOrCreate(ctx, &user); err != nil {
			return fmt.Errorf("seed user%d: %w", i, err)
		}
		c.out = append(c.out, user)
	}
	return nil
}

func (c *SeedUsersCommand) Users() []models.User {
	return c.out
}

// SeedListingsCommand tạo listing với owner ngẫu nhiên
type SeedListingsCommand struct {
	listings services.ListingStore
	users    func() []models.User
	rnd      *rand.Rand
	out      []models.Listing
}

func NewSeedListingsCommand(listings services.ListingStore, users func() []models.User, rnd *rand.Rand) *SeedListingsCommand {
	return &SeedListingsCommand{listings: listings, users: users, rnd: rnd}
}

func (c *SeedListingsCommand) Execute(ctx context.Context) error {
	users := c.users()
	if len(users) == 0 {
		return fmt.Errorf("seed listings: no users")
	}
	c.out = c.out[:0]
	for i := 1; i <= SeedListingCount; i++ {
		listing := models.Listing{
			Title:         fmt.Sprintf("Listing %d", i),
			Description:   "Beautiful place.",
			PricePerNight: float64(100 + c.rnd.Intn(201)),
			Location:      fmt.Sprintf("City %d", i),
			Amenities:     models.Amenities{"wifi"},
			OwnerID:       users[c.rnd.Intn(len(users))].ID,
		}
		if err := c.listings.Create(ctx, &listing); err != nil {
			return fmt.Errorf("seed listing %d: %w", i, err)
		}
		c.out = append(c.out, listing)
	}
	return nil
}

func (c *SeedListingsCommand) Listings() []models.Listing {
	return c.out
}

// SeedBookingsCommand tạo một booking cho mỗi listing, bắt đầu từ hôm nay, 1-5 đêm
type SeedBookingsCommand struct {
	bookings services.BookingStore
	users    func() []models.User
	listings func() []models.Listing
	rnd      *rand.Rand
	now      func() time.Time
}

func NewSeedBookingsCommand(bookings services.BookingStore, users func() []models.User, listings func() []models.Listing, rnd *rand.Rand) *SeedBookingsCommand {
	return &SeedBookingsCommand{bookings: bookings, users: users, listings: listings, rnd: rnd, now: time.Now}
}

func (c *SeedBookingsCommand) Execute(ctx context.Context) error {
	users := c.users()
	if len(users) == 0 {
		return fmt.Errorf("seed bookings: no users")
	}
	now := c.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for _, listing := range c.listings() {
		booking := models.Booking{
			ListingID: listing.ID,
			UserID:    users[c.rnd.Intn(len(users))].ID,
			StartDate: datatypes.Date(today),
			EndDate:   datatypes.Date(today.AddDate(0, 0, 1+c.rnd.Intn(5))),
		}
		if err := c.bookings.Create(ctx, &booking); err != nil {
			return fmt.Errorf("seed booking for listing %d: %w", listing.ID, err)
		}
	}
	return nil
}

// SeedCommand chạy lần lượt các command seed rồi in token cho từng user
type SeedCommand struct {
	users  *SeedUsersCommand
	steps  []Command
	tokens *services.TokenService
	out    io.Writer
}

type SeedStores struct {
	Users    services.UserStore
	Listings services.ListingStore
	Bookings services.BookingStore
}

func NewSeedCommand(stores SeedStores, tokens *services.TokenService, out io.Writer, rnd *rand.Rand) *SeedCommand {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	users := NewSeedUsersCommand(stores.Users)
	listings := NewSeedListingsCommand(stores.Listings, users.Users, rnd)
	bookings := NewSeedBookingsCommand(stores.Bookings, users.Users, listings.Listings, rnd)
	return &SeedCommand{
		users:  users,
		steps:  []Command{users, listings, bookings},
		tokens: tokens,
		out:    out,
	}
}

func (c *SeedCommand) Execute(ctx context.Context) error {
	for _, step := range c.steps {
		if err := step.Execute(ctx); err != nil {
			return err
		}
	}
	for _, u := range c.users.Users() {
		token, err := c.tokens.GenerateToken(u.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "%s (%s): Bearer %s\n", u.Name, u.Email, token)
	}
	fmt.Fprintln(c.out, "Database seeded successfully!")
	return nil
}
