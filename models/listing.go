package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

type Listing struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Title         string    `json:"title" gorm:"size:255;not null"`
	Description   string    `json:"description" gorm:"type:text"`
	PricePerNight float64   `json:"price_per_night" gorm:"type:numeric(10,2);not null;check:chk_listings_price_non_negative,price_per_night >= 0"`
	Location      string    `json:"location" gorm:"size:255;not null;index"`
	Amenities     Amenities `json:"amenities"`
	ImageURL      string    `json:"image_url" gorm:"size:500"`
	OwnerID       uint      `json:"owner_id" gorm:"not null;index"`
	Owner         *User     `json:"owner,omitempty" gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (l *Listing) ValidatePrice() error {
	if l.PricePerNight < 0 {
		return fmt.Errorf("invalid price_per_night: %.2f, must not be negative", l.PricePerNight)
	}
	return nil
}

// Amenities lưu danh sách tiện ích: text[] trên Postgres, chuỗi mảng trên MySQL
type Amenities []string

func (a Amenities) Value() (driver.Value, error) {
	return pq.StringArray(a).Value()
}

func (a *Amenities) Scan(src interface{}) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return err
	}
	*a = Amenities(arr)
	return nil
}

func (Amenities) GormDataType() string {
	return "amenities"
}

func (Amenities) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "postgres":
		return "text[]"
	default:
		return "text"
	}
}
