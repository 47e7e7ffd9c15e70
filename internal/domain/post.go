package domain

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Provinces is the closed set of regions a listing may belong to.
var Provinces = []string{"Kon Tum", "Gia Lai", "Đăk Lăk", "Đăk Nông", "Lâm Đồng"}

func ValidProvince(s string) bool {
	for _, p := range Provinces {
		if s == p {
			return true
		}
	}
	return false
}

// Post is a property listing. Price stays a formatted string ("1,2 tỷ"),
// it is display data, not an amount to compute with.
type Post struct {
	ID                 string                       `gorm:"primaryKey;size:36" json:"id"`
	Title              string                       `gorm:"size:255;not null" json:"title"`
	Address            string                       `gorm:"size:255;not null" json:"address"`
	Acreage            string                       `gorm:"size:64;not null" json:"acreage"`
	Length             string                       `gorm:"size:64;not null" json:"length"`
	Width              string                       `gorm:"size:64;not null" json:"width"`
	Direction          string                       `gorm:"size:64" json:"direction"`
	Legal              string                       `gorm:"size:255;not null" json:"legal"`
	Status             string                       `gorm:"size:64" json:"status"`
	Type               string                       `gorm:"size:64;not null" json:"type"`
	Description        string                       `gorm:"type:text;not null" json:"description"`
	Images             datatypes.JSONSlice[string]  `json:"images"`
	LegalImages        datatypes.JSONSlice[string]  `json:"legal_images"`
	Province           string                       `gorm:"size:32;not null;index" json:"province"`
	Price              string                       `gorm:"size:64;not null" json:"price"`
	GoogleMapLocation  string                       `gorm:"size:512;not null" json:"googleMapLocation"`
	Toilet             int                          `json:"toilet"`
	Bedroom            int                          `json:"bedroom"`
	VideoYoutube       string                       `gorm:"size:512" json:"videoYoutube"`
	VideoFacebook      string                       `gorm:"size:512" json:"videoFacebook"`
	VideoTiktok        string                       `gorm:"size:512" json:"videoTiktok"`
	ContactName        string                       `gorm:"size:128" json:"contact_name"`
	ContactPhoneNumber string                       `gorm:"size:32" json:"contact_phoneNumber"`
	Vip                bool                         `gorm:"not null;default:false" json:"vip"`
	IsSoldOut          bool                         `gorm:"not null;default:false" json:"isSoldOut"`
	CreatedByID        string                       `gorm:"size:36;index" json:"createdBy"`
	CreatedAt          time.Time                    `json:"createdAt"`
	UpdatedAt          time.Time                    `json:"updatedAt"`
	DeletedAt          gorm.DeletedAt               `gorm:"index" json:"-"`
}

func (Post) TableName() string { return "posts" }

type PostRepository interface {
	Create(ctx context.Context, p *Post) error
	FindByID(ctx context.Context, id string) (*Post, error)
	List(ctx context.Context, offset, limit int, query string) ([]Post, int64, error)
	ByProvince(ctx context.Context, province string) ([]Post, error)
	UpdateFields(ctx context.Context, id string, fields map[string]any) error
	SoftDelete(ctx context.Context, id string) (int64, error)
}
