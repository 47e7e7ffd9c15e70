package domain

import (
	"context"
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

// User is an account record. PasswordHash and IsDeleted never reach a
// serialized response; repository reads exclude deleted rows unless asked
// otherwise.
type User struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Name          string    `gorm:"size:128;not null" json:"name"`
	PhoneNumber   string    `gorm:"size:32" json:"phoneNumber"`
	Email         string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	EmailVerified string    `gorm:"size:64;not null;default:''" json:"emailVerified"`
	PasswordHash  string    `gorm:"size:191" json:"-"`
	Role          string    `gorm:"size:16;not null;default:client" json:"role"` // "admin" or "client"
	Avatar        string    `gorm:"size:255;not null;default:''" json:"avatar"`
	IsDeleted     bool      `gorm:"not null;default:false" json:"-"`
	PostCount     int       `gorm:"not null;default:0" json:"postCount"`
	IsGoogleAuth  bool      `gorm:"not null;default:false" json:"isGoogleAuth"`
	FavoritePosts []Post    `gorm:"many2many:user_favorite_posts" json:"favoritePostList,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, offset, limit int, q string, withDeleted bool) ([]User, int64, error)
	UpdatePassword(ctx context.Context, id, hash string) error
	SetEmailVerified(ctx context.Context, id, stamp string) error
	IncrementPostCount(ctx context.Context, id string, delta int) error
	SoftDelete(ctx context.Context, id string) (int64, error)
	FavoritePosts(ctx context.Context, id string) ([]Post, error)
	AddFavorite(ctx context.Context, userID, postID string) error
	RemoveFavorite(ctx context.Context, userID, postID string) error
}
