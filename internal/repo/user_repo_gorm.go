package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"batdongsan-api/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

// active scopes every read to non-deleted accounts.
func (r *UserRepo) active(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Where("is_deleted = ?", false)
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := r.active(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &u, err
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.active(ctx).First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &u, err
}

func (r *UserRepo) List(ctx context.Context, offset, limit int, q string, withDeleted bool) ([]domain.User, int64, error) {
	tx := r.db.WithContext(ctx).Model(&domain.User{})
	if !withDeleted {
		tx = tx.Where("is_deleted = ?", false)
	}
	if s := strings.TrimSpace(q); s != "" {
		like := "%" + s + "%"
		tx = tx.Where("email LIKE ? OR name LIKE ?", like, like)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []domain.User
	if err := tx.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).Update("password_hash", hash).Error
}

func (r *UserRepo) SetEmailVerified(ctx context.Context, id, stamp string) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).Update("email_verified", stamp).Error
}

func (r *UserRepo) IncrementPostCount(ctx context.Context, id string, delta int) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).
		UpdateColumn("post_count", gorm.Expr("post_count + ?", delta)).Error
}

func (r *UserRepo) SoftDelete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ? AND is_deleted = ?", id, false).Update("is_deleted", true)
	return res.RowsAffected, res.Error
}

func (r *UserRepo) FavoritePosts(ctx context.Context, id string) ([]domain.Post, error) {
	posts := []domain.Post{}
	err := r.db.WithContext(ctx).Model(&domain.User{ID: id}).
		Association("FavoritePosts").Find(&posts)
	return posts, err
}

func (r *UserRepo) AddFavorite(ctx context.Context, userID, postID string) error {
	return r.db.WithContext(ctx).Model(&domain.User{ID: userID}).
		Association("FavoritePosts").Append(&domain.Post{ID: postID})
}

func (r *UserRepo) RemoveFavorite(ctx context.Context, userID, postID string) error {
	return r.db.WithContext(ctx).Model(&domain.User{ID: userID}).
		Association("FavoritePosts").Delete(&domain.Post{ID: postID})
}

// IsDuplicate matches unique-constraint violations across drivers without
// depending on gorm.ErrDuplicatedKey, which varies by version.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}
