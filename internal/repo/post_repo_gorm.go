package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"batdongsan-api/internal/domain"
)

type PostRepo struct{ db *gorm.DB }

func NewPostRepo(db *gorm.DB) *PostRepo { return &PostRepo{db: db} }

func (r *PostRepo) Create(ctx context.Context, p *domain.Post) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PostRepo) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	var p domain.Post
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *PostRepo) List(ctx context.Context, offset, limit int, query string) ([]domain.Post, int64, error) {
	tx := r.db.WithContext(ctx).Model(&domain.Post{})
	if s := strings.TrimSpace(query); s != "" {
		like := "%" + s + "%"
		tx = tx.Where("title LIKE ? OR address LIKE ? OR description LIKE ?", like, like, like)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var posts []domain.Post
	// VIP listings float to the top of every page.
	if err := tx.Order("vip DESC, created_at DESC").Offset(offset).Limit(limit).Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *PostRepo) ByProvince(ctx context.Context, province string) ([]domain.Post, error) {
	posts := []domain.Post{}
	err := r.db.WithContext(ctx).
		Where("province = ?", province).
		Order("vip DESC, created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *PostRepo) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&domain.Post{}).
		Where("id = ?", id).Updates(fields).Error
}

func (r *PostRepo) SoftDelete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Post{})
	return res.RowsAffected, res.Error
}
