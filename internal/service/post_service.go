package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"batdongsan-api/internal/core/cache"
	"batdongsan-api/internal/domain"
	"batdongsan-api/pkg/utils"
)

var ErrPostNotFound = errors.New("post not found")

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	postCacheTTL = 5 * time.Minute
)

type PostService struct {
	posts domain.PostRepository
	users domain.UserRepository
	cache *cache.Cache // nil disables caching
	log   *zap.Logger
}

func NewPostService(posts domain.PostRepository, users domain.UserRepository, c *cache.Cache, log *zap.Logger) *PostService {
	return &PostService{posts: posts, users: users, cache: c, log: log}
}

func postCacheKey(id string) string { return "post:" + id }

// Create persists the listing and bumps the creating admin's postCount.
func (s *PostService) Create(ctx context.Context, creatorID string, p *domain.Post) (*domain.Post, error) {
	p.ID = utils.NewID()
	p.CreatedByID = creatorID
	if err := s.posts.Create(ctx, p); err != nil {
		return nil, err
	}
	if err := s.users.IncrementPostCount(ctx, creatorID, 1); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostService) List(ctx context.Context, page, limit int, query string) ([]domain.Post, int64, error) {
	if page <= 0 {
		page = DefaultPage
	}
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}
	return s.posts.List(ctx, (page-1)*limit, limit, query)
}

func (s *PostService) ByProvince(ctx context.Context, province string) ([]domain.Post, error) {
	return s.posts.ByProvince(ctx, province)
}

// Get serves reads through the redis cache when one is wired.
func (s *PostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	var p *domain.Post
	var err error
	if s.cache != nil {
		p, err = cache.GetOrLoadJSON(s.cache, ctx, postCacheKey(id), postCacheTTL,
			func(ctx context.Context) (*domain.Post, error) {
				return s.posts.FindByID(ctx, id)
			})
	} else {
		p, err = s.posts.FindByID(ctx, id)
	}
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPostNotFound
	}
	return p, nil
}

// Update applies only the provided fields, then rereads the row.
func (s *PostService) Update(ctx context.Context, id string, fields map[string]any) (*domain.Post, error) {
	existing, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrPostNotFound
	}
	if err := s.posts.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return s.posts.FindByID(ctx, id)
}

func (s *PostService) Delete(ctx context.Context, id string) error {
	rows, err := s.posts.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPostNotFound
	}
	s.invalidate(ctx, id)
	return nil
}

// FavoritesOf resolves a user's favoritePostList to full listings.
func (s *PostService) FavoritesOf(ctx context.Context, userID string) ([]domain.Post, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return s.users.FavoritePosts(ctx, userID)
}

func (s *PostService) AddFavorite(ctx context.Context, userID, postID string) error {
	p, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrPostNotFound
	}
	return s.users.AddFavorite(ctx, userID, postID)
}

func (s *PostService) RemoveFavorite(ctx context.Context, userID, postID string) error {
	return s.users.RemoveFavorite(ctx, userID, postID)
}

func (s *PostService) invalidate(ctx context.Context, id string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, postCacheKey(id))
	}
}
