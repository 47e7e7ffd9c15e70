package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"batdongsan-api/internal/core/cache"
	"batdongsan-api/internal/domain"
	"batdongsan-api/internal/repo"
	"batdongsan-api/internal/testutil"
	"batdongsan-api/pkg/utils"
)

func newPostService(t *testing.T, c *cache.Cache) (*PostService, *repo.UserRepo, *domain.User) {
	t.Helper()
	db := testutil.OpenDB(t)
	users := repo.NewUserRepo(db)
	posts := repo.NewPostRepo(db)

	admin := &domain.User{
		ID: utils.NewID(), Name: "Quan Tri", Email: "admin@example.com",
		PasswordHash: utils.HashPassword("pw"), Role: domain.RoleAdmin,
	}
	require.NoError(t, users.Create(context.Background(), admin))

	return NewPostService(posts, users, c, zap.NewNop()), users, admin
}

func listing(province string) *domain.Post {
	return &domain.Post{
		Title: "Đất nền trung tâm", Address: "123 Trần Phú", Acreage: "120",
		Length: "12", Width: "10", Legal: "Sổ đỏ", Type: "Đất nền",
		Description: "Gần chợ, đường nhựa", Images: []string{"https://img.example/1.jpg"},
		Province: province, Price: "1,2 tỷ", GoogleMapLocation: "https://maps.example/x",
	}
}

func TestCreateIncrementsPostCount(t *testing.T) {
	svc, users, admin := newPostService(t, nil)
	ctx := context.Background()

	p, err := svc.Create(ctx, admin.ID, listing("Gia Lai"))
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, admin.ID, p.CreatedByID)

	u, err := users.FindByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, u.PostCount)
}

func TestGetMissing(t *testing.T) {
	svc, _, _ := newPostService(t, nil)
	_, err := svc.Get(context.Background(), utils.NewID())
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestUpdatePartial(t *testing.T) {
	svc, _, admin := newPostService(t, nil)
	ctx := context.Background()

	p, err := svc.Create(ctx, admin.ID, listing("Gia Lai"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, p.ID, map[string]any{"title": "Đã hạ giá"})
	require.NoError(t, err)
	assert.Equal(t, "Đã hạ giá", updated.Title)
	// Untouched fields survive a partial update.
	assert.Equal(t, "1,2 tỷ", updated.Price)
	assert.Equal(t, "Gia Lai", updated.Province)
}

func TestUpdateMissing(t *testing.T) {
	svc, _, _ := newPostService(t, nil)
	_, err := svc.Update(context.Background(), utils.NewID(), map[string]any{"title": "x"})
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestDelete(t *testing.T) {
	svc, _, admin := newPostService(t, nil)
	ctx := context.Background()

	p, err := svc.Create(ctx, admin.ID, listing("Kon Tum"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, p.ID))
	_, err = svc.Get(ctx, p.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, p.ID), ErrPostNotFound)
}

func TestByProvinceExactMatch(t *testing.T) {
	svc, _, admin := newPostService(t, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, admin.ID, listing("Gia Lai"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, admin.ID, listing("Gia Lai"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, admin.ID, listing("Đăk Lăk"))
	require.NoError(t, err)

	got, err := svc.ByProvince(ctx, "Gia Lai")
	require.NoError(t, err)
	assert.Len(t, got, 2)
	for _, p := range got {
		assert.Equal(t, "Gia Lai", p.Province)
	}

	none, err := svc.ByProvince(ctx, "Lâm Đồng")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListPagination(t *testing.T) {
	svc, _, admin := newPostService(t, nil)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		_, err := svc.Create(ctx, admin.ID, listing("Kon Tum"))
		require.NoError(t, err)
	}

	items, total, err := svc.List(ctx, 0, 0, "") // defaults apply
	require.NoError(t, err)
	assert.EqualValues(t, 12, total)
	assert.Len(t, items, DefaultLimit)

	rest, _, err := svc.List(ctx, 2, DefaultLimit, "")
	require.NoError(t, err)
	assert.Len(t, rest, 2)
}

func TestListQueryFilter(t *testing.T) {
	svc, _, admin := newPostService(t, nil)
	ctx := context.Background()

	p := listing("Gia Lai")
	p.Title = "Biệt thự ven hồ"
	_, err := svc.Create(ctx, admin.ID, p)
	require.NoError(t, err)
	_, err = svc.Create(ctx, admin.ID, listing("Gia Lai"))
	require.NoError(t, err)

	items, total, err := svc.List(ctx, 1, 10, "Biệt thự")
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "Biệt thự ven hồ", items[0].Title)
}

func TestFavorites(t *testing.T) {
	svc, users, admin := newPostService(t, nil)
	ctx := context.Background()

	client := &domain.User{
		ID: utils.NewID(), Name: "Khach", Email: "client@example.com",
		PasswordHash: utils.HashPassword("pw"), Role: domain.RoleClient,
	}
	require.NoError(t, users.Create(ctx, client))

	p, err := svc.Create(ctx, admin.ID, listing("Đăk Nông"))
	require.NoError(t, err)

	require.NoError(t, svc.AddFavorite(ctx, client.ID, p.ID))
	favs, err := svc.FavoritesOf(ctx, client.ID)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, p.ID, favs[0].ID)

	require.NoError(t, svc.RemoveFavorite(ctx, client.ID, p.ID))
	favs, err = svc.FavoritesOf(ctx, client.ID)
	require.NoError(t, err)
	assert.Empty(t, favs)
}

func TestAddFavoriteMissingPost(t *testing.T) {
	svc, _, admin := newPostService(t, nil)
	err := svc.AddFavorite(context.Background(), admin.ID, utils.NewID())
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestFavoritesOfUnknownUser(t *testing.T) {
	svc, _, _ := newPostService(t, nil)
	_, err := svc.FavoritesOf(context.Background(), utils.NewID())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetUsesCacheAndInvalidates(t *testing.T) {
	mr := miniredis.RunT(t)
	c := cache.New(mr.Addr(), "", 0)
	svc, _, admin := newPostService(t, c)
	ctx := context.Background()

	p, err := svc.Create(ctx, admin.ID, listing("Lâm Đồng"))
	require.NoError(t, err)

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.True(t, mr.Exists("post:"+p.ID))

	_, err = svc.Update(ctx, p.ID, map[string]any{"title": "mới"})
	require.NoError(t, err)
	assert.False(t, mr.Exists("post:"+p.ID))

	// Reload after invalidation sees the update.
	got, err = svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "mới", got.Title)

	require.NoError(t, svc.Delete(ctx, p.ID))
	assert.False(t, mr.Exists("post:"+p.ID))
}
