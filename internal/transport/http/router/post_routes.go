package router

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"batdongsan-api/internal/core/auth"
	"batdongsan-api/internal/domain"
	"batdongsan-api/internal/service"
	mdw "batdongsan-api/internal/transport/http/middleware"
	"batdongsan-api/pkg/utils"
)

type createPostIn struct {
	Title              string   `json:"title" binding:"required"`
	Address            string   `json:"address" binding:"required"`
	Acreage            string   `json:"acreage" binding:"required"`
	Length             string   `json:"length" binding:"required"`
	Width              string   `json:"width" binding:"required"`
	Direction          string   `json:"direction"`
	Legal              string   `json:"legal" binding:"required"`
	Status             string   `json:"status"`
	Type               string   `json:"type" binding:"required"`
	Description        string   `json:"description" binding:"required"`
	Images             []string `json:"images" binding:"required,min=1"`
	LegalImages        []string `json:"legal_images"`
	Province           string   `json:"province" binding:"required,province"`
	Price              string   `json:"price" binding:"required"`
	GoogleMapLocation  string   `json:"googleMapLocation" binding:"required"`
	Toilet             int      `json:"toilet"`
	Bedroom            int      `json:"bedroom"`
	VideoYoutube       string   `json:"videoYoutube"`
	VideoFacebook      string   `json:"videoFacebook"`
	VideoTiktok        string   `json:"videoTiktok"`
	ContactName        string   `json:"contact_name"`
	ContactPhoneNumber string   `json:"contact_phoneNumber"`
	Vip                bool     `json:"vip"`
	IsSoldOut          bool     `json:"isSoldOut"`
}

// updatePostIn is a partial update; absent fields stay untouched.
type updatePostIn struct {
	Title              *string   `json:"title"`
	Address            *string   `json:"address"`
	Acreage            *string   `json:"acreage"`
	Length             *string   `json:"length"`
	Width              *string   `json:"width"`
	Direction          *string   `json:"direction"`
	Legal              *string   `json:"legal"`
	Status             *string   `json:"status"`
	Type               *string   `json:"type"`
	Description        *string   `json:"description"`
	Images             *[]string `json:"images"`
	LegalImages        *[]string `json:"legal_images"`
	Province           *string   `json:"province" binding:"omitempty,province"`
	Price              *string   `json:"price"`
	GoogleMapLocation  *string   `json:"googleMapLocation"`
	Toilet             *int      `json:"toilet"`
	Bedroom            *int      `json:"bedroom"`
	VideoYoutube       *string   `json:"videoYoutube"`
	VideoFacebook      *string   `json:"videoFacebook"`
	VideoTiktok        *string   `json:"videoTiktok"`
	ContactName        *string   `json:"contact_name"`
	ContactPhoneNumber *string   `json:"contact_phoneNumber"`
	Vip                *bool     `json:"vip"`
	IsSoldOut          *bool     `json:"isSoldOut"`
}

type listPostsQ struct {
	Page  int    `form:"page"`
	Limit int    `form:"limit"`
	Query string `form:"query"`
}

type postPage struct {
	Items []domain.Post `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

func mountPostRoutes(root *gin.RouterGroup, postSvc *service.PostService, jwter *auth.JWTer, users domain.UserRepository) {
	pub := New(root.Group("/posts"))

	adminGroup := root.Group("/posts")
	adminGroup.Use(mdw.AdminRequired(jwter, users))
	admin := New(adminGroup)

	loginGroup := root.Group("/posts")
	loginGroup.Use(mdw.LoginRequired(jwter, users))
	authed := New(loginGroup)

	Register(admin, Action[createPostIn, *domain.Post]{
		Method: http.MethodPost,
		Path:   "",
		Binder: BindJSON,
		Handler: func(c *gin.Context, in *createPostIn) (*domain.Post, error) {
			p := in.toPost()
			out, err := postSvc.Create(c.Request.Context(), c.GetString(mdw.KeyUserID), p)
			if err != nil {
				return nil, Internal("create post failed", err)
			}
			return out, nil
		},
	})

	Register(pub, Action[listPostsQ, postPage]{
		Method: http.MethodGet,
		Path:   "",
		Binder: BindQuery,
		Handler: func(c *gin.Context, in *listPostsQ) (postPage, error) {
			page, limit := in.Page, in.Limit
			if page <= 0 {
				page = service.DefaultPage
			}
			if limit <= 0 || limit > service.MaxLimit {
				limit = service.DefaultLimit
			}
			items, total, err := postSvc.List(c.Request.Context(), page, limit, in.Query)
			if err != nil {
				return postPage{}, Internal("list posts failed", err)
			}
			return postPage{Items: items, Total: total, Page: page, Limit: limit}, nil
		},
	})

	Register(pub, Action[struct{}, []domain.Post]{
		Method: http.MethodGet,
		Path:   "/province/:province",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Post, error) {
			province := strings.TrimSpace(c.Param("province"))
			if province == "" {
				return nil, BadRequest("Invalid province")
			}
			posts, err := postSvc.ByProvince(c.Request.Context(), province)
			if err != nil {
				return nil, Internal("filter by province failed", err)
			}
			return posts, nil
		},
	})

	Register(pub, Action[struct{}, *domain.Post]{
		Method: http.MethodGet,
		Path:   "/:id",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Post, error) {
			id := c.Param("id")
			if !utils.IsID(id) {
				return nil, BadRequest("Invalid postId")
			}
			p, err := postSvc.Get(c.Request.Context(), id)
			if err != nil {
				if errors.Is(err, service.ErrPostNotFound) {
					return nil, NotFound(err.Error())
				}
				return nil, Internal("get post failed", err)
			}
			return p, nil
		},
	})

	Register(admin, Action[updatePostIn, *domain.Post]{
		Method: http.MethodPut,
		Path:   "/:id",
		Binder: BindJSON,
		Handler: func(c *gin.Context, in *updatePostIn) (*domain.Post, error) {
			id := c.Param("id")
			if !utils.IsID(id) {
				return nil, BadRequest("Invalid postId")
			}
			p, err := postSvc.Update(c.Request.Context(), id, in.fields())
			if err != nil {
				if errors.Is(err, service.ErrPostNotFound) {
					return nil, NotFound(err.Error())
				}
				return nil, Internal("update post failed", err)
			}
			return p, nil
		},
	})

	Register(admin, Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/:id",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			if !utils.IsID(id) {
				return nil, BadRequest("Invalid postId")
			}
			if err := postSvc.Delete(c.Request.Context(), id); err != nil {
				if errors.Is(err, service.ErrPostNotFound) {
					return nil, NotFound(err.Error())
				}
				return nil, Internal("delete post failed", err)
			}
			return gin.H{"id": id}, nil
		},
	})

	// The :id here is a user id; gin needs one wildcard name per segment.
	Register(admin, Action[struct{}, []domain.Post]{
		Method: http.MethodGet,
		Path:   "/:id/favoritePosts",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Post, error) {
			userID := c.Param("id")
			if !utils.IsID(userID) {
				return nil, BadRequest("Invalid userId")
			}
			posts, err := postSvc.FavoritesOf(c.Request.Context(), userID)
			if err != nil {
				if errors.Is(err, service.ErrUserNotFound) {
					return nil, NotFound(err.Error())
				}
				return nil, Internal("list favorites failed", err)
			}
			return posts, nil
		},
	})

	Register(authed, Action[struct{}, gin.H]{
		Method: http.MethodPost,
		Path:   "/:id/favorite",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			if !utils.IsID(id) {
				return nil, BadRequest("Invalid postId")
			}
			if err := postSvc.AddFavorite(c.Request.Context(), c.GetString(mdw.KeyUserID), id); err != nil {
				if errors.Is(err, service.ErrPostNotFound) {
					return nil, NotFound(err.Error())
				}
				return nil, Internal("add favorite failed", err)
			}
			return gin.H{"id": id, "favorite": true}, nil
		},
	})

	Register(authed, Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/:id/favorite",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			if !utils.IsID(id) {
				return nil, BadRequest("Invalid postId")
			}
			if err := postSvc.RemoveFavorite(c.Request.Context(), c.GetString(mdw.KeyUserID), id); err != nil {
				return nil, Internal("remove favorite failed", err)
			}
			return gin.H{"id": id, "favorite": false}, nil
		},
	})
}

func (in *createPostIn) toPost() *domain.Post {
	return &domain.Post{
		Title:              in.Title,
		Address:            in.Address,
		Acreage:            in.Acreage,
		Length:             in.Length,
		Width:              in.Width,
		Direction:          in.Direction,
		Legal:              in.Legal,
		Status:             in.Status,
		Type:               in.Type,
		Description:        in.Description,
		Images:             toJSONSlice(in.Images),
		LegalImages:        toJSONSlice(in.LegalImages),
		Province:           in.Province,
		Price:              in.Price,
		GoogleMapLocation:  in.GoogleMapLocation,
		Toilet:             in.Toilet,
		Bedroom:            in.Bedroom,
		VideoYoutube:       in.VideoYoutube,
		VideoFacebook:      in.VideoFacebook,
		VideoTiktok:        in.VideoTiktok,
		ContactName:        in.ContactName,
		ContactPhoneNumber: in.ContactPhoneNumber,
		Vip:                in.Vip,
		IsSoldOut:          in.IsSoldOut,
	}
}

// fields maps set pointers onto column updates.
func (in *updatePostIn) fields() map[string]any {
	f := map[string]any{}
	set := func(col string, v any, isNil bool) {
		if !isNil {
			f[col] = v
		}
	}
	set("title", deref(in.Title), in.Title == nil)
	set("address", deref(in.Address), in.Address == nil)
	set("acreage", deref(in.Acreage), in.Acreage == nil)
	set("length", deref(in.Length), in.Length == nil)
	set("width", deref(in.Width), in.Width == nil)
	set("direction", deref(in.Direction), in.Direction == nil)
	set("legal", deref(in.Legal), in.Legal == nil)
	set("status", deref(in.Status), in.Status == nil)
	set("type", deref(in.Type), in.Type == nil)
	set("description", deref(in.Description), in.Description == nil)
	set("province", deref(in.Province), in.Province == nil)
	set("price", deref(in.Price), in.Price == nil)
	set("google_map_location", deref(in.GoogleMapLocation), in.GoogleMapLocation == nil)
	set("video_youtube", deref(in.VideoYoutube), in.VideoYoutube == nil)
	set("video_facebook", deref(in.VideoFacebook), in.VideoFacebook == nil)
	set("video_tiktok", deref(in.VideoTiktok), in.VideoTiktok == nil)
	set("contact_name", deref(in.ContactName), in.ContactName == nil)
	set("contact_phone_number", deref(in.ContactPhoneNumber), in.ContactPhoneNumber == nil)
	if in.Images != nil {
		f["images"] = toJSONSlice(*in.Images)
	}
	if in.LegalImages != nil {
		f["legal_images"] = toJSONSlice(*in.LegalImages)
	}
	if in.Toilet != nil {
		f["toilet"] = *in.Toilet
	}
	if in.Bedroom != nil {
		f["bedroom"] = *in.Bedroom
	}
	if in.Vip != nil {
		f["vip"] = *in.Vip
	}
	if in.IsSoldOut != nil {
		f["is_sold_out"] = *in.IsSoldOut
	}
	return f
}

func toJSONSlice(ss []string) datatypes.JSONSlice[string] {
	return datatypes.NewJSONSlice(ss)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
