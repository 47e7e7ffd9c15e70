package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"batdongsan-api/internal/core/auth"
	"batdongsan-api/internal/domain"
	"batdongsan-api/internal/service"
	mdw "batdongsan-api/internal/transport/http/middleware"
)

type registerIn struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

type loginIn struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type changePasswordIn struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

type authOut struct {
	User        *domain.User `json:"user"`
	AccessToken string       `json:"accessToken"`
}

func mountUserRoutes(root *gin.RouterGroup, userSvc *service.UserService, postSvc *service.PostService, jwter *auth.JWTer, users domain.UserRepository) {
	pub := New(root.Group("/users"))

	authedGroup := root.Group("/users")
	authedGroup.Use(mdw.LoginRequired(jwter, users))
	authed := New(authedGroup)

	Register(pub, Action[registerIn, authOut]{
		Method: http.MethodPost,
		Path:   "",
		Binder: BindJSON,
		Handler: func(c *gin.Context, in *registerIn) (authOut, error) {
			u, token, err := userSvc.Register(c.Request.Context(), service.RegisterInput{
				Name:        in.Name,
				Email:       in.Email,
				Password:    in.Password,
				PhoneNumber: in.PhoneNumber,
			})
			if err != nil {
				if errors.Is(err, service.ErrEmailTaken) {
					return authOut{}, Conflict(err.Error())
				}
				return authOut{}, Internal("register failed", err)
			}
			return authOut{User: u, AccessToken: token}, nil
		},
	})

	Register(pub, Action[loginIn, authOut]{
		Method: http.MethodPost,
		Path:   "/login",
		Binder: BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (authOut, error) {
			u, token, err := userSvc.Login(c.Request.Context(), in.Email, in.Password)
			if err != nil {
				if errors.Is(err, service.ErrInvalidCredentials) {
					return authOut{}, Unauthorized(err.Error())
				}
				return authOut{}, Internal("login failed", err)
			}
			return authOut{User: u, AccessToken: token}, nil
		},
	})

	Register(authed, Action[changePasswordIn, gin.H]{
		Method: http.MethodPut,
		Path:   "/changePassword",
		Binder: BindJSON,
		Handler: func(c *gin.Context, in *changePasswordIn) (gin.H, error) {
			uid := c.GetString(mdw.KeyUserID)
			err := userSvc.ChangePassword(c.Request.Context(), uid, in.OldPassword, in.NewPassword)
			if err != nil {
				if errors.Is(err, service.ErrWrongPassword) {
					return nil, Unauthorized(err.Error())
				}
				if errors.Is(err, service.ErrUserNotFound) {
					return nil, NotFound(err.Error())
				}
				return nil, Internal("change password failed", err)
			}
			return gin.H{"changed": true}, nil
		},
	})

	// Public-facing verification link, no guard.
	Register(pub, Action[struct{}, *domain.User]{
		Method: http.MethodGet,
		Path:   "/verify-email/:token",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.User, error) {
			u, err := userSvc.VerifyEmail(c.Request.Context(), c.Param("token"))
			if err != nil {
				if errors.Is(err, service.ErrBadVerifyToken) {
					return nil, BadRequest(err.Error())
				}
				if errors.Is(err, service.ErrUserNotFound) {
					return nil, NotFound(err.Error())
				}
				return nil, Internal("verify email failed", err)
			}
			return u, nil
		},
	})

	Register(authed, Action[struct{}, *domain.User]{
		Method: http.MethodGet,
		Path:   "/me",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.User, error) {
			u := mdw.CurrentUser(c)
			if u == nil {
				return nil, Unauthorized("unauthorized")
			}
			return u, nil
		},
	})

	Register(authed, Action[struct{}, []domain.Post]{
		Method: http.MethodGet,
		Path:   "/me/favoritePosts",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Post, error) {
			uid := c.GetString(mdw.KeyUserID)
			posts, err := postSvc.FavoritesOf(c.Request.Context(), uid)
			if err != nil {
				return nil, Internal("list favorites failed", err)
			}
			return posts, nil
		},
	})
}
