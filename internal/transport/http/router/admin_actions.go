package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"batdongsan-api/internal/domain"
	"batdongsan-api/pkg/utils"
)

// Back-office user administration.
func mountAdminActions(admin *gin.RouterGroup, users domain.UserRepository) {
	ez := New(admin)

	type listQ struct {
		Offset      int    `form:"offset"`
		Limit       int    `form:"limit"`
		Q           string `form:"q"`            // email/name substring
		WithDeleted bool   `form:"with_deleted"` // include banned accounts
	}
	type row struct {
		ID            string    `json:"id"`
		Email         string    `json:"email"`
		Name          string    `json:"name"`
		PhoneNumber   string    `json:"phoneNumber"`
		Role          string    `json:"role"`
		EmailVerified string    `json:"emailVerified"`
		PostCount     int       `json:"postCount"`
		CreatedAt     time.Time `json:"createdAt"`
	}
	type listOut struct {
		Total int64 `json:"total"`
		Items []row `json:"items"`
	}

	Register(ez, Action[listQ, listOut]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: BindQuery,
		Handler: func(c *gin.Context, in *listQ) (listOut, error) {
			if in.Limit <= 0 || in.Limit > 100 {
				in.Limit = 20
			}
			us, total, err := users.List(c.Request.Context(), in.Offset, in.Limit, in.Q, in.WithDeleted)
			if err != nil {
				return listOut{}, Internal("list users failed", err)
			}
			out := listOut{Total: total, Items: make([]row, 0, len(us))}
			for _, u := range us {
				out.Items = append(out.Items, row{
					ID: u.ID, Email: u.Email, Name: u.Name, PhoneNumber: u.PhoneNumber,
					Role: u.Role, EmailVerified: u.EmailVerified,
					PostCount: u.PostCount, CreatedAt: u.CreatedAt,
				})
			}
			return out, nil
		},
	})

	Register(ez, Action[struct{}, gin.H]{
		Method: http.MethodPost,
		Path:   "/users/:id/ban",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			if !utils.IsID(id) {
				return nil, BadRequest("Invalid userId")
			}
			rows, err := users.SoftDelete(c.Request.Context(), id)
			if err != nil {
				return nil, Internal("ban user failed", err)
			}
			if rows == 0 {
				return nil, NotFound("user not found")
			}
			return gin.H{"id": id}, nil
		},
	})
}
