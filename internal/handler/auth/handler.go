package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/sunrisemc/booking-api/internal/booking"
	"github.com/sunrisemc/booking-api/internal/middleware"
	"github.com/sunrisemc/booking-api/internal/model"
	authsvc "github.com/sunrisemc/booking-api/internal/service/auth"
	"github.com/sunrisemc/booking-api/pkg/errors"
	"github.com/sunrisemc/booking-api/pkg/httputil"
)

type Handler struct {
	service *authsvc.Service
}

func NewHandler(service *authsvc.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)
		auth.GET("/check-email/:email", h.CheckEmail)
	}
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.GET("/user-details", h.UserDetails)
		auth.PUT("/update-user", h.UpdateUser)
	}
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	tokens, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, tokens)
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	user, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, user)
}

// CheckEmail tells the booking page whether a guest email already belongs
// to a registered account.
func (h *Handler) CheckEmail(c *gin.Context) {
	email := c.Param("email")
	if err := booking.ValidateEmail(email); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	exists, err := h.service.EmailExists(c.Request.Context(), email)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, model.EmailCheckResponse{Exists: exists})
}

func (h *Handler) UserDetails(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == nil {
		httputil.RespondWithError(c, errors.Unauthorized("unauthorized"))
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), *userID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, user)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == nil {
		httputil.RespondWithError(c, errors.Unauthorized("unauthorized"))
		return
	}

	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	user, err := h.service.UpdateUser(c.Request.Context(), *userID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, user)
}
