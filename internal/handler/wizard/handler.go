package wizard

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sunrisemc/booking-api/internal/booking"
	"github.com/sunrisemc/booking-api/internal/middleware"
	"github.com/sunrisemc/booking-api/internal/model"
	"github.com/sunrisemc/booking-api/pkg/errors"
	"github.com/sunrisemc/booking-api/pkg/httputil"
)

type Handler struct {
	wizard *booking.Wizard
}

func NewHandler(wizard *booking.Wizard) *Handler {
	return &Handler{wizard: wizard}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	b := rg.Group("/booking")
	{
		b.POST("/start", h.Start)
		b.GET("/:session", h.Get)
		b.PUT("/:session/personal", h.SetPersonal)
		b.PUT("/:session/category", h.SetCategory)
		b.PUT("/:session/service", h.SetService)
		b.PUT("/:session/schedule", h.SetSchedule)
		b.PUT("/:session/extras", h.SetExtras)
		b.POST("/:session/next", h.Next)
		b.POST("/:session/back", h.Back)
		b.POST("/:session/submit", h.Submit)
	}
}

func (h *Handler) Start(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	draft, err := h.wizard.Start(c.Request.Context(), userID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, draft)
}

func (h *Handler) Get(c *gin.Context) {
	draft, err := h.wizard.Get(c.Param("session"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, draft)
}

func (h *Handler) SetPersonal(c *gin.Context) {
	var req struct {
		Name    string   `json:"name" binding:"required"`
		Email   string   `json:"email" binding:"required"`
		Phone   string   `json:"phone" binding:"required"`
		Address string   `json:"address" binding:"required"`
		Weight  *float64 `json:"weight" binding:"omitempty,gt=0"`
		Height  *float64 `json:"height" binding:"omitempty,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	draft, err := h.wizard.SetPersonal(c.Request.Context(), c.Param("session"), booking.PersonalDetails{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Weight:  req.Weight,
		Height:  req.Height,
	})
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, draft)
}

func (h *Handler) SetCategory(c *gin.Context) {
	var req struct {
		CategoryID string `json:"category_id" binding:"required,uuid"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid category ID", err))
		return
	}

	draft, err := h.wizard.SetCategory(c.Request.Context(), c.Param("session"), categoryID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, draft)
}

func (h *Handler) SetService(c *gin.Context) {
	var req struct {
		ServiceID string `json:"service_id" binding:"required,uuid"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid service ID", err))
		return
	}

	draft, err := h.wizard.SetService(c.Request.Context(), c.Param("session"), serviceID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, draft)
}

func (h *Handler) SetSchedule(c *gin.Context) {
	var req struct {
		Date string `json:"date" binding:"required"`
		Slot string `json:"slot" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	draft, err := h.wizard.SetSchedule(c.Param("session"), req.Date, req.Slot)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, draft)
}

func (h *Handler) SetExtras(c *gin.Context) {
	var req struct {
		DoctorPreference string `json:"doctor_preference" binding:"omitempty,oneof=any male female"`
		Notes            string `json:"notes" binding:"max=2000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	draft, err := h.wizard.SetExtras(c.Param("session"), model.DoctorPreference(req.DoctorPreference), req.Notes)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, draft)
}

func (h *Handler) Next(c *gin.Context) {
	draft, err := h.wizard.Next(c.Param("session"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, draft)
}

func (h *Handler) Back(c *gin.Context) {
	draft, err := h.wizard.Back(c.Param("session"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, draft)
}

func (h *Handler) Submit(c *gin.Context) {
	appointment, err := h.wizard.Submit(c.Request.Context(), c.Param("session"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, appointment)
}
