package appointment

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sunrisemc/booking-api/internal/middleware"
	"github.com/sunrisemc/booking-api/internal/model"
	"github.com/sunrisemc/booking-api/internal/schedule"
	appointmentsvc "github.com/sunrisemc/booking-api/internal/service/appointment"
	"github.com/sunrisemc/booking-api/pkg/errors"
	"github.com/sunrisemc/booking-api/pkg/httputil"
)

type Handler struct {
	service *appointmentsvc.Service
}

func NewHandler(service *appointmentsvc.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	appointments := rg.Group("/appointments")
	{
		appointments.POST("/create", h.Create)
		appointments.GET("/booked-slots", h.BookedSlots)
		appointments.GET("/slots", h.TimeSlots)
		appointments.GET("/dates", h.AvailableDates)
	}
}

// RegisterProtectedRoutes wires the authenticated endpoints. The clinic-side
// listing and status routes additionally pass through the staff gate.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup, staff gin.HandlerFunc) {
	appointments := rg.Group("/appointments")
	{
		appointments.GET("/user", h.ListOwn)
		appointments.GET("/patient", h.ListForEmail)
	}

	clinic := rg.Group("/appointments", staff)
	{
		clinic.GET("", h.List)
		clinic.GET("/:id", h.Get)
		clinic.PUT("/:id/status", h.UpdateStatus)
		clinic.PUT("/:id/reschedule", h.Reschedule)
	}
}

// Create books a confirmed appointment. Guests and logged-in patients both
// use this endpoint; identity is attached when a valid token is present.
func (h *Handler) Create(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	userID := middleware.UserIDFromContext(c)
	appointment, err := h.service.Book(c.Request.Context(), &req, userID, "web")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, appointment)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid appointment ID", err))
		return
	}

	appointment, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appointment)
}

func (h *Handler) List(c *gin.Context) {
	filters := &model.AppointmentFilters{}

	if status := c.Query("status"); status != "" {
		filters.Status = model.AppointmentStatus(status)
	}
	if email := c.Query("email"); email != "" {
		filters.Email = email
	}
	if date := c.Query("start_date"); date != "" {
		start, err := time.Parse("2006-01-02", date)
		if err != nil {
			httputil.RespondWithError(c, errors.BadRequest("invalid start_date", err))
			return
		}
		filters.StartDate = start
	}
	if date := c.Query("end_date"); date != "" {
		end, err := time.Parse("2006-01-02", date)
		if err != nil {
			httputil.RespondWithError(c, errors.BadRequest("invalid end_date", err))
			return
		}
		filters.EndDate = end.AddDate(0, 0, 1)
	}

	p := &model.Pagination{
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 20),
	}
	p.Normalize(20, 100)

	appointments, total, err := h.service.List(c.Request.Context(), filters, p)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithPagination(c, appointments, p.Page, p.PageSize, total)
}

// ListOwn returns the authenticated patient's appointments.
func (h *Handler) ListOwn(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == nil {
		httputil.RespondWithError(c, errors.Unauthorized("unauthorized"))
		return
	}

	filters := &model.AppointmentFilters{
		UserID:   userID,
		Upcoming: c.Query("upcoming") == "true",
	}

	appointments, _, err := h.service.List(c.Request.Context(), filters, nil)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appointments)
}

// ListForEmail returns a patient's appointments looked up by email.
// Patients may only query their own address; staff may query any.
func (h *Handler) ListForEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		httputil.RespondWithError(c, errors.BadRequest("email is required", nil))
		return
	}
	if !middleware.IsStaff(c) && !strings.EqualFold(email, c.GetString(middleware.ContextUserEmail)) {
		httputil.RespondWithError(c, errors.Forbidden("appointments for another patient are not accessible"))
		return
	}

	appointments, err := h.service.ListForEmail(c.Request.Context(), email, c.Query("upcoming") == "true")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appointments)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid appointment ID", err))
		return
	}

	var req model.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	appointment, err := h.service.UpdateStatus(c.Request.Context(), id, &req, appointmentsvc.NoteAuthorClinic)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appointment)
}

func (h *Handler) Reschedule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid appointment ID", err))
		return
	}

	var req model.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	appointment, err := h.service.Reschedule(c.Request.Context(), id, &req, appointmentsvc.NoteAuthorClinic)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appointment)
}

// BookedSlots returns the taken slot labels for one day.
func (h *Handler) BookedSlots(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httputil.RespondWithError(c, errors.BadRequest("date is required", nil))
		return
	}

	slots, err := h.service.BookedSlots(c.Request.Context(), date)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"date": date, "booked_slots": slots})
}

// TimeSlots returns the full grid of bookable slot labels.
func (h *Handler) TimeSlots(c *gin.Context) {
	httputil.RespondWithSuccess(c, gin.H{"slots": schedule.TimeSlots()})
}

// AvailableDates returns a page of upcoming weekday dates.
func (h *Handler) AvailableDates(c *gin.Context) {
	page := queryInt(c, "page", 0)
	perPage := queryInt(c, "per_page", schedule.DatesPerPage)

	dates := schedule.PaginatedDates(page, perPage)
	keys := make([]string, 0, len(dates))
	for _, d := range dates {
		keys = append(keys, schedule.DateKey(d))
	}
	httputil.RespondWithSuccess(c, gin.H{"page": page, "dates": keys})
}

func queryInt(c *gin.Context, key string, fallback int) int {
	v := c.Query(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
