package chat

import (
	"github.com/gin-gonic/gin"

	chatengine "github.com/sunrisemc/booking-api/internal/chat"
	"github.com/sunrisemc/booking-api/internal/middleware"
	"github.com/sunrisemc/booking-api/pkg/errors"
	"github.com/sunrisemc/booking-api/pkg/httputil"
)

type Handler struct {
	engine *chatengine.Engine
}

func NewHandler(engine *chatengine.Engine) *Handler {
	return &Handler{engine: engine}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/chat/message", h.Message)
}

type messageRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// Message feeds one patient utterance to the assistant. An empty
// session_id starts a new conversation.
func (h *Handler) Message(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	userID := middleware.UserIDFromContext(c)
	reply, err := h.engine.Handle(c.Request.Context(), req.SessionID, userID, req.Message)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, reply)
}
