package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunrisemc/booking-api/internal/model"
	"github.com/sunrisemc/booking-api/pkg/auth"
)

func newStaffGatedRouter() (*gin.Engine, *auth.TokenService) {
	gin.SetMode(gin.TestMode)
	tokens := auth.NewTokenService("test-secret", time.Hour)
	m := NewAuthMiddleware(tokens)

	r := gin.New()
	r.GET("/clinic", m.Authenticate(), m.RequireStaff(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, tokens
}

func getClinic(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/clinic", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireStaffBlocksPatientToken(t *testing.T) {
	r, tokens := newStaffGatedRouter()

	token, _, err := tokens.GenerateToken(uuid.New(), "alice@example.com", model.RolePatient)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, getClinic(r, token).Code)
}

func TestRequireStaffAllowsStaffToken(t *testing.T) {
	r, tokens := newStaffGatedRouter()

	token, _, err := tokens.GenerateToken(uuid.New(), "clinic@example.com", model.RoleStaff)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, getClinic(r, token).Code)
}

func TestRequireStaffNeedsAuthentication(t *testing.T) {
	r, _ := newStaffGatedRouter()

	assert.Equal(t, http.StatusUnauthorized, getClinic(r, "").Code)
}
