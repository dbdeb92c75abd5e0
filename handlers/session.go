package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nodebucket/nodebucket/internal/config"
	"github.com/nodebucket/nodebucket/internal/employee"
	"github.com/nodebucket/nodebucket/internal/employee/service"
	"github.com/nodebucket/nodebucket/pkg/logger"
	"github.com/nodebucket/nodebucket/pkg/middleware"
	"github.com/nodebucket/nodebucket/pkg/response"
)

// SessionHandler signs employees in by setting a plain cookie holding their
// id. Nothing is signed or stored server side; any client can set the cookie
// itself, so it must not be used for authorization.
type SessionHandler struct {
	cfg config.SessionConfig
	svc service.Service
}

type loginRequest struct {
	EmployeeID string `json:"employeeId" binding:"required"`
}

func NewSessionHandler(cfg config.SessionConfig, svc service.Service) *SessionHandler {
	if cfg.CookieName == "" {
		cfg.CookieName = middleware.SessionCookie
	}
	return &SessionHandler{cfg: cfg, svc: svc}
}

// Register routes under /api/session
func (h *SessionHandler) Register(r gin.IRouter) {
	g := r.Group("/api/session")
	g.POST("", h.Login)
	g.GET("", h.Current)
	g.DELETE("", h.Logout)
}

// Login looks the employee up and sets the session cookies.
func (h *SessionHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.JSON(c, http.StatusBadRequest, gin.H{"error": "validation_error", "details": err.Error()})
		return
	}
	e, err := h.svc.FindEmployee(c.Request.Context(), req.EmployeeID)
	if err != nil {
		switch employee.KindOf(err) {
		case employee.KindValidation:
			response.JSON(c, http.StatusBadRequest, gin.H{"error": "validation_error", "details": err.Error()})
		case employee.KindNotFound:
			response.JSON(c, http.StatusNotFound, gin.H{"error": "employee_not_found", "employeeId": req.EmployeeID})
		case employee.KindStore:
			response.JSON(c, http.StatusNotImplemented, gin.H{"error": "store_error", "details": err.Error()})
		default:
			logger.Errorf("session login: %v", err)
			response.JSON(c, http.StatusInternalServerError, gin.H{"error": "server_error"})
		}
		return
	}
	maxAge := int(h.cfg.TTL.Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.CookieName, e.EmployeeID, maxAge, "/", "", h.cfg.Secure, false)
	c.SetCookie(middleware.SessionNameCookie, e.FullName(), maxAge, "/", "", h.cfg.Secure, false)
	logger.Debugf("session started for employee %s", e.EmployeeID)
	response.JSON(c, http.StatusOK, e)
}

// Current echoes the employee id carried by the session cookie.
func (h *SessionHandler) Current(c *gin.Context) {
	id, ok := middleware.SessionEmployeeID(c)
	if !ok {
		response.JSON(c, http.StatusUnauthorized, gin.H{"error": "no_session"})
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"employeeId": id})
}

// Logout clears both session cookies.
func (h *SessionHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.CookieName, "", -1, "/", "", h.cfg.Secure, false)
	c.SetCookie(middleware.SessionNameCookie, "", -1, "/", "", h.cfg.Secure, false)
	response.JSON(c, http.StatusOK, gin.H{"loggedOut": true})
}
