package middleware

import (
	"github.com/gin-gonic/gin"
)

const (
	// SessionCookie holds the signed-in employee id. It is a plain value set
	// by the login endpoint and is not verified.
	SessionCookie = "session_user"
	// SessionNameCookie holds the display name shown by the client.
	SessionNameCookie = "session_name"

	employeeIDKey = "employeeId"
)

// SessionMiddleware copies the session cookie into the request context.
// Requests without the cookie pass through untouched.
func SessionMiddleware(cookieName string) gin.HandlerFunc {
	if cookieName == "" {
		cookieName = SessionCookie
	}
	return func(c *gin.Context) {
		if v, err := c.Cookie(cookieName); err == nil && v != "" {
			c.Set(employeeIDKey, v)
		}
		c.Next()
	}
}

// SessionEmployeeID returns the employee id stored by SessionMiddleware.
func SessionEmployeeID(c *gin.Context) (string, bool) {
	id := c.GetString(employeeIDKey)
	return id, id != ""
}

// limitKey prefers the session employee id, falling back to the client IP.
func limitKey(c *gin.Context, prefix string) string {
	if id, ok := SessionEmployeeID(c); ok {
		return prefix + "emp:" + id
	}
	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	return prefix + "ip:" + ip
}
