package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const ContextSessionID = "sessionID"

// ViewSessionMiddleware 给每个客户端发一个不透明的会话ID，用来给匿名观看去重；secure 为 true 时 cookie 只走 HTTPS
func ViewSessionMiddleware(cookieName string, ttl time.Duration, secure bool) gin.HandlerFunc {
	maxAge := int(ttl / time.Second)
	return func(c *gin.Context) {
		sid, err := c.Cookie(cookieName)
		if err != nil || uuid.Validate(sid) != nil {
			sid = uuid.NewString()
		}
		// 每次都重写，滑动续期
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookieName, sid, maxAge, "/", "", secure, true)
		c.Set(ContextSessionID, sid)
		c.Next()
	}
}

func SessionID(c *gin.Context) string {
	return c.GetString(ContextSessionID)
}
