package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const (
	ContextUserID   = "userID"
	ContextUsername = "username"
)

var (
	errMissingToken = errors.New("请求未包含授权令牌")
	errTokenFormat  = errors.New("授权令牌格式不正确")
	errInvalidToken = errors.New("无效的授权令牌")
)

// parseToken 从 "Authorization: Bearer [token]" 里解析出 user_id 和 username
func parseToken(authHeader string, secret []byte) (uint64, string, error) {
	if authHeader == "" {
		return 0, "", errMissingToken
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, "", errTokenFormat
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		// 确保签名方法是对称加密族
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("非预期的签名方法")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, "", errInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", errInvalidToken
	}
	// MapClaims 里的数字都会被解析成 float64
	rawID, ok := claims["user_id"].(float64)
	if !ok || rawID <= 0 {
		return 0, "", errInvalidToken
	}
	username, _ := claims["username"].(string)
	return uint64(rawID), username, nil
}

// AuthMiddleware 必须登录，userID 以 uint64 放进 context
func AuthMiddleware(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		userID, username, err := parseToken(c.GetHeader("Authorization"), key)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.Set(ContextUserID, userID)
		c.Set(ContextUsername, username)
		c.Next()
	}
}

// OptionalAuthMiddleware 带了合法令牌就解析，没带或者无效都按匿名用户放行
func OptionalAuthMiddleware(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		userID, username, err := parseToken(c.GetHeader("Authorization"), key)
		if err == nil {
			c.Set(ContextUserID, userID)
			c.Set(ContextUsername, username)
		}
		c.Next()
	}
}

// UserID 匿名时返回 0
func UserID(c *gin.Context) uint64 {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0
	}
	id, _ := v.(uint64)
	return id
}
