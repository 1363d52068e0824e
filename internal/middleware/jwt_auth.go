package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ==================== JWT 配置 ====================

// JWTConfig JWT 配置
type JWTConfig struct {
	SecretKey      string        // 签名密钥
	AccessTokenTTL time.Duration // Access Token 有效期
	Issuer         string        // 签发者
}

// ==================== TokenManager 凭证服务 ====================

// TokenManager 签发与校验访问令牌
// 配置在进程启动时显式注入，不走包级单例
type TokenManager struct {
	cfg JWTConfig
}

// NewTokenManager 创建 TokenManager
func NewTokenManager(cfg JWTConfig) *TokenManager {
	return &TokenManager{cfg: cfg}
}

// UserClaims 用户声明
type UserClaims struct {
	IsStaff bool `json:"is_staff"`
	jwt.RegisteredClaims
}

// GenerateAccessToken 生成 Access Token，sub 为用户 ID
func (m *TokenManager) GenerateAccessToken(userID int64, isStaff bool) (string, error) {
	now := time.Now()
	claims := &UserClaims{
		IsStaff: isStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.cfg.Issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.cfg.AccessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.cfg.SecretKey))
}

// ParseToken 解析 Token
func (m *TokenManager) ParseToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(m.cfg.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// ==================== AuthContext ====================

// AuthContext 请求级身份能力对象
// 由认证中间件生成一次，handler 显式读取
type AuthContext struct {
	UserID  int64
	IsStaff bool
}

const contextKeyAuth = "auth_context"

// ==================== Gin 中间件 ====================

// RequireAuth 强制认证中间件
func RequireAuth(tm *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth, err := authFromHeader(tm, c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "认证失败：" + err.Error(),
			})
			c.Abort()
			return
		}

		c.Set(contextKeyAuth, auth)
		c.Next()
	}
}

// OptionalAuth 可选认证中间件（匿名购物车场景不强制登录）
func OptionalAuth(tm *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth, err := authFromHeader(tm, c); err == nil {
			c.Set(contextKeyAuth, auth)
		}
		c.Next()
	}
}

func authFromHeader(tm *TokenManager, c *gin.Context) (*AuthContext, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, errors.New("未提供认证信息")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, errors.New("认证格式错误，应为 Bearer {token}")
	}

	claims, err := tm.ParseToken(parts[1])
	if err != nil {
		return nil, errors.New("Token 无效或已过期")
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return nil, errors.New("Token 主体无效")
	}

	return &AuthContext{UserID: userID, IsStaff: claims.IsStaff}, nil
}

// ==================== 辅助函数 ====================

// GetAuthContext 从 gin Context 取身份，未认证时返回 nil
func GetAuthContext(c *gin.Context) *AuthContext {
	if v, exists := c.Get(contextKeyAuth); exists {
		return v.(*AuthContext)
	}
	return nil
}
