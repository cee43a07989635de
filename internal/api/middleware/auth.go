package middleware

import (
    "strings"

    "github.com/gin-gonic/gin"

    "github.com/cram-school-study/pybo/internal/service"
    "github.com/cram-school-study/pybo/pkg/response"
)

const claimsKey = "auth.claims"

// Auth 登录门禁：解析 Bearer 令牌并把 current_user 放入请求上下文。
// 匿名访问受保护操作时在业务执行前就被拦下。
func Auth(authSvc service.AuthService) gin.HandlerFunc {
    return func(c *gin.Context) {
        header := c.GetHeader("Authorization")
        token, ok := strings.CutPrefix(header, "Bearer ")
        if !ok || token == "" {
            response.Unauthorized(c, "login required")
            return
        }
        claims, err := authSvc.Validate(c.Request.Context(), token)
        if err != nil {
            response.Unauthorized(c, "login required")
            return
        }
        c.Set(claimsKey, claims)
        c.Next()
    }
}

// CurrentClaims 取出门禁写入的令牌负载。
func CurrentClaims(c *gin.Context) (*service.TokenClaims, bool) {
    v, ok := c.Get(claimsKey)
    if !ok {
        return nil, false
    }
    claims, ok := v.(*service.TokenClaims)
    return claims, ok
}

// CurrentUserID 当前登录用户 ID；仅在 Auth 之后的 handler 里可用。
func CurrentUserID(c *gin.Context) (string, bool) {
    claims, ok := CurrentClaims(c)
    if !ok {
        return "", false
    }
    return claims.UserID, true
}
