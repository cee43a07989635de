package middleware

import (
    "sync"

    "github.com/gin-gonic/gin"
    "golang.org/x/time/rate"

    "github.com/cram-school-study/pybo/pkg/response"
)

// RateLimit 按客户端 IP 的令牌桶限流
func RateLimit(rps float64, burst int) gin.HandlerFunc {
    var (
        mu       sync.Mutex
        limiters = make(map[string]*rate.Limiter)
    )
    return func(c *gin.Context) {
        ip := c.ClientIP()
        mu.Lock()
        lim, ok := limiters[ip]
        if !ok {
            lim = rate.NewLimiter(rate.Limit(rps), burst)
            limiters[ip] = lim
        }
        mu.Unlock()

        if !lim.Allow() {
            response.TooManyRequests(c, "too many requests")
            return
        }
        c.Next()
    }
}
