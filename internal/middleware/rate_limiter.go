package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// ==================== RequestRateLimiter 请求限流器 ====================

// RequestRateLimiter 按键的最小间隔限流器
// 公开的菜单接口对匿名用户开放，防止被刷
type RequestRateLimiter struct {
	locks sync.Map // key -> *lockEntry
}

// lockEntry 锁条目
type lockEntry struct {
	lastTime time.Time
	mu       sync.Mutex
}

// 全局限流器实例
var globalLimiter = &RequestRateLimiter{}

// GetLimiter 获取全局限流器
func GetLimiter() *RequestRateLimiter {
	return globalLimiter
}

// ==================== 限流检查 ====================

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool          // 是否允许
	RetryAfter time.Duration // 剩余冷却时间
}

// Check 检查是否允许执行
// key: 限流键，如 "user:42" / "anon:10.0.0.1"
// interval: 冷却间隔
func (r *RequestRateLimiter) Check(key string, interval time.Duration) CheckResult {
	// 获取或创建锁条目
	actual, _ := r.locks.LoadOrStore(key, &lockEntry{})
	entry := actual.(*lockEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(entry.lastTime)

	if elapsed < interval {
		return CheckResult{
			Allowed:    false,
			RetryAfter: interval - elapsed,
		}
	}

	// 更新最后执行时间
	entry.lastTime = now
	return CheckResult{Allowed: true}
}

// Reset 清空限流状态（测试用）
func (r *RequestRateLimiter) Reset() {
	r.locks.Range(func(key, _ interface{}) bool {
		r.locks.Delete(key)
		return true
	})
}

// ==================== Gin 中间件 ====================

// Throttle 请求节流中间件
// 已认证用户按用户限流（userInterval），匿名按来源 IP 限流（anonInterval）
func Throttle(userInterval, anonInterval time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var key string
		var interval time.Duration

		if userID := GetUserID(c); userID > 0 {
			key = fmt.Sprintf("user:%d", userID)
			interval = userInterval
		} else {
			key = "anon:" + c.ClientIP()
			interval = anonInterval
		}

		result := globalLimiter.Check(key, interval)
		if !result.Allowed {
			c.Header("Retry-After", fmt.Sprintf("%.0f", result.RetryAfter.Seconds()+1))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    429,
				"message": "请求过于频繁，请稍后再试",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
