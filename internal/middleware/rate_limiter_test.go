package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ==================== 限流器测试 ====================

func TestRateLimiter_Check(t *testing.T) {
	limiter := &RequestRateLimiter{}
	interval := 100 * time.Millisecond

	if r := limiter.Check("user:1", interval); !r.Allowed {
		t.Fatal("首次请求应放行")
	}

	// 冷却期内第二次被拒，并给出剩余冷却时间
	r := limiter.Check("user:1", interval)
	if r.Allowed {
		t.Fatal("冷却期内的请求应被拒绝")
	}
	if r.RetryAfter <= 0 || r.RetryAfter > interval {
		t.Fatalf("剩余冷却时间不合理: %v", r.RetryAfter)
	}

	// 不同键互不影响
	if r := limiter.Check("user:2", interval); !r.Allowed {
		t.Fatal("其他键的首次请求应放行")
	}

	// 冷却结束后恢复放行
	time.Sleep(interval + 20*time.Millisecond)
	if r := limiter.Check("user:1", interval); !r.Allowed {
		t.Fatal("冷却结束后应放行")
	}
}

func TestRateLimiter_Reset(t *testing.T) {
	limiter := &RequestRateLimiter{}

	limiter.Check("user:1", time.Minute)
	limiter.Reset()

	if r := limiter.Check("user:1", time.Minute); !r.Allowed {
		t.Fatal("Reset 后应重新放行")
	}
}

// ==================== 节流中间件测试 ====================

func throttledRouter(interval time.Duration) *gin.Engine {
	router := gin.New()
	router.GET("/menu", Throttle(interval, interval), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func doGet(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", "/menu", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestThrottle_AnonTooManyRequests(t *testing.T) {
	GetLimiter().Reset()
	router := throttledRouter(time.Second)

	if w := doGet(router, "10.0.0.1:1234"); w.Code != http.StatusOK {
		t.Fatalf("首次请求应 200，实际 %d", w.Code)
	}

	w := doGet(router, "10.0.0.1:1234")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("冷却期内第二次请求应 429，实际 %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Fatal("429 响应应携带 Retry-After")
	}

	// 不同来源 IP 不受影响
	if w := doGet(router, "10.0.0.2:1234"); w.Code != http.StatusOK {
		t.Fatalf("其他 IP 的请求应 200，实际 %d", w.Code)
	}
}

// 已认证用户按用户限流，与匿名 IP 键相互独立
func TestThrottle_UserKeyIndependent(t *testing.T) {
	GetLimiter().Reset()

	router := gin.New()
	router.GET("/menu",
		func(c *gin.Context) { c.Set(ContextKeyUserID, int64(42)) },
		Throttle(time.Second, time.Second),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	anon := throttledRouter(time.Second)
	if w := doGet(anon, "10.0.0.1:1234"); w.Code != http.StatusOK {
		t.Fatalf("匿名请求应 200，实际 %d", w.Code)
	}

	// 同一来源 IP，但带了身份，走 user:42 的键
	if w := doGet(router, "10.0.0.1:1234"); w.Code != http.StatusOK {
		t.Fatalf("已认证请求应 200，实际 %d", w.Code)
	}
	if w := doGet(router, "10.0.0.1:1234"); w.Code != http.StatusTooManyRequests {
		t.Fatalf("同一用户冷却期内应 429，实际 %d", w.Code)
	}
}
