package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRateLimiterRejectsOverBurst(t *testing.T) {
	router := gin.New()
	router.Use(NewRateLimiter(rate.Limit(0.001), 2).Limit())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := []int{}
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Fatalf("expected first two requests within burst to pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Fatalf("expected third request to be limited, got %v", codes)
	}
}

func TestTimeoutSetsDeadline(t *testing.T) {
	router := gin.New()
	router.Use(Timeout(50 * time.Millisecond))

	var deadline time.Time
	var ok bool
	router.GET("/", func(c *gin.Context) {
		deadline, ok = c.Request.Context().Deadline()
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if !ok {
		t.Fatal("expected request context to carry a deadline")
	}
	if until := time.Until(deadline); until > 50*time.Millisecond {
		t.Errorf("deadline further away than configured timeout: %v", until)
	}
}

func TestTimeoutCancelsSlowWork(t *testing.T) {
	router := gin.New()
	router.Use(Timeout(10 * time.Millisecond))

	var err error
	router.GET("/", func(c *gin.Context) {
		select {
		case <-c.Request.Context().Done():
			err = c.Request.Context().Err()
		case <-time.After(time.Second):
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if err != context.DeadlineExceeded {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
