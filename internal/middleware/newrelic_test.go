package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"carpool/internal/domain"
)

func TestTransactionEnricher_PassesThroughWithoutAgent(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(actorContextKey, domain.Actor{UserID: "passenger-1"})
	})
	router.Use(TransactionEnricher())
	router.GET("/ping", func(c *gin.Context) {
		// A handler error with no transaction on the context must not panic.
		_ = c.Error(errors.New("handler error"))
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
