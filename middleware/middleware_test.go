package middleware_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"penguin-service/logger"
	"penguin-service/metrics"
	"penguin-service/middleware"
)

var _ = Describe("Middleware", func() {
	var router *gin.Engine

	BeforeEach(func() {
		router = gin.New()
		router.Use(middleware.LoggingMiddleware(), middleware.MetricsMiddleware())
		router.POST("/predict", func(c *gin.Context) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "bad"})
		})
		router.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
	})

	Describe("LoggingMiddleware", func() {
		var logs *observer.ObservedLogs

		BeforeEach(func() {
			var core zapcore.Core
			core, logs = observer.New(zapcore.InfoLevel)
			previous := logger.Logger
			logger.Logger = zap.New(core)
			DeferCleanup(func() { logger.Logger = previous })
		})

		It("should log method, path and status", func() {
			req := httptest.NewRequest(http.MethodPost, "/predict?debug=1", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			entries := logs.FilterMessage("HTTP request").All()
			Expect(entries).To(HaveLen(1))

			fields := entries[0].ContextMap()
			Expect(fields["method"]).To(Equal(http.MethodPost))
			Expect(fields["path"]).To(Equal("/predict"))
			Expect(fields["status"]).To(BeEquivalentTo(http.StatusUnprocessableEntity))
			Expect(fields["query"]).To(Equal("debug=1"))
			Expect(fields).To(HaveKey("duration_ms"))
		})

		It("should log unmatched routes as 404", func() {
			req := httptest.NewRequest(http.MethodGet, "/nope", nil)
			router.ServeHTTP(httptest.NewRecorder(), req)

			entries := logs.FilterMessage("HTTP request").All()
			Expect(entries).To(HaveLen(1))
			Expect(entries[0].ContextMap()["status"]).To(BeEquivalentTo(http.StatusNotFound))
		})
	})

	Describe("MetricsMiddleware", func() {
		It("should count requests per route and status code", func() {
			counter := metrics.RequestsTotal.WithLabelValues("/health", "200")
			before := testutil.ToFloat64(counter)

			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

			Expect(testutil.ToFloat64(counter)).To(Equal(before + 2))
		})

		It("should label unknown paths as unmatched", func() {
			counter := metrics.RequestsTotal.WithLabelValues("unmatched", "404")
			before := testutil.ToFloat64(counter)

			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/random/path", nil))

			Expect(testutil.ToFloat64(counter)).To(Equal(before + 1))
		})
	})
})
