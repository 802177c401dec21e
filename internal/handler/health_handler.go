package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// HealthHandler отвечает на проверку здоровья сервиса
type HealthHandler struct {
	check  func() error // nil, если проверять нечего
	logger *logrus.Logger
}

// NewHealthHandler создает новый обработчик. check обычно проверяет базу данных.
func NewHealthHandler(check func() error, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{
		check:  check,
		logger: logger,
	}
}

// RegisterRoutes регистрирует маршруты API
func (h *HealthHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/v1/health", h.CheckHealth)
}

// CheckHealth проверяет состояние сервиса
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	if h.check != nil {
		if err := h.check(); err != nil {
			h.logger.Errorf("База данных недоступна: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "База данных недоступна",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Сервис работает нормально",
	})
}
