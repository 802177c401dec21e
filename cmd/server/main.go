package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"route-spreadsheet-go/internal/client"
	"route-spreadsheet-go/internal/config"
	"route-spreadsheet-go/internal/database"
	"route-spreadsheet-go/internal/geo"
	"route-spreadsheet-go/internal/handler"
	"route-spreadsheet-go/internal/metrics"
	"route-spreadsheet-go/internal/publisher"
	"route-spreadsheet-go/internal/repository"
	"route-spreadsheet-go/internal/route"
	"route-spreadsheet-go/internal/service"
)

func main() {
	cfg := config.LoadConfig()

	// Инициализируем логгер
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	logger.Info("Запуск Route Spreadsheet API Server")

	collector := metrics.NewCollector()
	observers := service.Observers{service.NewLogObserver(logger), collector}

	// Публикация событий в NATS, если она настроена
	if cfg.NATS.URL != "" {
		pub, err := publisher.NewNATSPublisher(cfg.NATS.URL, cfg.NATS.SubjectPrefix, collector, logger)
		if err != nil {
			logger.Fatalf("Ошибка подключения к NATS: %v", err)
		}
		defer pub.Close()
		observers = append(observers, pub)
		logger.Infof("События обработки публикуются в NATS: %s.*", cfg.NATS.SubjectPrefix)
	}

	// Хранилище таблиц: PostgreSQL или память процесса
	repo := repository.NewMemoryRepository()
	var healthCheck func() error
	if cfg.Database.Enabled {
		logger.Info("Подключение к базе данных...")
		if err := database.Connect(cfg.DSN(), logger); err != nil {
			logger.Fatalf("Ошибка подключения к базе данных: %v", err)
		}
		defer database.Close()

		logger.Info("Выполнение миграций базы данных...")
		if err := database.Migrate(); err != nil {
			logger.Fatalf("Ошибка выполнения миграций: %v", err)
		}
		if err := database.HealthCheck(); err != nil {
			logger.Fatalf("База данных недоступна: %v", err)
		}

		repo = repository.NewSpreadsheetRepository(database.DB)
		healthCheck = database.HealthCheck
		logger.Info("База данных успешно подключена и готова к работе")
	} else {
		logger.Warn("База данных отключена, таблицы хранятся в памяти")
	}

	// Инициализируем клиенты внешних сервисов
	elevationClient := client.NewElevationClient(cfg.Elevation.Server, cfg.Elevation.Port, cfg.Elevation.Protocol, logger)
	daymetClient := client.NewDaymetClient(cfg.Daymet.BaseURL, cfg.Daymet.Concurrency, logger)
	logger.Infof("Сервис высот: %s", elevationClient.URL())

	// Инициализируем сервисы
	parser := route.NewParser(geo.NewCalculator())
	spreadsheetService := service.NewSpreadsheetService(elevationClient, parser, observers, logger)
	climateService := service.NewClimateService(daymetClient, observers, logger)

	// Настраиваем Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Добавляем middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Регистрируем маршруты
	handler.NewSpreadsheetHandler(spreadsheetService, repo, logger).RegisterRoutes(router)
	handler.NewClimateHandler(climateService, logger).RegisterRoutes(router)
	handler.NewHealthHandler(healthCheck, logger).RegisterRoutes(router)
	router.GET("/metrics", gin.WrapH(collector.Handler()))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Route Spreadsheet API Server",
			"version": "1.0.0",
			"status":  "running",
		})
	})

	// Запускаем сервер
	logger.Infof("Сервер запущен на %s", cfg.Address())
	logger.Infof("API доступно по адресу: http://localhost:%d/api/v1", cfg.Server.Port)

	if err := router.Run(cfg.Address()); err != nil {
		logger.Fatalf("Ошибка запуска сервера: %v", err)
	}
}

// corsMiddleware добавляет заголовки CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-Requested-With")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
