package main

import (
	"net/http"
	"os"
	"time"

	"mapa-saude-api/config"
	"mapa-saude-api/internal/auth"
	"mapa-saude-api/internal/doctor"
	"mapa-saude-api/internal/establishment"
	"mapa-saude-api/internal/favorite"
	"mapa-saude-api/internal/geocode"
	"mapa-saude-api/internal/lookup"
	"mapa-saude-api/internal/middlewares"
	"mapa-saude-api/internal/search"
	"mapa-saude-api/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg := config.LoadConfig()

	logger.InitLogger(&cfg)
	log := logger.GetLogger()
	defer log.Sync()

	dsn := "host=" + cfg.DBHost +
		" user=" + cfg.DBUser +
		" password=" + cfg.DBPassword +
		" dbname=" + cfg.DBName +
		" port=" + cfg.DBPort +
		" sslmode=disable"

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("failed to get database handle", zap.Error(err))
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(time.Hour)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://mapa-saude.vercel.app"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	r.Use(middlewares.RequestIDMiddleware())
	r.Use(middlewares.MetricsMiddleware())

	requireAuth := middlewares.AuthMiddleware(cfg.JWTSecret)

	geocoder := geocode.NewClient(cfg.GoogleMapsKey)

	doctorService := &doctor.Service{DB: db}
	establishmentService := &establishment.Service{DB: db, Geo: geocoder, Roster: doctorService}
	searchService := &search.Service{DB: db}
	lookupService := lookup.NewService(db)
	favoriteService := &favorite.Service{DB: db}
	authService := &auth.Service{DB: db, Geo: geocoder}

	auth.RegisterRoutes(r, &auth.Controller{Service: authService, CFG: &cfg}, requireAuth)
	search.RegisterRoutes(r, searchService)
	establishment.RegisterRoutes(r, establishmentService, requireAuth)
	doctor.RegisterRoutes(r, doctorService, establishmentService, requireAuth)
	lookup.RegisterRoutes(r, lookupService)
	favorite.RegisterRoutes(r, favoriteService, requireAuth)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Info("starting server", zap.String("addr", "0.0.0.0:"+port))
	if err := r.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}
