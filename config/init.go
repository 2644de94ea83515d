package config

import (
	"travel-app/middleware"
	"travel-app/services/logger"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/robfig/cron/v3"
)

// InitApp tạo router (CORS, recovery, request id, log), melody và cron
func InitApp(cfg *Config, log logger.Logger) (*gin.Engine, *melody.Melody, *cron.Cron) {
	if cfg.Server.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(log), middleware.ErrorHandler())

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization")
	configCors.AllowCredentials = true
	if len(cfg.Server.CORSOrigins) > 0 {
		configCors.AllowOrigins = cfg.Server.CORSOrigins
	} else {
		configCors.AllowOriginFunc = func(origin string) bool {
			return true
		}
	}
	router.Use(cors.New(configCors))

	_ = router.SetTrustedProxies(nil)

	m := melody.New()
	c := cron.New()
	return router, m, c
}

// ConnectCloudinary trả về nil khi chưa cấu hình CLOUDINARY_URL
func ConnectCloudinary(cfg CloudinaryConfig) (*cloudinary.Cloudinary, error) {
	if cfg.URL == "" {
		return nil, nil
	}
	return cloudinary.NewFromURL(cfg.URL)
}
