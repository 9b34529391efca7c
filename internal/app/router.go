package app

import (
	"github.com/gin-gonic/gin"

	"github.com/agrisight/agrisight-backend/internal/middleware"
	"github.com/agrisight/agrisight-backend/internal/types"
)

func wireRouter(cfg Config, h Handlers, mw Middleware) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	r.GET("/healthcheck", h.Health.HealthCheck)

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/manual", mw.AuthLimiter.Limit(), h.Auth.ManualLogin)
		auth.POST("/refresh", h.Auth.Refresh)
		auth.POST("/logout", mw.Auth.RequireAuth(), h.Auth.Logout)
		auth.GET("/me", mw.Auth.RequireAuth(), h.Auth.Me)
	}

	predict := api.Group("/predict", mw.Auth.RequireAuth())
	{
		predict.POST("", h.Prediction.Predict)
		predict.GET("/history", h.Prediction.History)
	}

	sensor := api.Group("/sensor", mw.Auth.RequireAuth(), mw.Auth.RequireRoles(types.RoleAgriIndustry, types.RoleAdmin))
	{
		sensor.POST("", h.Sensor.Record)
		sensor.GET("/history", h.Sensor.History)
	}

	plant := api.Group("/plant")
	{
		plant.GET("", mw.Auth.OptionalAuth(), h.Plant.List)
		plant.GET("/:species", mw.Auth.OptionalAuth(), h.Plant.Get)
		plant.POST("", mw.Auth.RequireAuth(), mw.Auth.RequireRoles(types.RoleAdmin), h.Plant.Upsert)
	}

	realtime := api.Group("/sse", mw.Auth.RequireAuth())
	{
		realtime.GET("/stream", h.Realtime.Stream)
		realtime.POST("/subscribe", h.Realtime.Subscribe)
		realtime.POST("/unsubscribe", h.Realtime.Unsubscribe)
	}

	admin := api.Group("/admin", mw.Auth.RequireAuth(), mw.Auth.RequireRoles(types.RoleAdmin))
	{
		admin.GET("/predictions", h.Admin.ListPredictions)
		admin.POST("/plant/add", h.Plant.Upsert)
		admin.POST("/disease", h.Admin.CreateDisease)
		admin.PUT("/disease/:id", h.Admin.UpdateDisease)
		admin.DELETE("/disease/:id", h.Admin.DeleteDisease)
		admin.POST("/market-price", h.Admin.UpsertMarketPrice)
		admin.POST("/dataset/upload", h.Admin.UploadDataset)
		admin.GET("/dataset", h.Admin.ListDatasets)
		admin.GET("/dataset/:id", h.Admin.GetDataset)
		admin.POST("/dataset/import-url", h.Admin.ImportDatasetFromURL)
	}

	return r
}
