package doctor

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, svc ServiceAPI, establishments EstablishmentDirectory, requireAuth gin.HandlerFunc) {
	controller := &Controller{Service: svc, Establishments: establishments}

	public := r.Group("/api/medicos")
	{
		public.GET("", controller.SearchDoctors)
		public.GET("/:id", controller.GetByID)
	}

	admin := r.Group("/api/admin/medicos")
	admin.Use(requireAuth)
	{
		admin.POST("", controller.Create)
		admin.PUT("/:id", controller.Update)
		admin.DELETE("/:id", controller.Deactivate)
	}
}
