package establishment

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, svc ServiceAPI, requireAuth gin.HandlerFunc) {
	controller := &Controller{Service: svc}

	public := r.Group("/api/estabelecimentos")
	{
		public.GET("/:id", controller.GetByID)
		public.POST("/:id/avaliar", controller.AddReview)
	}

	admin := r.Group("/api/admin/estabelecimento")
	admin.Use(requireAuth)
	{
		admin.GET("", controller.GetOwn)
		admin.POST("", controller.Save)
		admin.DELETE("", controller.Deactivate)
	}
}
