package favorite

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, svc ServiceAPI, requireAuth gin.HandlerFunc) {
	controller := &Controller{Service: svc}

	group := r.Group("/api/favoritos")
	group.Use(requireAuth)
	{
		group.GET("", controller.List)
		group.GET("/:estabelecimentoId", controller.Check)
		group.POST("/:estabelecimentoId", controller.Add)
		group.DELETE("/:estabelecimentoId", controller.Remove)
	}
}
