package search

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, svc ServiceAPI) {
	controller := &Controller{Service: svc}

	group := r.Group("/api/estabelecimentos")
	{
		group.GET("", controller.SearchEstablishments)
		group.GET("/proximos/:lat/:lng", controller.SearchNearby)
	}
}
