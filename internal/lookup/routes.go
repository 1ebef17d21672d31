package lookup

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, svc ServiceAPI) {
	controller := &Controller{Service: svc}

	group := r.Group("/api/filtros")
	{
		group.GET("/especialidades", controller.GetSpecialties)
		group.GET("/convenios", controller.GetInsurances)
		group.GET("/tipos", controller.GetTypes)
	}
}
