package lookup

import (
	"net/http"

	"mapa-saude-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Controller struct {
	Service ServiceAPI
}

func (lc *Controller) GetSpecialties(c *gin.Context) {
	values, err := lc.Service.DistinctSpecialties(c.Request.Context())
	if err != nil {
		logger.GetLogger().Error("specialty lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro interno do servidor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    values,
	})
}

func (lc *Controller) GetInsurances(c *gin.Context) {
	values, err := lc.Service.DistinctInsurances(c.Request.Context())
	if err != nil {
		logger.GetLogger().Error("insurance lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro interno do servidor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    values,
	})
}

func (lc *Controller) GetTypes(c *gin.Context) {
	values, err := lc.Service.DistinctTypes(c.Request.Context())
	if err != nil {
		logger.GetLogger().Error("type lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro interno do servidor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    values,
	})
}
