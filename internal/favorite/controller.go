package favorite

import (
	"errors"
	"net/http"
	"strconv"

	"mapa-saude-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Controller struct {
	Service ServiceAPI
}

// POST /api/favoritos/:estabelecimentoId
func (fc *Controller) Add(c *gin.Context) {
	userID, estID, ok := fc.params(c)
	if !ok {
		return
	}

	if err := fc.Service.Add(c.Request.Context(), userID, estID); err != nil {
		if errors.Is(err, ErrEstablishmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.GetLogger().Error("favorite add failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro interno do servidor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Favorito adicionado com sucesso",
	})
}

// DELETE /api/favoritos/:estabelecimentoId
func (fc *Controller) Remove(c *gin.Context) {
	userID, estID, ok := fc.params(c)
	if !ok {
		return
	}

	if err := fc.Service.Remove(c.Request.Context(), userID, estID); err != nil {
		logger.GetLogger().Error("favorite remove failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro interno do servidor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Favorito removido com sucesso",
	})
}

// GET /api/favoritos
func (fc *Controller) List(c *gin.Context) {
	userID := c.GetInt("userID")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "não autorizado"})
		return
	}

	favorites, err := fc.Service.List(c.Request.Context(), userID)
	if err != nil {
		logger.GetLogger().Error("favorite list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro interno do servidor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    favorites,
		"total":   len(favorites),
	})
}

// GET /api/favoritos/:estabelecimentoId
func (fc *Controller) Check(c *gin.Context) {
	userID, estID, ok := fc.params(c)
	if !ok {
		return
	}

	isFav, err := fc.Service.IsFavorite(c.Request.Context(), userID, estID)
	if err != nil {
		logger.GetLogger().Error("favorite check failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro interno do servidor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"favorito": isFav,
	})
}

func (fc *Controller) params(c *gin.Context) (userID, estID int, ok bool) {
	userID = c.GetInt("userID")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "não autorizado"})
		return 0, 0, false
	}

	estID, err := strconv.Atoi(c.Param("estabelecimentoId"))
	if err != nil || estID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return 0, 0, false
	}
	return userID, estID, true
}
