package establishment

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

// GET /api/estabelecimentos/:id
func (ec *Controller) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	detail, err := ec.Service.GetDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": ErrNotFound.Error()})
			return
		}
		logger.GetLogger().Error("establishment lookup failed", zap.Int("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro interno do servidor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    detail,
	})
}

// POST /api/estabelecimentos/:id/avaliar
func (ec *Controller) AddReview(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	var in ReviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrInvalidRating.Error()})
		return
	}

	if err := ec.Service.AddReview(c.Request.Context(), id, in); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrInvalidRating):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.GetLogger().Error("review insert failed", zap.Int("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "erro interno do servidor"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Avaliação adicionada com sucesso",
	})
}

// GET /api/admin/estabelecimento
func (ec *Controller) GetOwn(c *gin.Context) {
	adminID := c.GetInt("userID")
	est, err := ec.Service.ActiveByAdmin(c.Request.Context(), adminID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": ErrNotFound.Error()})
			return
		}
		logger.GetLogger().Error("own establishment lookup failed", zap.Int("admin_id", adminID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro interno do servidor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": est})
}

// POST /api/admin/estabelecimento
func (ec *Controller) Save(c *gin.Context) {
	var in SaveInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	adminID := c.GetInt("userID")
	role := c.GetString("role")

	est, err := ec.Service.SaveForAdmin(c.Request.Context(), adminID, role, in)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation), errors.Is(err, ErrAlreadyActive):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.GetLogger().Error("establishment save failed", zap.Int("admin_id", adminID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "erro interno do servidor"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Estabelecimento salvo com sucesso",
		"data":    est,
	})
}

// DELETE /api/admin/estabelecimento
func (ec *Controller) Deactivate(c *gin.Context) {
	adminID := c.GetInt("userID")

	if err := ec.Service.DeactivateByAdmin(c.Request.Context(), adminID); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": ErrNotFound.Error()})
			return
		}
		logger.GetLogger().Error("establishment deactivate failed", zap.Int("admin_id", adminID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro interno do servidor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Estabelecimento removido com sucesso",
	})
}
