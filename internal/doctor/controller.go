package doctor

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"mapa-saude-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Controller struct {
	Service        ServiceAPI
	Establishments EstablishmentDirectory
}

// GET /api/medicos
func (dc *Controller) SearchDoctors(c *gin.Context) {
	f := Filters{
		Search:        strings.TrimSpace(c.Query("search")),
		Especialidade: strings.TrimSpace(c.Query("especialidade")),
		Convenio:      strings.TrimSpace(c.Query("convenio")),
	}
	if raw := strings.TrimSpace(c.Query("estabelecimento")); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "estabelecimento inválido"})
			return
		}
		f.EstabelecimentoID = id
	}

	doctors, err := dc.Service.SearchDoctors(c.Request.Context(), f)
	if err != nil {
		logger.GetLogger().Error("doctor search failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro interno do servidor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    doctors,
		"total":   len(doctors),
	})
}

// GET /api/medicos/:id
func (dc *Controller) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	doc, estIDs, err := dc.Service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": ErrNotFound.Error()})
			return
		}
		logger.GetLogger().Error("doctor lookup failed", zap.Int("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro interno do servidor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"medico":           doc,
			"estabelecimentos": estIDs,
		},
	})
}

// POST /api/admin/medicos
func (dc *Controller) Create(c *gin.Context) {
	var in CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	estID, ok := dc.resolveEstablishment(c)
	if !ok {
		return
	}

	doc, err := dc.Service.CreateForEstablishment(c.Request.Context(), estID, in)
	if err != nil {
		dc.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Médico cadastrado com sucesso",
		"data":    doc,
	})
}

// PUT /api/admin/medicos/:id
func (dc *Controller) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	var in UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	estID, ok := dc.resolveEstablishment(c)
	if !ok {
		return
	}

	doc, err := dc.Service.UpdateForEstablishment(c.Request.Context(), estID, id, in)
	if err != nil {
		dc.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Médico atualizado com sucesso",
		"data":    doc,
	})
}

// DELETE /api/admin/medicos/:id
func (dc *Controller) Deactivate(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	estID, ok := dc.resolveEstablishment(c)
	if !ok {
		return
	}

	if err := dc.Service.DeactivateForEstablishment(c.Request.Context(), estID, id); err != nil {
		dc.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Médico removido com sucesso",
	})
}

func (dc *Controller) resolveEstablishment(c *gin.Context) (int, bool) {
	adminID := c.GetInt("userID")
	if adminID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "não autorizado"})
		return 0, false
	}

	estID, err := dc.Establishments.ActiveIDByAdmin(c.Request.Context(), adminID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "estabelecimento não encontrado"})
		return 0, false
	}
	return estID, true
}

func (dc *Controller) writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrDuplicateCRM), errors.Is(err, ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.GetLogger().Error("doctor operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro interno do servidor"})
	}
}
