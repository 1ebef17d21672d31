package search

import (
	"net/http"
	"strconv"
	"strings"

	"mapa-saude-api/internal/metrics"
	"mapa-saude-api/internal/util"
	"mapa-saude-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Controller struct {
	Service ServiceAPI
}

// GET /api/estabelecimentos
//
// Query params: search, especialidade, convenio (single or multi), tipo
// (single or multi), lat+lng (must come together), raio (km, default 10).
func (sc *Controller) SearchEstablishments(c *gin.Context) {
	f := Filters{
		Search:        strings.TrimSpace(c.Query("search")),
		Especialidade: strings.TrimSpace(c.Query("especialidade")),
		Convenios:     util.NormalizeValues(c.QueryArray("convenio")),
		Tipos:         util.NormalizeValues(c.QueryArray("tipo")),
	}

	latRaw := strings.TrimSpace(c.Query("lat"))
	lngRaw := strings.TrimSpace(c.Query("lng"))
	if latRaw != "" || lngRaw != "" {
		lat, errLat := strconv.ParseFloat(latRaw, 64)
		lng, errLng := strconv.ParseFloat(lngRaw, 64)
		if errLat != nil || errLng != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "lat e lng devem ser informados juntos e numéricos"})
			return
		}
		f.Lat = &lat
		f.Lng = &lng

		f.RaioKm = DefaultRadiusKm
		if raioRaw := strings.TrimSpace(c.Query("raio")); raioRaw != "" {
			raio, err := strconv.ParseFloat(raioRaw, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "raio inválido"})
				return
			}
			f.RaioKm = raio
		}
	}

	metrics.SearchRequestsTotal.WithLabelValues(strconv.FormatBool(f.HasCoordinates())).Inc()

	results, err := sc.Service.Search(c.Request.Context(), f)
	if err != nil {
		logger.GetLogger().Error("establishment search failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro interno do servidor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    results,
		"total":   len(results),
	})
}

// GET /api/estabelecimentos/proximos/:lat/:lng
func (sc *Controller) SearchNearby(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Param("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Param("lng"), 64)
	if errLat != nil || errLng != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coordenadas inválidas"})
		return
	}

	raio := float64(DefaultRadiusKm)
	if raioRaw := strings.TrimSpace(c.Query("raio")); raioRaw != "" {
		parsed, err := strconv.ParseFloat(raioRaw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "raio inválido"})
			return
		}
		raio = parsed
	}

	metrics.SearchRequestsTotal.WithLabelValues("true").Inc()

	results, err := sc.Service.SearchNearby(c.Request.Context(), lat, lng, raio)
	if err != nil {
		logger.GetLogger().Error("nearby search failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro interno do servidor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    results,
		"total":   len(results),
	})
}
