// Package handler provides the HTTP handlers exposing coordinate mapping and
// anatomical validation.
package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/geo/r3"
	"go.uber.org/zap"

	"github.com/facemap/backend/internal/anatomy"
	"github.com/facemap/backend/internal/cache"
	"github.com/facemap/backend/internal/mapping"
	"github.com/facemap/backend/internal/metrics"
	"github.com/facemap/backend/internal/models"
	"github.com/facemap/backend/internal/payload"
	"github.com/facemap/backend/internal/validation"
)

// Handler provides HTTP handlers for mapping and validation operations.
type Handler struct {
	cache   cache.Cache
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewHandler creates a new handler. m may be nil to disable instrumentation.
func NewHandler(cache cache.Cache, m *metrics.Metrics, logger *zap.Logger) *Handler {
	return &Handler{
		cache:   cache,
		metrics: m,
		logger:  logger,
	}
}

// RegisterRoutes registers the handler routes on the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/zones", h.ListZones)
	rg.GET("/danger-zones", h.ListDangerZones)
	rg.GET("/muscles/classify", h.ClassifyMuscle)
	rg.POST("/points/parse", h.ParsePoints)
	rg.POST("/mapping/to-3d", h.MapTo3D)
	rg.POST("/mapping/from-3d", h.MapFrom3D)
	rg.POST("/mapping/check", h.CheckCoordinates)
	rg.POST("/validations", h.Validate)
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "invalid_request",
		Message: message,
	})
}

// ListZones handles retrieving the zone calibration table.
// @Summary List anatomical zones
// @Tags zones
// @Produce json
// @Success 200 {object} models.ZonesResponse
// @Router /api/v1/zones [get]
func (h *Handler) ListZones(c *gin.Context) {
	zones := anatomy.Zones()
	infos := make([]models.ZoneInfo, 0, len(zones))
	for _, z := range zones {
		b := anatomy.BoundaryFor(z)
		a := anatomy.AnchorFor(z)
		info := models.ZoneInfo{
			Zone:      string(z),
			Bilateral: anatomy.IsBilateral(z),
			Boundary: models.Rect2D{
				XMin: b.Bounds.X.Lo, XMax: b.Bounds.X.Hi,
				YMin: b.Bounds.Y.Lo, YMax: b.Bounds.Y.Hi,
			},
			CenterX:       b.Center.X,
			CenterY:       b.Center.Y,
			Ref3D:         models.Position3D{a.Ref.X, a.Ref.Y, a.Ref.Z},
			Width3D:       a.Width,
			Height3D:      a.Height,
			CurvatureX:    a.CurvatureX,
			CurvatureY:    a.CurvatureY,
			SurfaceOffset: a.SurfaceOffset,
		}
		if band, ok := validation.HierarchyBand(z); ok {
			info.MinY, info.MaxY = &band.Lo, &band.Hi
		}
		infos = append(infos, info)
	}
	c.JSON(http.StatusOK, models.ZonesResponse{Data: infos})
}

// ListDangerZones handles retrieving the danger-zone table.
// @Summary List danger zones
// @Tags zones
// @Produce json
// @Success 200 {object} models.DangerZonesResponse
// @Router /api/v1/danger-zones [get]
func (h *Handler) ListDangerZones(c *gin.Context) {
	zones := anatomy.DangerZones()
	infos := make([]models.DangerZoneInfo, 0, len(zones))
	for _, dz := range zones {
		infos = append(infos, models.DangerZoneInfo{
			Name:   dz.Name,
			Reason: dz.Reason,
			Rect2D: models.Rect2D{
				XMin: dz.Bounds.X.Lo, XMax: dz.Bounds.X.Hi,
				YMin: dz.Bounds.Y.Lo, YMax: dz.Bounds.Y.Hi,
			},
		})
	}
	c.JSON(http.StatusOK, models.DangerZonesResponse{Data: infos})
}

// ClassifyMuscle handles classifying a muscle identifier.
// @Summary Classify muscle
// @Tags muscles
// @Produce json
// @Param name query string true "Muscle identifier"
// @Success 200 {object} models.MuscleClassification
// @Failure 400 {object} models.ErrorResponse
// @Router /api/v1/muscles/classify [get]
func (h *Handler) ClassifyMuscle(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		badRequest(c, "name query parameter is required")
		return
	}
	c.JSON(http.StatusOK, models.MuscleClassification{
		Muscle: name,
		Zone:   string(anatomy.ClassifyMuscle(name)),
		Label:  anatomy.LabelForMuscle(name),
	})
}

// ParsePoints handles normalizing a raw AI payload into injection points.
// @Summary Parse AI payload
// @Tags points
// @Accept json
// @Produce json
// @Success 200 {object} payload.Result
// @Failure 400 {object} models.ErrorResponse
// @Router /api/v1/points/parse [post]
func (h *Handler) ParsePoints(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		badRequest(c, "failed to read request body")
		return
	}

	result, err := payload.Parse(body)
	if err != nil {
		if errors.Is(err, payload.ErrEmptyPayload) || errors.Is(err, payload.ErrInvalidPayload) {
			h.logger.Warn("Rejected AI payload", zap.Error(err))
			badRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to parse AI payload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: "failed to parse payload",
		})
		return
	}

	h.logRejected(result)
	c.JSON(http.StatusOK, result)
}

// bindPoints decodes a points request and runs it through the payload
// normalizer. It writes a 400 and returns false when the body is malformed.
func (h *Handler) bindPoints(c *gin.Context) (*payload.Result, bool) {
	var req payload.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid points request", zap.String("path", c.FullPath()), zap.Error(err))
		badRequest(c, err.Error())
		return nil, false
	}

	result := payload.Normalize(req.Points)
	h.logRejected(result)
	return result, true
}

func (h *Handler) logRejected(result *payload.Result) {
	if len(result.Rejected) == 0 {
		return
	}
	h.logger.Info("Dropped malformed injection points",
		zap.Int("accepted", len(result.Points)),
		zap.Int("rejected", len(result.Rejected)),
	)
}

// MapTo3D handles placing injection points on the head model.
// @Summary Map points to 3D
// @Tags mapping
// @Accept json
// @Produce json
// @Param points body payload.Request true "Injection points"
// @Success 200 {object} models.MappedPointsResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/v1/mapping/to-3d [post]
func (h *Handler) MapTo3D(c *gin.Context) {
	parsed, ok := h.bindPoints(c)
	if !ok {
		return
	}

	mapped := mapping.MapPoints(parsed.Points)
	for _, p := range mapped {
		h.metrics.ObserveTransform(metrics.DirectionTo3D, p.Zone)
	}

	c.JSON(http.StatusOK, models.MappedPointsResponse{
		Data:            mapped,
		NormalizedInput: parsed.Normalized,
		Rejected:        parsed.Rejected,
	})
}

// MapFrom3D handles mapping a dragged model-space point back to the photo.
// @Summary Map 3D point to 2D
// @Tags mapping
// @Accept json
// @Produce json
// @Param point body models.From3DRequest true "Model-space position"
// @Success 200 {object} models.From3DResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/v1/mapping/from-3d [post]
func (h *Handler) MapFrom3D(c *gin.Context) {
	var req models.From3DRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid reverse mapping request", zap.Error(err))
		badRequest(c, err.Error())
		return
	}

	pos := r3.Vector{X: *req.X, Y: *req.Y, Z: *req.Z}
	x, y := mapping.ThreeDToPercent(pos)
	muscle := mapping.DetectMuscleFrom3D(pos.X, pos.Y)
	zone := anatomy.ClassifyMuscle(muscle)

	h.metrics.ObserveTransform(metrics.DirectionFrom3D, string(zone))

	c.JSON(http.StatusOK, models.From3DResponse{Data: models.From3DResult{
		X:      x,
		Y:      y,
		Muscle: muscle,
		Label:  anatomy.LabelForMuscle(muscle),
		Zone:   string(zone),
	}})
}

// CheckCoordinates handles checking a position against a zone's nominal box.
// @Summary Check coordinates for zone
// @Tags mapping
// @Accept json
// @Produce json
// @Param check body models.CoordinateCheckRequest true "Position and zone"
// @Success 200 {object} models.CoordinateCheck
// @Failure 400 {object} models.ErrorResponse
// @Router /api/v1/mapping/check [post]
func (h *Handler) CheckCoordinates(c *gin.Context) {
	var req models.CoordinateCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, mapping.ValidateCoordinatesForZone(*req.X, *req.Y, anatomy.ParseZone(req.Zone)))
}

// Validate handles validating a set of injection points.
// @Summary Validate injection points
// @Tags validation
// @Accept json
// @Produce json
// @Param points body payload.Request true "Injection points"
// @Success 200 {object} models.ValidationResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/v1/validations [post]
func (h *Handler) Validate(c *gin.Context) {
	parsed, ok := h.bindPoints(c)
	if !ok {
		return
	}
	points := parsed.Points

	ctx := c.Request.Context()
	start := time.Now()

	key, err := cache.KeyFor(points)
	if err != nil {
		h.logger.Warn("Failed to build cache key", zap.Error(err))
	}

	// Try cache first
	if key != "" {
		if cached, err := h.cache.Get(ctx, key); err == nil && cached != nil {
			h.logger.Debug("Returning cached validation result", zap.String("key", key))
			h.metrics.ObserveValidation(*cached, true, time.Since(start))
			c.JSON(http.StatusOK, validationResponse(*cached, parsed))
			return
		}
	}

	result := validation.ValidateAnatomicalConsistency(points)
	h.metrics.ObserveValidation(result, false, time.Since(start))

	if key != "" {
		_ = h.cache.Set(ctx, key, &result)
	}

	if !result.IsValid {
		h.logger.Info("Validation found blocking errors",
			zap.Int("points", len(points)),
			zap.Int("errors", len(result.Errors)),
			zap.Int("warnings", len(result.Warnings)),
		)
	}

	c.JSON(http.StatusOK, validationResponse(result, parsed))
}

func validationResponse(result models.ValidationResult, parsed *payload.Result) models.ValidationResponse {
	return models.ValidationResponse{
		Data:            result,
		Summary:         validation.Summary(result),
		NormalizedInput: parsed.Normalized,
		Rejected:        parsed.Rejected,
	}
}
