package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/remit_backend/internal/core/ports/services"
	"github.com/SscSPs/remit_backend/internal/dto"
	"github.com/SscSPs/remit_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// advertisementHandler serves the promotional banner list.
type advertisementHandler struct {
	adService portssvc.AdvertisementSvcFacade
}

func newAdvertisementHandler(as portssvc.AdvertisementSvcFacade) *advertisementHandler {
	return &advertisementHandler{adService: as}
}

// registerAdvertisementRoutes registers the public read routes on public and
// the curation routes on admin.
func registerAdvertisementRoutes(public, admin *gin.RouterGroup, as portssvc.AdvertisementSvcFacade) {
	h := newAdvertisementHandler(as)

	public.GET("/advertisements", h.listAdvertisements)
	public.GET("/advertisements/:adID", h.getAdvertisement)

	ads := admin.Group("/advertisements")
	{
		ads.POST("", h.createAdvertisement)
		ads.PUT("/:adID", h.updateAdvertisement)
		ads.DELETE("/:adID", h.deactivateAdvertisement)
	}
}

// listAdvertisements godoc
// @Summary List advertisements
// @Description Lists active advertisements in display order.
// @Tags advertisements
// @Produce json
// @Success 200 {array} dto.AdvertisementResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /advertisements [get]
func (h *advertisementHandler) listAdvertisements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ads, err := h.adService.ListActiveAdvertisements(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to list advertisements")
		return
	}

	c.JSON(http.StatusOK, dto.ToListAdvertisementResponse(ads))
}

// getAdvertisement godoc
// @Summary Get an advertisement
// @Tags advertisements
// @Produce json
// @Param adID path string true "Advertisement ID"
// @Success 200 {object} dto.AdvertisementResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /advertisements/{adID} [get]
func (h *advertisementHandler) getAdvertisement(c *gin.Context) {
	adID := c.Param("adID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("ad_id", adID))

	ad, err := h.adService.GetAdvertisement(c.Request.Context(), adID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve advertisement")
		return
	}
	// Deactivated ads are hidden from clients.
	if !ad.IsActive {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Not found"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAdvertisementResponse(ad))
}

// createAdvertisement godoc
// @Summary Create an advertisement
// @Tags advertisements
// @Accept json
// @Produce json
// @Param advertisement body dto.CreateAdvertisementRequest true "Advertisement"
// @Success 201 {object} dto.AdvertisementResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /advertisements [post]
func (h *advertisementHandler) createAdvertisement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	adminID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var req dto.CreateAdvertisementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, logger, err)
		return
	}

	ad, err := h.adService.CreateAdvertisement(c.Request.Context(), req, adminID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create advertisement")
		return
	}

	c.JSON(http.StatusCreated, dto.ToAdvertisementResponse(ad))
}

// updateAdvertisement godoc
// @Summary Update an advertisement
// @Description Applies the fields present in the body.
// @Tags advertisements
// @Accept json
// @Produce json
// @Param adID path string true "Advertisement ID"
// @Param advertisement body dto.UpdateAdvertisementRequest true "Fields to change"
// @Success 200 {object} dto.AdvertisementResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /advertisements/{adID} [put]
func (h *advertisementHandler) updateAdvertisement(c *gin.Context) {
	adID := c.Param("adID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("ad_id", adID))
	adminID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var req dto.UpdateAdvertisementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, logger, err)
		return
	}

	ad, err := h.adService.UpdateAdvertisement(c.Request.Context(), adID, req, adminID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update advertisement")
		return
	}

	c.JSON(http.StatusOK, dto.ToAdvertisementResponse(ad))
}

// deactivateAdvertisement godoc
// @Summary Deactivate an advertisement
// @Description Hides the advertisement from clients. The record is kept.
// @Tags advertisements
// @Param adID path string true "Advertisement ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /advertisements/{adID} [delete]
func (h *advertisementHandler) deactivateAdvertisement(c *gin.Context) {
	adID := c.Param("adID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("ad_id", adID))
	adminID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.adService.DeactivateAdvertisement(c.Request.Context(), adID, adminID); err != nil {
		respondWithError(c, logger, err, "Failed to deactivate advertisement")
		return
	}

	c.Status(http.StatusNoContent)
}
