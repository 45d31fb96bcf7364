// Package http exposes the badge service over HTTP.
package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/badge-service/internal/domain/dto"
	"github.com/guttosm/badge-service/internal/domain/model"
	"github.com/guttosm/badge-service/internal/middleware"
	"github.com/guttosm/badge-service/internal/service"
)

const (
	// ContentTypeSVG is the media type of badge responses.
	ContentTypeSVG = "image/svg+xml"

	// statusClientClosedRequest is logged when the caller went away before
	// the badge was ready. Nothing reaches the client.
	statusClientClosedRequest = 499
)

// Handler provides HTTP handlers for badge routes.
type Handler struct {
	badges service.BadgeService
}

// NewHandler creates a new Handler instance.
func NewHandler(badges service.BadgeService) *Handler {
	return &Handler{badges: badges}
}

// GetBadge handles GET /{package} requests.
//
// @Summary      Package version badge
// @Description  Returns an SVG badge showing the name and current version of a package. Badges are cached for the configured TTL. Unknown packages and blank names answer 400 with an empty body.
// @Tags         Badges
// @Produce      image/svg+xml
// @Param        package path string true "Package name" example(fmt)
// @Success      200 {string} string "SVG badge"
// @Header       200 {string} X-Cache "HIT or MISS"
// @Header       200 {string} Cache-Control "public, max-age=<ttl seconds>"
// @Failure      400 "Blank name or no usable metadata"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Failure      504 {object} dto.ErrorResponse "Request timed out"
// @Router       /{package} [get]
func (h *Handler) GetBadge(c *gin.Context) {
	var req dto.BadgeRequest
	if err := c.ShouldBindUri(&req); err != nil || req.Blank() {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	c.Set(middleware.PackageKey, req.Package)

	res, err := h.badges.Lookup(c.Request.Context(), req.Package)
	if err != nil {
		h.fail(c, err)
		return
	}

	cacheStatus := "MISS"
	c.Set(middleware.CacheKey, model.CacheMiss)
	if res.CacheHit {
		cacheStatus = "HIT"
		c.Set(middleware.CacheKey, model.CacheHit)
	}

	c.Header("Cache-Control", "public, max-age="+strconv.Itoa(int(h.badges.TTL().Seconds())))
	c.Header(middleware.CacheStatusHeader, cacheStatus)
	c.Data(http.StatusOK, ContentTypeSVG, []byte(res.SVG))
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidPackageName), errors.Is(err, service.ErrPackageNotFound):
		c.AbortWithStatus(http.StatusBadRequest)
	case errors.Is(err, context.DeadlineExceeded):
		// The timeout middleware answers 504.
		_ = c.Error(err)
		c.Abort()
	case errors.Is(err, context.Canceled):
		c.AbortWithStatus(statusClientClosedRequest)
	default:
		_ = c.Error(err)
		c.Abort()
	}
}
