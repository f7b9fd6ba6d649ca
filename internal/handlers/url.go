package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/uni-3/my-url-shortener/internal/shortener"
	"go.uber.org/zap"
)

// URLHandler handles URL shortening and redirect operations.
type URLHandler struct {
	shortener *shortener.Shortener
	resolver  *shortener.Resolver
	logger    *zap.Logger
}

// NewURLHandler creates a new URL handler.
func NewURLHandler(s *shortener.Shortener, r *shortener.Resolver, logger *zap.Logger) *URLHandler {
	return &URLHandler{
		shortener: s,
		resolver:  r,
		logger:    logger,
	}
}

// ShortenURL creates a short code for the submitted URL, or returns the
// existing one when the URL was already shortened.
func (h *URLHandler) ShortenURL(ctx context.Context, req *ShortenRequest) (*ShortenResponse, error) {
	result, err := h.shortener.Shorten(ctx, req.Body.URL)
	if err != nil {
		var unsafeErr *shortener.UnsafeURLError

		switch {
		case errors.Is(err, shortener.ErrInvalidURL):
			return nil, huma.Error400BadRequest("url must be a valid http or https URL")
		case errors.As(err, &unsafeErr):
			return nil, huma.Error403Forbidden("url rejected by safety check", &huma.ErrorDetail{
				Message:  "threat detected",
				Location: "body.url",
				Value:    unsafeErr.ThreatType,
			})
		default:
			meta := RequestMetaFromContext(ctx)
			h.logger.Error("shorten failed",
				zap.String("requestId", meta.RequestID),
				zap.Error(err),
			)

			return nil, huma.Error500InternalServerError("failed to shorten url")
		}
	}

	resp := &ShortenResponse{Status: http.StatusOK}
	resp.Body.ShortCode = result.Mapping.ShortCode

	if result.Created {
		resp.Status = http.StatusCreated
		resp.Body.URL = result.Mapping.CanonicalURL
	}

	return resp, nil
}

// RedirectToURL resolves a short code and redirects to its target URL.
func (h *URLHandler) RedirectToURL(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	target, err := h.resolver.Resolve(ctx, req.Code)
	if err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			return nil, huma.Error404NotFound("short url not found")
		}

		meta := RequestMetaFromContext(ctx)
		h.logger.Error("redirect failed",
			zap.String("requestId", meta.RequestID),
			zap.String("code", req.Code),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("Internal Server Error")
	}

	resp := &RedirectResponse{Status: http.StatusFound}
	resp.Headers.Location = target

	return resp, nil
}
