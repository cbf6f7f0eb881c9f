package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/service"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/pkg/httputil"
)

const maxBannerLimit = 100

// BannerHandler serves the home-page banner carousel.
type BannerHandler struct {
	service *service.BannerService
	logger  *slog.Logger
}

// NewBannerHandler creates a banner HTTP handler.
func NewBannerHandler(svc *service.BannerService, logger *slog.Logger) *BannerHandler {
	return &BannerHandler{service: svc, logger: logger}
}

// List handles GET /api/banners?limit=N. It always answers 200; an
// unavailable bucket shows up as an empty list.
func (h *BannerHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = service.DefaultBannerLimit
	}
	if limit > maxBannerLimit {
		limit = maxBannerLimit
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: h.service.ListBanners(r.Context(), limit),
	})
}
