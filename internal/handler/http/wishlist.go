package http

import (
	"log/slog"
	"net/http"

	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/domain"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/service"
	apperrors "github.com/Shaikhsanakausar/Rev-Orbit-sub001/pkg/errors"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/pkg/httputil"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/pkg/middleware"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/pkg/validator"
)

// Wishlist sources reported to the client.
const (
	sourceLocal  = "local"
	sourceRemote = "remote"
)

// WishlistHandler handles the save-for-later endpoints.
type WishlistHandler struct {
	service *service.WishlistService
	logger  *slog.Logger
}

// NewWishlistHandler creates a wishlist HTTP handler.
func NewWishlistHandler(svc *service.WishlistService, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{service: svc, logger: logger}
}

// SaveResult is returned by a successful save.
type SaveResult struct {
	ProductID domain.ProductID `json:"product_id"`
	Source    string           `json:"source"`
}

// WishlistView is the caller's wishlist from whichever store applies.
type WishlistView struct {
	Source string `json:"source"`
	Items  any    `json:"items"`
}

// SyncResult reports how many local items were moved to the account.
type SyncResult struct {
	Merged int `json:"merged"`
}

// Save handles POST /api/wishlist. The body is the product snapshot; the
// owner comes from the gateway-supplied identity, never from the body.
func (h *WishlistHandler) Save(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if err := validator.DecodeAndValidate(w, r, &product); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	ctx := r.Context()
	product.UserID = middleware.UserIDFromContext(ctx)
	deviceID := middleware.DeviceIDFromContext(ctx)

	if err := h.service.SaveForLater(ctx, deviceID, product); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	source := sourceLocal
	if product.Authenticated() {
		source = sourceRemote
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{
		Data: SaveResult{ProductID: product.ID, Source: source},
	})
}

// List handles GET /api/wishlist: the remote list for signed-in users, the
// device list otherwise.
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if userID := middleware.UserIDFromContext(ctx); userID != "" {
		entries, err := h.service.ListRemote(ctx, userID)
		if err != nil {
			httputil.WriteError(w, r, err, h.logger)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, httputil.Response{
			Data: WishlistView{Source: sourceRemote, Items: entries},
		})
		return
	}

	items, err := h.service.ListLocal(ctx, middleware.DeviceIDFromContext(ctx))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: WishlistView{Source: sourceLocal, Items: items},
	})
}

// Sync handles POST /api/wishlist/sync, moving the device list into the
// signed-in user's account.
func (h *WishlistHandler) Sync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	deviceID := middleware.DeviceIDFromContext(ctx)
	if deviceID == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput(middleware.HeaderDeviceID+" header is required"), h.logger)
		return
	}

	merged, err := h.service.Reconcile(ctx, deviceID, middleware.UserIDFromContext(ctx))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: SyncResult{Merged: merged}})
}
