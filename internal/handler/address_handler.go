package handler

import (
	"net/http"

	"furnistore/internal/address"

	"github.com/rs/zerolog"
)

// AddressHandler serves the static address cascade tables that drive the
// dependent dropdowns on the checkout page.
type AddressHandler struct {
	logger zerolog.Logger
}

// NewAddressHandler creates a new address handler.
func NewAddressHandler(logger zerolog.Logger) *AddressHandler {
	return &AddressHandler{
		logger: logger.With().Str("handler", "address").Logger(),
	}
}

// Provinces handles GET /api/addresses/provinces.
func (h *AddressHandler) Provinces(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, address.Provinces())
}

// Districts handles GET /api/addresses/provinces/{code}/districts. An
// unknown province yields an empty list, like the empty dropdown before a
// province is chosen.
func (h *AddressHandler) Districts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, address.Districts(r.PathValue("code")))
}

// Wards handles GET /api/addresses/districts/{code}/wards.
func (h *AddressHandler) Wards(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, address.Wards(r.PathValue("code")))
}
