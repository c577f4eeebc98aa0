package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"binder.org/internal/audit"
	"binder.org/internal/auth"
	"binder.org/internal/catalog"
	"binder.org/internal/collection"
)

type setOwnershipRequest struct {
	Owns   bool `json:"owns"`
	Copies int  `json:"copies"`
}

func (a *API) handleCards(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	cards, err := a.collection.ListCards(r.Context(), identity.UserID)
	if err != nil {
		handleCollectionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cards)
}

func (a *API) handleCardResource(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/cards/")
	if path == "" {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	if strings.HasSuffix(path, "/ownership") {
		id := strings.TrimSuffix(path, "/ownership")
		id = strings.TrimSuffix(id, "/")
		if id == "" {
			writeError(w, r, http.StatusNotFound, "card not found")
			return
		}
		switch r.Method {
		case http.MethodGet:
			a.getOwnership(w, r, id)
		case http.MethodPost:
			a.setOwnership(w, r, id)
		default:
			methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
		}
		return
	}

	if strings.Contains(path, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		a.getCard(w, r, path)
	default:
		methodNotAllowed(w, r, http.MethodGet)
	}
}

func (a *API) getCard(w http.ResponseWriter, r *http.Request, id string) {
	card, err := a.collection.Card(r.Context(), id)
	if err != nil {
		handleCollectionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (a *API) getOwnership(w http.ResponseWriter, r *http.Request, cardID string) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	rec, err := a.collection.Ownership(r.Context(), identity.UserID, cardID)
	if err != nil {
		handleCollectionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (a *API) setOwnership(w http.ResponseWriter, r *http.Request, cardID string) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	var req setOwnershipRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.collection.SetOwnership(r.Context(), identity.UserID, cardID, req.Owns, req.Copies); err != nil {
		handleCollectionError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "collection.ownership.set", map[string]any{
		"card_id": cardID,
		"owns":    req.Owns,
		"copies":  req.Copies,
	})

	writeJSON(w, http.StatusOK, messageResponse{Message: "ownership saved"})
}

func handleCollectionError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, collection.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, catalog.ErrUnavailable):
		logInternalError(r, "catalog", err)
		writeError(w, r, http.StatusInternalServerError, "catalog unavailable")
	default:
		logInternalError(r, "collection", err)
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}
