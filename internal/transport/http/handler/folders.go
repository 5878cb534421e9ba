package handler

import (
	"encoding/json"
	"net/http"

	"github.com/oceanpet/api/internal/application/folder"
	"github.com/oceanpet/api/internal/domain"
	"github.com/oceanpet/api/internal/pkg/validate"
	"github.com/oceanpet/api/internal/transport/http/middleware"
)

// FolderHandler handles pet folder endpoints.
type FolderHandler struct {
	svc folder.Service
}

func NewFolderHandler(svc folder.Service) *FolderHandler { return &FolderHandler{svc: svc} }

func (h *FolderHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	folders, err := h.svc.List(r.Context(), claims.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, folders)
}

func (h *FolderHandler) Sync(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.SyncFoldersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	folders, err := h.svc.Sync(r.Context(), claims.UserID, &req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, folders)
}
