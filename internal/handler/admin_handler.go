package handler

import (
	"net/http"

	"github.com/parisxmas/formdesk/internal/repository"
	"github.com/parisxmas/formdesk/internal/service"
)

// AdminHandler serves the staff review view: every dossier (optionally
// filtered by CNAPS status) plus every file-bearing submission.
type AdminHandler struct {
	dossierSvc *service.DossierService
	subSvc     *service.SubmissionService
}

func NewAdminHandler(dossierSvc *service.DossierService, subSvc *service.SubmissionService) *AdminHandler {
	return &AdminHandler{dossierSvc: dossierSvc, subSvc: subSvc}
}

func (h *AdminHandler) Admin(w http.ResponseWriter, r *http.Request) {
	filtre := r.URL.Query().Get("filtre_cnaps")
	if filtre == "" {
		filtre = repository.FilterAll
	}

	dossiers, statuts, err := h.dossierSvc.List(filtre)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	subs, err := h.subSvc.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"dossiers":            dossiers,
		"filtre_cnaps":        filtre,
		"statuts_disponibles": statuts,
		"submissions":         subs,
	})
}
