package handler

import (
	"net/http"

	"github.com/parisxmas/formdesk/internal/service"
	"github.com/parisxmas/formdesk/internal/storage"
)

type DashboardHandler struct {
	dossierSvc *service.DossierService
	subSvc     *service.SubmissionService
	files      *storage.Store
}

func NewDashboardHandler(dossierSvc *service.DossierService, subSvc *service.SubmissionService, files *storage.Store) *DashboardHandler {
	return &DashboardHandler{dossierSvc: dossierSvc, subSvc: subSvc, files: files}
}

func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dossierCount, _ := h.dossierSvc.Count()
	subCount, _ := h.subSvc.Count()
	fileCount, _ := h.files.Count()

	writeJSON(w, http.StatusOK, map[string]any{
		"dossierCount":    dossierCount,
		"submissionCount": subCount,
		"fileCount":       fileCount,
	})
}
