package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/parisxmas/formdesk/internal/models"
	"github.com/parisxmas/formdesk/internal/repository"
	"github.com/parisxmas/formdesk/internal/service"
	"github.com/parisxmas/formdesk/internal/storage"
)

type DossierHandler struct {
	svc   *service.DossierService
	files *storage.Store
}

func NewDossierHandler(svc *service.DossierService, files *storage.Store) *DossierHandler {
	return &DossierHandler{svc: svc, files: files}
}

func (h *DossierHandler) UpdateStatut(w http.ResponseWriter, r *http.Request) {
	h.updateField(w, r, h.svc.UpdateStatut, "statut")
}

func (h *DossierHandler) UpdateStatutCNAPS(w http.ResponseWriter, r *http.Request) {
	h.updateField(w, r, h.svc.UpdateStatutCNAPS, "statut_cnaps")
}

func (h *DossierHandler) UpdateCommentaire(w http.ResponseWriter, r *http.Request) {
	h.updateField(w, r, h.svc.UpdateCommentaire, "commentaire")
}

// updateField applies one single-column mutation and sends the caller
// back to the admin view.
func (h *DossierHandler) updateField(w http.ResponseWriter, r *http.Request, update func(uint, string) error, field string) {
	id, ok := dossierID(w, r)
	if !ok {
		return
	}
	err := update(id, r.FormValue(field))
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "dossier not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (h *DossierHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := dossierID(w, r)
	if !ok {
		return
	}
	err := h.svc.Delete(id)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "dossier not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// Attestation generates the pre-registration document for the dossier
// and returns it as an attachment.
func (h *DossierHandler) Attestation(w http.ResponseWriter, r *http.Request) {
	id, ok := dossierID(w, r)
	if !ok {
		return
	}
	name, err := h.svc.Attestation(id)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "dossier not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	path, err := h.files.Path(name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	http.ServeFile(w, r, path)
}

// Create seeds one dossier from the admin side.
func (h *DossierHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Nom         string `json:"nom"`
		Prenom      string `json:"prenom"`
		Formation   string `json:"formation"`
		Session     string `json:"session"`
		Statut      string `json:"statut"`
		StatutCNAPS string `json:"statut_cnaps"`
		Commentaire string `json:"commentaire"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	d := &models.Dossier{
		Nom:         req.Nom,
		Prenom:      req.Prenom,
		Formation:   req.Formation,
		Session:     req.Session,
		Statut:      req.Statut,
		StatutCNAPS: req.StatutCNAPS,
		Commentaire: req.Commentaire,
	}
	if err := h.svc.Create(d); errors.Is(err, service.ErrMissingField) {
		writeError(w, http.StatusBadRequest, "nom and prenom are required")
		return
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func dossierID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid dossier id")
		return 0, false
	}
	return uint(id), true
}
