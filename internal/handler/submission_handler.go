package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/parisxmas/formdesk/internal/repository"
	"github.com/parisxmas/formdesk/internal/service"
	"github.com/parisxmas/formdesk/internal/storage"
)

// SubmissionHandler covers the admin-side submission actions keyed by
// the (nom, prenom) pair: cascade delete and zip export.
type SubmissionHandler struct {
	subSvc *service.SubmissionService
}

func NewSubmissionHandler(subSvc *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{subSvc: subSvc}
}

func (h *SubmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	subs, err := h.subSvc.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

// Delete removes the submission for the posted key along with every one
// of its stored documents. An absent key is reported as not found; a
// second delete for the same key therefore also returns 404.
func (h *SubmissionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	nom, prenom, ok := identityKey(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "nom and prenom are required")
		return
	}

	err := h.subSvc.Delete(nom, prenom)
	if errors.Is(err, repository.ErrSubmissionNotFound) {
		writeError(w, http.StatusNotFound, "submission not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// Download streams a zip of the submission's existing documents. A key
// without a submission, or one with an empty document list, gets a 404
// rather than an empty archive.
func (h *SubmissionHandler) Download(w http.ResponseWriter, r *http.Request) {
	nom, prenom, ok := identityKey(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "nom and prenom are required")
		return
	}

	archiveName := fmt.Sprintf("%s_%s_dossier.zip", storage.Sanitize(nom), storage.Sanitize(prenom))
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, archiveName))

	// Archive reports ErrNoFiles before writing any byte, so the
	// headers above can still be replaced on the 404 path.
	err := h.subSvc.Archive(nom, prenom, w)
	if errors.Is(err, service.ErrNoFiles) {
		w.Header().Del("Content-Disposition")
		w.Header().Set("Content-Type", "application/json")
		writeError(w, http.StatusNotFound, "no files for this applicant")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
}

func identityKey(r *http.Request) (string, string, bool) {
	nom := r.FormValue("nom")
	prenom := r.FormValue("prenom")
	if nom == "" || prenom == "" {
		return "", "", false
	}
	return nom, prenom, true
}
