package handler

import (
	"embed"
	"errors"
	"html/template"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/parisxmas/formdesk/internal/service"
	"github.com/parisxmas/formdesk/internal/storage"
)

//go:embed templates/formulaire.html
var templatesFS embed.FS

var formTemplate = template.Must(template.ParseFS(templatesFS, "templates/formulaire.html"))

// PublicHandler serves the applicant-facing surface: the intake form,
// the multipart submission endpoint and raw stored-file retrieval.
type PublicHandler struct {
	subSvc *service.SubmissionService
	files  *storage.Store
}

func NewPublicHandler(subSvc *service.SubmissionService, files *storage.Store) *PublicHandler {
	return &PublicHandler{subSvc: subSvc, files: files}
}

// Home renders the intake form, with a confirmation banner after a
// successful submission.
func (h *PublicHandler) Home(w http.ResponseWriter, r *http.Request) {
	data := struct{ Submitted bool }{Submitted: r.URL.Query().Get("submitted") == "true"}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := formTemplate.Execute(w, data); err != nil {
		writeError(w, http.StatusInternalServerError, "render form")
	}
}

// Submit accepts the multipart intake form. Document fields are read in
// the recorded order: identity documents, residence proof, host
// documents, host identity, host attestation.
func (h *PublicHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	var uploads []service.Upload
	var open []multipart.File
	defer func() {
		for _, f := range open {
			f.Close()
		}
	}()

	collect := func(field, category string) error {
		if r.MultipartForm == nil {
			return nil
		}
		for _, fh := range r.MultipartForm.File[field] {
			f, err := fh.Open()
			if err != nil {
				return err
			}
			open = append(open, f)
			uploads = append(uploads, service.Upload{
				Category: category,
				Filename: fh.Filename,
				Data:     f,
			})
		}
		return nil
	}

	for _, fc := range []struct{ field, category string }{
		{"id_files[]", service.CategoryID},
		{"domicile_file", service.CategoryDomicile},
		{"hebergeur_files[]", service.CategoryHebergeur},
		{"identite_hebergeant", service.CategoryIdentiteHebergeant},
		{"attestation_hebergement", service.CategoryAttestationHebergement},
	} {
		if err := collect(fc.field, fc.category); err != nil {
			writeError(w, http.StatusBadRequest, "read upload "+fc.field)
			return
		}
	}

	_, err := h.subSvc.Intake(
		r.FormValue("nom"),
		r.FormValue("prenom"),
		r.FormValue("email"),
		uploads,
	)
	if errors.Is(err, service.ErrMissingField) {
		writeError(w, http.StatusBadRequest, "nom, prenom and email are required")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	http.Redirect(w, r, "/?submitted=true", http.StatusSeeOther)
}

// ServeUpload returns one stored file by name. Names that are not bare
// file names are rejected; the endpoint is otherwise unauthenticated.
func (h *PublicHandler) ServeUpload(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "filename")
	path, err := h.files.Path(name)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid file name")
		return
	}
	if !h.files.Exists(name) {
		writeError(w, http.StatusNotFound, "file not found")
		return
	}
	http.ServeFile(w, r, path)
}
