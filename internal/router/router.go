package router

import (
	"github.com/go-chi/chi/v5"

	"github.com/parisxmas/formdesk/internal/auth"
	"github.com/parisxmas/formdesk/internal/handler"
	mw "github.com/parisxmas/formdesk/internal/middleware"
)

func New(
	jwtSecret string,
	authH *handler.AuthHandler,
	publicH *handler.PublicHandler,
	adminH *handler.AdminHandler,
	dossierH *handler.DossierHandler,
	subH *handler.SubmissionHandler,
	dashH *handler.DashboardHandler,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.RequestIDMiddleware)
	r.Use(mw.Logger)
	r.Use(mw.CORS)

	// Public surface
	r.Get("/", publicH.Home)
	r.Post("/submit", publicH.Submit)
	r.Get("/uploads/{filename}", publicH.ServeUpload)
	r.Post("/login", authH.Login)

	// Staff surface
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(jwtSecret))

		r.Get("/me", authH.Me)

		r.Get("/admin", adminH.Admin)
		r.Get("/admin/dashboard", dashH.Dashboard)
		r.Post("/admin/dossiers", dossierH.Create)

		// Dossier review actions
		r.Post("/statut/{id}", dossierH.UpdateStatut)
		r.Post("/statut_cnaps/{id}", dossierH.UpdateStatutCNAPS)
		r.Post("/commentaire/{id}", dossierH.UpdateCommentaire)
		r.Get("/supprimer/{id}", dossierH.Delete)
		r.Get("/attestation/{id}", dossierH.Attestation)

		// Submission actions keyed by (nom, prenom)
		r.Get("/submissions", subH.List)
		r.Post("/delete", subH.Delete)
		r.Post("/download", subH.Download)
	})

	return r
}
