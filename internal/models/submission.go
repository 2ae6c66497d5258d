package models

// Submission is one applicant's intake form entry. Fichiers holds the
// stored names of the uploaded documents, in intake order; every name
// resolves to a file under the upload directory until the submission
// is deleted.
type Submission struct {
	Nom        string   `json:"nom"`
	Prenom     string   `json:"prenom"`
	Email      string   `json:"email"`
	Horodatage string   `json:"timestamp"`
	Fichiers   []string `json:"fichiers,omitempty"`
}

// Key returns the (nom, prenom) identity pair used for delete and
// download lookups. Duplicate pairs collide silently.
func (s *Submission) Key() (string, string) {
	return s.Nom, s.Prenom
}

// Matches reports whether the submission carries the given identity key.
func (s *Submission) Matches(nom, prenom string) bool {
	return s.Nom == nom && s.Prenom == prenom
}
