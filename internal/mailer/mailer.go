// Package mailer sends the intake confirmation notices. Delivery is
// best-effort: callers dispatch off the request path and log failures.
package mailer

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/parisxmas/formdesk/internal/models"
)

type Mailer struct {
	dialer *gomail.Dialer
	from   string
	ops    string
}

// New configures an SMTP mailer. ops receives an internal copy of every
// confirmation.
func New(host string, port int, user, pass, from, ops string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
		ops:    ops,
	}
}

// SubmissionReceived sends the applicant confirmation and the internal
// copy in one SMTP session. No retry: the caller decides what a failure
// means.
func (m *Mailer) SubmissionReceived(sub *models.Submission) error {
	applicant := gomail.NewMessage()
	applicant.SetHeader("From", m.from)
	applicant.SetHeader("To", sub.Email)
	applicant.SetHeader("Subject", "Confirmation de dépôt de dossier")
	applicant.SetBody("text/plain", fmt.Sprintf(
		"Bonjour %s %s,\n\nVotre dossier a bien été reçu le %s. "+
			"Nous reviendrons vers vous après examen des pièces.\n\nCordialement,\nLe secrétariat",
		sub.Prenom, sub.Nom, sub.Horodatage))

	internal := gomail.NewMessage()
	internal.SetHeader("From", m.from)
	internal.SetHeader("To", m.ops)
	internal.SetHeader("Subject", fmt.Sprintf("Nouveau dossier: %s %s", sub.Nom, sub.Prenom))
	internal.SetBody("text/plain", fmt.Sprintf(
		"Dossier reçu le %s\nNom: %s\nPrénom: %s\nEmail: %s\nPièces: %d",
		sub.Horodatage, sub.Nom, sub.Prenom, sub.Email, len(sub.Fichiers)))

	return m.dialer.DialAndSend(applicant, internal)
}
