package email

import (
	"bytes"
	"embed"
	htmltemplate "html/template"
	texttemplate "text/template"

	ierr "github.com/papertrails/papertrails/internal/errors"
)

//go:embed templates/*
var templateFiles embed.FS

const (
	TemplateAgreementAction   = "agreement_action"
	TemplateAgreementReminder = "agreement_reminder"
)

var (
	htmlTemplates = htmltemplate.Must(htmltemplate.New("").ParseFS(templateFiles, "templates/*.html"))
	textTemplates = texttemplate.Must(texttemplate.New("").ParseFS(templateFiles, "templates/*.txt"))
)

// AgreementEmailData feeds the agreement templates
type AgreementEmailData struct {
	CompanyName   string
	Title         string
	Action        string
	ActorName     string
	Kind          string
	TimeRemaining string
	AgreementID   string
	Reference     string
	Department    string
	Partner       string
	AgreementType string
	StartDate     string
	ExpiryDate    string
	Link          string
}

// Render executes the named template in both its text and HTML variant
func Render(name string, data any) (text string, html string, err error) {
	var textBuf, htmlBuf bytes.Buffer

	if err := textTemplates.ExecuteTemplate(&textBuf, name+".txt", data); err != nil {
		return "", "", ierr.WithError(err).
			WithHintf("Failed to render %s email", name).
			Mark(ierr.ErrSystem)
	}
	if err := htmlTemplates.ExecuteTemplate(&htmlBuf, name+".html", data); err != nil {
		return "", "", ierr.WithError(err).
			WithHintf("Failed to render %s email", name).
			Mark(ierr.ErrSystem)
	}
	return textBuf.String(), htmlBuf.String(), nil
}
