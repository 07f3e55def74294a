package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reminderData(kind, remaining string) *AgreementEmailData {
	return &AgreementEmailData{
		CompanyName:   "Papertrails",
		Title:         "Office <lease>",
		Kind:          kind,
		TimeRemaining: remaining,
		AgreementID:   "A_2026_0001",
		Reference:     "N/A",
		Department:    "Legal",
		Partner:       "Acme",
		AgreementType: "Lease",
		StartDate:     "January 1, 2025",
		ExpiryDate:    "March 1, 2026",
		Link:          "https://papers.example.com/agreements/agr_1",
	}
}

func TestRender_Reminder(t *testing.T) {
	tests := []struct {
		name      string
		kind      string
		remaining string
		want      string
	}{
		{name: "before", kind: "before", remaining: "30 days", want: "expires in 30 days, on March 1, 2026"},
		{name: "on", kind: "on", want: "has expired today (March 1, 2026)"},
		{name: "after", kind: "after", remaining: "1 month", want: "expired 1 month ago, on March 1, 2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, html, err := Render(TemplateAgreementReminder, reminderData(tt.kind, tt.remaining))
			require.NoError(t, err)
			assert.Contains(t, text, tt.want)
			assert.Contains(t, text, "Agreement ID: A_2026_0001")
			assert.Contains(t, text, "https://papers.example.com/agreements/agr_1")
			assert.NotEmpty(t, html)
		})
	}
}

func TestRender_EscapesHTML(t *testing.T) {
	text, html, err := Render(TemplateAgreementReminder, reminderData("on", ""))
	require.NoError(t, err)
	assert.Contains(t, text, "Office <lease>")
	assert.Contains(t, html, "Office &lt;lease&gt;")
}

func TestRender_Action(t *testing.T) {
	data := reminderData("", "")
	data.Action = "created"
	data.ActorName = "Avery"

	text, _, err := Render(TemplateAgreementAction, data)
	require.NoError(t, err)
	assert.Contains(t, text, "has been created by Avery")
	assert.Contains(t, text, "Partner: Acme")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, _, err := Render("missing", reminderData("", ""))
	assert.Error(t, err)
}
