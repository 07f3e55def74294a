package dto

// AgreementSweepResponse summarizes one run of the daily agreement sweep
type AgreementSweepResponse struct {
	Date             string `json:"date"`
	Total            int    `json:"total"`
	MarkedExpired    int    `json:"marked_expired"`
	RemindersDue     int    `json:"reminders_due"`
	RemindersSent    int    `json:"reminders_sent"`
	RemindersSkipped int    `json:"reminders_skipped"`
	Failed           int    `json:"failed"`
}
