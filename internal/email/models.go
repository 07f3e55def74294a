package email

// Message is one notification sent to every address in To, one mail per address
type Message struct {
	Subject string
	Text    string
	HTML    string
	To      []string
}

// DeliveryResult reports the per recipient outcome of a Send
type DeliveryResult struct {
	Sent   []string
	Failed map[string]error
}

// AllFailed reports whether nothing was delivered
func (r *DeliveryResult) AllFailed() bool {
	return len(r.Sent) == 0 && len(r.Failed) > 0
}
