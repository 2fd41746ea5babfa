package email

type EmailRequest struct {
	To      []string // Recipients
	Bcc     []string // Blind carbon copy (optional)
	Subject string
	Body    string // Plain text
}

// Recipients is every envelope address: To followed by Bcc.
func (r EmailRequest) Recipients() []string {
	out := make([]string, 0, len(r.To)+len(r.Bcc))
	out = append(out, r.To...)
	return append(out, r.Bcc...)
}
