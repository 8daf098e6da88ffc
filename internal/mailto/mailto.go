// Package mailto builds mailto: links for job applications and partnership
// inquiries. Nothing is sent by the server.
package mailto

import (
	"fmt"
	"net/url"
	"strings"
)

// Greeting opens every composed message body.
const Greeting = "Dear Hiring Team,"

const partnershipGreeting = "Dear Partnerships Team,"

// Link composes a mailto: URI. Spaces are encoded as %20 rather than "+"
// since mail clients do not decode the latter.
func Link(to, subject, body string) string {
	q := url.Values{}
	if subject != "" {
		q.Set("subject", subject)
	}
	if body != "" {
		q.Set("body", body)
	}
	u := "mailto:" + url.PathEscape(strings.TrimSpace(to))
	if enc := q.Encode(); enc != "" {
		u += "?" + strings.ReplaceAll(enc, "+", "%20")
	}
	return u
}

// Application returns the link for applying to role.
func Application(to, role string) string {
	role = strings.TrimSpace(role)
	subject := "Application for " + role
	body := strings.Join([]string{
		Greeting,
		"",
		fmt.Sprintf("I would like to apply for the %s position.", role),
		"Please find my CV and portfolio attached.",
		"",
		"Best regards,",
	}, "\n")
	return Link(to, subject, body)
}

// Partnership returns the link for a business inquiry.
func Partnership(to string) string {
	body := strings.Join([]string{
		partnershipGreeting,
		"",
		"I am reaching out to discuss a potential partnership.",
		"",
		"Company:",
		"Website:",
		"",
		"Best regards,",
	}, "\n")
	return Link(to, "Partnership Inquiry", body)
}
