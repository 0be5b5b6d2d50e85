// Package queue defines message payloads exchanged over the message broker
// and the background consumer that processes them.
package queue

// VerificationEmailEvent is published when a registration needs its
// verification email sent.  It carries everything the mailer needs so the
// consumer never has to query the primary database.
type VerificationEmailEvent struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	VerifyToken string `json:"verify_token"`
	VerifyURL   string `json:"verify_url"`
	RequestedAt string `json:"requested_at"`
}
