package model

import "time"

// NotificationKind names the message template sent to a candidate.
type NotificationKind string

const (
	NotifyRejection           NotificationKind = "rejection"
	NotifyOffer               NotificationKind = "offer"
	NotifyInterviewInvite     NotificationKind = "interview_invite"
	NotifyApplicationReceived NotificationKind = "application_received"
)

// Notification is an email the console would send. It only ever reaches the
// in-memory outbox.
type Notification struct {
	ID          string           `json:"id"`
	Kind        NotificationKind `json:"kind"`
	CandidateID string           `json:"candidateId"`
	To          string           `json:"to"`
	Subject     string           `json:"subject"`
	Body        string           `json:"body"`
	Locale      string           `json:"locale"`
	CreatedAt   time.Time        `json:"createdAt"`
	DeliveredAt time.Time        `json:"deliveredAt,omitzero"`
}
