package models

import "time"

const (
	KycDocPending  = "pending"
	KycDocApproved = "approved"
	KycDocRejected = "rejected"
)

// KycDocument is one submitted identity document. The user's aggregate
// KycStatus is derived from these but stored separately on the User record.
type KycDocument struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"userId"`
	Type            string    `json:"type"`
	DocumentNumber  string    `json:"documentNumber"`
	FrontImage      string    `json:"frontImage"`
	BackImage       string    `json:"backImage,omitempty"`
	Selfie          string    `json:"selfie,omitempty"`
	Status          string    `json:"status"`
	RejectionReason string    `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}
