package services

import (
	"log"
	"sync"
	"time"

	"netwin-platform/models"
	"netwin-platform/store"
	"netwin-platform/utils"
)

// KycService manages the per-user document lists behind the aggregate KYC
// status that gates withdrawals. Documents are stored as a user-id → list
// mapping; the aggregate status lives on the User record.
type KycService struct {
	mu            sync.Mutex
	store         store.Store
	notifications *NotificationService
}

func NewKycService(s store.Store, notifications *NotificationService) *KycService {
	return &KycService{store: s, notifications: notifications}
}

// SubmitDocument appends a pending document for the user. A first submission
// moves the user's aggregate status from not_submitted to pending.
func (s *KycService) SubmitDocument(user *models.User, docType, documentNumber, frontImage, backImage, selfie string) (*models.KycDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byUser, _, err := store.GetJSON[map[int64][]models.KycDocument](s.store, store.KeyKyc)
	if err != nil {
		return nil, err
	}
	if byUser == nil {
		byUser = make(map[int64][]models.KycDocument)
	}

	doc := models.KycDocument{
		ID:             utils.NewID(),
		UserID:         user.ID,
		Type:           docType,
		DocumentNumber: documentNumber,
		FrontImage:     frontImage,
		BackImage:      backImage,
		Selfie:         selfie,
		Status:         models.KycDocPending,
		CreatedAt:      time.Now(),
	}
	byUser[user.ID] = append(byUser[user.ID], doc)
	if err := store.SetJSON(s.store, store.KeyKyc, byUser); err != nil {
		return nil, err
	}

	if user.KycStatus == models.KycNotSubmitted {
		user.KycStatus = models.KycPending
		if err := s.saveUserStatus(user.ID, models.KycPending); err != nil {
			return nil, err
		}
	}
	return &doc, nil
}

// DocumentsForUser returns the user's submitted documents in order.
func (s *KycService) DocumentsForUser(userID int64) ([]models.KycDocument, error) {
	byUser, _, err := store.GetJSON[map[int64][]models.KycDocument](s.store, store.KeyKyc)
	if err != nil {
		return nil, err
	}
	return byUser[userID], nil
}

// Review is the admin decision on one document. It sets the document status,
// recomputes the user's aggregate status, and notifies the user.
func (s *KycService) Review(userID, docID int64, approve bool, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byUser, _, err := store.GetJSON[map[int64][]models.KycDocument](s.store, store.KeyKyc)
	if err != nil {
		return err
	}
	docs := byUser[userID]
	found := false
	for i := range docs {
		if docs[i].ID == docID {
			if approve {
				docs[i].Status = models.KycDocApproved
				docs[i].RejectionReason = ""
			} else {
				docs[i].Status = models.KycDocRejected
				docs[i].RejectionReason = reason
			}
			found = true
			break
		}
	}
	if !found {
		return ErrDocumentNotFound
	}
	byUser[userID] = docs
	if err := store.SetJSON(s.store, store.KeyKyc, byUser); err != nil {
		return err
	}

	aggregate := aggregateStatus(docs)
	if err := s.saveUserStatus(userID, aggregate); err != nil {
		return err
	}

	title, message := "KYC Update", "Your KYC verification is under review."
	switch aggregate {
	case models.KycApproved:
		title, message = "KYC Approved", "Your identity has been verified. Withdrawals are now enabled."
	case models.KycRejected:
		title, message = "KYC Rejected", "Your KYC submission was rejected. "+reason
	}
	if _, err := s.notifications.Add(userID, title, message, models.NotifAdmin); err != nil {
		log.Printf("⚠️  kyc: failed to notify user %d: %v", userID, err)
	}
	return nil
}

// aggregateStatus derives the user-level status from the document list: any
// approved document verifies the user; otherwise a pending one keeps the
// review open; otherwise everything was rejected.
func aggregateStatus(docs []models.KycDocument) string {
	if len(docs) == 0 {
		return models.KycNotSubmitted
	}
	hasPending := false
	for _, d := range docs {
		switch d.Status {
		case models.KycDocApproved:
			return models.KycApproved
		case models.KycDocPending:
			hasPending = true
		}
	}
	if hasPending {
		return models.KycPending
	}
	return models.KycRejected
}

func (s *KycService) saveUserStatus(userID int64, status string) error {
	user, ok, err := store.GetJSON[models.User](s.store, store.KeyUser)
	if err != nil {
		return err
	}
	if !ok || user.ID != userID {
		return nil
	}
	user.KycStatus = status
	return store.SetJSON(s.store, store.KeyUser, user)
}

// RequiredDocuments lists the accepted document types for the user's country.
func (s *KycService) RequiredDocuments(user *models.User) []string {
	return utils.RequiredKycDocuments(user.Country)
}
