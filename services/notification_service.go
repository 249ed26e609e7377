package services

import (
	"sync"
	"time"

	"netwin-platform/models"
	"netwin-platform/store"
	"netwin-platform/utils"
)

// NotificationService keeps the append-only per-user notification log.
// Entries are never deleted and never expire; the read flag is the only
// mutation allowed after append.
type NotificationService struct {
	mu    sync.Mutex
	store store.Store
}

func NewNotificationService(s store.Store) *NotificationService {
	return &NotificationService{store: s}
}

// Add appends a notification for the given user and returns the stored entry.
func (s *NotificationService) Add(userID int64, title, message, kind string) (*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, _, err := store.GetJSON[[]models.Notification](s.store, store.KeyNotifications)
	if err != nil {
		return nil, err
	}
	n := models.Notification{
		ID:        utils.NewID(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      kind,
		Read:      false,
		CreatedAt: time.Now(),
	}
	all = append(all, n)
	if err := store.SetJSON(s.store, store.KeyNotifications, all); err != nil {
		return nil, err
	}
	return &n, nil
}

// ForUser returns the user's notifications in insertion order.
func (s *NotificationService) ForUser(userID int64) ([]models.Notification, error) {
	all, _, err := store.GetJSON[[]models.Notification](s.store, store.KeyNotifications)
	if err != nil {
		return nil, err
	}
	var out []models.Notification
	for _, n := range all {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

// UnreadCount returns how many of the user's notifications are unread.
func (s *NotificationService) UnreadCount(userID int64) (int, error) {
	list, err := s.ForUser(userID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, n := range list {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

// MarkRead flips one of the user's notifications to read.
func (s *NotificationService) MarkRead(userID, notificationID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, _, err := store.GetJSON[[]models.Notification](s.store, store.KeyNotifications)
	if err != nil {
		return err
	}
	for i := range all {
		if all[i].UserID == userID && all[i].ID == notificationID {
			all[i].Read = true
		}
	}
	return store.SetJSON(s.store, store.KeyNotifications, all)
}

// MarkAllRead flips every notification belonging to the user. Other users'
// entries are left untouched.
func (s *NotificationService) MarkAllRead(userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, _, err := store.GetJSON[[]models.Notification](s.store, store.KeyNotifications)
	if err != nil {
		return err
	}
	for i := range all {
		if all[i].UserID == userID {
			all[i].Read = true
		}
	}
	return store.SetJSON(s.store, store.KeyNotifications, all)
}
