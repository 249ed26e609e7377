package services

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/gosimple/slug"

	"netwin-platform/models"
	"netwin-platform/store"
	"netwin-platform/utils"
)

// TournamentService owns the tournament catalog and the match/registration
// ledger. Joining is a read-modify-write sequence over the shared store:
// resolve, balance check, match append, entry-fee debit, counter bump,
// notification — guarded by one mutex so concurrent joins in this process
// cannot interleave.
type TournamentService struct {
	mu            sync.Mutex
	store         store.Store
	wallet        *WalletService
	notifications *NotificationService
}

func NewTournamentService(s store.Store, wallet *WalletService, notifications *NotificationService) *TournamentService {
	return &TournamentService{store: s, wallet: wallet, notifications: notifications}
}

// Seed populates the catalog with the fixture set on first run so the
// platform is never empty. Idempotent: a catalog with any tournament in it
// is left alone.
func (s *TournamentService) Seed() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, _, err := store.GetJSON[[]models.Tournament](s.store, store.KeyTournaments)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	fixtures := fixtureTournaments(time.Now())
	if err := store.SetJSON(s.store, store.KeyTournaments, fixtures); err != nil {
		return err
	}
	log.Printf("✅ Seeded %d fixture tournaments", len(fixtures))
	return nil
}

func fixtureTournaments(now time.Time) []models.Tournament {
	mk := func(title, desc, mode, game, gameMap string, fee, pool, perKill float64, start time.Time, maxPlayers int, status string, room *models.RoomDetails) models.Tournament {
		return models.Tournament{
			ID:          utils.NewID(),
			Title:       title,
			Slug:        slug.Make(title),
			Description: desc,
			Image:       "/images/maps/" + slug.Make(gameMap) + ".jpg",
			Mode:        mode,
			GameMode:    game,
			Map:         gameMap,
			EntryFee:    fee,
			PrizePool:   pool,
			PerKill:     perKill,
			Date:        start,
			MaxPlayers:  maxPlayers,
			Status:      status,
			RoomDetails: room,
		}
	}

	liveRoom := &models.RoomDetails{
		RoomID:    "58214",
		Password:  "netwin",
		VisibleAt: now.Add(-15 * time.Minute),
	}

	return []models.Tournament{
		mk("Erangel Solo Showdown", "Classic solo battle royale on Erangel.",
			models.ModeSolo, models.GamePUBG, "Erangel", 50, 4500, 10,
			now.Add(6*time.Hour), 100, models.TournamentUpcoming, nil),
		mk("Miramar Duo Clash", "Bring a partner and own the desert.",
			models.ModeDuo, models.GameBGMI, "Miramar", 100, 9000, 20,
			now.Add(24*time.Hour), 50, models.TournamentUpcoming, nil),
		mk("Sanhok Squad Rush", "Fast drops, hot zones, squad wipes.",
			models.ModeSquad, models.GamePUBG, "Sanhok", 200, 18000, 25,
			now.Add(48*time.Hour), 25, models.TournamentUpcoming, nil),
		mk("Vikendi TDM Frenzy", "Team deathmatch in the snow.",
			models.ModeTDM, models.GameBGMI, "Vikendi", 30, 2500, 5,
			now.Add(-30*time.Minute), 40, models.TournamentLive, liveRoom),
		mk("Livik Sprint Cup", "Quick matches on the smallest map.",
			models.ModeSolo, models.GameBGMI, "Livik", 20, 1500, 5,
			now.Add(72*time.Hour), 100, models.TournamentUpcoming, nil),
	}
}

// List returns every tournament in catalog order.
func (s *TournamentService) List() ([]models.Tournament, error) {
	all, _, err := store.GetJSON[[]models.Tournament](s.store, store.KeyTournaments)
	return all, err
}

// GetByID returns the tournament and whether it exists; an unknown id is an
// absence, not an error.
func (s *TournamentService) GetByID(id int64) (*models.Tournament, bool, error) {
	all, _, err := store.GetJSON[[]models.Tournament](s.store, store.KeyTournaments)
	if err != nil {
		return nil, false, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], true, nil
		}
	}
	return nil, false, nil
}

// Filter applies the provided criteria, ANDed. Omitted fields impose no
// constraint; search text matches title or description case-insensitively.
// The catalog is never mutated.
func (s *TournamentService) Filter(f models.TournamentFilters) ([]models.Tournament, error) {
	all, _, err := store.GetJSON[[]models.Tournament](s.store, store.KeyTournaments)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(f.Search))
	var out []models.Tournament
	for _, t := range all {
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.Mode != "" && t.Mode != f.Mode {
			continue
		}
		if f.GameMode != "" && t.GameMode != f.GameMode {
			continue
		}
		if f.Map != "" && t.Map != f.Map {
			continue
		}
		if f.MinEntryFee != nil && t.EntryFee < *f.MinEntryFee {
			continue
		}
		if f.MaxEntryFee != nil && t.EntryFee > *f.MaxEntryFee {
			continue
		}
		if f.DateFrom != nil && t.Date.Before(*f.DateFrom) {
			continue
		}
		if f.DateTo != nil && t.Date.After(*f.DateTo) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Title), search) &&
			!strings.Contains(strings.ToLower(t.Description), search) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// JoinTournament registers the user (plus teammates) for a tournament:
// resolve the tournament, check the entry fee against the wallet, append the
// match, debit the fee, bump the registration counter, notify. Validation
// failures commit nothing. Capacity is deliberately not checked — a full
// tournament can still be joined.
func (s *TournamentService) JoinTournament(tournamentID int64, user *models.User, teammateIDs []int64) (*models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, _, err := store.GetJSON[[]models.Tournament](s.store, store.KeyTournaments)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range all {
		if all[i].ID == tournamentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrTournamentNotFound
	}
	tournament := all[idx]

	if user.WalletBalance < tournament.EntryFee {
		return nil, ErrInsufficientBalance
	}

	roster := []models.TeamMember{{
		ID:             user.ID,
		Username:       user.Username,
		GameID:         user.GameID,
		ProfilePicture: user.ProfilePicture,
		IsOwner:        true,
	}}
	// Teammate identities are not resolved against real accounts; ids are
	// wrapped into placeholder roster entries.
	for _, id := range teammateIDs {
		roster = append(roster, models.TeamMember{
			ID:       id,
			Username: fmt.Sprintf("player_%d", id),
		})
	}

	match := models.Match{
		ID:              utils.NewID(),
		TournamentID:    tournament.ID,
		TournamentTitle: tournament.Title,
		Date:            tournament.Date,
		Status:          models.MatchUpcoming,
		Mode:            tournament.Mode,
		Map:             tournament.Map,
		TeamMembers:     roster,
		RoomDetails:     tournament.RoomDetails,
		CreatedAt:       time.Now(),
	}

	matches, _, err := store.GetJSON[[]models.Match](s.store, store.KeyMatches)
	if err != nil {
		return nil, err
	}
	matches = append(matches, match)
	if err := store.SetJSON(s.store, store.KeyMatches, matches); err != nil {
		return nil, err
	}

	if tournament.EntryFee > 0 {
		if _, err := s.wallet.Debit(user, tournament.EntryFee, models.TxEntryFee, "Entry fee for "+tournament.Title); err != nil {
			return nil, err
		}
	}

	all[idx].RegisteredPlayers++
	if err := store.SetJSON(s.store, store.KeyTournaments, all); err != nil {
		return nil, err
	}

	message := fmt.Sprintf("You have joined %s. Good luck!", tournament.Title)
	if _, err := s.notifications.Add(user.ID, "Tournament Joined", message, models.NotifMatch); err != nil {
		log.Printf("⚠️  tournaments: failed to notify user %d: %v", user.ID, err)
	}

	return &match, nil
}

// SubmitResult records a result screenshot for review. Approval is an admin
// concern and happens elsewhere.
func (s *TournamentService) SubmitResult(matchID int64, screenshotURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	matches, _, err := store.GetJSON[[]models.Match](s.store, store.KeyMatches)
	if err != nil {
		return err
	}
	for i := range matches {
		if matches[i].ID == matchID {
			matches[i].ResultSubmitted = true
			matches[i].ResultScreenshot = screenshotURL
			matches[i].Status = models.MatchVerifying
			return store.SetJSON(s.store, store.KeyMatches, matches)
		}
	}
	return ErrMatchNotFound
}

// ApproveResult is the admin decision on a submitted result: it finalizes
// the match outcome and returns the roster owner's id so callers can credit
// the prize.
func (s *TournamentService) ApproveResult(matchID int64, position, kills int, prize float64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matches, _, err := store.GetJSON[[]models.Match](s.store, store.KeyMatches)
	if err != nil {
		return 0, err
	}
	for i := range matches {
		if matches[i].ID != matchID {
			continue
		}
		matches[i].ResultApproved = true
		matches[i].Status = models.MatchCompleted
		matches[i].Position = position
		matches[i].Kills = kills
		matches[i].Prize = prize
		if err := store.SetJSON(s.store, store.KeyMatches, matches); err != nil {
			return 0, err
		}
		for _, member := range matches[i].TeamMembers {
			if member.IsOwner {
				return member.ID, nil
			}
		}
		return 0, nil
	}
	return 0, ErrMatchNotFound
}

// MatchesForUser returns every match whose roster contains the user, in
// insertion order.
func (s *TournamentService) MatchesForUser(userID int64) ([]models.Match, error) {
	matches, _, err := store.GetJSON[[]models.Match](s.store, store.KeyMatches)
	if err != nil {
		return nil, err
	}
	var out []models.Match
	for _, m := range matches {
		for _, member := range m.TeamMembers {
			if member.ID == userID {
				out = append(out, m)
				break
			}
		}
	}
	return out, nil
}

// GetMatch returns the match and whether it exists.
func (s *TournamentService) GetMatch(id int64) (*models.Match, bool, error) {
	matches, _, err := store.GetJSON[[]models.Match](s.store, store.KeyMatches)
	if err != nil {
		return nil, false, err
	}
	for i := range matches {
		if matches[i].ID == id {
			return &matches[i], true, nil
		}
	}
	return nil, false, nil
}

// UpdateStatus moves a tournament along its lifecycle. Transitions are
// monotonic (upcoming → live → completed); cancellation is allowed from any
// state before completed.
func (s *TournamentService) UpdateStatus(id int64, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, _, err := store.GetJSON[[]models.Tournament](s.store, store.KeyTournaments)
	if err != nil {
		return err
	}
	for i := range all {
		if all[i].ID != id {
			continue
		}
		if !validTransition(all[i].Status, status) {
			return ErrInvalidTransition
		}
		all[i].Status = status
		return store.SetJSON(s.store, store.KeyTournaments, all)
	}
	return ErrTournamentNotFound
}

func validTransition(from, to string) bool {
	switch from {
	case models.TournamentUpcoming:
		return to == models.TournamentLive || to == models.TournamentCancelled
	case models.TournamentLive:
		return to == models.TournamentCompleted || to == models.TournamentCancelled
	default:
		return false
	}
}
