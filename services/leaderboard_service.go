package services

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/go-redis/redis/v8"

	"netwin-platform/models"
)

// Redis keys for the earnings leaderboard.
const (
	leaderboardEarningsKey = "leaderboard:earnings"
	leaderboardInfoPrefix  = "leaderboard:player:"
)

// LeaderboardService ranks players by lifetime prize earnings in a Redis
// sorted set, with entry details cached alongside as JSON.
type LeaderboardService struct {
	client *redis.Client
	ctx    context.Context
}

func NewLeaderboardService(client *redis.Client) *LeaderboardService {
	return &LeaderboardService{client: client, ctx: context.Background()}
}

// RecordEarnings adds prize money to the user's ranking score and refreshes
// the cached entry details.
func (s *LeaderboardService) RecordEarnings(user *models.User, amount float64, kills int, won bool) error {
	member := strconv.FormatInt(user.ID, 10)
	if err := s.client.ZIncrBy(s.ctx, leaderboardEarningsKey, amount, member).Err(); err != nil {
		return err
	}

	entry, err := s.playerInfo(user.ID)
	if err != nil {
		entry = &models.LeaderboardEntry{
			UserID:         user.ID,
			Username:       user.Username,
			Country:        user.Country,
			ProfilePicture: user.ProfilePicture,
			Currency:       user.Currency,
		}
	}
	entry.Matches++
	entry.Kills += kills
	if won {
		entry.Wins++
	}
	entry.Earnings += amount
	return s.savePlayerInfo(entry)
}

// Top returns the highest earners, rank filled in, best first.
func (s *LeaderboardService) Top(limit int) ([]models.LeaderboardEntry, error) {
	members, err := s.client.ZRevRangeWithScores(s.ctx, leaderboardEarningsKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	var entries []models.LeaderboardEntry
	for i, member := range members {
		userID, err := strconv.ParseInt(member.Member.(string), 10, 64)
		if err != nil {
			continue
		}
		entry, err := s.playerInfo(userID)
		if err != nil {
			entry = &models.LeaderboardEntry{UserID: userID}
		}
		entry.Earnings = member.Score
		entry.Rank = i + 1
		entries = append(entries, *entry)
	}
	return entries, nil
}

// Rank returns the user's 1-based position, or -1 when unranked.
func (s *LeaderboardService) Rank(userID int64) (int, error) {
	rank, err := s.client.ZRevRank(s.ctx, leaderboardEarningsKey, strconv.FormatInt(userID, 10)).Result()
	if err != nil {
		if err == redis.Nil {
			return -1, nil
		}
		return -1, err
	}
	return int(rank) + 1, nil
}

func (s *LeaderboardService) playerInfo(userID int64) (*models.LeaderboardEntry, error) {
	data, err := s.client.Get(s.ctx, leaderboardInfoPrefix+strconv.FormatInt(userID, 10)).Result()
	if err != nil {
		return nil, err
	}
	var entry models.LeaderboardEntry
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *LeaderboardService) savePlayerInfo(entry *models.LeaderboardEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	key := leaderboardInfoPrefix + strconv.FormatInt(entry.UserID, 10)
	return s.client.Set(s.ctx, key, data, 0).Err()
}
