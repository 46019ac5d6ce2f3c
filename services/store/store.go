// Package store is the gorm-backed persistence of players, friendships,
// matches, stats and friend chats.
package store

import (
	"Connect4/logger"
	"Connect4/models"
	"Connect4/models/postgres"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ErrDuplicate is returned when a unique username or email is already taken
var ErrDuplicate = errors.New("already exists")

// Credentials is what login needs to check a password
type Credentials struct {
	Username     string
	PasswordHash string
}

// GormStore implements every persistence operation on top of a *gorm.DB
type GormStore struct {
	db *gorm.DB
}

func New(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// notFound maps gorm's missing-row error to models.ErrNotFound
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, models.ErrNotFound)
	}
	return err
}

// duplicate maps a unique violation to ErrDuplicate
func duplicate(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return fmt.Errorf("%w: %s", ErrDuplicate, pqErr.Detail)
	}
	return err
}

// CreatePlayer inserts the user together with a zeroed stats row
func (s *GormStore) CreatePlayer(ctx context.Context, username, email, passwordHash string) (*models.Player, error) {
	user := postgres.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		MemberSince:  time.Now(),
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Stats").Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&postgres.Stats{Username: username}).Error
	})
	if err != nil {
		return nil, duplicate(err)
	}
	logger.Infof("[STORE] Created player %s", username)
	return &models.Player{Username: user.Username, Email: user.Email, MemberSince: user.MemberSince}, nil
}

func (s *GormStore) LoadPlayer(ctx context.Context, username string) (*models.Player, error) {
	var user postgres.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, notFound(err, "player "+username)
	}
	return &models.Player{Username: user.Username, Email: user.Email, MemberSince: user.MemberSince}, nil
}

// LoadCredentials looks a user up by username or email
func (s *GormStore) LoadCredentials(ctx context.Context, login string) (*Credentials, error) {
	var user postgres.User
	err := s.db.WithContext(ctx).Where("username = ? OR email = ?", login, login).First(&user).Error
	if err != nil {
		return nil, notFound(err, "player "+login)
	}
	return &Credentials{Username: user.Username, PasswordHash: user.PasswordHash}, nil
}

func (s *GormStore) FriendsOf(ctx context.Context, username string) ([]string, error) {
	var friendships []postgres.Friendship
	err := s.db.WithContext(ctx).
		Where("username1 = ? OR username2 = ?", username, username).
		Find(&friendships).Error
	if err != nil {
		return nil, err
	}
	friends := make([]string, 0, len(friendships))
	for _, f := range friendships {
		if f.Username1 == username {
			friends = append(friends, f.Username2)
		} else {
			friends = append(friends, f.Username1)
		}
	}
	return friends, nil
}

// AddFriendship stores the friendship between a and b. Adding an existing
// friendship is a no-op.
func (s *GormStore) AddFriendship(ctx context.Context, a, b string) error {
	friendship := postgres.NewFriendship(a, b)
	return s.db.WithContext(ctx).
		Where(postgres.Friendship{Username1: friendship.Username1, Username2: friendship.Username2}).
		FirstOrCreate(&friendship).Error
}

func (s *GormStore) LoadMatch(ctx context.Context, id string) (*models.Match, error) {
	var row postgres.Match
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		return nil, notFound(err, "match "+id)
	}
	return row.ToModel()
}

// CreateMatch inserts a fresh match between player1 and player2
func (s *GormStore) CreateMatch(ctx context.Context, player1, player2 string) (*models.Match, error) {
	match := models.NewMatch(uuid.NewString(), player1, player2, time.Now())
	row, err := postgres.MatchFromModel(match)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Omit("User1", "User2").Create(&row).Error; err != nil {
		return nil, err
	}
	return match, nil
}

// SaveMatch writes match over its stored row, as long as the stored row is
// still in progress. Otherwise it fails with models.ErrConflict.
func (s *GormStore) SaveMatch(ctx context.Context, match *models.Match) error {
	row, err := postgres.MatchFromModel(match)
	if err != nil {
		return err
	}
	result := s.db.WithContext(ctx).Model(&postgres.Match{}).
		Where("id = ? AND status = ?", match.ID, string(models.IN_PROGRESS)).
		Updates(map[string]interface{}{
			"board":        row.Board,
			"status":       row.Status,
			"winner":       row.Winner,
			"player_turn":  row.PlayerTurn,
			"datetime_end": row.DatetimeEnd,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := s.db.WithContext(ctx).Model(&postgres.Match{}).Where("id = ?", match.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("match %s: %w", match.ID, models.ErrNotFound)
		}
		return fmt.Errorf("match %s: %w", match.ID, models.ErrConflict)
	}
	return nil
}

// FindMatches lists the matches selected by filter, newest first
func (s *GormStore) FindMatches(ctx context.Context, filter models.MatchFilter) ([]*models.Match, error) {
	query := s.db.WithContext(ctx).Model(&postgres.Match{})
	if filter.Username != "" {
		query = query.Where("player1 = ? OR player2 = ?", filter.Username, filter.Username)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	var rows []postgres.Match
	if err := query.Order("datetime_begin DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	matches := make([]*models.Match, 0, len(rows))
	for i := range rows {
		match, err := rows[i].ToModel()
		if err != nil {
			return nil, err
		}
		matches = append(matches, match)
	}
	return matches, nil
}

func (s *GormStore) LoadStats(ctx context.Context, username string) (*models.Stats, error) {
	var row postgres.Stats
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&row).Error
	if err != nil {
		return nil, notFound(err, "stats of "+username)
	}
	return row.ToModel(), nil
}

func (s *GormStore) SaveStats(ctx context.Context, stats *models.Stats) error {
	row := postgres.StatsFromModel(stats)
	return s.db.WithContext(ctx).Save(&row).Error
}

// SaveStatsPair saves both records in one transaction
func (s *GormStore) SaveStatsPair(ctx context.Context, a, b *models.Stats) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rowA, rowB := postgres.StatsFromModel(a), postgres.StatsFromModel(b)
		if err := tx.Save(&rowA).Error; err != nil {
			return err
		}
		return tx.Save(&rowB).Error
	})
}

func (s *GormStore) SaveChat(ctx context.Context, chat *models.FriendChat) error {
	row := postgres.FriendChat{
		Sender:   chat.Sender,
		Receiver: chat.Receiver,
		Text:     chat.Text,
		Datetime: chat.Datetime,
	}
	return s.db.WithContext(ctx).Omit("SenderUser", "ReceiverUser").Create(&row).Error
}

// ChatHistory returns the chat between a and b, oldest first
func (s *GormStore) ChatHistory(ctx context.Context, a, b string) ([]models.FriendChat, error) {
	var rows []postgres.FriendChat
	err := s.db.WithContext(ctx).
		Where("(sender = ? AND receiver = ?) OR (sender = ? AND receiver = ?)", a, b, b, a).
		Order("datetime ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	chats := make([]models.FriendChat, 0, len(rows))
	for i := range rows {
		chats = append(chats, rows[i].ToModel())
	}
	return chats, nil
}
