package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campaign-scribe/campaign-scribe/internal/domain/entities"
)

// PlayerRepository handles player data operations
type PlayerRepository struct {
	db *gorm.DB
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(db *gorm.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// Create creates a new player
func (r *PlayerRepository) Create(ctx context.Context, player *entities.Player) error {
	if player == nil {
		return errors.New("player cannot be nil")
	}
	return r.db.WithContext(ctx).Create(player).Error
}

// FindByID finds a player by ID, with characters preloaded
func (r *PlayerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Player, error) {
	var player entities.Player
	if err := r.db.WithContext(ctx).
		Preload("Characters").
		Where("id = ?", id).
		First(&player).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &player, nil
}

// FindAll lists all players
func (r *PlayerRepository) FindAll(ctx context.Context) ([]*entities.Player, error) {
	var players []*entities.Player
	if err := r.db.WithContext(ctx).
		Preload("Characters").
		Order("name ASC").
		Find(&players).Error; err != nil {
		return nil, err
	}
	return players, nil
}

// Update updates a player
func (r *PlayerRepository) Update(ctx context.Context, player *entities.Player) error {
	if player == nil {
		return errors.New("player cannot be nil")
	}
	return r.db.WithContext(ctx).
		Model(&entities.Player{}).
		Where("id = ?", player.ID).
		Save(player).Error
}

// Delete deletes a player
func (r *PlayerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entities.Player{}, "id = ?", id).Error
}

// CharacterRepository handles character data operations
type CharacterRepository struct {
	db *gorm.DB
}

// NewCharacterRepository creates a new character repository
func NewCharacterRepository(db *gorm.DB) *CharacterRepository {
	return &CharacterRepository{db: db}
}

// Create creates a new character
func (r *CharacterRepository) Create(ctx context.Context, character *entities.Character) error {
	if character == nil {
		return errors.New("character cannot be nil")
	}
	return r.db.WithContext(ctx).Create(character).Error
}

// FindByID finds a character by ID
func (r *CharacterRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Character, error) {
	var character entities.Character
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&character).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &character, nil
}

// FindByPlayerID lists a player's characters
func (r *CharacterRepository) FindByPlayerID(ctx context.Context, playerID uuid.UUID) ([]*entities.Character, error) {
	var characters []*entities.Character
	if err := r.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Order("name ASC").
		Find(&characters).Error; err != nil {
		return nil, err
	}
	return characters, nil
}

// Update updates a character
func (r *CharacterRepository) Update(ctx context.Context, character *entities.Character) error {
	if character == nil {
		return errors.New("character cannot be nil")
	}
	return r.db.WithContext(ctx).
		Model(&entities.Character{}).
		Where("id = ?", character.ID).
		Save(character).Error
}

// Delete deletes a character
func (r *CharacterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entities.Character{}, "id = ?", id).Error
}
