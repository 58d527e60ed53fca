package services

import (
	"context"

	"github.com/tunecord/tunecord/internal/domain/entities"
	"github.com/tunecord/tunecord/internal/domain/repositories"
	"github.com/tunecord/tunecord/pkg/logger"
)

// Default plan limits
const (
	PlanNormal           = "Normal"
	MaxPlaylistsPerUser  = 5
	MaxTracksPerPlaylist = 500
)

// Confirmer asks a user to accept or decline account creation.
// Implementations resolve a timeout as a decline.
type Confirmer interface {
	Confirm(ctx context.Context, userID string, prompt string) (bool, error)
}

// AccountService provisions library documents for new users
type AccountService struct {
	repo      repositories.LibraryRepository
	confirmer Confirmer
	logger    *logger.Logger
}

// NewAccountService creates a new account service
func NewAccountService(repo repositories.LibraryRepository, confirmer Confirmer, log *logger.Logger) *AccountService {
	return &AccountService{
		repo:      repo,
		confirmer: confirmer,
		logger:    log,
	}
}

// CreateAccount provisions a default library document for a user
// after they accept the confirmation prompt. It is idempotent: when
// the user is already provisioned nothing changes and no error is
// raised. Returns whether a new document was created.
func (s *AccountService) CreateAccount(ctx context.Context, userID string) (bool, error) {
	accepted, err := s.confirmer.Confirm(ctx, userID,
		"Do you want to create an account? Plan: `Default` | `5` playlists | `500` tracks in each playlist.")
	if err != nil {
		return false, err
	}
	if !accepted {
		return false, nil
	}

	created, err := s.repo.Insert(ctx, userID, entities.NewDefaultLibrary())
	if err != nil {
		return false, err
	}
	if created {
		s.logger.WithField("user", userID).Info("Account provisioned")
	}
	return created, nil
}

// CheckRoles returns a user's plan rank and limits
func (s *AccountService) CheckRoles(ctx context.Context, userID string) (rank string, maxPlaylists, maxTracks int) {
	return PlanNormal, MaxPlaylistsPerUser, MaxTracksPerPlaylist
}
