package author

import (
	"context"
	"log/slog"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/pkg/uuid"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateProfileInput holds the data for a new author profile.
type CreateProfileInput struct {
	PenName string
	Bio     *string
	Website *string
}

// CreateProfile turns an existing user into an author. A user can hold at
// most one author profile; a second attempt is a Conflict.
func (service *Service) CreateProfile(context context.Context, userID string, input CreateProfileInput) (*Author, error) {
	validator := &validate.Validator{}
	validator.Required(FieldPenName, input.PenName).PenName(FieldPenName, input.PenName)
	if input.Bio != nil {
		validator.MaxLen(FieldBio, *input.Bio, 2000)
	}
	if input.Website != nil {
		validator.MaxLen(FieldWebsite, *input.Website, 500)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.repo.FindByUserID(context, userID); err == nil {
		return nil, apperr.Conflict("User is already an author")
	}

	profile := &Author{
		ID:          uuid.New(),
		UserID:      userID,
		PenName:     input.PenName,
		Bio:         input.Bio,
		Website:     input.Website,
		SocialLinks: map[string]string{},
	}

	if err := service.repo.CreateProfile(context, profile); err != nil {
		return nil, err
	}

	service.logger.Info("author_profile_created",
		slog.String("author_id", profile.ID),
		slog.String("user_id", userID),
		slog.String("pen_name", profile.PenName),
	)
	return profile, nil
}

// EnrollAuthor adapts CreateProfile to the registration flow's contract.
func (service *Service) EnrollAuthor(context context.Context, userID, penName string) error {
	_, err := service.CreateProfile(context, userID, CreateProfileInput{PenName: penName})
	return err
}

func (service *Service) ListAuthors(context context.Context, filter Filter, limit, offset int) ([]*Author, int, error) {
	return service.repo.ListAuthors(context, filter, limit, offset)
}

func (service *Service) GetAuthor(context context.Context, id string) (*Author, error) {
	return service.repo.GetAuthor(context, id)
}

// GetByUserID resolves the author profile owned by a user account.
func (service *Service) GetByUserID(context context.Context, userID string) (*Author, error) {
	return service.repo.FindByUserID(context, userID)
}

// AuthorIDForUser resolves a user account to its author profile ID. Used by
// the book domain for ownership checks.
func (service *Service) AuthorIDForUser(context context.Context, userID string) (string, error) {
	profile, err := service.repo.FindByUserID(context, userID)
	if err != nil {
		return "", err
	}
	return profile.ID, nil
}

// ProfilePatch holds optional author profile changes.
type ProfilePatch struct {
	PenName *string
	Bio     *string
	Website *string
}

// UpdateProfile applies a partial patch to the caller's own author profile.
func (service *Service) UpdateProfile(context context.Context, userID string, patch ProfilePatch) (*Author, error) {
	profile, err := service.repo.FindByUserID(context, userID)
	if err != nil {
		return nil, err
	}

	if patch.PenName != nil {
		validator := &validate.Validator{}
		validator.Required(FieldPenName, *patch.PenName).PenName(FieldPenName, *patch.PenName)
		if err := validator.Err(); err != nil {
			return nil, err
		}
		profile.PenName = *patch.PenName
	}
	if patch.Bio != nil {
		profile.Bio = patch.Bio
	}
	if patch.Website != nil {
		profile.Website = patch.Website
	}

	if err := service.repo.Update(context, profile); err != nil {
		return nil, err
	}

	service.logger.Info("author_profile_updated", slog.String("author_id", profile.ID))
	return profile, nil
}

// AddSocialLink attaches a social profile link to the caller's author profile.
func (service *Service) AddSocialLink(context context.Context, userID, platform, url string) (*Author, error) {
	validator := &validate.Validator{}
	validator.Required(FieldPlatform, platform).MaxLen(FieldPlatform, platform, 50)
	validator.Required(FieldURL, url).MaxLen(FieldURL, url, 500)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	profile, err := service.repo.FindByUserID(context, userID)
	if err != nil {
		return nil, err
	}

	profile.SetSocialLink(platform, url)
	if err := service.repo.Update(context, profile); err != nil {
		return nil, err
	}

	return profile, nil
}
