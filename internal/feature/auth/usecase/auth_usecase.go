package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"feed_backend/internal/feature/auth/domain/entity"
	"feed_backend/internal/platform/media"
)

// dummyHash is compared against when the email is unknown so that both
// failure paths of Login cost one bcrypt comparison.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// avatarFolder is the media folder for profile pictures.
const avatarFolder = "profile_pics"

// MaxPasswordBytes is the longest secret bcrypt accepts.
const MaxPasswordBytes = 72

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention, the interface is defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user.
	// It returns ErrEmailAlreadyExists when the store rejects a duplicate email.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail returns ErrUserNotFound when no user has the email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID returns ErrUserNotFound when no user has the ID.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// UpdateProfile applies the non-nil fields of upd and returns the stored user.
	UpdateProfile(ctx context.Context, id uint, upd entity.ProfileUpdate) (*entity.User, error)
}

// TokenIssuer issues session assertions for a user.
type TokenIssuer interface {
	GenerateToken(userID uint) (string, error)
}

// PasswordHasher is the one-way hash capability for secrets.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// MediaStore stores uploaded bytes and returns a durable URL.
type MediaStore interface {
	Store(ctx context.Context, folder string, upload media.Upload) (string, error)
}

// SignupInput is the input of Signup. Avatar is optional.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Headline string
	Bio      string
	Avatar   *media.Upload
}

// authUsecase implements the account business logic.
type authUsecase struct {
	users  UserRepository
	tokens TokenIssuer
	hasher PasswordHasher
	media  MediaStore
}

// NewAuthUsecase creates a new authUsecase.
func NewAuthUsecase(users UserRepository, tokens TokenIssuer, hasher PasswordHasher, store MediaStore) *authUsecase {
	return &authUsecase{
		users:  users,
		tokens: tokens,
		hasher: hasher,
		media:  store,
	}
}

// Signup registers a user and logs them in.
// The email pre-check is a fast path only; the unique index decides.
func (u *authUsecase) Signup(ctx context.Context, in SignupInput) (*entity.User, string, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	switch {
	case in.Name == "":
		return nil, "", fmt.Errorf("%w: name is required", ErrValidation)
	case in.Email == "":
		return nil, "", fmt.Errorf("%w: email is required", ErrValidation)
	case in.Password == "":
		return nil, "", fmt.Errorf("%w: password is required", ErrValidation)
	case len(in.Password) > MaxPasswordBytes:
		return nil, "", fmt.Errorf("%w: password must be at most %d bytes", ErrValidation, MaxPasswordBytes)
	}

	if _, err := u.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, "", ErrEmailAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	var avatarURL string
	if in.Avatar != nil {
		avatarURL, err = u.media.Store(ctx, avatarFolder, *in.Avatar)
		if err != nil {
			slog.Warn("avatar upload failed", "error", err, "email", in.Email)
			return nil, "", fmt.Errorf("%w: %v", ErrMediaUpload, err)
		}
	}

	user := &entity.User{
		Name:      in.Name,
		Email:     in.Email,
		Password:  hashed,
		Headline:  strings.TrimSpace(in.Headline),
		Bio:       in.Bio,
		AvatarURL: avatarURL,
	}
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := u.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

// Login authenticates a user and returns the stored user with a fresh token.
// Unknown email and wrong password both yield ErrInvalidCredentials.
func (u *authUsecase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.Password
	}
	compareErr := u.hasher.Compare(passwordHash, password)
	if err != nil || compareErr != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := u.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

// Profile returns the caller's stored profile. It always reads the store.
func (u *authUsecase) Profile(ctx context.Context, userID uint) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies a partial update to the caller's name and bio.
// A present but blank name is rejected; bio may be cleared.
func (u *authUsecase) UpdateProfile(ctx context.Context, userID uint, upd entity.ProfileUpdate) (*entity.User, error) {
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
		}
		upd.Name = &name
	}
	if upd.IsEmpty() {
		return u.users.FindByID(ctx, userID)
	}
	return u.users.UpdateProfile(ctx, userID, upd)
}
