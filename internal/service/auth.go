package service

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/CoinLift/backend-coinlift/internal/dto"
	"github.com/CoinLift/backend-coinlift/internal/model"
	"github.com/CoinLift/backend-coinlift/internal/repository"
	"github.com/CoinLift/backend-coinlift/internal/repository/postgres"
	"github.com/CoinLift/backend-coinlift/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	TOKEN_EXPIRY = time.Hour * 24

	// Every fresh account points at the same placeholder avatar until
	// the user uploads one.
	DEFAULT_AVATAR_KEY = "user-profile-image/default"
)

type authService struct {
	logger *zap.Logger
	repo *repository.Repository
}

func newAuthService(logger *zap.Logger, repo *repository.Repository) Auth {
	return &authService{
		logger: logger,
		repo: repo,
	}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (string, error) {
	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Password != req.ConfirmPassword {
		return "", ErrPasswordMismatch
	}

	usernameExists, err := s.repo.Postgres.User.ExistsWithUsername(ctx, req.Username)
	if err != nil {
		s.logger.Sugar().Errorf("failed to check username(%s) existence: %s", req.Username, err.Error())
		return "", ErrInternal
	}
	if usernameExists {
		return "", ErrUserWithUsernameAlreadyExists
	}

	emailExists, err := s.repo.Postgres.User.ExistsWithEmail(ctx, req.Email)
	if err != nil {
		s.logger.Sugar().Errorf("failed to check email(%s) existence: %s", req.Email, err.Error())
		return "", ErrInternal
	}
	if emailExists {
		return "", ErrUserWithEmailAlreadyExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 10)
	if err != nil {
		s.logger.Sugar().Errorf("failed to generate password hash: %s", err.Error())
		return "", ErrInternal
	}

	user, err := s.repo.Postgres.User.Create(ctx, model.User{
		Email: req.Email,
		Username: req.Username,
		PasswordHash: string(passwordHash),
		Role: "user",
		AvatarKey: DEFAULT_AVATAR_KEY,
	})
	if err != nil {
		// The unique indexes close the race the existence checks leave open.
		if postgres.IsUniqueViolation(err) {
			if strings.Contains(postgres.UniqueConstraint(err), "email") {
				return "", ErrUserWithEmailAlreadyExists
			}
			return "", ErrUserWithUsernameAlreadyExists
		}

		s.logger.Sugar().Errorf("failed to create user in postgres: %s", err.Error())
		return "", ErrInternal
	}

	return s.IssueToken(ctx, user)
}

func (s *authService) Authenticate(ctx context.Context, req dto.AuthenticateRequest) (string, error) {
	emailOrUsername := strings.ToLower(strings.TrimSpace(req.EmailOrUsername))

	user, err := s.repo.Postgres.User.FindByEmailOrUsername(ctx, emailOrUsername)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", ErrInvalidCredentials
		}

		s.logger.Sugar().Errorf("failed to find user(%s) in postgres: %s", emailOrUsername, err.Error())
		return "", ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.IssueToken(ctx, user)
}

// IssueToken revokes every earlier token of the user before the new one
// becomes the sole valid session.
func (s *authService) IssueToken(ctx context.Context, user *model.User) (string, error) {
	signed, err := utils.GenerateJWT(utils.GenerateJWTDto{
		Method: jwt.SigningMethodHS256,
		Secret: []byte(os.Getenv("ACCESS_SECRET")),
		Claims: jwt.MapClaims{
			"id": user.ID.String(),
			"role": user.Role,
			// jti keeps two issuances within the same second from
			// producing identical token strings.
			"jti": uuid.NewString(),
		},
		Expiry: TOKEN_EXPIRY,
	})
	if err != nil {
		s.logger.Sugar().Errorf("failed to generate jwt: %s", err.Error())
		return "", ErrInternal
	}

	if _, err := s.repo.Postgres.Token.Replace(ctx, model.AuthToken{
		UserID: user.ID,
		Token: signed,
	}); err != nil {
		s.logger.Sugar().Errorf("failed to replace tokens for user(%s): %s", user.ID.String(), err.Error())
		return "", ErrInternal
	}

	return signed, nil
}

func (s *authService) Authorize(ctx context.Context, token string) (Principal, error) {
	claims, err := utils.DecodeJWT(token, []byte(os.Getenv("ACCESS_SECRET")))
	if err != nil {
		return Anonymous, ErrUnauthenticated
	}

	idString, ok := claims["id"].(string)
	if !ok {
		return Anonymous, ErrUnauthenticated
	}
	id, err := uuid.Parse(idString)
	if err != nil {
		return Anonymous, ErrUnauthenticated
	}

	stored, err := s.repo.Postgres.Token.FindByToken(ctx, token)
	if err != nil {
		if err == pgx.ErrNoRows {
			return Anonymous, ErrUnauthenticated
		}

		s.logger.Sugar().Errorf("failed to find token in postgres: %s", err.Error())
		return Anonymous, ErrInternal
	}
	if !stored.Valid() || stored.UserID != id {
		return Anonymous, ErrUnauthenticated
	}

	role, _ := claims["role"].(string)
	return Principal{UserID: id, Role: role}, nil
}
