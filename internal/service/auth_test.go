package service

import (
	"context"
	"testing"

	"github.com/CoinLift/backend-coinlift/internal/dto"
	"github.com/CoinLift/backend-coinlift/internal/repository/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T, f *fixture) Auth {
	t.Setenv("ACCESS_SECRET", "test-secret")
	return newAuthService(zap.NewNop(), f.repo)
}

func registerRequest(username string) dto.RegisterRequest {
	return dto.RegisterRequest{
		Username: username,
		Email: username + "@example.com",
		Password: "hodl12345",
		ConfirmPassword: "hodl12345",
	}
}

func TestRegister(t *testing.T) {
	f := newFixture()
	svc := newTestAuthService(t, f)

	token, err := svc.Register(context.Background(), registerRequest("Alice"))
	require.NoError(t, err)
	require.NotEmpty(t, token)

	var found bool
	for _, user := range f.store.users {
		if user.Username == "alice" {
			found = true
			assert.Equal(t, "alice@example.com", user.Email)
			assert.Equal(t, "user", user.Role)
			assert.Equal(t, DEFAULT_AVATAR_KEY, user.AvatarKey)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hodl12345")))
		}
	}
	assert.True(t, found)

	// Registration leaves the caller with a valid session.
	require.Len(t, f.store.tokens, 1)
	assert.True(t, f.store.tokens[0].Valid())
	assert.Equal(t, token, f.store.tokens[0].Token)
}

func TestRegister_PasswordMismatch(t *testing.T) {
	f := newFixture()
	svc := newTestAuthService(t, f)

	req := registerRequest("alice")
	req.ConfirmPassword = "different123"

	_, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrPasswordMismatch)
	assert.Empty(t, f.store.users)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	f := newFixture()
	svc := newTestAuthService(t, f)

	ctx := context.Background()
	_, err := svc.Register(ctx, registerRequest("alice"))
	require.NoError(t, err)

	req := registerRequest("alice")
	req.Email = "other@example.com"
	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrUserWithUsernameAlreadyExists)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newFixture()
	svc := newTestAuthService(t, f)

	ctx := context.Background()
	_, err := svc.Register(ctx, registerRequest("alice"))
	require.NoError(t, err)

	req := registerRequest("alice2")
	req.Email = "Alice@example.com"
	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrUserWithEmailAlreadyExists)
}

func TestAuthenticate(t *testing.T) {
	f := newFixture()
	svc := newTestAuthService(t, f)

	ctx := context.Background()
	_, err := svc.Register(ctx, registerRequest("alice"))
	require.NoError(t, err)

	// Both the username and the email resolve the account.
	for _, id := range []string{"alice", "alice@example.com"} {
		token, err := svc.Authenticate(ctx, dto.AuthenticateRequest{
			EmailOrUsername: id,
			Password: "hodl12345",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	}
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	f := newFixture()
	svc := newTestAuthService(t, f)

	ctx := context.Background()
	_, err := svc.Register(ctx, registerRequest("alice"))
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, dto.AuthenticateRequest{
		EmailOrUsername: "alice",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_UnknownUser(t *testing.T) {
	f := newFixture()
	svc := newTestAuthService(t, f)

	_, err := svc.Authenticate(context.Background(), dto.AuthenticateRequest{
		EmailOrUsername: "ghost",
		Password: "hodl12345",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthorize(t *testing.T) {
	f := newFixture()
	svc := newTestAuthService(t, f)

	ctx := context.Background()
	token, err := svc.Register(ctx, registerRequest("alice"))
	require.NoError(t, err)

	p, err := svc.Authorize(ctx, token)
	require.NoError(t, err)
	assert.False(t, p.IsAnonymous())
	assert.Equal(t, "user", p.Role)
	assert.Equal(t, f.store.tokens[0].UserID, p.UserID)
}

func TestAuthorize_Garbage(t *testing.T) {
	f := newFixture()
	svc := newTestAuthService(t, f)

	_, err := svc.Authorize(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthorize_RevokedBySecondLogin(t *testing.T) {
	f := newFixture()
	svc := newTestAuthService(t, f)

	ctx := context.Background()
	first, err := svc.Register(ctx, registerRequest("alice"))
	require.NoError(t, err)

	second, err := svc.Authenticate(ctx, dto.AuthenticateRequest{
		EmailOrUsername: "alice",
		Password: "hodl12345",
	})
	require.NoError(t, err)

	// A fresh login leaves exactly one valid session.
	_, err = svc.Authorize(ctx, first)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	p, err := svc.Authorize(ctx, second)
	require.NoError(t, err)
	assert.False(t, p.IsAnonymous())

	valid := 0
	for _, stored := range f.store.tokens {
		if stored.Valid() {
			valid++
		}
	}
	assert.Equal(t, 1, valid)
}

func TestIssueToken_DistinctPerIssuance(t *testing.T) {
	f := newFixture()
	svc := newTestAuthService(t, f)

	ctx := context.Background()
	first, err := svc.Register(ctx, registerRequest("alice"))
	require.NoError(t, err)

	// Back-to-back logins land within the same second; the token strings
	// must still differ so the revoked row never shadows the fresh one.
	second, err := svc.Authenticate(ctx, dto.AuthenticateRequest{
		EmailOrUsername: "alice",
		Password: "hodl12345",
	})
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	p, err := svc.Authorize(ctx, second)
	require.NoError(t, err)
	assert.False(t, p.IsAnonymous())
}

// racingUserRepo reports both existence checks as negative, simulating
// a concurrent registration that slips past them and loses on the
// unique index instead.
type racingUserRepo struct {
	postgres.User
}

func (racingUserRepo) ExistsWithUsername(ctx context.Context, username string) (bool, error) {
	return false, nil
}

func (racingUserRepo) ExistsWithEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func TestRegister_RacingDuplicates(t *testing.T) {
	f := newFixture()
	f.repo.Postgres.User = racingUserRepo{User: f.repo.Postgres.User}
	svc := newTestAuthService(t, f)

	ctx := context.Background()
	_, err := svc.Register(ctx, registerRequest("alice"))
	require.NoError(t, err)

	// Losing on the email index reports the email sentinel.
	req := registerRequest("alice2")
	req.Email = "alice@example.com"
	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrUserWithEmailAlreadyExists)

	// Losing on the username index reports the username sentinel.
	req = registerRequest("alice")
	req.Email = "other@example.com"
	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrUserWithUsernameAlreadyExists)
}
