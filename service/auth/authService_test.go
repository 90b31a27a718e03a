package authsvc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/Tome326/MarketingAPI/config"
	"github.com/Tome326/MarketingAPI/model"
	userrepo "github.com/Tome326/MarketingAPI/repository/user"
	"github.com/Tome326/MarketingAPI/util/hash"
	jwtutil "github.com/Tome326/MarketingAPI/util/jwt"
)

type mockRepo struct {
	createFn     func(ctx context.Context, u *model.User) error
	byUsernameFn func(ctx context.Context, username string) (*model.User, error)
	touched      []int64
}

var _ userrepo.Repo = (*mockRepo)(nil)

func (m *mockRepo) Create(ctx context.Context, u *model.User) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, u)
}

func (m *mockRepo) ByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.byUsernameFn == nil {
		return nil, nil
	}
	return m.byUsernameFn(ctx, username)
}

func (m *mockRepo) ByID(ctx context.Context, id int64) (*model.User, error) { return nil, nil }
func (m *mockRepo) List(ctx context.Context) ([]model.User, error)          { return nil, nil }
func (m *mockRepo) Delete(ctx context.Context, id int64) (bool, error)      { return false, nil }
func (m *mockRepo) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	m.touched = append(m.touched, id)
	return nil
}

var testJWT = config.JWT{
	Secret:            "test-secret",
	Issuer:            "MarketingAPI",
	Audience:          "MarketingAPIClients",
	ExpirationMinutes: 60,
}

func TestRegister_Success(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			u.ID = 42
			u.CreatedAt = time.Now().UTC()
			return nil
		},
	}
	svc := New(m, testJWT)

	u, err := svc.Register(ctx, model.RegisterReq{
		Username: "ada",
		Email:    "ADA@Example.COM",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.NotNil(t, u)
	require.Equal(t, int64(42), u.ID)
	require.Equal(t, "ada@example.com", u.Email)
	require.True(t, u.IsActive)
	require.False(t, u.CreatedAt.IsZero())
	require.NotEmpty(t, u.PasswordHash)
	require.NotEqual(t, "supersecret", u.PasswordHash)
}

func TestRegister_BadInput(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockRepo{}, testJWT)

	cases := []model.RegisterReq{
		{Username: "ab", Email: "a@b.com", Password: "longenough"}, // username too short
		{Username: "ada", Email: "", Password: "longenough"},      // empty email
		{Username: "ada", Email: "a@b.com", Password: "short"},    // password < 8
	}
	for _, req := range cases {
		_, err := svc.Register(ctx, req)
		require.ErrorIs(t, err, ErrBadInput)
	}
}

func TestRegister_DuplicateMapping(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		constraint string
		want       error
	}{
		{"users_username_key", ErrUsernameTaken},
		{"users_email_key", ErrEmailTaken},
	}
	for _, tc := range cases {
		m := &mockRepo{
			createFn: func(ctx context.Context, u *model.User) error {
				return &pgconn.PgError{Code: "23505", ConstraintName: tc.constraint}
			},
		}
		svc := New(m, testJWT)
		_, err := svc.Register(ctx, model.RegisterReq{
			Username: "ada",
			Email:    "ada@example.com",
			Password: "supersecret",
		})
		require.ErrorIs(t, err, tc.want)
	}
}

func TestRegister_CreateError(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			return errors.New("db down")
		},
	}
	svc := New(m, testJWT)

	_, err := svc.Register(ctx, model.RegisterReq{
		Username: "ada",
		Email:    "ada@example.com",
		Password: "supersecret",
	})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrUsernameTaken)
	require.NotErrorIs(t, err, ErrEmailTaken)
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	h, err := hash.HashPassword(plain)
	require.NoError(t, err)
	return h
}

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	pw := "supersecret"
	hashed := mustHash(t, pw)

	m := &mockRepo{
		byUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{
				ID:           7,
				Username:     "ada",
				Email:        "ada@example.com",
				PasswordHash: hashed,
				IsActive:     true,
			}, nil
		},
	}
	svc := New(m, testJWT)

	resp, err := svc.Login(ctx, model.LoginReq{Username: "ada", Password: pw})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "ada", resp.Username)
	require.Equal(t, "ada@example.com", resp.Email)
	require.Equal(t, []int64{7}, m.touched)

	claims, err := jwtutil.Parse(testJWT.Secret, testJWT.Issuer, testJWT.Audience, resp.Token)
	require.NoError(t, err)
	uid, err := claims.UserID()
	require.NoError(t, err)
	require.Equal(t, int64(7), uid)
	require.Equal(t, "ada", claims.Name)
	require.Equal(t, "ada@example.com", claims.Email)
	require.NotEmpty(t, claims.ID)
}

func TestLogin_UserNotFound(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockRepo{}, testJWT)

	_, err := svc.Login(ctx, model.LoginReq{Username: "missing", Password: "whatever"})
	require.ErrorIs(t, err, ErrInvalidCreds)
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	hashed := mustHash(t, "correct-password")

	m := &mockRepo{
		byUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{ID: 101, Username: "ada", PasswordHash: hashed, IsActive: true}, nil
		},
	}
	svc := New(m, testJWT)

	_, err := svc.Login(ctx, model.LoginReq{Username: "ada", Password: "wrong-password"})
	require.ErrorIs(t, err, ErrInvalidCreds)
	require.Empty(t, m.touched)
}

func TestLogin_InactiveAccount(t *testing.T) {
	ctx := context.Background()
	pw := "correct-password"
	hashed := mustHash(t, pw)

	m := &mockRepo{
		byUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{ID: 5, Username: "ada", PasswordHash: hashed, IsActive: false}, nil
		},
	}
	svc := New(m, testJWT)

	_, err := svc.Login(ctx, model.LoginReq{Username: "ada", Password: pw})
	require.ErrorIs(t, err, ErrInactive)
	require.Empty(t, m.touched)
}
