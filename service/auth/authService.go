package authsvc

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Tome326/MarketingAPI/config"
	"github.com/Tome326/MarketingAPI/model"
	userrepo "github.com/Tome326/MarketingAPI/repository/user"
	"github.com/Tome326/MarketingAPI/util/hash"
	jwtutil "github.com/Tome326/MarketingAPI/util/jwt"
)

var (
	ErrBadInput      = errors.New("bad input")
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already in use")
	ErrInvalidCreds  = errors.New("invalid username or password")
	ErrInactive      = errors.New("account is inactive")
)

type Service interface {
	Register(ctx context.Context, req model.RegisterReq) (*model.User, error)
	Login(ctx context.Context, req model.LoginReq) (*model.LoginResp, error)
}

type service struct {
	ur  userrepo.Repo
	jwt config.JWT
}

func New(ur userrepo.Repo, jwt config.JWT) Service { return &service{ur: ur, jwt: jwt} }

func (s *service) Register(ctx context.Context, req model.RegisterReq) (*model.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if len(username) < 3 || len(username) > 100 || email == "" || len(req.Password) < 8 {
		return nil, ErrBadInput
	}

	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		IsActive:     true,
	}

	// The unique indexes are the real guard; two concurrent registrations
	// both pass any pre-check, so the insert error is what gets mapped.
	if err := s.ur.Create(ctx, u); err != nil {
		if derr := mapDuplicateErr(err); derr != nil {
			return nil, derr
		}
		return nil, err
	}
	return u, nil
}

func mapDuplicateErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		cn := strings.ToLower(pgErr.ConstraintName)
		msg := strings.ToLower(pgErr.Message)

		if strings.Contains(cn, "users_username") || strings.Contains(msg, "username") {
			return ErrUsernameTaken
		}
		if strings.Contains(cn, "users_email") || strings.Contains(msg, "email") {
			return ErrEmailTaken
		}
		return ErrBadInput
	}
	return nil
}

func (s *service) Login(ctx context.Context, req model.LoginReq) (*model.LoginResp, error) {
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return nil, ErrBadInput
	}

	u, err := s.ur.ByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if u == nil || !hash.Check(u.PasswordHash, req.Password) {
		return nil, ErrInvalidCreds
	}
	if !u.IsActive {
		return nil, ErrInactive
	}

	if err := s.ur.TouchLastLogin(ctx, u.ID, time.Now().UTC()); err != nil {
		return nil, err
	}

	token, err := jwtutil.Issue(s.jwt.Secret, s.jwt.Issuer, s.jwt.Audience, u.ID, u.Username, u.Email, s.jwt.ExpirationMinutes)
	if err != nil {
		return nil, err
	}

	return &model.LoginResp{Token: token, Username: u.Username, Email: u.Email}, nil
}
