package customersvc

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Tome326/MarketingAPI/model"
	customerrepo "github.com/Tome326/MarketingAPI/repository/customer"
)

var (
	ErrBadInput   = errors.New("bad input")
	ErrEmailTaken = errors.New("email already registered")
	ErrPhoneTaken = errors.New("phone number already registered")
	ErrNotFound   = errors.New("customer not found")
)

type AddReq struct {
	Name        string
	Email       string
	PhoneNumber string
	Birthday    time.Time
	Interest    string
	AgreeToSms  bool
}

type Service interface {
	Add(ctx context.Context, req AddReq) (*model.Customer, error)
	List(ctx context.Context) ([]model.Customer, error)
	ByID(ctx context.Context, id int64) (*model.Customer, error)
	ByEmail(ctx context.Context, email string) (*model.Customer, error)
	DeleteByID(ctx context.Context, id int64) error
	DeleteByEmail(ctx context.Context, email string) error
	Metrics(ctx context.Context) (*Metrics, error)
	Interests(ctx context.Context) ([]string, error)
}

type service struct {
	cr                 customerrepo.Repo
	defaultCountryCode string
	now                func() time.Time
}

func New(cr customerrepo.Repo, defaultCountryCode string) Service {
	return &service{cr: cr, defaultCountryCode: defaultCountryCode, now: time.Now}
}

func (s *service) Add(ctx context.Context, req AddReq) (*model.Customer, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if name == "" || email == "" || req.Birthday.IsZero() {
		return nil, ErrBadInput
	}

	phone, err := NormalizePhone(req.PhoneNumber, s.defaultCountryCode)
	if err != nil {
		return nil, ErrBadInput
	}

	c := &model.Customer{
		Name:        name,
		Email:       email,
		PhoneNumber: phone,
		Birthday:    req.Birthday,
		Interest:    strings.TrimSpace(req.Interest),
		AgreeToSms:  req.AgreeToSms,
	}

	if err := s.cr.Create(ctx, c); err != nil {
		if derr := mapDuplicateErr(err); derr != nil {
			return nil, derr
		}
		return nil, err
	}
	return c, nil
}

func mapDuplicateErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		cn := strings.ToLower(pgErr.ConstraintName)
		msg := strings.ToLower(pgErr.Message)

		if strings.Contains(cn, "customers_phone") || strings.Contains(msg, "phone") {
			return ErrPhoneTaken
		}
		if strings.Contains(cn, "customers_email") || strings.Contains(msg, "email") {
			return ErrEmailTaken
		}
		return ErrBadInput
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]model.Customer, error) {
	return s.cr.List(ctx)
}

func (s *service) ByID(ctx context.Context, id int64) (*model.Customer, error) {
	c, err := s.cr.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	return c, nil
}

func (s *service) ByEmail(ctx context.Context, email string) (*model.Customer, error) {
	c, err := s.cr.ByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	return c, nil
}

func (s *service) DeleteByID(ctx context.Context, id int64) error {
	ok, err := s.cr.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *service) DeleteByEmail(ctx context.Context, email string) error {
	ok, err := s.cr.DeleteByEmail(ctx, email)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *service) Interests(ctx context.Context) ([]string, error) {
	return s.cr.Interests(ctx)
}
