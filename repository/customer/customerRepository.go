package customerrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Tome326/MarketingAPI/model"
)

type InterestCount struct {
	Interest string
	Count    int
}

type Repo interface {
	Create(ctx context.Context, c *model.Customer) error
	List(ctx context.Context) ([]model.Customer, error)
	ByID(ctx context.Context, id int64) (*model.Customer, error)
	ByEmail(ctx context.Context, email string) (*model.Customer, error)
	ByInterest(ctx context.Context, interest string) ([]model.Customer, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
	DeleteByEmail(ctx context.Context, email string) (bool, error)
	CountByOptIn(ctx context.Context) (total, optedIn int, err error)
	InterestCounts(ctx context.Context) ([]InterestCount, error)
	Interests(ctx context.Context) ([]string, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, c *model.Customer) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO customers(name, email, phone_number, birthday, interest, agree_to_sms)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id`,
		c.Name, c.Email, c.PhoneNumber, c.Birthday, c.Interest, c.AgreeToSms,
	).Scan(&c.ID)
}

const customerCols = `id, name, email, phone_number, birthday, interest, agree_to_sms`

func (r *repo) List(ctx context.Context) ([]model.Customer, error) {
	return r.many(ctx, `SELECT `+customerCols+` FROM customers ORDER BY id`)
}

func (r *repo) ByInterest(ctx context.Context, interest string) ([]model.Customer, error) {
	return r.many(ctx, `SELECT `+customerCols+` FROM customers WHERE interest = $1 ORDER BY id`, interest)
}

func (r *repo) many(ctx context.Context, q string, args ...any) ([]model.Customer, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Customer
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.PhoneNumber, &c.Birthday, &c.Interest, &c.AgreeToSms); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Customer, error) {
	return r.one(ctx, `SELECT `+customerCols+` FROM customers WHERE id = $1`, id)
}

func (r *repo) ByEmail(ctx context.Context, email string) (*model.Customer, error) {
	return r.one(ctx, `SELECT `+customerCols+` FROM customers WHERE lower(email) = lower($1)`, email)
}

func (r *repo) one(ctx context.Context, q string, arg any) (*model.Customer, error) {
	c := &model.Customer{}
	err := r.db.QueryRowContext(ctx, q, arg).
		Scan(&c.ID, &c.Name, &c.Email, &c.PhoneNumber, &c.Birthday, &c.Interest, &c.AgreeToSms)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *repo) DeleteByID(ctx context.Context, id int64) (bool, error) {
	return r.del(ctx, `DELETE FROM customers WHERE id = $1`, id)
}

func (r *repo) DeleteByEmail(ctx context.Context, email string) (bool, error) {
	return r.del(ctx, `DELETE FROM customers WHERE lower(email) = lower($1)`, email)
}

func (r *repo) del(ctx context.Context, q string, arg any) (bool, error) {
	res, err := r.db.ExecContext(ctx, q, arg)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *repo) CountByOptIn(ctx context.Context) (int, int, error) {
	var total, optedIn int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(COUNT(*) FILTER (WHERE agree_to_sms), 0)
		FROM customers`,
	).Scan(&total, &optedIn)
	return total, optedIn, err
}

func (r *repo) InterestCounts(ctx context.Context) ([]InterestCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT interest, COUNT(*)
		FROM customers
		GROUP BY interest
		ORDER BY COUNT(*) DESC, interest`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []InterestCount
	for rows.Next() {
		var ic InterestCount
		if err := rows.Scan(&ic.Interest, &ic.Count); err != nil {
			return nil, err
		}
		out = append(out, ic)
	}
	return out, rows.Err()
}

func (r *repo) Interests(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT interest
		FROM customers
		WHERE btrim(interest) <> ''
		ORDER BY interest`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
