package customersvc

import (
	"context"
	"math"
	"sort"
	"time"
)

type InterestBreakdown struct {
	Interest string `json:"interest"`
	Count    int    `json:"count"`
}

type UpcomingBirthday struct {
	Name              string    `json:"name"`
	Interest          string    `json:"interest"`
	Birthday          time.Time `json:"birthday"`
	DaysUntilBirthday int       `json:"days_until_birthday"`
}

type Metrics struct {
	TotalCustomers    int                 `json:"total_customers"`
	OptedInCustomers  int                 `json:"opted_in_customers"`
	OptedOutCustomers int                 `json:"opted_out_customers"`
	OptInRate         float64             `json:"opt_in_rate"`
	InterestBreakdown []InterestBreakdown `json:"interest_breakdown"`
	UpcomingBirthdays []UpcomingBirthday  `json:"upcoming_birthdays"`
}

const upcomingBirthdayLimit = 5

func (s *service) Metrics(ctx context.Context) (*Metrics, error) {
	total, optedIn, err := s.cr.CountByOptIn(ctx)
	if err != nil {
		return nil, err
	}

	m := &Metrics{
		TotalCustomers:    total,
		OptedInCustomers:  optedIn,
		OptedOutCustomers: total - optedIn,
		InterestBreakdown: []InterestBreakdown{},
		UpcomingBirthdays: []UpcomingBirthday{},
	}
	if total == 0 {
		return m, nil
	}
	m.OptInRate = math.Round(float64(optedIn)/float64(total)*1000) / 10

	counts, err := s.cr.InterestCounts(ctx)
	if err != nil {
		return nil, err
	}
	for _, ic := range counts {
		m.InterestBreakdown = append(m.InterestBreakdown, InterestBreakdown{Interest: ic.Interest, Count: ic.Count})
	}

	customers, err := s.cr.List(ctx)
	if err != nil {
		return nil, err
	}

	today := dateOnly(s.now())
	for _, c := range customers {
		next := nextBirthday(c.Birthday, today)
		m.UpcomingBirthdays = append(m.UpcomingBirthdays, UpcomingBirthday{
			Name:              c.Name,
			Interest:          c.Interest,
			Birthday:          c.Birthday,
			DaysUntilBirthday: int(next.Sub(today).Hours() / 24),
		})
	}
	sort.SliceStable(m.UpcomingBirthdays, func(i, j int) bool {
		return m.UpcomingBirthdays[i].DaysUntilBirthday < m.UpcomingBirthdays[j].DaysUntilBirthday
	})
	if len(m.UpcomingBirthdays) > upcomingBirthdayLimit {
		m.UpcomingBirthdays = m.UpcomingBirthdays[:upcomingBirthdayLimit]
	}

	return m, nil
}

// nextBirthday returns the next occurrence of the birthday's month/day on or
// after today. Feb 29 clamps to Feb 28 when the target year has no leap day.
func nextBirthday(birthday, today time.Time) time.Time {
	next := onDate(today.Year(), birthday.Month(), birthday.Day())
	if next.Before(today) {
		next = onDate(today.Year()+1, birthday.Month(), birthday.Day())
	}
	return next
}

func onDate(year int, month time.Month, day int) time.Time {
	if d := daysInMonth(year, month); day > d {
		day = d
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
