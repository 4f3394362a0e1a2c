package repository

import (
	"context"
	"time"

	"github.com/Domenick1991/jetcharter/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StatsRepository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountActiveJets(ctx context.Context) (int64, error)
	CountBookings(ctx context.Context) (int64, error)
	BookingsByStatus(ctx context.Context) (map[domain.BookingStatus]int64, error)
	CompletedRevenue(ctx context.Context, arrivedSince *time.Time) (int64, error)
	TopJetsByHours(ctx context.Context, limit int) ([]domain.JetUsage, error)
	MonthlyBookings(ctx context.Context, since time.Time) ([]domain.MonthlyCount, error)
}

type PGStatsRepository struct {
	db *pgxpool.Pool
}

func NewStatsRepository(db *pgxpool.Pool) StatsRepository {
	return &PGStatsRepository{db: db}
}

func (r *PGStatsRepository) CountUsers(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT count(*) FROM users`)
}

func (r *PGStatsRepository) CountActiveJets(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT count(*) FROM jets WHERE is_active = true`)
}

func (r *PGStatsRepository) CountBookings(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT count(*) FROM bookings`)
}

func (r *PGStatsRepository) count(ctx context.Context, query string) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, query).Scan(&n)
	return n, err
}

func (r *PGStatsRepository) BookingsByStatus(ctx context.Context) (map[domain.BookingStatus]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT status, count(*) FROM bookings GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byStatus := make(map[domain.BookingStatus]int64)
	for rows.Next() {
		var status domain.BookingStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		byStatus[status] = count
	}
	return byStatus, rows.Err()
}

// CompletedRevenue sums priceUSD over Completed bookings, optionally limited
// to those that arrived since the given instant.
func (r *PGStatsRepository) CompletedRevenue(ctx context.Context, arrivedSince *time.Time) (int64, error) {
	var revenue int64
	var err error
	if arrivedSince != nil {
		err = r.db.QueryRow(ctx, `SELECT COALESCE(sum(price_usd), 0) FROM bookings WHERE status=$1 AND arrival_at >= $2`,
			domain.BookingStatusCompleted, *arrivedSince).Scan(&revenue)
	} else {
		err = r.db.QueryRow(ctx, `SELECT COALESCE(sum(price_usd), 0) FROM bookings WHERE status=$1`,
			domain.BookingStatusCompleted).Scan(&revenue)
	}
	return revenue, err
}

func (r *PGStatsRepository) TopJetsByHours(ctx context.Context, limit int) ([]domain.JetUsage, error) {
	rows, err := r.db.Query(ctx, `SELECT b.jet_id, COALESCE(j.name, 'Unknown'), COALESCE(j.category, '-'),
			round(sum(b.flight_hours)::numeric, 2), sum(b.price_usd)
		FROM bookings b
		LEFT JOIN jets j ON j.id = b.jet_id
		WHERE b.status = $1
		GROUP BY b.jet_id, j.name, j.category
		ORDER BY sum(b.flight_hours) DESC
		LIMIT $2`, domain.BookingStatusCompleted, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	top := make([]domain.JetUsage, 0, limit)
	for rows.Next() {
		var u domain.JetUsage
		if err := rows.Scan(&u.JetID, &u.Name, &u.Category, &u.Hours, &u.Revenue); err != nil {
			return nil, err
		}
		top = append(top, u)
	}
	return top, rows.Err()
}

func (r *PGStatsRepository) MonthlyBookings(ctx context.Context, since time.Time) ([]domain.MonthlyCount, error) {
	rows, err := r.db.Query(ctx, `SELECT extract(year FROM created_at)::int, extract(month FROM created_at)::int, count(*)
		FROM bookings
		WHERE created_at >= $1
		GROUP BY 1, 2
		ORDER BY 1, 2`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	monthly := make([]domain.MonthlyCount, 0, 12)
	for rows.Next() {
		var m domain.MonthlyCount
		if err := rows.Scan(&m.Year, &m.Month, &m.Count); err != nil {
			return nil, err
		}
		monthly = append(monthly, m)
	}
	return monthly, rows.Err()
}

var _ StatsRepository = (*PGStatsRepository)(nil)
