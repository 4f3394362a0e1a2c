package stats

import (
	"context"
	"time"

	"github.com/Domenick1991/jetcharter/internal/domain"
	"github.com/Domenick1991/jetcharter/internal/repository"
)

type StatsUseCase interface {
	Dashboard(ctx context.Context) (*domain.DashboardStats, error)
}

type StatsService struct {
	repo repository.StatsRepository
}

func NewStatsService(repo repository.StatsRepository) *StatsService {
	return &StatsService{repo: repo}
}

const topJetsLimit = 5

// Dashboard assembles the admin overview: totals, per-status booking counts,
// completed revenue (all time and current month), top jets by completed
// hours, and a zero-filled 12-month booking series.
func (s *StatsService) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	users, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	jets, err := s.repo.CountActiveJets(ctx)
	if err != nil {
		return nil, err
	}
	bookings, err := s.repo.CountBookings(ctx)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.repo.BookingsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	for _, status := range []domain.BookingStatus{
		domain.BookingStatusPending, domain.BookingStatusConfirmed,
		domain.BookingStatusCompleted, domain.BookingStatusCancelled,
	} {
		if _, ok := byStatus[status]; !ok {
			byStatus[status] = 0
		}
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	revenueTotal, err := s.repo.CompletedRevenue(ctx, nil)
	if err != nil {
		return nil, err
	}
	revenueMonth, err := s.repo.CompletedRevenue(ctx, &monthStart)
	if err != nil {
		return nil, err
	}

	topJets, err := s.repo.TopJetsByHours(ctx, topJetsLimit)
	if err != nil {
		return nil, err
	}

	last12Start := monthStart.AddDate(0, -11, 0)
	counts, err := s.repo.MonthlyBookings(ctx, last12Start)
	if err != nil {
		return nil, err
	}

	monthly := make([]domain.MonthlyCount, 0, 12)
	for i := 0; i < 12; i++ {
		m := last12Start.AddDate(0, i, 0)
		entry := domain.MonthlyCount{Year: m.Year(), Month: int(m.Month())}
		for _, c := range counts {
			if c.Year == entry.Year && c.Month == entry.Month {
				entry.Count = c.Count
				break
			}
		}
		monthly = append(monthly, entry)
	}

	return &domain.DashboardStats{
		Totals: domain.StatsTotals{
			Users:        users,
			Jets:         jets,
			Bookings:     bookings,
			RevenueTotal: revenueTotal,
			RevenueMonth: revenueMonth,
		},
		ByStatus: byStatus,
		TopJets:  topJets,
		Monthly:  monthly,
	}, nil
}

var _ StatsUseCase = (*StatsService)(nil)
