package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Domenick1991/jetcharter/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type JetRepository interface {
	Create(ctx context.Context, jet *domain.Jet) error
	GetByID(ctx context.Context, id string) (*domain.Jet, error)
	Update(ctx context.Context, jet *domain.Jet) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter domain.JetFilter) ([]domain.Jet, int64, error)
	ListAll(ctx context.Context, page, limit int) ([]domain.Jet, int64, error)
}

type PGJetRepository struct {
	db *pgxpool.Pool
}

func NewJetRepository(db *pgxpool.Pool) JetRepository {
	return &PGJetRepository{db: db}
}

const jetColumns = `id, name, manufacturer, category, seats, range_nm, speed_kts, hourly_rate, base_airport, amenities, images, description, is_available, is_active, created_at, updated_at`

func (r *PGJetRepository) Create(ctx context.Context, jet *domain.Jet) error {
	return r.db.QueryRow(ctx, `INSERT INTO jets (id, name, manufacturer, category, seats, range_nm, speed_kts, hourly_rate, base_airport, amenities, images, description, is_available, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at, updated_at`,
		jet.ID, jet.Name, jet.Manufacturer, jet.Category, jet.Seats, jet.RangeNM, jet.SpeedKts,
		jet.HourlyRate, jet.BaseAirport, jet.Amenities, jet.Images, jet.Description,
		jet.IsAvailable, jet.IsActive).
		Scan(&jet.CreatedAt, &jet.UpdatedAt)
}

func (r *PGJetRepository) GetByID(ctx context.Context, id string) (*domain.Jet, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jetColumns+` FROM jets WHERE id=$1`, id)
	jet, err := scanJet(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrJetNotFound
		}
		return nil, err
	}
	return jet, nil
}

func (r *PGJetRepository) Update(ctx context.Context, jet *domain.Jet) error {
	cmd, err := r.db.Exec(ctx, `UPDATE jets
		SET name=$1, manufacturer=$2, category=$3, seats=$4, range_nm=$5, speed_kts=$6, hourly_rate=$7, base_airport=$8, amenities=$9, images=$10, description=$11, is_available=$12, is_active=$13, updated_at=now()
		WHERE id=$14`,
		jet.Name, jet.Manufacturer, jet.Category, jet.Seats, jet.RangeNM, jet.SpeedKts,
		jet.HourlyRate, jet.BaseAirport, jet.Amenities, jet.Images, jet.Description,
		jet.IsAvailable, jet.IsActive, jet.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrJetNotFound
	}
	return nil
}

func (r *PGJetRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM jets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrJetNotFound
	}
	return nil
}

// List returns one page of the public catalogue (active jets only) plus the
// total match count for pagination.
func (r *PGJetRepository) List(ctx context.Context, filter domain.JetFilter) ([]domain.Jet, int64, error) {
	where := []string{"is_active = true"}
	args := []any{}

	add := func(cond string, val any) {
		args = append(args, val)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if filter.Category != "" {
		add("category = $%d", filter.Category)
	}
	if filter.OnlyAvailable {
		where = append(where, "is_available = true")
	}
	if filter.SeatsMin > 0 {
		add("seats >= $%d", filter.SeatsMin)
	}
	if filter.SeatsMax > 0 {
		add("seats <= $%d", filter.SeatsMax)
	}
	if filter.RateMin > 0 {
		add("hourly_rate >= $%d", filter.RateMin)
	}
	if filter.RateMax > 0 {
		add("hourly_rate <= $%d", filter.RateMax)
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR manufacturer ILIKE $%d OR description ILIKE $%d OR base_airport ILIKE $%d)", n, n, n, n))
	}

	cond := strings.Join(where, " AND ")

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM jets WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page, limit := filter.Page, filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 12
	}
	args = append(args, limit, (page-1)*limit)
	query := fmt.Sprintf(`SELECT `+jetColumns+` FROM jets WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, cond, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	jets, err := collectJets(rows)
	return jets, total, err
}

// ListAll is the admin listing and includes inactive jets.
func (r *PGJetRepository) ListAll(ctx context.Context, page, limit int) ([]domain.Jet, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM jets`).Scan(&total); err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	rows, err := r.db.Query(ctx, `SELECT `+jetColumns+` FROM jets ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	jets, err := collectJets(rows)
	return jets, total, err
}

func scanJet(row pgxRow) (*domain.Jet, error) {
	var j domain.Jet
	if err := row.Scan(&j.ID, &j.Name, &j.Manufacturer, &j.Category, &j.Seats, &j.RangeNM,
		&j.SpeedKts, &j.HourlyRate, &j.BaseAirport, &j.Amenities, &j.Images, &j.Description,
		&j.IsAvailable, &j.IsActive, &j.CreatedAt, &j.UpdatedAt); err != nil {
		return nil, err
	}
	return &j, nil
}

func collectJets(rows pgx.Rows) ([]domain.Jet, error) {
	defer rows.Close()

	jets := make([]domain.Jet, 0)
	for rows.Next() {
		j, err := scanJet(rows)
		if err != nil {
			return nil, err
		}
		jets = append(jets, *j)
	}
	return jets, rows.Err()
}

var _ JetRepository = (*PGJetRepository)(nil)
