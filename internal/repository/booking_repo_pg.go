package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Domenick1991/jetcharter/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetForClient(ctx context.Context, id, clientID string) (*domain.Booking, error)
	ListByClient(ctx context.Context, clientID string) ([]domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	FindConflicts(ctx context.Context, jetID string, from, to time.Time, excludeID string) ([]domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking, checkWindow bool) error
	CompleteEnrouteBefore(ctx context.Context, deadline time.Time) ([]domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, client_id, jet_id, origin, destination, departure_at, arrival_at, flight_hours, price_usd, status, status_history, notes, created_at, updated_at`

func activeStatuses() []string {
	out := make([]string, 0, len(domain.ActiveStatuses))
	for _, s := range domain.ActiveStatuses {
		out = append(out, string(s))
	}
	return out
}

const conflictQuery = `SELECT ` + bookingColumns + ` FROM bookings
	WHERE jet_id=$1 AND status = ANY($2) AND departure_at < $3 AND arrival_at > $4 AND ($5 = '' OR id <> $5)
	ORDER BY departure_at`

// Create inserts a new booking only if its window is still free. The
// conflict re-check and the insert run in one transaction under a per-jet
// advisory lock, so two concurrent requests cannot both pass the check.
func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, booking.JetID); err != nil {
		return err
	}

	var conflicts int
	if err := tx.QueryRow(ctx, `SELECT count(*) FROM bookings
		WHERE jet_id=$1 AND status = ANY($2) AND departure_at < $3 AND arrival_at > $4`,
		booking.JetID, activeStatuses(), booking.ArrivalAt, booking.DepartureAt).Scan(&conflicts); err != nil {
		return err
	}
	if conflicts > 0 {
		return domain.ErrConflict
	}

	history, err := json.Marshal(booking.StatusHistory)
	if err != nil {
		return err
	}
	if err := tx.QueryRow(ctx, `INSERT INTO bookings (id, client_id, jet_id, origin, destination, departure_at, arrival_at, flight_hours, price_usd, status, status_history, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`,
		booking.ID, booking.ClientID, booking.JetID, booking.Origin, booking.Destination,
		booking.DepartureAt, booking.ArrivalAt, booking.FlightHours, booking.PriceUSD,
		booking.Status, history, booking.Notes).
		Scan(&booking.CreatedAt, &booking.UpdatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id)
	return scanBookingRow(row)
}

func (r *PGBookingRepository) GetForClient(ctx context.Context, id, clientID string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1 AND client_id=$2`, id, clientID)
	return scanBookingRow(row)
}

func (r *PGBookingRepository) ListByClient(ctx context.Context, clientID string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE client_id=$1 ORDER BY created_at DESC`, clientID)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

func (r *PGBookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

func (r *PGBookingRepository) FindConflicts(ctx context.Context, jetID string, from, to time.Time, excludeID string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, conflictQuery, jetID, activeStatuses(), to, from, excludeID)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

// Update persists the full mutable state of the booking. With checkWindow
// set, the new time window is re-validated against other active bookings of
// the same jet inside the transaction, under the same advisory lock Create
// takes.
func (r *PGBookingRepository) Update(ctx context.Context, booking *domain.Booking, checkWindow bool) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if checkWindow {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, booking.JetID); err != nil {
			return err
		}
		var conflicts int
		if err := tx.QueryRow(ctx, `SELECT count(*) FROM bookings
			WHERE jet_id=$1 AND status = ANY($2) AND departure_at < $3 AND arrival_at > $4 AND id <> $5`,
			booking.JetID, activeStatuses(), booking.ArrivalAt, booking.DepartureAt, booking.ID).Scan(&conflicts); err != nil {
			return err
		}
		if conflicts > 0 {
			return domain.ErrConflict
		}
	}

	history, err := json.Marshal(booking.StatusHistory)
	if err != nil {
		return err
	}
	cmd, err := tx.Exec(ctx, `UPDATE bookings
		SET origin=$1, destination=$2, departure_at=$3, arrival_at=$4, flight_hours=$5, price_usd=$6, status=$7, status_history=$8, notes=$9, updated_at=now()
		WHERE id=$10`,
		booking.Origin, booking.Destination, booking.DepartureAt, booking.ArrivalAt,
		booking.FlightHours, booking.PriceUSD, booking.Status, history, booking.Notes, booking.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrBookingNotFound
	}

	return tx.Commit(ctx)
}

// CompleteEnrouteBefore closes out Enroute bookings whose arrival time has
// passed, appending a system entry to the status timeline.
func (r *PGBookingRepository) CompleteEnrouteBefore(ctx context.Context, deadline time.Time) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `UPDATE bookings
		SET status=$1,
		    status_history = status_history || jsonb_build_object('status', $1::text, 'at', to_char(now() at time zone 'utc', 'YYYY-MM-DD"T"HH24:MI:SS"Z"')),
		    updated_at = now()
		WHERE status=$2 AND arrival_at <= $3
		RETURNING `+bookingColumns,
		domain.BookingStatusCompleted, domain.BookingStatusEnroute, deadline)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

type pgxRow interface {
	Scan(dest ...any) error
}

func scanBooking(row pgxRow) (*domain.Booking, error) {
	var b domain.Booking
	var history []byte
	if err := row.Scan(&b.ID, &b.ClientID, &b.JetID, &b.Origin, &b.Destination,
		&b.DepartureAt, &b.ArrivalAt, &b.FlightHours, &b.PriceUSD, &b.Status,
		&history, &b.Notes, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	if len(history) > 0 {
		if err := json.Unmarshal(history, &b.StatusHistory); err != nil {
			return nil, err
		}
	}
	return &b, nil
}

func scanBookingRow(row pgx.Row) (*domain.Booking, error) {
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

func collectBookings(rows pgx.Rows) ([]domain.Booking, error) {
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
