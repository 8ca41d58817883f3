package repository

import (
	"context"
	"time"

	"github.com/jackc/pgtype/pgxtype"
	"github.com/umalmyha/lunchly/internal/model"
)

// ReservationRepository executes queries against reservations table
type ReservationRepository interface {
	FindByCustomerID(context.Context, int64) ([]*model.Reservation, error)
	Create(context.Context, *model.Reservation) error
	Update(context.Context, *model.Reservation) error
}

type postgresReservationRepository struct {
	querier pgxtype.Querier
}

func NewPostgresReservationRepository(querier pgxtype.Querier) ReservationRepository {
	return &postgresReservationRepository{querier: querier}
}

func (repo *postgresReservationRepository) FindByCustomerID(ctx context.Context, customerID int64) ([]*model.Reservation, error) {
	q := `SELECT id, customer_id, num_guests, start_at, notes
          FROM reservations
          WHERE customer_id = $1`

	rows, err := repo.querier.Query(ctx, q, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservations := make([]*model.Reservation, 0)
	for rows.Next() {
		var (
			id        int64
			custID    int64
			numGuests int
			startAt   time.Time
			notes     *string
		)
		if err := rows.Scan(&id, &custID, &numGuests, &startAt, &notes); err != nil {
			return nil, err
		}

		rsv, err := model.NewReservation(id, custID, numGuests, startAt, notes)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, rsv)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reservations, nil
}

// Create inserts reservation and adopts back store-assigned id together with
// stored start time and notes, so the store is free to normalize them
func (repo *postgresReservationRepository) Create(ctx context.Context, rsv *model.Reservation) error {
	q := `INSERT INTO reservations(customer_id, start_at, num_guests, notes)
          VALUES($1, $2, $3, $4)
          RETURNING id, start_at, notes`

	var (
		id      int64
		startAt time.Time
		notes   *string
	)
	row := repo.querier.QueryRow(ctx, q, rsv.CustomerID(), rsv.StartAt(), rsv.NumGuests, rsv.Notes)
	if err := row.Scan(&id, &startAt, &notes); err != nil {
		return err
	}

	rsv.ApplyStored(id, startAt, notes)
	return nil
}

func (repo *postgresReservationRepository) Update(ctx context.Context, rsv *model.Reservation) error {
	q := `UPDATE reservations SET start_at = $1, num_guests = $2, notes = $3
          WHERE id = $4`
	_, err := repo.querier.Exec(ctx, q, rsv.StartAt(), rsv.NumGuests, rsv.Notes, rsv.ID)
	return err
}
