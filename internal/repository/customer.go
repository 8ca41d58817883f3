package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgtype/pgxtype"
	"github.com/jackc/pgx/v4"
	"github.com/umalmyha/lunchly/internal/model"
)

// CustomerRepository executes queries against customers table
type CustomerRepository interface {
	FindAll(context.Context) ([]*model.Customer, error)
	FindByID(context.Context, int64) (*model.Customer, error)
	SearchByName(context.Context, string) ([]*model.Customer, error)
	FindBest(context.Context, int) ([]*model.Customer, error)
	Create(context.Context, *model.Customer) error
	Update(context.Context, *model.Customer) error
}

type postgresCustomerRepository struct {
	querier pgxtype.Querier
}

func NewPostgresCustomerRepository(querier pgxtype.Querier) CustomerRepository {
	return &postgresCustomerRepository{querier: querier}
}

func (repo *postgresCustomerRepository) FindAll(ctx context.Context) ([]*model.Customer, error) {
	q := `SELECT id, first_name, last_name, phone, notes
          FROM customers
          ORDER BY last_name, first_name`

	rows, err := repo.querier.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCustomers(rows)
}

func (repo *postgresCustomerRepository) FindByID(ctx context.Context, id int64) (*model.Customer, error) {
	q := "SELECT id, first_name, last_name, phone, notes FROM customers WHERE id = $1"

	c, err := scanCustomer(repo.querier.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

// SearchByName splits name on whitespace and matches every customer whose
// first or last name contains any of the tokens, case-insensitively
func (repo *postgresCustomerRepository) SearchByName(ctx context.Context, name string) ([]*model.Customer, error) {
	tokens := strings.Fields(name)
	patterns := make([]string, 0, len(tokens))
	for _, token := range tokens {
		patterns = append(patterns, "%"+token+"%")
	}

	q := `SELECT id, first_name, last_name, phone, notes
          FROM customers
          WHERE first_name ILIKE ANY($1) OR last_name ILIKE ANY($1)
          ORDER BY last_name, first_name`

	rows, err := repo.querier.Query(ctx, q, patterns)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCustomers(rows)
}

// FindBest returns customers ordered by descending reservation count.
// Customers without reservations are included with count 0, ties are broken
// by customer id for reproducible order.
func (repo *postgresCustomerRepository) FindBest(ctx context.Context, limit int) ([]*model.Customer, error) {
	q := `SELECT c.id, c.first_name, c.last_name, c.phone, c.notes, COUNT(r.id) AS num_reservations
          FROM customers c
          LEFT JOIN reservations r ON r.customer_id = c.id
          GROUP BY c.id
          ORDER BY num_reservations DESC, c.id
          LIMIT $1`

	rows, err := repo.querier.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]*model.Customer, 0)
	for rows.Next() {
		var (
			id           int64
			firstName    string
			lastName     string
			phone        *string
			notes        *string
			reservations int64
		)
		if err := rows.Scan(&id, &firstName, &lastName, &phone, &notes, &reservations); err != nil {
			return nil, err
		}

		c := model.NewCustomer(id, firstName, lastName, phone, notes)
		c.NumReservations = reservations
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return customers, nil
}

func (repo *postgresCustomerRepository) Create(ctx context.Context, c *model.Customer) error {
	q := `INSERT INTO customers(first_name, last_name, phone, notes)
          VALUES($1, $2, $3, $4)
          RETURNING id`
	return repo.querier.QueryRow(ctx, q, c.FirstName, c.LastName, c.Phone, c.Notes).Scan(&c.ID)
}

func (repo *postgresCustomerRepository) Update(ctx context.Context, c *model.Customer) error {
	q := `UPDATE customers SET first_name = $1, last_name = $2, phone = $3, notes = $4
          WHERE id = $5`
	_, err := repo.querier.Exec(ctx, q, c.FirstName, c.LastName, c.Phone, c.Notes, c.ID)
	return err
}

func scanCustomer(row pgx.Row) (*model.Customer, error) {
	var (
		id        int64
		firstName string
		lastName  string
		phone     *string
		notes     *string
	)
	if err := row.Scan(&id, &firstName, &lastName, &phone, &notes); err != nil {
		return nil, err
	}
	return model.NewCustomer(id, firstName, lastName, phone, notes), nil
}

func scanCustomers(rows pgx.Rows) ([]*model.Customer, error) {
	customers := make([]*model.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return customers, nil
}
