package service

import (
	"context"
	"fmt"

	"github.com/umalmyha/lunchly/internal/cache"
	apperrors "github.com/umalmyha/lunchly/internal/errors"
	"github.com/umalmyha/lunchly/internal/model"
	"github.com/umalmyha/lunchly/internal/repository"
)

const bestCustomersLimit = 10

// CustomerService owns customer business flows
type CustomerService interface {
	FindAll(context.Context) ([]*model.Customer, error)
	FindByID(context.Context, int64) (*model.Customer, error)
	SearchByName(context.Context, string) ([]*model.Customer, error)
	BestCustomers(context.Context) ([]*model.Customer, error)
	Reservations(context.Context, int64) ([]*model.Reservation, error)
	Save(context.Context, *model.Customer) (*model.Customer, error)
}

type customerService struct {
	customerRepo    repository.CustomerRepository
	reservationRepo repository.ReservationRepository
	customerCache   cache.CustomerCache
}

func NewCustomerService(
	customerRepo repository.CustomerRepository,
	reservationRepo repository.ReservationRepository,
	customerCache cache.CustomerCache,
) CustomerService {
	return &customerService{
		customerRepo:    customerRepo,
		reservationRepo: reservationRepo,
		customerCache:   customerCache,
	}
}

func (s *customerService) FindAll(ctx context.Context) ([]*model.Customer, error) {
	return s.customerRepo.FindAll(ctx)
}

func (s *customerService) FindByID(ctx context.Context, id int64) (*model.Customer, error) {
	c, err := s.customerCache.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if c != nil {
		return c, nil
	}

	c, err = s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if c == nil {
		return nil, apperrors.NewNotFoundErr(fmt.Sprintf("no such customer: %d", id))
	}

	if err := s.customerCache.Cache(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *customerService) SearchByName(ctx context.Context, name string) ([]*model.Customer, error) {
	customers, err := s.customerRepo.SearchByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if len(customers) == 0 {
		return nil, apperrors.NewValidationErr("name", fmt.Sprintf("could not find customers matching %s", name))
	}
	return customers, nil
}

func (s *customerService) BestCustomers(ctx context.Context) ([]*model.Customer, error) {
	return s.customerRepo.FindBest(ctx, bestCustomersLimit)
}

// Reservations is the only read path from customer to its reservations,
// they are fetched on demand and never kept on the customer
func (s *customerService) Reservations(ctx context.Context, customerID int64) ([]*model.Reservation, error) {
	return s.reservationRepo.FindByCustomerID(ctx, customerID)
}

// Save inserts the customer when it has no id yet and rewrites all mutable
// fields otherwise, last writer wins
func (s *customerService) Save(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	if !c.Persisted() {
		if err := s.customerRepo.Create(ctx, c); err != nil {
			return nil, err
		}
		return c, nil
	}

	if err := s.customerRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	if err := s.customerCache.EvictByID(ctx, c.ID); err != nil {
		return nil, err
	}
	return c, nil
}
