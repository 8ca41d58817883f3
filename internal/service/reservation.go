package service

import (
	"context"

	"github.com/umalmyha/lunchly/internal/model"
	"github.com/umalmyha/lunchly/internal/repository"
)

// ReservationService owns reservation business flows
type ReservationService interface {
	ForCustomer(context.Context, int64) ([]*model.Reservation, error)
	Save(context.Context, *model.Reservation) (*model.Reservation, error)
}

type reservationService struct {
	reservationRepo repository.ReservationRepository
}

func NewReservationService(reservationRepo repository.ReservationRepository) ReservationService {
	return &reservationService{reservationRepo: reservationRepo}
}

func (s *reservationService) ForCustomer(ctx context.Context, customerID int64) ([]*model.Reservation, error) {
	return s.reservationRepo.FindByCustomerID(ctx, customerID)
}

// Save validates the guest count on both insert and update paths, so re-saving
// an existing reservation with invalid guest count fails as well
func (s *reservationService) Save(ctx context.Context, rsv *model.Reservation) (*model.Reservation, error) {
	if err := rsv.ValidateGuests(); err != nil {
		return nil, err
	}

	if rsv.ID == 0 {
		if err := s.reservationRepo.Create(ctx, rsv); err != nil {
			return nil, err
		}
		return rsv, nil
	}

	if err := s.reservationRepo.Update(ctx, rsv); err != nil {
		return nil, err
	}
	return rsv, nil
}
