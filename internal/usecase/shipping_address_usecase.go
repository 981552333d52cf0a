package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"commerce/internal/domain/model"
	repo "commerce/internal/repository"
)

type ShippingAddressUsecase struct {
	addressRepo repo.ShippingAddressRepository
	userRepo    repo.UserRepository
	logger      *zap.Logger
}

func NewShippingAddressUsecase(
	addressRepo repo.ShippingAddressRepository,
	userRepo repo.UserRepository,
	logger *zap.Logger,
) *ShippingAddressUsecase {
	return &ShippingAddressUsecase{
		addressRepo: addressRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

type ShippingAddressInput struct {
	UserID     uuid.UUID
	Street     string
	City       string
	State      string
	Country    string
	PostalCode string
}

type ShippingAddressOutput struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Street     string    `json:"street"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	Country    string    `json:"country"`
	PostalCode string    `json:"postal_code"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (u *ShippingAddressUsecase) CreateAddress(ctx context.Context, in ShippingAddressInput) (ShippingAddressOutput, error) {
	if in.UserID == uuid.Nil {
		return ShippingAddressOutput{}, NewError(KindValidation, "user id is required")
	}
	if err := validateShipping(in.Street, in.City, in.State, in.Country, in.PostalCode); err != nil {
		return ShippingAddressOutput{}, err
	}

	exists, err := u.userRepo.ExistsByID(ctx, in.UserID)
	if err != nil {
		return ShippingAddressOutput{}, errInternal()
	}
	if !exists {
		return ShippingAddressOutput{}, NewError(KindNotFound, "user not found")
	}

	created, err := u.addressRepo.Create(ctx, model.ShippingAddress{
		UserID:     in.UserID,
		Street:     strings.TrimSpace(in.Street),
		City:       strings.TrimSpace(in.City),
		State:      strings.TrimSpace(in.State),
		Country:    strings.TrimSpace(in.Country),
		PostalCode: strings.TrimSpace(in.PostalCode),
	})
	if err != nil {
		return ShippingAddressOutput{}, errInternal()
	}

	u.logger.Info("shipping address created",
		zap.String("address_id", created.ID.String()),
		zap.String("user_id", in.UserID.String()),
	)
	return toShippingAddressOutput(created), nil
}

func (u *ShippingAddressUsecase) GetAddress(ctx context.Context, addressID uuid.UUID) (ShippingAddressOutput, error) {
	if addressID == uuid.Nil {
		return ShippingAddressOutput{}, NewError(KindValidation, "invalid address id")
	}

	a, err := u.addressRepo.FindByID(ctx, addressID)
	if err == repo.ErrNotFound {
		return ShippingAddressOutput{}, NewError(KindNotFound, "shipping address not found")
	}
	if err != nil {
		return ShippingAddressOutput{}, errInternal()
	}
	return toShippingAddressOutput(a), nil
}

func (u *ShippingAddressUsecase) ListAddressesForUser(ctx context.Context, userID uuid.UUID) ([]ShippingAddressOutput, error) {
	if userID == uuid.Nil {
		return []ShippingAddressOutput{}, NewError(KindValidation, "invalid user id")
	}

	exists, err := u.userRepo.ExistsByID(ctx, userID)
	if err != nil {
		return []ShippingAddressOutput{}, errInternal()
	}
	if !exists {
		return []ShippingAddressOutput{}, NewError(KindNotFound, "user not found")
	}

	addresses, err := u.addressRepo.ListByUserID(ctx, userID)
	if err != nil {
		return []ShippingAddressOutput{}, errInternal()
	}

	outs := make([]ShippingAddressOutput, 0, len(addresses))
	for _, a := range addresses {
		outs = append(outs, toShippingAddressOutput(a))
	}
	return outs, nil
}

func (u *ShippingAddressUsecase) UpdateAddress(ctx context.Context, addressID uuid.UUID, in ShippingAddressInput) (ShippingAddressOutput, error) {
	if addressID == uuid.Nil {
		return ShippingAddressOutput{}, NewError(KindValidation, "invalid address id")
	}
	if err := validateShipping(in.Street, in.City, in.State, in.Country, in.PostalCode); err != nil {
		return ShippingAddressOutput{}, err
	}

	a, err := u.addressRepo.FindByID(ctx, addressID)
	if err == repo.ErrNotFound {
		return ShippingAddressOutput{}, NewError(KindNotFound, "shipping address not found")
	}
	if err != nil {
		return ShippingAddressOutput{}, errInternal()
	}

	a.Street = strings.TrimSpace(in.Street)
	a.City = strings.TrimSpace(in.City)
	a.State = strings.TrimSpace(in.State)
	a.Country = strings.TrimSpace(in.Country)
	a.PostalCode = strings.TrimSpace(in.PostalCode)

	if err := u.addressRepo.Update(ctx, a); err != nil {
		if err == repo.ErrNotFound {
			return ShippingAddressOutput{}, NewError(KindNotFound, "shipping address not found")
		}
		return ShippingAddressOutput{}, errInternal()
	}
	return toShippingAddressOutput(a), nil
}

func (u *ShippingAddressUsecase) DeleteAddress(ctx context.Context, addressID uuid.UUID) error {
	if addressID == uuid.Nil {
		return NewError(KindValidation, "invalid address id")
	}

	u.logger.Info("deleting shipping address", zap.String("address_id", addressID.String()))

	err := u.addressRepo.Delete(ctx, addressID)
	if err == repo.ErrNotFound {
		return NewError(KindNotFound, "shipping address not found")
	}
	if err != nil {
		return errInternal()
	}
	return nil
}

func toShippingAddressOutput(a model.ShippingAddress) ShippingAddressOutput {
	return ShippingAddressOutput{
		ID:         a.ID,
		UserID:     a.UserID,
		Street:     a.Street,
		City:       a.City,
		State:      a.State,
		Country:    a.Country,
		PostalCode: a.PostalCode,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}
