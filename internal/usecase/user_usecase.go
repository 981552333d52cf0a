package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"commerce/internal/domain/model"
	repo "commerce/internal/repository"
)

type UserUsecase struct {
	userRepo repo.UserRepository
	logger   *zap.Logger
}

func NewUserUsecase(userRepo repo.UserRepository, logger *zap.Logger) *UserUsecase {
	return &UserUsecase{userRepo: userRepo, logger: logger}
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     model.Role
}

type UpdateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     model.Role
}

type UserOutput struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      model.Role `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
}

func (u *UserUsecase) CreateUser(ctx context.Context, in CreateUserInput) (UserOutput, error) {
	if err := validateUserInput(in.Name, in.Email, in.Password, in.Role); err != nil {
		return UserOutput{}, err
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	u.logger.Info("creating user", zap.String("email", email))

	exists, err := u.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return UserOutput{}, errInternal()
	}
	if exists {
		return UserOutput{}, NewError(KindConflict, "email is already in use")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserOutput{}, NewError(KindInternal, "failed to hash password")
	}

	created, err := u.userRepo.Create(ctx, model.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         in.Role,
	})
	if err == repo.ErrConflict {
		return UserOutput{}, NewError(KindConflict, "email is already in use")
	}
	if err != nil {
		return UserOutput{}, errInternal()
	}

	u.logger.Info("user created", zap.String("user_id", created.ID.String()))
	return toUserOutput(created), nil
}

func (u *UserUsecase) GetUser(ctx context.Context, userID uuid.UUID) (UserOutput, error) {
	if userID == uuid.Nil {
		return UserOutput{}, NewError(KindValidation, "invalid user id")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err == repo.ErrNotFound {
		return UserOutput{}, NewError(KindNotFound, "user not found")
	}
	if err != nil {
		return UserOutput{}, errInternal()
	}
	return toUserOutput(user), nil
}

func (u *UserUsecase) ListUsers(ctx context.Context) ([]UserOutput, error) {
	users, err := u.userRepo.List(ctx)
	if err != nil {
		return []UserOutput{}, errInternal()
	}

	outs := make([]UserOutput, 0, len(users))
	for _, usr := range users {
		outs = append(outs, toUserOutput(usr))
	}
	return outs, nil
}

func (u *UserUsecase) UpdateUser(ctx context.Context, userID uuid.UUID, in UpdateUserInput) (UserOutput, error) {
	if userID == uuid.Nil {
		return UserOutput{}, NewError(KindValidation, "invalid user id")
	}
	if err := validateUserInput(in.Name, in.Email, in.Password, in.Role); err != nil {
		return UserOutput{}, err
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err == repo.ErrNotFound {
		return UserOutput{}, NewError(KindNotFound, "user not found")
	}
	if err != nil {
		return UserOutput{}, errInternal()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserOutput{}, NewError(KindInternal, "failed to hash password")
	}

	user.Name = strings.TrimSpace(in.Name)
	user.Email = strings.ToLower(strings.TrimSpace(in.Email))
	user.PasswordHash = string(hash)
	user.Role = in.Role

	if err := u.userRepo.Update(ctx, user); err != nil {
		if err == repo.ErrConflict {
			return UserOutput{}, NewError(KindConflict, "email is already in use")
		}
		if err == repo.ErrNotFound {
			return UserOutput{}, NewError(KindNotFound, "user not found")
		}
		return UserOutput{}, errInternal()
	}

	return toUserOutput(user), nil
}

func (u *UserUsecase) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return NewError(KindValidation, "invalid user id")
	}

	u.logger.Info("deleting user", zap.String("user_id", userID.String()))

	err := u.userRepo.Delete(ctx, userID)
	if err == repo.ErrNotFound {
		return NewError(KindNotFound, "user not found")
	}
	if err != nil {
		return errInternal()
	}
	return nil
}

func validateUserInput(name, email, password string, role model.Role) error {
	if strings.TrimSpace(name) == "" || len(name) > 255 {
		return NewError(KindValidation, "invalid name")
	}
	email = strings.TrimSpace(email)
	if email == "" || len(email) > 255 || !strings.Contains(email, "@") {
		return NewError(KindValidation, "invalid email")
	}
	if len(password) < 8 || len(password) > 72 {
		return NewError(KindValidation, "password must be 8 to 72 characters")
	}
	if role != model.RoleUser && role != model.RoleAdmin {
		return NewError(KindValidation, "invalid role")
	}
	return nil
}

func toUserOutput(u model.User) UserOutput {
	return UserOutput{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
