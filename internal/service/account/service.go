package account

import (
	"context"
	"fmt"

	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/domain/notification"
	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/domain/user"
	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/pkg/database"
	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AccountServiceImpl struct {
	db *database.DB
	user.UserRepository
	notification.NotificationRepository
}

func NewAccountService(
	db *database.DB,
	userRepo user.UserRepository,
	notificationRepo notification.NotificationRepository,
) user.AccountService {
	return &AccountServiceImpl{
		db:                     db,
		UserRepository:         userRepo,
		NotificationRepository: notificationRepo,
	}
}

// List implements user.AccountService.
func (s *AccountServiceImpl) List(ctx context.Context) ([]user.UserResponse, error) {
	users, err := s.UserRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.MapUserToResponse(u))
	}

	return responses, nil
}

// UpdateStatus implements user.AccountService. The status change, the
// read-marking of the user's pending notifications and the audit
// notification are one all-or-nothing transaction: partial application
// must never be observable.
func (s *AccountServiceImpl) UpdateStatus(ctx context.Context, req user.UpdateStatusRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	status := user.Status(req.Status)

	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.UserRepository.UpdateStatus(txCtx, req.ID, status); err != nil {
			return err
		}

		if err := s.NotificationRepository.MarkAllRead(txCtx, req.ID); err != nil {
			return err
		}

		title := "account reactivated"
		body := "your account has been reactivated"
		if status == user.StatusDeactivated {
			title = "account deactivated"
			body = "your account has been deactivated, contact an administrator"
		}
		_, err := s.NotificationRepository.Create(txCtx, notification.Notification{
			ID:     uuid.NewString(),
			UserID: req.ID,
			Title:  title,
			Body:   body,
		})
		return err
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	updated, err := s.UserRepository.GetByID(ctx, req.ID)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to get updated user: %w", err)
	}

	return user.MapUserToResponse(updated), nil
}
