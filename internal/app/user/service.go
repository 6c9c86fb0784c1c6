package user

import (
	"context"
	"fmt"

	"usersvc/internal/db"
	dom "usersvc/internal/domain/user"
	"usersvc/internal/logging"
)

type Service interface {
	List(ctx context.Context, input ListUsersInput) (*UserListDto, error)
	GetById(ctx context.Context, id int64) (*UserDto, error)
	Create(ctx context.Context, input CreateUserInput) (*UserDto, error)
	Update(ctx context.Context, input UpdateUserInput) (*UserDto, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo   dom.Repository
	tx     db.Transactor // optional, for multi-entity transactions
	events Events
	logger logging.Logger
}

func NewService(
	repo dom.Repository,
	tx db.Transactor,
	events Events,
	logger logging.Logger,
) Service {
	return &service{
		repo:   repo,
		tx:     tx,
		events: events,
		logger: logger.With("component", "user_service"),
	}
}

func (s *service) List(ctx context.Context, input ListUsersInput) (*UserListDto, error) {
	filter := dom.ListFilter{
		Limit:  input.PerPage,
		Offset: (input.Page - 1) * input.PerPage,
	}

	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logStorageError("failed to list users", err)
		return nil, fmt.Errorf("list users: %w", err)
	}

	return &UserListDto{
		Users:      toDTOs(users),
		Total:      total,
		Page:       input.Page,
		PerPage:    input.PerPage,
		TotalPages: totalPages(total, input.PerPage),
	}, nil
}

func (s *service) GetById(ctx context.Context, id int64) (*UserDto, error) {
	u, err := s.repo.GetById(ctx, id)
	if err != nil {
		if !IsNotFound(err) {
			s.logStorageError("failed to get user", err, "id", id)
		}
		return nil, err
	}
	return toDTO(u), nil
}

func (s *service) Create(ctx context.Context, input CreateUserInput) (*UserDto, error) {
	u := &dom.User{
		Name:  input.Name,
		Email: input.Email,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if !IsConflict(err) {
			s.logStorageError("failed to create user", err, "email", input.Email)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	dto := toDTO(u)

	// Events are best-effort; a broker failure must not fail the request.
	if err := s.events.UserCreated(ctx, dto); err != nil {
		s.logger.Error("failed to publish UserCreated event", "error", err, "id", dto.Id)
	}

	return dto, nil
}

func (s *service) Update(ctx context.Context, input UpdateUserInput) (*UserDto, error) {
	u, err := s.repo.Update(ctx, input.ID, dom.Patch{
		Name:  input.Name,
		Email: input.Email,
	})
	if err != nil {
		if !IsNotFound(err) && !IsConflict(err) {
			s.logStorageError("failed to update user", err, "id", input.ID)
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	dto := toDTO(u)

	if err := s.events.UserUpdated(ctx, dto); err != nil {
		s.logger.Error("failed to publish UserUpdated event", "error", err, "id", dto.Id)
	}

	return dto, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if !IsNotFound(err) {
			s.logStorageError("failed to delete user", err, "id", id)
		}
		return err
	}

	if err := s.events.UserDeleted(ctx, id); err != nil {
		s.logger.Error("failed to publish UserDeleted event", "error", err, "id", id)
	}

	return nil
}

// logStorageError separates transport failures from query failures in the
// logs; the caller still sees a single server-class error.
func (s *service) logStorageError(msg string, err error, args ...any) {
	if db.IsConnectionError(err) {
		s.logger.Error("storage unavailable: "+msg, append(args, "error", err)...)
		return
	}
	s.logger.Error(msg, append(args, "error", err)...)
}

func totalPages(total int64, perPage int) int64 {
	if perPage <= 0 {
		return 0
	}
	return (total + int64(perPage) - 1) / int64(perPage)
}
