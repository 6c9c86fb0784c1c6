package user

import (
	"context"
	"errors"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already taken")
)

type ListFilter struct {
	Limit  int
	Offset int
}

// Patch holds the mutable fields of a user. A nil pointer means "keep the
// current value"; a non-nil pointer is written as-is, empty or not.
type Patch struct {
	Name  *string
	Email *string
}

type Repository interface {
	GetById(ctx context.Context, id int64) (*User, error)
	// List returns one page of users ordered by CreatedAt descending, plus
	// the total row count independent of the pagination window.
	List(ctx context.Context, filter ListFilter) ([]User, int64, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, id int64, patch Patch) (*User, error)
	Delete(ctx context.Context, id int64) error
}
