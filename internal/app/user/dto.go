package user

import (
	"time"

	dom "usersvc/internal/domain/user"
)

type UserDto struct {
	Id        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateUserInput struct {
	Name  string
	Email string
}

// UpdateUserInput carries a partial update: nil fields are left unchanged.
type UpdateUserInput struct {
	ID    int64
	Name  *string
	Email *string
}

type ListUsersInput struct {
	Page    int
	PerPage int
}

type UserListDto struct {
	Users      []UserDto `json:"users"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	PerPage    int       `json:"per_page"`
	TotalPages int64     `json:"total_pages"`
}

func toDTO(u *dom.User) *UserDto {
	if u == nil {
		return nil
	}
	return &UserDto{
		Id:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toDTOs(list []dom.User) []UserDto {
	res := make([]UserDto, 0, len(list))
	for _, u := range list {
		item := u // copy
		res = append(res, *toDTO(&item))
	}
	return res
}
