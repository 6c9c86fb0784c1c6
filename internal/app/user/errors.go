package user

import (
	"errors"

	domcommon "usersvc/internal/domain/common"
	dom "usersvc/internal/domain/user"
)

func IsNotFound(err error) bool {
	return errors.Is(err, dom.ErrNotFound) || domcommon.IsNotFound(err)
}

func IsConflict(err error) bool {
	return errors.Is(err, dom.ErrEmailTaken) || domcommon.IsConflict(err)
}
