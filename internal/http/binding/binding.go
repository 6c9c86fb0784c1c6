package binding

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"usersvc/internal/http/responses"
)

var validate = validator.New()

// BindAndValidate reads the JSON body into dst and runs validation with
// `validate:"..."` tags. On failure it writes a 400 and returns false; the
// handler should just return.
func BindAndValidate[T any](w http.ResponseWriter, r *http.Request, dst *T) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		responses.WriteBadRequest(w, "invalid request body")
		return false
	}

	if err := validate.Struct(dst); err != nil {
		responses.WriteBadRequest(w, "invalid request body")
		return false
	}

	return true
}
