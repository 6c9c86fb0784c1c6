package calc

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"usersvc/internal/http/responses"
)

// Handler serves the calculator warm-up endpoint.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

type result struct {
	Result    float64 `json:"result"`
	Operation string  `json:"operation"`
}

// Calculate GET /calculate?a=10&b=5&op=add
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	a, err := strconv.ParseFloat(q.Get("a"), 64)
	if err != nil {
		responses.WriteBadRequest(w, "invalid operand a")
		return
	}
	b, err := strconv.ParseFloat(q.Get("b"), 64)
	if err != nil {
		responses.WriteBadRequest(w, "invalid operand b")
		return
	}

	op := q.Get("op")
	var res float64
	switch op {
	case "add":
		res = a + b
	case "subtract":
		res = a - b
	case "multiply":
		res = a * b
	case "divide":
		if b == 0 {
			responses.WriteBadRequest(w, "division by zero")
			return
		}
		res = a / b
	case "modulo":
		res = math.Mod(a, b)
	case "power":
		if b < 0 {
			responses.WriteBadRequest(w, "power operation requires a positive exponent")
			return
		}
		res = math.Pow(a, b)
	case "double":
		res = a * 2
	default:
		responses.WriteBadRequest(w, fmt.Sprintf("unknown operation: %s", op))
		return
	}

	responses.WriteJSON(w, http.StatusOK, result{Result: res, Operation: op})
}
