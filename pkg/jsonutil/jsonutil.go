package jsonutil

import (
	"encoding/json"
	"net/http"

	"github.com/example/monelog/internal/types"
)

// JSON writes a JSON response with status code. The body is encoded before
// the header goes out, so a value that cannot be encoded yields a 500.
func JSON(w http.ResponseWriter, code int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		code = http.StatusInternalServerError
		body, _ = json.Marshal(types.ErrorResponse{Error: "internal error"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(append(body, '\n'))
}

// Error writes {"error": msg} with status code.
func Error(w http.ResponseWriter, code int, msg string) {
	JSON(w, code, types.ErrorResponse{Error: msg})
}
