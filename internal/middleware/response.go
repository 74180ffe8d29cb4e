package middleware

import (
	"encoding/json"
	"net/http"

	"localbite-be/internal/apperror"
)

type errorBody struct {
	Error struct {
		Kind    apperror.Kind `json:"kind"`
		Message string        `json:"message"`
	} `json:"error"`
}

func writeError(w http.ResponseWriter, status int, kind apperror.Kind, message string) {
	var body errorBody
	body.Error.Kind = kind
	body.Error.Message = message

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
