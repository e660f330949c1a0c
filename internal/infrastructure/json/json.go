package json

import (
	"encoding/json"
	"net/http"
)

const maxBodyBytes = 1 << 20

func Read(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	decoder := json.NewDecoder(r.Body)
	return decoder.Decode(dst)
}

func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
