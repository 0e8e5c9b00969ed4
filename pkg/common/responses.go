package common

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes v as a JSON body with the given status. Every success
// body in this system is a flat map/struct carrying a "time" field
// (spec §6) rather than the teacher's {success,data,error,meta} envelope:
// SarychDB's wire contract is fixed by the spec, so handlers build that
// exact shape and this just serializes it.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
