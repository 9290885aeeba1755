// internal/controller/respond.go
package controller

import (
    "encoding/json"
    "net/http"
)

func writeJSON(w http.ResponseWriter, code int, payload interface{}) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(code)
    json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, code int, message string) {
    writeJSON(w, code, map[string]string{
        "status":  "error",
        "message": message,
    })
}
