package httpx

import (
	"encoding/json"
	"net/http"
)

// Helpers de respuesta compartidos por los handlers de todos los módulos.
// Antes estaban duplicados por módulo; con cuatro recursos ya conviene
// el helper común.

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError responde {"error": msg}.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"error": msg})
}

// WriteFieldErrors responde {"errors": {campo: mensaje}}.
// Se usa para conflictos de unicidad y payloads inválidos.
func WriteFieldErrors(w http.ResponseWriter, status int, fields map[string]string) {
	WriteJSON(w, status, map[string]map[string]string{"errors": fields})
}
