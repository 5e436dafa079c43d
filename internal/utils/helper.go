package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// FormatMoney renders an amount the way invoices and reports show it.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("R%.2f", amount)
}

// NormalizePhoneSA strips whitespace and rewrites +27/27 prefixes to the
// local 0-prefixed form.
func NormalizePhoneSA(phone string) string {
	p := strings.Join(strings.Fields(phone), "")
	p = strings.ReplaceAll(p, "-", "")

	if strings.HasPrefix(p, "+27") {
		return "0" + p[3:]
	}
	if strings.HasPrefix(p, "27") && len(p) == 11 {
		return "0" + p[2:]
	}
	return p
}

func WriteJSONError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func WriteJSON(w http.ResponseWriter, payload any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
