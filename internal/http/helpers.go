package http

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"payvue/internal/metrics"
)

const dateLayout = "2006-01-02"

// respondJSON writes a JSON response with the given status
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError writes a JSON error body
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// parseFilter builds the history filter from query parameters: search,
// start, end (inclusive YYYY-MM-DD bounds) and debt_id.
func parseFilter(r *http.Request) (metrics.Filter, error) {
	q := r.URL.Query()

	f := metrics.Filter{
		Search: strings.TrimSpace(q.Get("search")),
	}

	if v := strings.TrimSpace(q.Get("start")); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return f, fmt.Errorf("invalid start date %q, expected YYYY-MM-DD", v)
		}
		f.Range.Start = t
	}
	if v := strings.TrimSpace(q.Get("end")); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return f, fmt.Errorf("invalid end date %q, expected YYYY-MM-DD", v)
		}
		f.Range.End = t
	}
	if v := strings.TrimSpace(q.Get("debt_id")); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return f, fmt.Errorf("invalid debt_id %q", v)
		}
		f.DebtID = id
	}

	return f, nil
}

// clientIP extracts the client address, honoring X-Forwarded-For from a
// trusted proxy chain.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		ips := strings.Split(fwd, ",")
		candidate := strings.TrimSpace(ips[0])
		if net.ParseIP(candidate) != nil {
			return candidate
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
