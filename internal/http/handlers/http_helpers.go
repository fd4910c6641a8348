package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/inventory-console/internal/auth"
)

// principal returns the caller the auth middleware stored on the request.
func principal(r *http.Request) auth.Principal {
	p, _ := auth.PrincipalFrom(r.Context())
	return p
}

// readJSON tries to read the body of a request and converts it into JSON
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1048576 // one megabyte
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	err := dec.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must have only a single json value")
	}

	return nil
}

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}

	return nil
}

// respond writes data as JSON and logs when the client could not be served.
func respond(w http.ResponseWriter, status int, data any) {
	if err := writeJSON(w, status, data); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// urlID parses the {id} path parameter, answering 400 "invalid <entity> ID" when it is not a number.
func urlID(w http.ResponseWriter, r *http.Request, entity string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid %s ID", entity), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func parseFloatPtr(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseIntPtr(s string) *int {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

// parseTimeParam reads an RFC3339 or YYYY-MM-DD query value. Query decoding
// turns the '+' of a zone offset into a space, so it is put back first.
// Example: 2025-07-03T17:44:03+02:00 arrives as 2025-07-03T17:44:03 02:00
func parseTimeParam(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if len(s) == len(time.RFC3339) && s[len(s)-6] == ' ' {
		s = s[:len(s)-6] + "+" + s[len(s)-5:]
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return &ts, nil
	}
	ts, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

// parseEndTimeParam reads an inclusive upper bound. A date without a time
// covers that whole day.
func parseEndTimeParam(s string) (*time.Time, error) {
	ts, err := parseTimeParam(s)
	if err != nil || ts == nil {
		return ts, err
	}
	if _, err := time.Parse(time.DateOnly, s); err == nil {
		end := ts.AddDate(0, 0, 1).Add(-time.Nanosecond)
		return &end, nil
	}
	return ts, nil
}

// pageParams reads offset and limit, rejecting malformed or out of range values.
func pageParams(w http.ResponseWriter, r *http.Request) (offset, limit *int, ok bool) {
	q := r.URL.Query()
	for _, p := range []struct {
		name string
		dst  **int
	}{{"offset", &offset}, {"limit", &limit}} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			log.Printf("could not parse %s %s: %v", p.name, raw, err)
			http.Error(w, fmt.Sprintf("invalid %s format", p.name), http.StatusBadRequest)
			return nil, nil, false
		}
		*p.dst = &v
	}

	if limit != nil && *limit <= 0 {
		http.Error(w, "limit must be greater than zero", http.StatusBadRequest)
		return nil, nil, false
	}
	if offset != nil && *offset < 0 {
		http.Error(w, "offset must be zero or positive", http.StatusBadRequest)
		return nil, nil, false
	}
	return offset, limit, true
}

// splitList turns "a,b" and repeated ?k=a&k=b parameters into one list.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func attachment(w http.ResponseWriter, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
}
