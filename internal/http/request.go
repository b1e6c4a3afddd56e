package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
)

const maxBodySize = 1 << 20 // 1MB

var errEmptyBody = errors.New("empty request body")

// decodeBody parses a JSON request body into v. Unknown fields are ignored,
// matching the permissive contract of the original API.
func decodeBody(r *http.Request, v any) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodySize)
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return errEmptyBody
	}
	return json.Unmarshal(data, v)
}

// pathID parses the {id} path segment.
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// queryYear parses the optional ?year= filter. Absent or blank means no
// filter; anything non-numeric is an error so it can never reach the query.
func queryYear(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("year"))
	if raw == "" {
		return 0, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < 0 {
		return 0, errors.New("invalid year filter")
	}
	return year, nil
}
