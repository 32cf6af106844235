package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"mailrelay/internal/relay"
)

const maxIngestBodyBytes int64 = 1 << 20 // 1 MiB

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"service": "mailrelay",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeText(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	body, err := readBodyLimited(w, r, maxIngestBodyBytes)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeText(w, http.StatusRequestEntityTooLarge, "Payload Too Large")
			return
		}
		writeText(w, http.StatusBadRequest, "Bad Request")
		return
	}

	envelope := relay.GatewayRequest{Body: string(body)}
	if query := r.URL.Query(); len(query) > 0 {
		envelope.QueryStringParameters = make(map[string]string, len(query))
		for key := range query {
			envelope.QueryStringParameters[key] = query.Get(key)
		}
	}
	raw, err := json.Marshal(envelope)
	if err != nil {
		writeText(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	resp := s.pipeline.Handle(r.Context(), raw)
	writeText(w, resp.StatusCode, resp.Body)
}

func writeText(w http.ResponseWriter, code int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = io.WriteString(w, body)
}

func writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

func readBodyLimited(w http.ResponseWriter, r *http.Request, limit int64) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	return io.ReadAll(r.Body)
}
