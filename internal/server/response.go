package server

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/nao1215/pagescore/internal/model"
)

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func jsonResp(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonErr(w http.ResponseWriter, status int, msg string) {
	jsonResp(w, status, errorResponse{Error: msg})
}

// writeScoreResult writes both payloads exactly as they were received.
// json.Marshal would re-encode the raw messages.
func writeScoreResult(w http.ResponseWriter, result *model.ScoreResult) {
	var buf bytes.Buffer
	buf.Grow(len(result.Mobile) + len(result.Desktop) + 32)
	buf.WriteString(`{"mobile":`)
	buf.Write(rawOrNull(result.Mobile))
	buf.WriteString(`,"desktop":`)
	buf.Write(rawOrNull(result.Desktop))
	buf.WriteString("}\n")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func rawOrNull(raw json.RawMessage) []byte {
	if len(raw) == 0 {
		return []byte("null")
	}
	return raw
}
