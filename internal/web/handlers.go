package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/jaminalder/codex-bridgit/internal/app"
	"github.com/jaminalder/codex-bridgit/internal/domain"
)

type handlers struct {
	svc         *app.Service
	tpl         *templates
	defaultMode app.Mode
	heartbeat   time.Duration
	logger      *log.Logger
	upgrader    websocket.Upgrader
}

func (h *handlers) renderBoard(gs app.GameState, errMsg string) []byte {
	return renderTemplate(h.tpl.board, "", newBoardData(gs, errMsg))
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	data := struct{ Modes []modeOption }{Modes: modeOptions(h.defaultMode)}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(renderTemplate(h.tpl.index, "", data))
}

func (h *handlers) formMode(r *http.Request) (app.Mode, error) {
	_ = r.ParseForm()
	v := r.Form.Get("mode")
	if v == "" {
		return h.defaultMode, nil
	}
	return app.ParseMode(v)
}

func (h *handlers) create(w http.ResponseWriter, r *http.Request) {
	mode, err := h.formMode(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	gs, err := h.svc.CreateGame(mode)
	if err != nil {
		http.Error(w, "failed to create", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/game/"+gs.ID, http.StatusSeeOther)
}

func (h *handlers) view(w http.ResponseWriter, r *http.Request) {
	gs, ok := h.svc.Get(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	data := struct {
		ID    string
		Modes []modeOption
		Board boardData
	}{
		ID:    gs.ID,
		Modes: modeOptions(gs.Mode),
		Board: newBoardData(*gs, ""),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(renderTemplate(h.tpl.game, "", data))
}

func (h *handlers) click(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	_ = r.ParseForm()
	row, errRow := strconv.Atoi(r.Form.Get("row"))
	col, errCol := strconv.Atoi(r.Form.Get("col"))
	if errRow != nil || errCol != nil {
		http.Error(w, "row and col must be integers", http.StatusBadRequest)
		return
	}
	gs, err := h.svc.Click(id, row, col)
	if errors.Is(err, app.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if gs == nil {
		if gs, _ = h.svc.Get(id); gs == nil {
			http.NotFound(w, r)
			return
		}
	}
	h.writeBoard(w, *gs, errorMessage(err))
}

func (h *handlers) reset(w http.ResponseWriter, r *http.Request) {
	mode, err := h.formMode(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	gs, err := h.svc.Reset(chi.URLParam(r, "id"), mode)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	h.writeBoard(w, *gs, "")
}

func (h *handlers) writeBoard(w http.ResponseWriter, gs app.GameState, errMsg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(h.renderBoard(gs, errMsg))
}

// errorMessage maps a rejected input to the text shown above the board.
func errorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, app.ErrAIThinking):
		return "The AI is thinking"
	case errors.Is(err, app.ErrNotYourTurn):
		return "Wait for the AI to move"
	case errors.Is(err, app.ErrOutsideBoard), errors.Is(err, domain.ErrNotYourDot):
		return "Pick one of your own dots"
	case errors.Is(err, app.ErrStalemate):
		return "No legal move is left"
	case errors.Is(err, domain.ErrGameOver):
		return "Game is over"
	case errors.Is(err, domain.ErrNotAdjacent):
		return "Dots must be neighbours"
	case errors.Is(err, domain.ErrAlreadyLinked):
		return "Those dots are already linked"
	case errors.Is(err, domain.ErrCrossing):
		return "That link would cross another"
	default:
		return "Invalid move"
	}
}

func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.svc.Get(id); !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	// In tests or non-EventSource requests, just acknowledge headers and return
	if r.Header.Get("Accept") != "text/event-stream" {
		w.WriteHeader(http.StatusOK)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		w.WriteHeader(http.StatusOK)
		return
	}
	ctx := r.Context()
	ch, unsub, err := h.svc.Subscribe(ctx, id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer unsub()
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()
	flusher.Flush()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = io.WriteString(w, ": ping\n\n")
			flusher.Flush()
		case b, ok := <-ch:
			if !ok {
				return
			}
			writeEvent(w, "board", b)
			flusher.Flush()
		}
	}
}

// writeEvent frames b as one SSE event; every payload line gets its own data field.
func writeEvent(w io.Writer, name string, b []byte) {
	_, _ = fmt.Fprintf(w, "event: %s\n", name)
	for _, line := range bytes.Split(bytes.TrimRight(b, "\n"), []byte("\n")) {
		_, _ = fmt.Fprintf(w, "data: %s\n", line)
	}
	_, _ = io.WriteString(w, "\n")
}

func (h *handlers) ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *handlers) apiGame(w http.ResponseWriter, r *http.Request) {
	gs, ok := h.svc.Get(chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": app.ErrNotFound.Error()})
		return
	}
	writeJSON(w, http.StatusOK, gs)
}

type moveRequest struct {
	FromRow int `json:"from_row"`
	FromCol int `json:"from_col"`
	ToRow   int `json:"to_row"`
	ToCol   int `json:"to_col"`
}

func (h *handlers) apiMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	gs, err := h.svc.Move(chi.URLParam(r, "id"), req.FromRow, req.FromCol, req.ToRow, req.ToCol)
	if err != nil {
		writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, gs)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, app.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, app.ErrOutsideBoard), errors.Is(err, app.ErrUnknownMode):
		return http.StatusBadRequest
	default:
		return http.StatusConflict
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
