package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/vadiminshakov/cryptora/internal/domain"
	"github.com/vadiminshakov/cryptora/internal/events"
)

const heartbeatInterval = 30 * time.Second

type historyReader interface {
	Records() []domain.TransferRecord
}

type errorReader interface {
	Errors() []string
}

// Server exposes the local dashboard: an HTML page, an SSE stream of balance
// events, and JSON views of the transfer history and recent errors.
type Server struct {
	Addr        string
	Broadcaster *events.BalanceBroadcaster
	History     historyReader
	Balances    errorReader
}

// NewServer creates a dashboard server instance.
func NewServer(addr string, broadcaster *events.BalanceBroadcaster, history historyReader, balances errorReader) *Server {
	return &Server{Addr: addr, Broadcaster: broadcaster, History: history, Balances: balances}
}

// Start runs the HTTP server (blocking) and shuts it down when ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/balance/stream", s.handleBalanceStream)
	mux.HandleFunc("/history", s.handleHistory)
	mux.HandleFunc("/errors", s.handleErrors)

	server := &http.Server{
		Addr:              s.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML)
}

func (s *Server) handleBalanceStream(w http.ResponseWriter, r *http.Request) {
	if s.Broadcaster == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, "balance broadcaster not available")
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// send a comment heartbeat every 30s so proxies keep connection
	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	sub := s.Broadcaster.Subscribe()
	defer s.Broadcaster.Unsubscribe(sub)

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprintf(w, ": ping\n\n")
			flusher.Flush()
		case event := <-sub:
			payload, err := json.Marshal(event)
			if err != nil {
				log.Printf("balance stream marshal err: %v", err)
				continue
			}
			fmt.Fprintf(w, "event: balance\n")
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
	}
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.History == nil {
		http.Error(w, "history not available", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.History.Records()); err != nil {
		log.Printf("history encode err: %v", err)
	}
}

func (s *Server) handleErrors(w http.ResponseWriter, r *http.Request) {
	if s.Balances == nil {
		http.Error(w, "balance store not available", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.Balances.Errors()); err != nil {
		log.Printf("errors encode err: %v", err)
	}
}

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Cryptora</title>
<style>
body { font-family: monospace; background: #111; color: #ddd; margin: 2rem; }
h1 { color: #7D56F4; }
table { border-collapse: collapse; margin-top: 1rem; }
td, th { border: 1px solid #333; padding: 4px 10px; }
#events div { padding: 2px 0; }
</style>
</head>
<body>
<h1>Cryptora</h1>
<p>Live balance events:</p>
<div id="events"></div>
<p><a href="/history">transfer history</a> | <a href="/errors">recent errors</a></p>
<script>
const es = new EventSource('/balance/stream');
es.addEventListener('balance', (e) => {
  const ev = JSON.parse(e.data);
  const div = document.createElement('div');
  div.textContent = ev.ts + ' [' + ev.source + '] ' + (ev.amount || '') + ' ' + (ev.detail || '');
  const parent = document.getElementById('events');
  parent.prepend(div);
  while (parent.childElementCount > 50) parent.removeChild(parent.lastChild);
});
</script>
</body>
</html>`
