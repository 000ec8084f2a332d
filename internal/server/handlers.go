package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/flarebyte/speakset-native/internal/store"
)

const maxBodyBytes = 1 << 20

type healthResponse struct {
	OK      bool   `json:"ok"`
	Backend string `json:"backend"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	IssuedAt string `json:"issuedAt"`
}

type createMessageRequest struct {
	Channel string `json:"channel"`
	Author  string `json:"author"`
	Text    string `json:"text"`
}

type listMessagesResponse struct {
	Channel  string          `json:"channel"`
	Messages []store.Message `json:"messages"`
}

type createMessageResponse struct {
	Message store.Message `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{OK: true, Backend: "go"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	username := strings.TrimSpace(req.Username)
	password := strings.TrimSpace(req.Password)
	if username == "" || password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	token := s.gen.Token(username)
	s.logger.Debug("issued token", "username", username)
	writeJSON(w, http.StatusOK, loginResponse{
		Token:    token,
		Username: username,
		IssuedAt: s.timestamp(),
	})
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	channel := r.URL.Query().Get("channel")
	if channel == "" {
		channel = store.DefaultChannel
	}
	writeJSON(w, http.StatusOK, listMessagesResponse{
		Channel:  channel,
		Messages: s.store.List(channel),
	})
}

func (s *Server) handleCreateMessage(w http.ResponseWriter, r *http.Request) {
	var req createMessageRequest
	if !decodeBody(w, r, &req) {
		return
	}
	channel := strings.TrimSpace(req.Channel)
	if channel == "" {
		channel = store.DefaultChannel
	}
	author := strings.TrimSpace(req.Author)
	if author == "" {
		author = "anonymous"
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	msg := store.Message{
		ID:        s.gen.MessageID(author, text, channel),
		Author:    author,
		Text:      text,
		At:        s.timestamp(),
		Reactions: map[string]int{},
	}
	s.store.Append(channel, msg)
	writeJSON(w, http.StatusCreated, createMessageResponse{Message: msg})
}

func (s *Server) handleUnknown(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "unknown endpoint")
}

func (s *Server) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

// decodeBody reads a JSON body into v. An empty body decodes as {}.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
