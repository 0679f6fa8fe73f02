package errors

import (
	"sync"
	"time"
)

// MessageType classifies a TUI status message.
type MessageType int

const (
	MessageTypeError MessageType = iota
	MessageTypeWarning
	MessageTypeInfo
	MessageTypeSuccess
)

// Message is a status line entry.
type Message struct {
	Text      string
	Type      MessageType
	Timestamp time.Time
}

// TUIHandler keeps messages for the TUI status line instead of printing.
type TUIHandler struct {
	mu       sync.RWMutex
	messages []Message
	now      func() time.Time
	onAdd    func(Message)
}

var _ ErrorHandler = (*TUIHandler)(nil)

// NewTUIHandler creates a handler; onAdd, if set, sees every message.
func NewTUIHandler(now func() time.Time, onAdd func(Message)) *TUIHandler {
	if now == nil {
		now = time.Now
	}
	return &TUIHandler{now: now, onAdd: onAdd}
}

func (h *TUIHandler) Error(msg string)   { h.add(msg, MessageTypeError) }
func (h *TUIHandler) Warning(msg string) { h.add(msg, MessageTypeWarning) }
func (h *TUIHandler) Info(msg string)    { h.add(msg, MessageTypeInfo) }
func (h *TUIHandler) Success(msg string) { h.add(msg, MessageTypeSuccess) }

func (h *TUIHandler) add(text string, t MessageType) {
	msg := Message{Text: text, Type: t, Timestamp: h.now()}
	h.mu.Lock()
	h.messages = append(h.messages, msg)
	h.mu.Unlock()
	if h.onAdd != nil {
		h.onAdd(msg)
	}
}

// Latest returns the newest message if it is younger than maxAge.
// A zero maxAge disables the age check.
func (h *TUIHandler) Latest(maxAge time.Duration) (Message, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.messages) == 0 {
		return Message{}, false
	}
	msg := h.messages[len(h.messages)-1]
	if maxAge > 0 && h.now().Sub(msg.Timestamp) > maxAge {
		return Message{}, false
	}
	return msg, true
}

// Clear drops all messages.
func (h *TUIHandler) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = nil
}
