// Package errors routes user-facing messages to the CLI or the TUI.
package errors

import (
	"sync"
	"time"

	"github.com/cristianoliveira/rmgrid/internal/colors"
)

// ErrorHandler is the interface for surfacing messages to the user.
// Different implementations handle them based on context.
type ErrorHandler interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
	Success(msg string)
}

// MessageType classifies a surfaced message.
type MessageType int

const (
	MessageTypeError MessageType = iota
	MessageTypeWarning
	MessageTypeInfo
	MessageTypeSuccess
)

// String returns the prefix used when rendering the message.
func (t MessageType) String() string {
	switch t {
	case MessageTypeWarning:
		return "Warning"
	case MessageTypeInfo:
		return "Info"
	case MessageTypeSuccess:
		return "Success"
	default:
		return "Error"
	}
}

// Message is a surfaced message.
type Message struct {
	Text      string
	Type      MessageType
	Timestamp time.Time
}

// CLIHandler prints messages through the colors package.
type CLIHandler struct{}

var _ ErrorHandler = CLIHandler{}

// NewCLIHandler returns a handler that prints to stdout/stderr.
func NewCLIHandler() CLIHandler {
	return CLIHandler{}
}

func (CLIHandler) Error(msg string)   { colors.Error(msg) }
func (CLIHandler) Warning(msg string) { colors.Warning(msg) }
func (CLIHandler) Info(msg string)    { colors.Info(msg) }
func (CLIHandler) Success(msg string) { colors.Success(msg) }

// TUIHandler holds the message shown on the TUI status line. A new message
// replaces the previous one. The callback runs synchronously on every message.
type TUIHandler struct {
	mu     sync.RWMutex
	latest *Message
	onMsg  func(msg Message)
	now    func() time.Time
}

var _ ErrorHandler = (*TUIHandler)(nil)

// NewTUIHandler creates a handler that invokes onMsg for every message.
func NewTUIHandler(onMsg func(msg Message)) *TUIHandler {
	return &TUIHandler{onMsg: onMsg, now: time.Now}
}

func (h *TUIHandler) Error(msg string)   { h.set(msg, MessageTypeError) }
func (h *TUIHandler) Warning(msg string) { h.set(msg, MessageTypeWarning) }
func (h *TUIHandler) Info(msg string)    { h.set(msg, MessageTypeInfo) }
func (h *TUIHandler) Success(msg string) { h.set(msg, MessageTypeSuccess) }

func (h *TUIHandler) set(text string, typ MessageType) {
	h.mu.Lock()
	message := Message{Text: text, Type: typ, Timestamp: h.now()}
	h.latest = &message
	cb := h.onMsg
	h.mu.Unlock()

	if cb != nil {
		cb(message)
	}
}

// Latest returns the message currently shown, if any.
func (h *TUIHandler) Latest() (Message, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.latest == nil {
		return Message{}, false
	}
	return *h.latest, true
}

// Clear removes the current message.
func (h *TUIHandler) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = nil
}
