// Package domain contains core concepts of the chat system.
// This file defines Message events and related rules.
// Messages are immutable and validated by the domain.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Broadcast is the recipient used for messages visible to every participant.
const Broadcast = "Todos"

// TimeLayout is the wall clock format attached to every message.
const TimeLayout = "15:04:05"

const (
	JoinedText = "entra na sala..."
	LeftText   = "sai da sala..."
)

type MessageType string

const (
	MessageTypeMessage        MessageType = "message"
	MessageTypePrivateMessage MessageType = "private_message"
	MessageTypeStatus         MessageType = "status"
)

// IsPostable reports whether clients are allowed to send this type.
// Status messages are only produced by the server.
func (t MessageType) IsPostable() bool {
	return t == MessageTypeMessage || t == MessageTypePrivateMessage
}

// Message represents an immutable chat event.
type Message struct {
	ID        uuid.UUID // unique identifier
	From      string
	To        string
	Text      string
	Type      MessageType
	Time      string
	CreatedAt time.Time
}

func NewMessage(from, to, text string, messageType MessageType, at time.Time) Message {
	return Message{
		ID:        uuid.New(),
		From:      from,
		To:        to,
		Text:      text,
		Type:      messageType,
		Time:      at.Format(TimeLayout),
		CreatedAt: at,
	}
}

// NewJoinedMessage is the status event appended when a participant registers.
func NewJoinedMessage(name string, at time.Time) Message {
	return NewMessage(name, Broadcast, JoinedText, MessageTypeStatus, at)
}

// NewLeftMessage is the status event appended when a participant is evicted.
func NewLeftMessage(name string, at time.Time) Message {
	return NewMessage(name, Broadcast, LeftText, MessageTypeStatus, at)
}

// VisibleTo reports whether viewer may read the message:
// broadcasts, messages sent by the viewer and messages addressed to the viewer.
func (m Message) VisibleTo(viewer string) bool {
	return m.To == Broadcast || m.From == viewer || m.To == viewer
}
