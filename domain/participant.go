// Package domain contains core concepts of the chat system.
// This file defines Participant entities and related rules.
// No runtime, network, or UI logic should be added here.
package domain

import (
	"strings"
	"time"
)

// Participant is an active member of the room.
// Name is unique across active participants.
type Participant struct {
	Name       string
	LastStatus time.Time
}

func NewParticipant(name string, at time.Time) Participant {
	return Participant{Name: name, LastStatus: at}
}

// IsStale reports whether the participant has not sent a status for longer than threshold.
func (p Participant) IsStale(now time.Time, threshold time.Duration) bool {
	return now.Sub(p.LastStatus) > threshold
}

// NormalizeName trims surrounding whitespace from a display name.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}
