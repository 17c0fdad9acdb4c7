package repositories

import (
	"fmt"
	"strings"
)

// DocumentSummary is a human readable view of a stored document, used by the inspectors.
type DocumentSummary struct {
	Kind   string
	Name   string
	At     string
	Detail string
}

// DescribeDocument decodes the value stored under key.
func DescribeDocument(key string, val []byte) (DocumentSummary, error) {
	switch {
	case strings.HasPrefix(key, participantPrefix):
		participant, err := toParticipant(val)
		if err != nil {
			return DocumentSummary{Kind: "PARTICIPANT"}, err
		}
		return DocumentSummary{
			Kind:   "PARTICIPANT",
			Name:   participant.Name,
			At:     participant.LastStatus.Format("15:04:05"),
			Detail: "last status",
		}, nil
	case strings.HasPrefix(key, messagePrefix):
		message, err := toMessage(val)
		if err != nil {
			return DocumentSummary{Kind: "MESSAGE"}, err
		}
		return DocumentSummary{
			Kind:   strings.ToUpper(string(message.Type)),
			Name:   message.From,
			At:     message.Time,
			Detail: fmt.Sprintf("to %s: %s", message.To, message.Text),
		}, nil
	default:
		return DocumentSummary{Kind: "RAW", Detail: fmt.Sprintf("Size: %d bytes", len(val))}, nil
	}
}
