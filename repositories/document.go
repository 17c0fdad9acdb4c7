package repositories

import (
	"fmt"
	"time"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Participants and messages are stored as schemaless protobuf documents.
// Instants are kept as RFC3339Nano strings because structpb numbers are float64.

func marshalDocument(fields map[string]any) ([]byte, error) {
	doc, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("document build failed: %w", err)
	}
	bytes, err := proto.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal failed: %w", err)
	}
	return bytes, nil
}

func unmarshalDocument(bytes []byte) (*structpb.Struct, error) {
	var doc structpb.Struct
	if err := proto.Unmarshal(bytes, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal failed: %w", err)
	}
	return &doc, nil
}

func stringField(doc *structpb.Struct, name string) string {
	return doc.GetFields()[name].GetStringValue()
}

func timeField(doc *structpb.Struct, name string) (time.Time, error) {
	raw := stringField(doc, name)
	at, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("field %s: %w", name, err)
	}
	return at, nil
}
