// Package snapshot converts game state to and from its wire documents.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"relife/internal/domain"
)

var (
	ErrEmptySnapshot = errors.New("empty snapshot")
)

// Encode renders st as a JSON document.
func Encode(st *domain.GameState) ([]byte, error) {
	if st == nil {
		return nil, ErrEmptySnapshot
	}
	data, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a JSON document and fills in anything the sender omitted.
func Decode(data []byte) (*domain.GameState, error) {
	if len(data) == 0 {
		return nil, ErrEmptySnapshot
	}
	var st domain.GameState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	st.Normalize()
	if err := st.CheckIndices(); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &st, nil
}

// ToStruct carries the snapshot document as a protobuf Struct.
func ToStruct(st *domain.GameState) (*structpb.Struct, error) {
	data, err := Encode(st)
	if err != nil {
		return nil, err
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("snapshot to struct: %w", err)
	}
	return out, nil
}

// FromStruct is the inverse of ToStruct.
func FromStruct(s *structpb.Struct) (*domain.GameState, error) {
	if s == nil {
		return nil, ErrEmptySnapshot
	}
	data, err := protojson.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("struct to snapshot: %w", err)
	}
	return Decode(data)
}
