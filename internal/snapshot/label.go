package snapshot

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// GameName tags relay match labels so listings can filter on it.
const GameName = "relife"

// MatchLabel is the searchable label of a relay match.
type MatchLabel struct {
	Open  int
	Phase string
}

// Marshal renders the label as JSON through protojson, keeping zero values.
func (l MatchLabel) Marshal() (string, error) {
	s, err := structpb.NewStruct(map[string]interface{}{
		"game":  GameName,
		"open":  l.Open,
		"phase": l.Phase,
	})
	if err != nil {
		return "", fmt.Errorf("build label: %w", err)
	}
	b, err := (&protojson.MarshalOptions{EmitUnpopulated: true}).Marshal(s)
	if err != nil {
		return "", fmt.Errorf("marshal label: %w", err)
	}
	return string(b), nil
}
