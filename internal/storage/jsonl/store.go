// Package jsonl keeps an append-only action log of app events, one JSON line each.
package jsonl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"relife/internal/app"
)

// EventWrapper is the serialized form of one event.
type EventWrapper struct {
	Type       app.EventKind   `json:"type"`
	Recipients []string        `json:"recipients,omitempty"`
	Event      json.RawMessage `json:"data"`
}

// Store handles append-only storing of the action log.
type Store struct {
	mu   sync.Mutex
	file *os.File
}

// NewStore opens or creates the file at path for appending lines.
func NewStore(path string) (*Store, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open store file: %w", err)
	}
	return &Store{file: file}, nil
}

// Append marshals ev to a new line.
func (s *Store) Append(ev app.Event) error {
	data, err := json.Marshal(ev.Payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", ev.Kind, err)
	}
	line, err := json.Marshal(EventWrapper{Type: ev.Kind, Recipients: ev.Recipients, Event: data})
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.file.Write(append(line, '\n')); err != nil {
		return err
	}
	return s.file.Sync()
}

// AppendAll appends events in order and stops at the first failure.
func (s *Store) AppendAll(events []app.Event) error {
	for _, ev := range events {
		if err := s.Append(ev); err != nil {
			return err
		}
	}
	return nil
}

// Load replays every line back into typed events.
func (s *Store) Load() ([]app.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.file.Seek(0, 0); err != nil {
		return nil, err
	}

	var events []app.Event
	scanner := bufio.NewScanner(s.file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		var wrapper EventWrapper
		if err := json.Unmarshal(scanner.Bytes(), &wrapper); err != nil {
			return nil, fmt.Errorf("failed to decode wrapper: %w", err)
		}
		payload, err := decodePayload(wrapper.Type, wrapper.Event)
		if err != nil {
			return nil, err
		}
		events = append(events, app.Event{Kind: wrapper.Type, Payload: payload, Recipients: wrapper.Recipients})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// Close handles safe shutdown.
func (s *Store) Close() error {
	if s == nil || s.file == nil {
		return nil
	}
	return s.file.Close()
}

func decodePayload(kind app.EventKind, data json.RawMessage) (any, error) {
	switch kind {
	case app.EventGameStarted:
		return decodeAs[app.GameStartedPayload](kind, data)
	case app.EventEventDrawn:
		return decodeAs[app.EventDrawnPayload](kind, data)
	case app.EventEventResolved:
		return decodeAs[app.EventResolvedPayload](kind, data)
	case app.EventSalaryPaid:
		return decodeAs[app.SalaryPaidPayload](kind, data)
	case app.EventPhaseChanged:
		return decodeAs[app.PhaseChangedPayload](kind, data)
	case app.EventCardPlayed:
		return decodeAs[app.CardPlayedPayload](kind, data)
	case app.EventCardCancelled:
		return decodeAs[app.CardCancelledPayload](kind, data)
	case app.EventActionCancelled:
		return decodeAs[app.ActionCancelledPayload](kind, data)
	case app.EventSelectionRequired:
		return decodeAs[app.SelectionRequiredPayload](kind, data)
	case app.EventReactionRequested:
		return decodeAs[app.ReactionRequestedPayload](kind, data)
	case app.EventInvalidPlayed:
		return decodeAs[app.InvalidPlayedPayload](kind, data)
	case app.EventReactionPassed:
		return decodeAs[app.ReactionPassedPayload](kind, data)
	case app.EventDiscardRequired:
		return decodeAs[app.DiscardRequiredPayload](kind, data)
	case app.EventCardsDiscarded:
		return decodeAs[app.CardsDiscardedPayload](kind, data)
	case app.EventJobChanged:
		return decodeAs[app.JobChangedPayload](kind, data)
	case app.EventPromoted:
		return decodeAs[app.PromotedPayload](kind, data)
	case app.EventTurnEnded:
		return decodeAs[app.TurnEndedPayload](kind, data)
	case app.EventGameEnded:
		return decodeAs[app.GameEndedPayload](kind, data)
	}
	return nil, fmt.Errorf("unknown event type in log: %s", kind)
}

func decodeAs[T any](kind app.EventKind, data json.RawMessage) (any, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to parse %s data: %w", kind, err)
	}
	return v, nil
}
