package nakama

import (
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"relife/internal/app"
	"relife/internal/domain"
)

// ActionRequest is the decoded body of a client opcode.
// Every frame is a protobuf Struct; absent fields keep their zero value.
type ActionRequest struct {
	CardIndex  int
	Stat       domain.StatType
	LocationID string
	TargetID   string
	JobID      string
	Indices    []int
}

// decodeRequest parses a client frame. An empty frame yields a request with no card index.
func decodeRequest(data []byte) (ActionRequest, error) {
	req := ActionRequest{CardIndex: -1}
	if len(data) == 0 {
		return req, nil
	}
	s := &structpb.Struct{}
	if err := proto.Unmarshal(data, s); err != nil {
		return req, fmt.Errorf("decode request: %w", err)
	}
	f := s.GetFields()
	if v, ok := f["card_index"]; ok {
		req.CardIndex = int(v.GetNumberValue())
	}
	req.Stat = domain.StatType(f["stat"].GetStringValue())
	req.LocationID = f["location_id"].GetStringValue()
	req.TargetID = f["target_id"].GetStringValue()
	req.JobID = f["job_id"].GetStringValue()
	for _, v := range f["indices"].GetListValue().GetValues() {
		req.Indices = append(req.Indices, int(v.GetNumberValue()))
	}
	return req, nil
}

// actionFunc performs one client opcode for the player at seat.
type actionFunc func(svc *app.Service, st *domain.GameState, seat int, req ActionRequest) (*domain.GameState, []app.Event, error)

var actions = map[int64]actionFunc{
	OpConfirmEvent: func(svc *app.Service, st *domain.GameState, _ int, _ ActionRequest) (*domain.GameState, []app.Event, error) {
		return svc.ConfirmEvent(st)
	},
	OpNextPhase: func(svc *app.Service, st *domain.GameState, _ int, _ ActionRequest) (*domain.GameState, []app.Event, error) {
		return svc.NextPhase(st)
	},
	OpPlayCard: func(svc *app.Service, st *domain.GameState, seat int, req ActionRequest) (*domain.GameState, []app.Event, error) {
		return svc.PlayCard(st, seat, req.CardIndex)
	},
	OpSelectCard: func(svc *app.Service, st *domain.GameState, seat int, req ActionRequest) (*domain.GameState, []app.Event, error) {
		return svc.SelectCard(st, seat, req.CardIndex)
	},
	OpPlaySelected: func(svc *app.Service, st *domain.GameState, seat int, _ ActionRequest) (*domain.GameState, []app.Event, error) {
		return svc.PlaySelectedCard(st, seat)
	},
	OpChooseStat: func(svc *app.Service, st *domain.GameState, seat int, req ActionRequest) (*domain.GameState, []app.Event, error) {
		return svc.ChooseStat(st, seat, req.Stat)
	},
	OpChooseLocation: func(svc *app.Service, st *domain.GameState, seat int, req ActionRequest) (*domain.GameState, []app.Event, error) {
		return svc.ChooseExploreLocation(st, seat, req.LocationID)
	},
	OpChooseTarget: func(svc *app.Service, st *domain.GameState, seat int, req ActionRequest) (*domain.GameState, []app.Event, error) {
		return svc.ChooseTargetPlayer(st, seat, req.TargetID)
	},
	OpChooseJob: func(svc *app.Service, st *domain.GameState, seat int, req ActionRequest) (*domain.GameState, []app.Event, error) {
		return svc.ChooseParachuteJob(st, seat, req.JobID)
	},
	OpUseInvalid: func(svc *app.Service, st *domain.GameState, seat int, req ActionRequest) (*domain.GameState, []app.Event, error) {
		return svc.UseInvalidCard(st, seat, req.CardIndex)
	},
	OpPassReaction: func(svc *app.Service, st *domain.GameState, seat int, _ ActionRequest) (*domain.GameState, []app.Event, error) {
		return svc.PassReaction(st, seat)
	},
	OpDiscard: func(svc *app.Service, st *domain.GameState, seat int, req ActionRequest) (*domain.GameState, []app.Event, error) {
		return svc.ConfirmDiscard(st, seat, req.Indices)
	},
	OpApplyJob: func(svc *app.Service, st *domain.GameState, seat int, req ActionRequest) (*domain.GameState, []app.Event, error) {
		return svc.ApplyJob(st, seat, req.JobID)
	},
	OpPromote: func(svc *app.Service, st *domain.GameState, seat int, _ ActionRequest) (*domain.GameState, []app.Event, error) {
		return svc.TryPromote(st, seat)
	},
	OpCancel: func(svc *app.Service, st *domain.GameState, seat int, _ ActionRequest) (*domain.GameState, []app.Event, error) {
		return svc.CancelPendingAction(st, seat)
	},
	OpEndTurn: func(svc *app.Service, st *domain.GameState, seat int, _ ActionRequest) (*domain.GameState, []app.Event, error) {
		return svc.EndPlayerTurn(st, seat)
	},
}

// toStruct renders any JSON-encodable value as a protobuf Struct.
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, err
	}
	return out, nil
}

// marshalFrame encodes v as a binary protobuf Struct frame.
func marshalFrame(v any) ([]byte, error) {
	s, err := toStruct(v)
	if err != nil {
		return nil, err
	}
	return proto.Marshal(s)
}

type eventFrame struct {
	Kind    app.EventKind `json:"kind"`
	Payload any           `json:"payload"`
}

type errorFrame struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// errorCode maps a service error onto an error frame code.
func errorCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrGameOver):
		return ErrCodeGameOver
	case errors.Is(err, domain.ErrIllegalAction):
		return ErrCodeConflict
	case errors.Is(err, domain.ErrDataIntegrity):
		return ErrCodeBadRequest
	}
	return ErrCodeInternal
}
