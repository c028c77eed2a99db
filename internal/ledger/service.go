package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrEmptySlot is returned by Slot.Read when nothing has been persisted yet.
var ErrEmptySlot = errors.New("empty slot")

//go:generate mockgen -source=service.go -destination=slot_mock.go -package=ledger
type Slot interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

// Service owns the single in-memory snapshot and couples mutation to
// persistence: every dispatched command is applied through Apply and the
// resulting state is written to the slot. The slot write is fire-and-forget;
// a failure is logged as a warning and never blocks the mutation.
//
// The service is the only writer; the mutex serializes dispatches coming from
// the HTTP surface. The core (Apply, the report functions) stays lock-free
// and pure.
type Service struct {
	slot Slot

	mu    sync.Mutex
	state State
}

func NewService(slot Slot) *Service {
	return &Service{slot: slot}
}

// Init hydrates the snapshot from the slot. An empty or unreadable slot falls
// back to the built-in seed state; corruption is surfaced as a warning, not
// an error, so a damaged data file never bricks the tool.
func (s *Service) Init(ctx context.Context) error {
	data, err := s.slot.Read(ctx)
	if err != nil {
		if !errors.Is(err, ErrEmptySlot) {
			return fmt.Errorf("reading slot: %w", err)
		}

		s.reset(Seed())

		return nil
	}

	state, err := DecodeState(data)
	if err != nil {
		slog.Warn("persisted state unreadable, starting from seed", "error", err)
		s.reset(Seed())

		return nil
	}

	s.reset(state)

	return nil
}

func (s *Service) reset(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

// Snapshot returns the current state. The returned value must be treated as
// read-only; report functions never mutate it.
func (s *Service) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Dispatch applies a command and persists the resulting snapshot. A nil
// command is ignored.
func (s *Service) Dispatch(ctx context.Context, cmd Command) {
	if cmd == nil {
		return
	}

	s.mu.Lock()
	s.state = Apply(s.state, cmd)
	next := s.state
	s.mu.Unlock()

	s.persist(ctx, next)
}

// DispatchAll applies a batch of commands and persists once at the end.
// Used by bulk import so a 500-row file does not write the slot 500 times.
func (s *Service) DispatchAll(ctx context.Context, cmds []Command) {
	if len(cmds) == 0 {
		return
	}

	s.mu.Lock()

	for _, cmd := range cmds {
		if cmd == nil {
			continue
		}

		s.state = Apply(s.state, cmd)
	}

	next := s.state
	s.mu.Unlock()

	s.persist(ctx, next)
}

// Close performs the teardown save.
func (s *Service) Close(ctx context.Context) error {
	data, err := EncodeState(s.Snapshot())
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}

	if err := s.slot.Write(ctx, data); err != nil {
		return fmt.Errorf("writing slot: %w", err)
	}

	return nil
}

func (s *Service) persist(ctx context.Context, state State) {
	data, err := EncodeState(state)
	if err != nil {
		slog.Warn("failed to encode state, change not persisted", "error", err)
		return
	}

	if err := s.slot.Write(ctx, data); err != nil {
		slog.Warn("failed to persist state", "error", err)
	}
}
