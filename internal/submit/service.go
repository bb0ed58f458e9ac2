package submit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/felipeleveke/gym-sub000/internal/db"
	"github.com/felipeleveke/gym-sub000/internal/domain"
	"github.com/felipeleveke/gym-sub000/internal/draft"
	"github.com/felipeleveke/gym-sub000/internal/history"
)

// Sender delivers a payload to the persistence endpoint.
type Sender interface {
	Send(ctx context.Context, p *Payload) error
}

// Service runs the submission flow: build and validate the payload, deliver
// it, then in one transaction record local history and erase the draft.
// If delivery fails the draft is left alone so the session can be retried.
type Service struct {
	sender Sender
	uow    db.UnitOfWork
	now    func() time.Time
}

// NewService wires a submission service; now defaults to time.Now.
func NewService(sender Sender, uow db.UnitOfWork, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{sender: sender, uow: uow, now: now}
}

// Submit builds the payload from the session and delivers it. Payload
// validation and endpoint rejection both surface to the caller with the
// draft intact.
func (s *Service) Submit(ctx context.Context, sess *domain.Session) error {
	payload, err := Build(sess, s.now())
	if err != nil {
		return err
	}
	return s.Deliver(ctx, sess.ID, payload)
}

// Deliver sends an already-built payload, then in one transaction records
// history and erases the draft. Everything it writes derives from the
// payload alone, so callers may run it off the event loop while the session
// object stays owned there.
func (s *Service) Deliver(ctx context.Context, sessionID string, payload *Payload) error {
	if err := s.sender.Send(ctx, payload); err != nil {
		return fmt.Errorf("submitting session: %w", err)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding history payload: %w", err)
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		start := payload.StartTime
		end := payload.EndTime
		entry := &history.Entry{
			ID:            domain.CoalesceStr(sessionID, uuid.New().String()),
			Date:          start,
			StartedAt:     &start,
			EndedAt:       &end,
			DurationMin:   payload.Duration,
			Volume:        payload.Volume(),
			ExerciseCount: len(payload.Exercises),
			SetCount:      payload.SetCount(),
			Notes:         payload.Notes,
			Payload:       string(raw),
			CreatedAt:     s.now().UTC(),
		}
		if err := history.NewSQLiteStore(tx).Create(ctx, entry); err != nil {
			return err
		}
		return draft.NewSQLiteStore(tx).Clear(ctx)
	})
}
