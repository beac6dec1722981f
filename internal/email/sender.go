package email

import (
	"context"
	"errors"
	"fmt"

	"wellness-planner/internal/report"
)

var ErrEmailDisabled = errors.New("email sender disabled")

// Sender define la interfaz para enviar el plan de bienestar al cliente.
type Sender interface {
	SendPlan(ctx context.Context, toEmail, clientName string, doc report.Document) error
}

type disabledSender struct {
	reason string
}

func NewDisabledSender(reason string) Sender {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) SendPlan(_ context.Context, _, _ string, _ report.Document) error {
	if s.reason == "" {
		return ErrEmailDisabled
	}
	return fmt.Errorf("%w: %s", ErrEmailDisabled, s.reason)
}
