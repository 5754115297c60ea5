package sms

import (
	"context"

	"github.com/finsetu/backend/internal/pkg/instrument"
	pkgsms "github.com/finsetu/backend/internal/pkg/sms"
	"go.opentelemetry.io/otel/codes"
)

type SMS struct {
	sender pkgsms.Sender
	ins    instrument.Instrumentation
}

func New(sender pkgsms.Sender, ins instrument.Instrumentation) *SMS {
	return &SMS{sender: sender, ins: ins}
}

func (s *SMS) SendOtp(ctx context.Context, phoneNumber, text string) error {
	ctx, span := s.ins.Tracer("notification.outbound.sms").Start(ctx, "SendOtp")
	defer span.End()

	if err := s.sender.Send(ctx, pkgsms.Message{To: phoneNumber, Body: text}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
