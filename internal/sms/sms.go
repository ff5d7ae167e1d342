// Package sms delivers text messages through Twilio.
package sms

import (
	"context"
	"errors"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

// Sender delivers one message to one number.
type Sender interface {
	Send(ctx context.Context, to, body string) error
}

type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioSender sends through the Twilio Messages API.
type TwilioSender struct {
	from   string
	api    messageCreator
	logger *zap.SugaredLogger
}

// NewTwilioSender builds a sender for the given account.
func NewTwilioSender(accountSID, authToken, from string, logger *zap.SugaredLogger) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioSender{from: from, api: client.Api, logger: logger}
}

// Send creates one message. The Twilio client has no context support, so
// ctx is only checked before the request goes out.
func (s *TwilioSender) Send(ctx context.Context, to, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if to == "" {
		return errors.New("recipient number is empty")
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	resp, err := s.api.CreateMessage(params)
	if err != nil {
		s.logger.Warnw("twilio send failed", "to", to, "error", err)
		return err
	}
	if resp != nil && resp.Sid != nil {
		s.logger.Debugw("sms sent", "to", to, "sid", *resp.Sid)
	}
	return nil
}
