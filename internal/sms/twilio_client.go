package sms

import (
	"context"
	"errors"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioclient "github.com/twilio/twilio-go/client"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"github.com/cyberalexander/messengerio/internal/domain/message"
)

// TwilioConfig holds the provider credentials and the origin number.
// It is read once at startup and never modified.
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

// twilioAPI is the slice of the Twilio REST API this client uses.
// *twilioApi.ApiService satisfies it.
type twilioAPI interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
	FetchAccount(sid string) (*twilioApi.ApiV2010Account, error)
}

// TwilioSender sends SMS messages through the Twilio Messages API.
type TwilioSender struct {
	api    twilioAPI
	cfg    TwilioConfig
	logger *zap.Logger
}

// NewTwilioSender creates a sender authenticated with the given account.
func NewTwilioSender(cfg TwilioConfig, logger *zap.Logger) *TwilioSender {
	rest := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})

	return newTwilioSender(rest.Api, cfg, logger)
}

func newTwilioSender(api twilioAPI, cfg TwilioConfig, logger *zap.Logger) *TwilioSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TwilioSender{
		api:    api,
		cfg:    cfg,
		logger: logger.Named("twilio"),
	}
}

// SendMessage implements Sender by creating one message from the configured
// origin number to the request's destination.
//
// A message the provider accepted is reported as sent even when the response
// carries an error message; that error is only logged.
func (s *TwilioSender) SendMessage(ctx context.Context, req message.Request) (bool, error) {
	// The SDK call cannot be cancelled, so at least don't start one for a dead request.
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("send sms: %w", err)
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(req.DestinationPhoneNumber())
	params.SetFrom(s.cfg.FromNumber)
	params.SetBody(req.Message())

	resp, err := s.api.CreateMessage(params)
	if err != nil {
		s.logProviderError("create message failed", err)
		return false, fmt.Errorf("send sms: %w", err)
	}

	s.logger.Info("message accepted by provider",
		zap.String("sid", deref(resp.Sid)),
		zap.String("status", deref(resp.Status)),
		zap.String("error_message", deref(resp.ErrorMessage)),
	)

	return true, nil
}

// Health implements HealthChecker by fetching the configured account,
// which fails fast on bad credentials.
func (s *TwilioSender) Health(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("health: %w", err)
	}

	account, err := s.api.FetchAccount(s.cfg.AccountSID)
	if err != nil {
		s.logProviderError("fetch account failed", err)
		return fmt.Errorf("health: %w", err)
	}

	if status := deref(account.Status); status != "" && status != "active" {
		return fmt.Errorf("health: account %s is %s", s.cfg.AccountSID, status)
	}

	return nil
}

func (s *TwilioSender) logProviderError(msg string, err error) {
	var restErr *twilioclient.TwilioRestError
	if errors.As(err, &restErr) {
		s.logger.Error(msg,
			zap.Int("code", restErr.Code),
			zap.Int("http_status", restErr.Status),
			zap.String("more_info", restErr.MoreInfo),
			zap.Error(err),
		)
		return
	}
	s.logger.Error(msg, zap.Error(err))
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// compile-time check: TwilioSender satisfies Sender and HealthChecker.
var (
	_ Sender        = (*TwilioSender)(nil)
	_ HealthChecker = (*TwilioSender)(nil)
)
