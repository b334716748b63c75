package handler

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/cyberalexander/messengerio/internal/middleware"
	"github.com/cyberalexander/messengerio/internal/request"
	"github.com/cyberalexander/messengerio/internal/response"
	"github.com/cyberalexander/messengerio/internal/sms"
)

// maxBodyBytes bounds the JSON body of a send request.
const maxBodyBytes = 1 << 20

// MessageHandler wires the SMS endpoint to a sender.
type MessageHandler struct {
	sender sms.Sender
	logger *zap.Logger
}

// NewMessageHandler constructs a new MessageHandler with its dependencies.
func NewMessageHandler(sender sms.Sender, logger *zap.Logger) *MessageHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MessageHandler{
		sender: sender,
		logger: logger.Named("message"),
	}
}

// SendMessage godoc
// @Summary     Send an SMS
// @Description Validates the request and hands the message to the SMS provider.
// @Description Returns 201 when the provider accepted it and 409 when it did not.
// @Tags        sms
// @Accept      json
// @Produce     plain
// @Param       request body request.SendMessageRequest true "Destination number and message body"
// @Success     201 {string} string "Operation executed with the result : [true]"
// @Failure     409 {string} string "Operation executed with the result : [false]"
// @Failure     400 {object} response.ErrorResponse
// @Failure     413 {object} response.ErrorResponse
// @Failure     500 {object} response.ErrorResponse
// @Router      /api/v1/sms [post]
func (h *MessageHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	req, err := request.Decode(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.RespondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		response.RespondError(w, http.StatusBadRequest, request.ErrInvalidBody.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.RespondFieldErrors(w, http.StatusBadRequest, err.Error(), request.Fields(err))
		return
	}

	// Validate produces the per-field report for the client; the domain
	// constructor owns the invariant for every other caller of message.Request.
	msg, err := req.ToDomain()
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	log := h.logger.With(zap.String("request_id", middleware.RequestIDFromContext(r.Context())))

	result, err := h.sender.SendMessage(r.Context(), msg)
	if err != nil {
		log.Error("send message failed", zap.Error(err))
		response.RespondError(w, http.StatusInternalServerError, "failed to send message")
		return
	}

	log.Debug("send message completed", zap.Bool("result", result))

	status := http.StatusCreated
	if !result {
		status = http.StatusConflict
	}

	response.RespondText(w, status, resultBody(result))
}

func resultBody(result bool) string {
	return fmt.Sprintf("Operation executed with the result : [%t]", result)
}
