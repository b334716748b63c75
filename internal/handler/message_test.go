package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cyberalexander/messengerio/internal/domain/message"
	"github.com/cyberalexander/messengerio/internal/response"
)

// MockSender is a mock implementation of sms.Sender.
type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendMessage(ctx context.Context, req message.Request) (bool, error) {
	args := m.Called(ctx, req)
	return args.Bool(0), args.Error(1)
}

func sendRequest(t *testing.T, h *MessageHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sms", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.SendMessage(w, req)
	return w
}

func matchRequest(to, body string) interface{} {
	return mock.MatchedBy(func(r message.Request) bool {
		return r.DestinationPhoneNumber() == to && r.Message() == body
	})
}

const validBody = `{"destinationPhoneNumber":"+15551234567","message":"hello"}`

func TestSendMessage(t *testing.T) {
	t.Run("message sent", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("SendMessage", mock.Anything, matchRequest("+15551234567", "hello")).Return(true, nil).Once()

		w := sendRequest(t, NewMessageHandler(sender, zap.NewNop()), validBody)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "Operation executed with the result : [true]", w.Body.String())
		sender.AssertExpectations(t)
	})

	t.Run("message was not sent", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("SendMessage", mock.Anything, matchRequest("+15551234567", "hello")).Return(false, nil).Once()

		w := sendRequest(t, NewMessageHandler(sender, zap.NewNop()), validBody)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "Operation executed with the result : [false]", w.Body.String())
		sender.AssertExpectations(t)
	})

	t.Run("sender error", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("SendMessage", mock.Anything, mock.Anything).Return(false, errors.New("connection refused"))

		w := sendRequest(t, NewMessageHandler(sender, zap.NewNop()), validBody)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "Operation executed with the result")

		var got response.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		assert.False(t, got.Success)
		assert.Equal(t, http.StatusInternalServerError, got.Error.Code)
	})

	t.Run("identical requests send twice", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("SendMessage", mock.Anything, mock.Anything).Return(true, nil)
		h := NewMessageHandler(sender, nil)

		for i := 0; i < 2; i++ {
			w := sendRequest(t, h, validBody)
			assert.Equal(t, http.StatusCreated, w.Code)
		}

		sender.AssertNumberOfCalls(t, "SendMessage", 2)
	})
}

func TestSendMessage_ClientErrors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		badFields []string
	}{
		{name: "blank destination", body: `{"destinationPhoneNumber":"","message":"hello"}`, badFields: []string{"destinationPhoneNumber"}},
		{name: "whitespace destination", body: `{"destinationPhoneNumber":"   ","message":"hello"}`, badFields: []string{"destinationPhoneNumber"}},
		{name: "absent destination", body: `{"message":"hello"}`, badFields: []string{"destinationPhoneNumber"}},
		{name: "blank message", body: `{"destinationPhoneNumber":"+15551234567","message":" \t "}`, badFields: []string{"message"}},
		{name: "absent message", body: `{"destinationPhoneNumber":"+15551234567"}`, badFields: []string{"message"}},
		{name: "empty object", body: `{}`, badFields: []string{"destinationPhoneNumber", "message"}},
		{name: "null body", body: `null`, badFields: []string{"destinationPhoneNumber", "message"}},
		{name: "invalid json", body: `invalid json`},
		{name: "empty body", body: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := new(MockSender)

			w := sendRequest(t, NewMessageHandler(sender, zap.NewNop()), tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			sender.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything)

			var got response.ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
			assert.False(t, got.Success)
			for _, f := range tt.badFields {
				assert.Contains(t, got.Error.Fields, f)
			}
		})
	}
}

func TestSendMessage_BodyTooLarge(t *testing.T) {
	sender := new(MockSender)
	body := `{"destinationPhoneNumber":"+15551234567","message":"` + strings.Repeat("a", maxBodyBytes) + `"}`

	w := sendRequest(t, NewMessageHandler(sender, zap.NewNop()), body)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	sender.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything)

	var got response.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, http.StatusRequestEntityTooLarge, got.Error.Code)
}

func TestResultBody(t *testing.T) {
	assert.Equal(t, "Operation executed with the result : [true]", resultBody(true))
	assert.Equal(t, "Operation executed with the result : [false]", resultBody(false))
}
