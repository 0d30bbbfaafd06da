package push

import (
	"context"
	"testing"

	"github.com/TestingSDK2/marketplace-notifier/consts"
	"github.com/TestingSDK2/marketplace-notifier/messaging"
	"github.com/TestingSDK2/marketplace-notifier/model"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memTokens struct {
	tokens  map[string]model.SellerToken
	deleted []string
}

func (m *memTokens) Get(_ context.Context, sellerID string) (*model.SellerToken, error) {
	token, ok := m.tokens[sellerID]
	if !ok {
		return nil, nil
	}
	return &token, nil
}

func (m *memTokens) Delete(_ context.Context, sellerID string) error {
	m.deleted = append(m.deleted, sellerID)
	delete(m.tokens, sellerID)
	return nil
}

type fakeSender struct {
	sent []messaging.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, _ model.SellerToken, msg messaging.Message) error {
	f.sent = append(f.sent, msg)
	return f.err
}

func intPtr(v int) *int { return &v }

func TestSend_NoToken(t *testing.T) {
	tokens := &memTokens{tokens: map[string]model.SellerToken{}}
	sender := &fakeSender{}
	svc := NewService(tokens, sender)

	status, err := svc.Send(context.Background(), "S1", &model.Notification{Type: consts.OrderType})

	require.NoError(t, err)
	assert.Equal(t, StatusNoToken, status)
	assert.Empty(t, sender.sent)
	assert.Empty(t, tokens.deleted)
}

func TestSend_Delivered(t *testing.T) {
	tokens := &memTokens{tokens: map[string]model.SellerToken{"S1": {SellerID: "S1", Token: "tok"}}}
	sender := &fakeSender{}
	svc := NewService(tokens, sender)

	status, err := svc.Send(context.Background(), "S1", &model.Notification{
		Type:    consts.OrderType,
		Title:   "New Order Received!",
		Message: "hello",
		OrderID: "O1",
	})

	require.NoError(t, err)
	assert.Equal(t, StatusSent, status)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "New Order Received!", sender.sent[0].Title)
	assert.Equal(t, "hello", sender.sent[0].Body)
	assert.Equal(t, map[string]string{"type": "order", "orderId": "O1"}, sender.sent[0].Data)
}

func TestSend_UnregisteredTokenIsDeleted(t *testing.T) {
	tokens := &memTokens{tokens: map[string]model.SellerToken{"S1": {SellerID: "S1", Token: "stale"}}}
	sender := &fakeSender{err: errors.Wrap(messaging.ErrTokenNotRegistered, "requested entity was not found")}
	svc := NewService(tokens, sender)

	_, err := svc.Send(context.Background(), "S1", &model.Notification{Type: consts.AdminType})

	require.Error(t, err)
	assert.True(t, messaging.IsTokenNotRegistered(err))
	assert.Equal(t, []string{"S1"}, tokens.deleted)
	require.Len(t, sender.sent, 1)
}

func TestSend_OtherFailureKeepsToken(t *testing.T) {
	tokens := &memTokens{tokens: map[string]model.SellerToken{"S1": {SellerID: "S1", Token: "tok"}}}
	sender := &fakeSender{err: errors.New("unavailable")}
	svc := NewService(tokens, sender)

	_, err := svc.Send(context.Background(), "S1", &model.Notification{Type: consts.AdminType})

	require.Error(t, err)
	assert.Empty(t, tokens.deleted)
	assert.Len(t, sender.sent, 1)
}

func TestBuildMessage(t *testing.T) {
	review := buildMessage(&model.Notification{
		Type:      consts.ReviewType,
		ProductID: "P1",
		Rating:    intPtr(4),
	})
	assert.Equal(t, map[string]string{"type": "review", "productId": "P1", "rating": "4"}, review.Data)

	admin := buildMessage(&model.Notification{Type: consts.AdminType, AnnouncementID: "A1"})
	assert.Equal(t, map[string]string{"type": "admin", "announcementId": "A1"}, admin.Data)
}
