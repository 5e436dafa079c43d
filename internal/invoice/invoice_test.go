package invoice

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"amalkitchen-be/internal/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) DialAndSend(msgs ...*gomail.Message) error {
	args := m.Called(msgs)
	return args.Error(0)
}

func sampleOrder() *order.Order {
	return &order.Order{
		ID:            7,
		OrderNumber:   "Amal25#0042",
		CustomerName:  "Ayesha Khan",
		CellNumber:    "0821234567",
		Email:         "ayesha@example.com",
		Branch:        "Durban",
		Region:        "PMB",
		PaymentMethod: order.PaymentEFT,
		Items: []order.Item{
			{ProductID: "samoosa", Title: "Chicken Samoosa", Price: 5.5, Quantity: 24, Unit: "dozen"},
			{ProductID: "roti", Title: "Roti", Price: 12, Quantity: 6},
		},
		Total:     204,
		Status:    order.StatusPending,
		CreatedAt: time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
	}
}

func TestRenderPDF(t *testing.T) {
	t.Run("Produces a document", func(t *testing.T) {
		data, err := RenderPDF(sampleOrder(), "")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "%PDF"))
		assert.Greater(t, len(data), 500)
	})

	t.Run("Missing logo is skipped", func(t *testing.T) {
		data, err := RenderPDF(sampleOrder(), "/nonexistent/logo.png")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "%PDF"))
	})
}

func TestRenderBody(t *testing.T) {
	o := sampleOrder()

	body, err := renderBody(o, "https://amalskitchen.example")
	require.NoError(t, err)

	assert.Contains(t, body, "Amal25#0042")
	assert.Contains(t, body, "Ayesha Khan")
	assert.Contains(t, body, "R204.00")
	assert.Contains(t, body, "Durban")
	assert.Contains(t, body, "PMB")
	assert.Contains(t, body, "https://amalskitchen.example")

	t.Run("Duplicates the item summary", func(t *testing.T) {
		assert.Contains(t, body, "Chicken Samoosa (dozen)")
		assert.Contains(t, body, "R5.50")
		assert.Contains(t, body, "R132.00")
		assert.Contains(t, body, "Roti")
		assert.Contains(t, body, "R72.00")
	})

	t.Run("Duplicates the banking details", func(t *testing.T) {
		assert.Contains(t, body, "First National Bank")
		assert.Contains(t, body, "62884123456")
		assert.Contains(t, body, "250655")
		assert.Contains(t, body, "proof of payment before collection")
	})

	t.Run("No storefront link when unset", func(t *testing.T) {
		body, err := renderBody(o, "")
		require.NoError(t, err)
		assert.NotContains(t, body, "Visit our storefront")
	})
}

func TestSender_Send(t *testing.T) {
	ctx := context.Background()

	newSender := func(gw Gateway) *Sender {
		return &Sender{
			gateway:       gw,
			from:          "orders@amalskitchen.example",
			ordersInbox:   "kitchen@amalskitchen.example",
			storefrontURL: "https://amalskitchen.example",
			sendTimeout:   8 * time.Second,
		}
	}

	t.Run("Success addresses customer and inbox", func(t *testing.T) {
		gw := new(MockGateway)
		var sent *gomail.Message
		gw.On("DialAndSend", mock.Anything).Run(func(args mock.Arguments) {
			msgs := args.Get(0).([]*gomail.Message)
			sent = msgs[0]
		}).Return(nil).Once()

		err := newSender(gw).Send(ctx, sampleOrder())
		require.NoError(t, err)
		gw.AssertExpectations(t)

		require.NotNil(t, sent)
		to := sent.GetHeader("To")
		assert.Contains(t, strings.Join(to, ","), "ayesha@example.com")
		assert.Contains(t, strings.Join(to, ","), "kitchen@amalskitchen.example")
		assert.Contains(t, sent.GetHeader("Subject")[0], "Amal25#0042")
	})

	t.Run("No email address", func(t *testing.T) {
		gw := new(MockGateway)
		o := sampleOrder()
		o.Email = ""

		err := newSender(gw).Send(ctx, o)
		assert.ErrorIs(t, err, ErrNoRecipient)
		gw.AssertNotCalled(t, "DialAndSend", mock.Anything)
	})

	t.Run("Gateway failure propagates", func(t *testing.T) {
		gw := new(MockGateway)
		gw.On("DialAndSend", mock.Anything).Return(errors.New("smtp down")).Once()

		err := newSender(gw).Send(ctx, sampleOrder())
		assert.EqualError(t, err, "smtp down")
	})

	t.Run("Hung dialer hits send timeout", func(t *testing.T) {
		gw := new(MockGateway)
		release := make(chan struct{})
		gw.On("DialAndSend", mock.Anything).Run(func(mock.Arguments) {
			<-release
		}).Return(nil).Once()

		s := newSender(gw)
		s.sendTimeout = 50 * time.Millisecond

		err := s.Send(ctx, sampleOrder())
		assert.ErrorIs(t, err, ErrSendTimeout)
		close(release)
	})

	t.Run("Cancelled context", func(t *testing.T) {
		gw := new(MockGateway)
		release := make(chan struct{})
		gw.On("DialAndSend", mock.Anything).Run(func(mock.Arguments) {
			<-release
		}).Return(nil).Once()

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		err := newSender(gw).Send(cancelled, sampleOrder())
		assert.ErrorIs(t, err, context.Canceled)
		close(release)
	})
}
