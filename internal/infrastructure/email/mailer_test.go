package email

import (
	"strings"
	"testing"

	"github.com/lewisgroup/storefront/internal/domain/order"
	infraconfig "github.com/lewisgroup/storefront/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder("wizard", order.ShippingAddress{FullName: "Wizard", Address1: "1 Main St", City: "Townsville", Zip: "1000", Country: "AU"},
		[]order.OrderItem{
			{ProductName: "Guitar", Price: 89900, Quantity: 1},
			{ProductName: "Pedal", Price: 120088, Quantity: 2},
		}, order.DeliveryStandard)
	require.NoError(t, err)
	return o
}

func TestSMTPMailer_BuildsMessage(t *testing.T) {
	m := NewSMTPMailer(&infraconfig.EmailConfig{
		Host:     "localhost",
		Port:     1025,
		From:     "no-reply@lewisgroup.local",
		FromName: "Lewis Group",
	}, zap.NewNop())

	o := newTestOrder(t)
	msg := string(m.buildMessage("nazim@gmail.com", "Order confirmation", m.confirmationBody(o)))

	assert.True(t, strings.HasPrefix(msg, "From: Lewis Group <no-reply@lewisgroup.local>"))
	assert.Contains(t, msg, "To: nazim@gmail.com")
	assert.Contains(t, msg, "Thank you for your purchase")
	assert.Contains(t, msg, "1 x Guitar - $899.00")
	assert.Contains(t, msg, "2 x Pedal - $2401.76")
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "$0.00", formatCents(0))
	assert.Equal(t, "$5.00", formatCents(500))
	assert.Equal(t, "$1200.88", formatCents(120088))
}

func TestNoopMailer(t *testing.T) {
	m := NewNoopMailer(zap.NewNop())
	o := newTestOrder(t)
	assert.NoError(t, m.SendOrderConfirmation(t.Context(), "nazim@gmail.com", o))
}
