package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buffmasterbran/pirani-connector/internal/domain/order"
)

func TestValidateOrders(t *testing.T) {
	t.Run("empty batch yields empty report", func(t *testing.T) {
		report := ValidateOrders(nil, NewSnapshot(nil, nil))
		assert.Empty(t, report.Errors)
		assert.Empty(t, report.UnmappedPaymentCodes)
		assert.Empty(t, report.UnmappedShipmentCodes)
		assert.False(t, report.HasErrors())
	})

	t.Run("deduplicates codes but keeps every error", func(t *testing.T) {
		// Three orders using unresolved shipment codes dhl, dhl, ups_2day.
		orders := []order.Order{
			{ID: 1, Name: "#1001", ShippingLines: []order.ShippingLine{{Code: "dhl"}}},
			{ID: 2, Name: "#1002", ShippingLines: []order.ShippingLine{{Code: "dhl"}}},
			{ID: 3, Name: "#1003", ShippingLines: []order.ShippingLine{{Code: "ups_2day"}}},
		}

		report := ValidateOrders(orders, NewSnapshot(nil, nil))

		require.Len(t, report.Errors, 3)
		assert.Equal(t, []string{"dhl", "ups_2day"}, report.UnmappedShipmentCodes)
		assert.Empty(t, report.UnmappedPaymentCodes)
		assert.True(t, report.HasErrors())
	})

	t.Run("two orders sharing a payment code", func(t *testing.T) {
		orders := []order.Order{
			{ID: 1, Name: "#1001", PaymentGatewayNames: []string{"amex"}},
			{ID: 2, Name: "#1002", PaymentGatewayNames: []string{"amex"}},
		}

		report := ValidateOrders(orders, NewSnapshot(nil, nil))

		require.Len(t, report.Errors, 2)
		assert.Equal(t, "#1001", report.Errors[0].OrderName)
		assert.Equal(t, "#1002", report.Errors[1].OrderName)
		assert.Equal(t, []string{"amex"}, report.UnmappedPaymentCodes)
	})

	t.Run("errors keep traversal order", func(t *testing.T) {
		orders := []order.Order{
			{ID: 1, Name: "#1001", PaymentGatewayNames: []string{"amex"}, ShippingLines: []order.ShippingLine{{Code: "dhl"}}},
			{ID: 2, Name: "#1002", PaymentGatewayNames: []string{"visa"}},
		}
		snap := NewSnapshot([]Entry{mustEntry(t, CategoryPayment, "visa", "228")}, nil)

		report := ValidateOrders(orders, snap)

		require.Len(t, report.Errors, 2)
		assert.Equal(t, "#1001", report.Errors[0].OrderName)
		assert.Equal(t, CategoryPayment, report.Errors[0].Category)
		assert.Equal(t, "#1001", report.Errors[1].OrderName)
		assert.Equal(t, CategoryShipment, report.Errors[1].Category)
	})

	t.Run("idempotent over unchanged inputs", func(t *testing.T) {
		orders := []order.Order{
			{ID: 1, Name: "#1001", PaymentGatewayNames: []string{"amex"}},
			{ID: 2, Name: "#1002", ShippingLines: []order.ShippingLine{{Code: "dhl"}}},
		}
		snap := fullSnapshot(t)

		first := ValidateOrders(orders, snap)
		second := ValidateOrders(orders, snap)

		require.Len(t, second.Errors, len(first.Errors))
		for i := range first.Errors {
			assert.Equal(t, first.Errors[i].OrderID, second.Errors[i].OrderID)
			assert.Equal(t, first.Errors[i].Category, second.Errors[i].Category)
			assert.Equal(t, first.Errors[i].SourceValue, second.Errors[i].SourceValue)
			assert.Equal(t, first.Errors[i].Message, second.Errors[i].Message)
		}
		assert.Equal(t, first.UnmappedPaymentCodes, second.UnmappedPaymentCodes)
		assert.Equal(t, first.UnmappedShipmentCodes, second.UnmappedShipmentCodes)
	})

	t.Run("gap closes after adding a mapping and re-aggregating", func(t *testing.T) {
		orders := []order.Order{
			{ID: 1, Name: "#1001", PaymentGatewayNames: []string{"amex"}},
		}

		before := ValidateOrders(orders, NewSnapshot(nil, nil))
		require.Equal(t, []string{"amex"}, before.UnmappedPaymentCodes)

		// Operator adds the missing mapping; the caller takes a fresh
		// snapshot and re-runs aggregation.
		closed := NewSnapshot([]Entry{mustEntry(t, CategoryPayment, "amex", "229")}, nil)
		after := ValidateOrders(orders, closed)

		assert.Empty(t, after.Errors)
		assert.Empty(t, after.UnmappedPaymentCodes)
	})
}
