package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/eshop-register/backend/pkg/db/models"
)

// DefaultTaxRate is the fallback applied when an order item carries no
// snapshotted tax rate.
var DefaultTaxRate = decimal.RequireFromString("0.21")

var one = decimal.NewFromInt(1)

// ExtendedPrice computes unit_price * quantity * (1 + tax_rate) for one
// order line.
func ExtendedPrice(unitPrice decimal.Decimal, quantity int, taxRate decimal.Decimal) decimal.Decimal {
	return unitPrice.
		Mul(decimal.NewFromInt(int64(quantity))).
		Mul(one.Add(taxRate))
}

// ItemTaxRate returns the item's snapshotted tax rate, or DefaultTaxRate
// when none was recorded.
func ItemTaxRate(item models.OrderItem) decimal.Decimal {
	if item.TaxRate.Valid {
		return item.TaxRate.Decimal
	}
	return DefaultTaxRate
}

// ItemExtendedPrice computes the extended price of a stored order item using
// its snapshotted unit price and tax rate.
func ItemExtendedPrice(item models.OrderItem) decimal.Decimal {
	return ExtendedPrice(item.UnitPrice, item.Quantity, ItemTaxRate(item))
}
