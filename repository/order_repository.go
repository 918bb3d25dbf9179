package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"adega-delivery/db"
	"adega-delivery/models"
)

// OrderRepository handles database operations for checked-out orders
type OrderRepository struct {
	logger *zap.Logger
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(logger *zap.Logger) *OrderRepository {
	return &OrderRepository{logger: logger}
}

// Ensure OrderRepository implements OrderRepositoryInterface
var _ OrderRepositoryInterface = (*OrderRepository)(nil)

// lineRecord is the persisted shape of a cart line
type lineRecord struct {
	ice          []byte
	energyDrinks []byte
}

func encodeLine(line models.CartLine) (lineRecord, error) {
	var rec lineRecord
	if len(line.Ice) > 0 {
		b, err := json.Marshal(line.Ice)
		if err != nil {
			return rec, fmt.Errorf("failed to encode ice: %w", err)
		}
		rec.ice = b
	}
	if len(line.EnergyDrinks) > 0 {
		b, err := json.Marshal(line.EnergyDrinks)
		if err != nil {
			return rec, fmt.Errorf("failed to encode energy drinks: %w", err)
		}
		rec.energyDrinks = b
	}
	return rec, nil
}

func decimalQty(qty int) decimal.Decimal {
	return decimal.NewFromInt(int64(qty))
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Save inserts the order and all its lines in a single transaction
func (r *OrderRepository) Save(ctx context.Context, order *models.Order) error {
	if order.Pricing == nil {
		return fmt.Errorf("order %s has no pricing", order.ID)
	}
	r.logger.Info("📦 Saving order", zap.String("order_id", order.ID), zap.Int("lines", len(order.Lines)))

	// Start transaction
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		r.logger.Error("❌ Error starting transaction", zap.Error(err))
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	queryOrder := `
		INSERT INTO orders (id, cart_id, customer_name, phone, address, notes,
		                    subtotal, discount, total, status, summary, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err = tx.ExecContext(ctx, queryOrder,
		order.ID,
		order.CartID,
		order.Customer.Name,
		order.Customer.Phone,
		nullable(order.Customer.Address),
		nullable(order.Customer.Notes),
		order.Pricing.Subtotal,
		order.Pricing.Discount,
		order.Pricing.Total,
		order.Status,
		order.Summary,
		order.CreatedAt,
	)
	if err != nil {
		r.logger.Error("❌ Error inserting order", zap.String("order_id", order.ID), zap.Error(err))
		return fmt.Errorf("failed to insert order: %w", err)
	}

	totals := map[string]models.PricingLine{}
	for _, pl := range order.Pricing.Lines {
		totals[pl.LineID] = pl
	}

	queryLine := `
		INSERT INTO order_lines (order_id, line_id, product_id, name, category, qty, unit_price,
		                         line_total, alcohol, alcohol_extra_cost, mixer_flavor, ice, energy_drinks)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	for _, line := range order.Lines {
		rec, err := encodeLine(line)
		if err != nil {
			return err
		}
		lineTotal := line.Price.Mul(decimalQty(line.Qty))
		if pl, ok := totals[line.ID]; ok {
			lineTotal = pl.LineTotal
		}
		_, err = tx.ExecContext(ctx, queryLine,
			order.ID,
			line.ID,
			line.ProductID,
			line.Name,
			line.Category,
			line.Qty,
			line.Price,
			lineTotal,
			nullable(line.Alcohol),
			line.AlcoholExtraCost,
			nullable(line.MixerFlavor),
			rec.ice,
			rec.energyDrinks,
		)
		if err != nil {
			r.logger.Error("❌ Error inserting order line", zap.String("line_id", line.ID), zap.Error(err))
			return fmt.Errorf("failed to insert order line: %w", err)
		}
	}

	// Commit transaction
	if err := tx.Commit(); err != nil {
		r.logger.Error("❌ Error committing transaction", zap.Error(err))
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.logger.Info("✓ Successfully saved order",
		zap.String("order_id", order.ID),
		zap.String("total", order.Pricing.Total.StringFixed(2)),
	)
	return nil
}
