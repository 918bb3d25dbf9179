package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"adega-delivery/cart"
	"adega-delivery/catalog"
	"adega-delivery/config"
	"adega-delivery/metrics"
	"adega-delivery/models"
	"adega-delivery/planner"
	"adega-delivery/pricing"
	"adega-delivery/repository"
	"adega-delivery/steps"
)

// StoreStatus tells the client whether checkout is currently possible.
// WhatsAppNumber is where the client sends the order summary.
type StoreStatus struct {
	Open           bool            `json:"open"`
	MinimumOrder   decimal.Decimal `json:"minimumOrder"`
	MeetsMinimum   bool            `json:"meetsMinimum"`
	WhatsAppNumber string          `json:"whatsAppNumber,omitempty"`
}

// CartView is a read-only snapshot of a cart and its in-flight configuration
type CartView struct {
	ID            string                   `json:"id"`
	Lines         []models.CartLine        `json:"lines"`
	Pricing       *models.PricingBreakdown `json:"pricing"`
	Configuration *planner.View            `json:"configuration,omitempty"`
	Store         StoreStatus              `json:"store"`
}

// session is one cart: its ledger plus the single in-flight configuration
type session struct {
	mu      sync.Mutex
	planner *planner.Planner
	ledger  *cart.Ledger
	// quantity committed when the in-flight configuration completes
	pendingQty int
}

// OrderService owns every cart. Mutations of one cart are serialized so that
// a completed configuration commits to the ledger atomically.
type OrderService struct {
	mu    sync.RWMutex
	carts map[string]*session

	catalog  *catalog.Catalog
	products repository.ProductRepositoryInterface
	orders   repository.OrderRepositoryInterface
	engine   *pricing.Engine
	store    config.StoreConfig
	metrics  *metrics.EngineMetrics
	logger   *zap.Logger

	now   func() time.Time
	newID func() string
}

// NewOrderService creates a new OrderService
func NewOrderService(
	c *catalog.Catalog,
	products repository.ProductRepositoryInterface,
	orders repository.OrderRepositoryInterface,
	engine *pricing.Engine,
	store config.StoreConfig,
	m *metrics.EngineMetrics,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		carts:    map[string]*session{},
		catalog:  c,
		products: products,
		orders:   orders,
		engine:   engine,
		store:    store,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Ensure OrderService implements OrderServiceInterface
var _ OrderServiceInterface = (*OrderService)(nil)

// Products lists the sellable products with their classes
func (s *OrderService) Products(ctx context.Context) ([]models.CatalogProduct, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// NewCart creates an empty cart and returns its id
func (s *OrderService) NewCart() string {
	id := s.newID()
	s.mu.Lock()
	s.carts[id] = &session{
		planner: planner.New(s.catalog, s.logger),
		ledger:  cart.NewLedger(s.logger),
	}
	s.mu.Unlock()
	s.logger.Info("🛒 cart created", zap.String("cart_id", id))
	return id
}

func (s *OrderService) evict(cartID string) {
	s.mu.Lock()
	delete(s.carts, cartID)
	s.mu.Unlock()
	s.logger.Debug("🧹 cart evicted", zap.String("cart_id", cartID))
}

func (s *OrderService) session(cartID string) (*session, error) {
	s.mu.RLock()
	sess, ok := s.carts[cartID]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("cart %s: %w", cartID, ErrCartNotFound)
	}
	return sess, nil
}

// view builds the snapshot; callers hold sess.mu
func (s *OrderService) view(cartID string, sess *session) *CartView {
	breakdown := sess.ledger.Breakdown(s.engine)
	v := &CartView{
		ID:      cartID,
		Lines:   sess.ledger.Lines(),
		Pricing: breakdown,
		Store: StoreStatus{
			Open:           s.store.Open,
			MinimumOrder:   s.store.MinimumOrder,
			MeetsMinimum:   breakdown.Total.GreaterThanOrEqual(s.store.MinimumOrder),
			WhatsAppNumber: s.store.WhatsAppNumber,
		},
	}
	if sess.planner.State() != planner.Idle {
		pv := sess.planner.View()
		v.Configuration = &pv
	}
	return v
}

// Snapshot returns the current state of a cart
func (s *OrderService) Snapshot(cartID string) (*CartView, error) {
	sess, err := s.session(cartID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.view(cartID, sess), nil
}

func needsConfiguration(class models.ProductClass) bool {
	return class.Has(models.ClassRequiresIce) ||
		class.Has(models.ClassRequiresAlcohol) ||
		class.Has(models.ClassReferencesMixerBrand) ||
		class.IsDrinkMix()
}

// AddProduct commits a simple product at once with qty units, merging into its
// line. A configurable product starts a configuration; qty units are committed
// as one line when it completes.
func (s *OrderService) AddProduct(ctx context.Context, cartID string, productID int64, qty int) (*CartView, error) {
	sess, err := s.session(cartID)
	if err != nil {
		return nil, err
	}
	if qty <= 0 {
		return nil, models.NewValidationRejected(models.MsgQuantityPositive)
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !needsConfiguration(product.Class) {
		item := models.NewProduct(*product)
		if _, err := sess.ledger.AddOrIncrement(item, qty); err != nil {
			return nil, s.rejected("cart", err)
		}
		s.logger.Info("➕ product added",
			zap.String("cart_id", cartID),
			zap.String("product", product.Name),
			zap.Int("qty", qty),
		)
		return s.view(cartID, sess), nil
	}

	if _, err := sess.planner.Start(*product); err != nil {
		return nil, s.rejected("cart", err)
	}
	sess.pendingQty = qty
	s.metrics.Configuration(metrics.OutcomeStarted)
	return s.view(cartID, sess), nil
}

// rejected counts recoverable rejections and passes err through
func (s *OrderService) rejected(step string, err error) error {
	if models.IsValidationRejected(err) || models.IsConfigurationIncomplete(err) {
		s.metrics.Rejection(step)
	}
	return err
}

// configure runs one planner action on the cart's in-flight configuration
func (s *OrderService) configure(cartID string, step steps.Step, action func(p *planner.Planner) error) (*CartView, error) {
	sess, err := s.session(cartID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := action(sess.planner); err != nil {
		return nil, s.rejected(step.String(), err)
	}
	return s.view(cartID, sess), nil
}

// UpdateIce adds or removes one unit of an ice flavor
func (s *OrderService) UpdateIce(cartID, flavor string, delta steps.Delta) (*CartView, error) {
	return s.configure(cartID, steps.StepIce, func(p *planner.Planner) error {
		return p.UpdateIce(flavor, delta)
	})
}

// SelectIce adds one unit of an ice flavor
func (s *OrderService) SelectIce(cartID, flavor string) (*CartView, error) {
	return s.UpdateIce(cartID, flavor, steps.Add)
}

// DeselectIce removes one unit of an ice flavor
func (s *OrderService) DeselectIce(cartID, flavor string) (*CartView, error) {
	return s.UpdateIce(cartID, flavor, steps.Remove)
}

// ChooseAlcohol picks the spirit of the in-flight configuration
func (s *OrderService) ChooseAlcohol(cartID, spirit string) (*CartView, error) {
	return s.configure(cartID, steps.StepAlcohol, func(p *planner.Planner) error {
		return p.ChooseAlcohol(spirit)
	})
}

// ChooseMixerFlavor picks the mixer flavor of the in-flight configuration
func (s *OrderService) ChooseMixerFlavor(cartID, flavor string) (*CartView, error) {
	return s.configure(cartID, steps.StepMixerFlavor, func(p *planner.Planner) error {
		return p.ChooseMixerFlavor(flavor)
	})
}

// UpdateEnergyDrink adds or removes one unit of an energy drink
func (s *OrderService) UpdateEnergyDrink(cartID, brand, flavor string, delta steps.Delta) (*CartView, error) {
	return s.configure(cartID, steps.StepEnergyDrink, func(p *planner.Planner) error {
		return p.UpdateEnergyDrink(brand, flavor, delta)
	})
}

// SelectEnergyDrink adds one unit of an energy drink
func (s *OrderService) SelectEnergyDrink(cartID, brand, flavor string) (*CartView, error) {
	return s.UpdateEnergyDrink(cartID, brand, flavor, steps.Add)
}

// DeselectEnergyDrink removes one unit of an energy drink
func (s *OrderService) DeselectEnergyDrink(cartID, brand, flavor string) (*CartView, error) {
	return s.UpdateEnergyDrink(cartID, brand, flavor, steps.Remove)
}

// ConfirmStep confirms the current step. When the configuration completes the
// product is committed to the ledger under the same lock.
func (s *OrderService) ConfirmStep(cartID string) (*CartView, error) {
	sess, err := s.session(cartID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	label := "confirm"
	if step, ok := sess.planner.State().Step(); ok {
		label = step.String()
	}
	state, err := sess.planner.Confirm()
	if err != nil {
		return nil, s.rejected(label, err)
	}
	if state != planner.Complete {
		return s.view(cartID, sess), nil
	}

	product, err := sess.planner.Result()
	if err != nil {
		return nil, err
	}
	qty := sess.pendingQty
	if qty <= 0 {
		qty = 1
	}
	line, err := sess.ledger.AddOrIncrement(product, qty)
	if err != nil {
		// the planner keeps its complete configuration so the commit can be retried
		return nil, s.rejected("cart", err)
	}
	sess.planner.Cancel()
	sess.pendingQty = 0
	s.metrics.Configuration(metrics.OutcomeCompleted)

	s.logger.Info("✅ configured product committed",
		zap.String("cart_id", cartID),
		zap.String("line", line.ID),
		zap.String("product", line.Name),
		zap.String("unit_price", line.Price.StringFixed(2)),
		zap.Int("qty", line.Qty),
	)
	return s.view(cartID, sess), nil
}

// CancelConfiguration discards the in-flight configuration. The ledger is untouched.
func (s *OrderService) CancelConfiguration(cartID string) (*CartView, error) {
	sess, err := s.session(cartID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.planner.InFlight() {
		s.metrics.Configuration(metrics.OutcomeCancelled)
	}
	sess.planner.Cancel()
	sess.pendingQty = 0
	return s.view(cartID, sess), nil
}

// UpdateLine changes a line quantity by delta; the line is removed at 0
func (s *OrderService) UpdateLine(cartID, lineID string, delta int) (*CartView, error) {
	sess, err := s.session(cartID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if _, err := sess.ledger.Increment(lineID, delta); err != nil {
		return nil, s.rejected("cart", err)
	}
	return s.view(cartID, sess), nil
}

// RemoveLine deletes a line
func (s *OrderService) RemoveLine(cartID, lineID string) (*CartView, error) {
	sess, err := s.session(cartID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.ledger.Remove(lineID); err != nil {
		return nil, s.rejected("cart", err)
	}
	return s.view(cartID, sess), nil
}

// Checkout prices and persists the cart, then evicts it; later calls
// on the same cart ID return ErrCartNotFound.
// It fails while the store is closed, while a configuration is in flight,
// for an empty cart and when the post-discount total is below the minimum order.
func (s *OrderService) Checkout(ctx context.Context, cartID string, customer models.Customer) (*models.Order, error) {
	sess, err := s.session(cartID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !s.store.Open {
		s.metrics.Checkout(metrics.CheckoutRejected)
		return nil, ErrStoreClosed
	}
	if sess.planner.InFlight() {
		s.metrics.Checkout(metrics.CheckoutRejected)
		return nil, models.NewValidationRejected(models.MsgConfigurationInFlight)
	}
	if sess.ledger.Len() == 0 {
		s.metrics.Checkout(metrics.CheckoutRejected)
		return nil, ErrEmptyCart
	}
	customer.Name = strings.TrimSpace(customer.Name)
	customer.Phone = strings.TrimSpace(customer.Phone)
	if customer.Name == "" || customer.Phone == "" {
		s.metrics.Checkout(metrics.CheckoutRejected)
		return nil, models.NewValidationRejected(models.MsgCustomerRequired)
	}
	if err := sess.ledger.Verify(); err != nil {
		s.logger.Error("❌ cart invariant violated", zap.String("cart_id", cartID), zap.Error(err))
		s.metrics.Checkout(metrics.CheckoutFailed)
		return nil, err
	}

	breakdown := sess.ledger.Breakdown(s.engine)
	if breakdown.Total.LessThan(s.store.MinimumOrder) {
		s.metrics.Checkout(metrics.CheckoutRejected)
		return nil, fmt.Errorf("%w: total %s, minimum %s",
			ErrBelowMinimumOrder, breakdown.Total.StringFixed(2), s.store.MinimumOrder.StringFixed(2))
	}

	order := &models.Order{
		ID:        s.newID(),
		CartID:    cartID,
		Customer:  customer,
		Lines:     sess.ledger.Lines(),
		Pricing:   breakdown,
		Status:    models.OrderStatusPlaced,
		CreatedAt: s.now(),
	}
	order.Summary = FormatOrderSummary(order)

	if err := s.orders.Save(ctx, order); err != nil {
		s.logger.Error("❌ failed to save order", zap.String("cart_id", cartID), zap.Error(err))
		s.metrics.Checkout(metrics.CheckoutFailed)
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	sess.ledger.Clear()
	s.evict(cartID)
	s.metrics.Checkout(metrics.CheckoutPlaced)
	s.metrics.ObserveOrder(breakdown.Total.InexactFloat64())
	s.logger.Info("✅ order placed",
		zap.String("cart_id", cartID),
		zap.String("order_id", order.ID),
		zap.String("total", breakdown.Total.StringFixed(2)),
	)
	return order, nil
}
