package pricing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"adega-delivery/models"
)

// RuleTypeCaseDiscount bills units sold in full cases at a discount
const RuleTypeCaseDiscount = "case_discount"

// PricingConfig represents the pricing configuration structure
type PricingConfig struct {
	Currency string `json:"currency"`
	Rules    []Rule `json:"rules"`
}

type Rule struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Active     bool           `json:"active"`
	Priority   int            `json:"priority"`
	Type       string         `json:"type"`
	Conditions RuleConditions `json:"conditions"`
	Action     RuleAction     `json:"action"`
}

// RuleConditions sizes the case. A rule applies to lines whose product was
// classified as case-discount when the catalog was loaded.
type RuleConditions struct {
	CaseSize int `json:"caseSize"`
}

type RuleAction struct {
	Rate decimal.Decimal `json:"rate"`
}

func (r Rule) law() CaseDiscount {
	return CaseDiscount{CaseSize: r.Conditions.CaseSize, Rate: r.Action.Rate}
}

func (r Rule) matches(line models.CartLine) bool {
	return line.Class.Has(models.ClassCaseDiscount)
}

// DefaultConfig returns the BRL config with the 12-unit beer case rule
func DefaultConfig() PricingConfig {
	return PricingConfig{
		Currency: "BRL",
		Rules: []Rule{
			{
				ID:       "BEER_CASE_12",
				Name:     "Cerveja: 23% off per full dozen",
				Active:   true,
				Priority: 100,
				Type:     RuleTypeCaseDiscount,
				Conditions: RuleConditions{CaseSize: DefaultCaseSize},
				Action: RuleAction{Rate: decimal.RequireFromString(DefaultCaseDiscountRate)},
			},
		},
	}
}

// Engine computes cart totals from the configured rules
type Engine struct {
	config *PricingConfig
	logger *zap.Logger
}

// NewEngine creates a pricing engine from a JSON config file
func NewEngine(configPath string, logger *zap.Logger) (*Engine, error) {
	// Resolve config path
	if !filepath.IsAbs(configPath) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		configPath = filepath.Join(wd, configPath)
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read pricing config: %w", err)
	}

	// Parse JSON
	// Unknown keys are rejected
	var config PricingConfig
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to parse pricing config: %w", err)
	}

	engine, err := NewEngineFromConfig(config, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("✅ pricing config loaded", zap.String("path", configPath), zap.Int("rules", len(config.Rules)))
	return engine, nil
}

// NewEngineFromConfig validates config and sorts its rules by priority (highest first)
func NewEngineFromConfig(config PricingConfig, logger *zap.Logger) (*Engine, error) {
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid pricing config: %w", err)
	}

	rules := append([]Rule(nil), config.Rules...)
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
	config.Rules = rules

	return &Engine{config: &config, logger: logger}, nil
}

// NewDefaultEngine creates an engine with DefaultConfig
func NewDefaultEngine(logger *zap.Logger) *Engine {
	engine, err := NewEngineFromConfig(DefaultConfig(), logger)
	if err != nil {
		panic(err)
	}
	return engine
}

func validateConfig(config *PricingConfig) error {
	if config.Currency == "" {
		return fmt.Errorf("currency is required")
	}
	seen := map[string]bool{}
	for _, rule := range config.Rules {
		if rule.ID == "" {
			return fmt.Errorf("rule id is required")
		}
		if seen[rule.ID] {
			return fmt.Errorf("duplicate rule id %s", rule.ID)
		}
		seen[rule.ID] = true
		if rule.Type != RuleTypeCaseDiscount {
			return fmt.Errorf("rule %s: unsupported type %q", rule.ID, rule.Type)
		}
		if rule.Conditions.CaseSize <= 0 {
			return fmt.Errorf("rule %s: caseSize must be greater than 0", rule.ID)
		}
		if rule.Action.Rate.IsNegative() || rule.Action.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("rule %s: rate must be between 0 and 1", rule.ID)
		}
	}
	return nil
}

// Currency returns the configured currency code
func (e *Engine) Currency() string {
	return e.config.Currency
}

// ruleFor returns the highest-priority active rule matching the line
func (e *Engine) ruleFor(line models.CartLine) (Rule, bool) {
	for _, rule := range e.config.Rules {
		if rule.Active && rule.matches(line) {
			return rule, true
		}
	}
	return Rule{}, false
}

// PriceLine computes the pricing of a single cart line
func (e *Engine) PriceLine(line models.CartLine) models.PricingLine {
	pl := models.PricingLine{
		LineID:     line.ID,
		Name:       line.Name,
		Qty:        line.Qty,
		QtyRegular: line.Qty,
		UnitPrice:  line.Price,
		LineTotal:  line.Price.Mul(decimal.NewFromInt(int64(line.Qty))),
		RuleIDs:    []string{},
	}
	if line.Qty <= 0 {
		pl.QtyRegular = 0
		pl.LineTotal = decimal.Zero
		return pl
	}

	rule, ok := e.ruleFor(line)
	if !ok {
		return pl
	}
	law := rule.law()
	discounted, regular := law.Split(line.Qty)
	if discounted == 0 {
		return pl
	}
	pl.QtyDiscounted = discounted
	pl.QtyRegular = regular
	pl.LineTotal = law.LineTotal(line.Price, line.Qty)
	pl.RuleIDs = append(pl.RuleIDs, rule.ID)
	return pl
}

// CalculateCartPricing calculates pricing for every cart line.
// It is recomputed on every call from the given quantities.
func (e *Engine) CalculateCartPricing(lines []models.CartLine) *models.PricingBreakdown {
	breakdown := &models.PricingBreakdown{
		Currency:     e.config.Currency,
		Subtotal:     decimal.Zero,
		Discount:     decimal.Zero,
		Total:        decimal.Zero,
		Lines:        []models.PricingLine{},
		AppliedRules: []string{},
	}

	applied := map[string]bool{}
	for _, line := range lines {
		pl := e.PriceLine(line)
		if line.Qty > 0 {
			breakdown.Subtotal = breakdown.Subtotal.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Qty))))
		}
		breakdown.Total = breakdown.Total.Add(pl.LineTotal)
		for _, id := range pl.RuleIDs {
			if !applied[id] {
				applied[id] = true
				breakdown.AppliedRules = append(breakdown.AppliedRules, id)
			}
		}
		breakdown.Lines = append(breakdown.Lines, pl)
	}
	breakdown.Discount = breakdown.Subtotal.Sub(breakdown.Total)

	e.logger.Debug("💰 cart pricing calculated",
		zap.Int("lines", len(lines)),
		zap.String("subtotal", breakdown.Subtotal.StringFixed(2)),
		zap.String("total", breakdown.Total.StringFixed(2)),
		zap.Strings("applied_rules", breakdown.AppliedRules),
	)
	return breakdown
}
