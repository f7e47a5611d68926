// Package engine provides the quote engine.
// CLI and HTTP are thin wrappers around this engine.
package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/gedeza/business-consulting/core/catalog"
	"github.com/gedeza/business-consulting/core/ports"
	"github.com/gedeza/business-consulting/core/pricing"
	"github.com/gedeza/business-consulting/core/types"
	"github.com/gedeza/business-consulting/core/validation"
	qerrors "github.com/gedeza/business-consulting/internal/errors"
	"github.com/gedeza/business-consulting/internal/logging"
)

// ServiceResolver resolves a service name to its definition
type ServiceResolver interface {
	Lookup(name string) (types.Service, error)
}

// Engine computes quotes. It holds no state between calls.
type Engine struct {
	services ServiceResolver

	// Optional: attaches a saved client record to each quote
	clients ports.ClientDirectory

	now   func() time.Time
	newID func() string
	log   *zap.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithClientDirectory attaches saved client records by client name
func WithClientDirectory(d ports.ClientDirectory) Option {
	return func(e *Engine) { e.clients = d }
}

// WithClock overrides the quote timestamp source
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator overrides the quote id source
func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

// New creates a quote engine over a service resolver
func New(services ServiceResolver, opts ...Option) *Engine {
	e := &Engine{
		services: services,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
		log:      logging.Named("engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Generate computes a quote for serviceName. The pricing model comes from
// params.PricingModel or, when that is empty, from the service itself.
// A percentage request may leave serviceName empty.
func (e *Engine) Generate(ctx context.Context, serviceName string, params types.PricingParameters) (*types.Quote, error) {
	if params.PricingModel != "" && !params.PricingModel.IsValid() {
		return nil, qerrors.Validationf("pricingModel", "must be %q or %q, got %q", types.PricingHourly, types.PricingPercentage, params.PricingModel)
	}
	if err := validation.Required("clientName", params.ClientName); err != nil {
		return nil, err
	}
	if err := validation.Required("projectName", params.ProjectName); err != nil {
		return nil, err
	}
	params.Currency = params.Currency.Normalize()
	if !validation.IsCurrencyCode(params.Currency.String()) {
		return nil, qerrors.Validationf("currency", "unknown currency code %q", params.Currency)
	}

	var (
		quote *types.Quote
		err   error
	)
	if params.PricingModel == types.PricingPercentage && serviceName == "" {
		quote, err = e.percentage(catalog.FundingServiceName, params)
	} else {
		svc, lookupErr := e.services.Lookup(serviceName)
		if lookupErr != nil {
			return nil, lookupErr
		}
		model := params.PricingModel
		if model == "" {
			model = svc.Model()
		}
		switch {
		case model == types.PricingPercentage:
			quote, err = e.percentage(svc.Name, params)
		case svc.Model() == types.PricingPercentage:
			return nil, qerrors.Validationf("pricingModel", "service %q is sold under the percentage model", svc.Name)
		default:
			quote, err = e.hourly(&svc, params)
		}
	}
	if err != nil {
		return nil, err
	}

	if err := e.attachClient(ctx, quote); err != nil {
		return nil, err
	}

	e.log.Debug("quote generated",
		zap.String("id", quote.ID),
		zap.String("service", quote.Service),
		zap.String("model", quote.PricingModel.String()),
		zap.String("final_cost", quote.FinalCost.String()),
	)
	return quote, nil
}

func (e *Engine) hourly(svc *types.Service, params types.PricingParameters) (*types.Quote, error) {
	if err := validation.HourlyRate(params.HourlyRate); err != nil {
		return nil, err
	}
	if err := validation.Complexity(params.Complexity); err != nil {
		return nil, err
	}
	if err := validation.PolishingPercentage(params.PolishingPercentage); err != nil {
		return nil, err
	}

	numDocuments := 1
	if svc.RequiresDocCount {
		if err := validation.NumDocuments(params.NumDocuments); err != nil {
			return nil, err
		}
		numDocuments = params.NumDocuments
	}

	tasks := make([]types.QuoteTask, len(svc.Tasks))
	for i, t := range svc.Tasks {
		tasks[i] = types.QuoteTask{Task: t, Completed: params.IsCompleted(t.Name)}
	}

	q := e.newQuote(types.PricingHourly, svc.Name, params)
	q.Tasks = tasks
	q.HourlyRate = params.HourlyRate
	q.Complexity = params.Complexity
	q.NumDocuments = numDocuments
	q.RequiresDocCount = svc.RequiresDocCount
	q.PartialGroundwork = params.PartialGroundwork
	q.GroundworkReduction = svc.GroundworkReduction
	q.PolishingPercentage = params.PolishingPercentage

	price(q)
	return q, nil
}

func (e *Engine) percentage(serviceName string, params types.PricingParameters) (*types.Quote, error) {
	if err := validation.FundingValue(params.FundingValue); err != nil {
		return nil, err
	}
	if err := validation.SupportType(params.SupportType); err != nil {
		return nil, err
	}

	rate := pricing.SupportRate(params.SupportType)
	supportFee := params.FundingValue.Mul(rate)
	securityFee := pricing.SecurityFee
	funding := params.FundingValue
	supportType := params.SupportType

	q := e.newQuote(types.PricingPercentage, serviceName, params)
	q.FinalCost = supportFee.Add(securityFee)
	q.VATAmount = decimal.Zero
	q.SupportFee = &supportFee
	q.SecurityFee = &securityFee
	q.FundingValue = &funding
	q.SupportType = &supportType
	q.SupportDuration = pricing.SupportDuration
	q.Lineage = []string{
		"support fee: " + funding.String() + " x " + rate.String() + " (" + supportType.String() + ") = " + supportFee.String(),
		"security fee: " + pricing.SecurityFeeBase.String() + " x 1.15 = " + securityFee.String(),
		"final cost: " + q.FinalCost.String(),
	}
	return q, nil
}

func (e *Engine) newQuote(model types.PricingModel, serviceName string, params types.PricingParameters) *types.Quote {
	return &types.Quote{
		ID:           e.newID(),
		CreatedAt:    e.now(),
		PricingModel: model,
		Service:      serviceName,
		VATEnabled:   params.VATEnabled,
		Currency:     params.Currency,
		Consultant:   params.Consultant,
		BusinessName: params.BusinessName,
		ClientName:   params.ClientName,
		ProjectName:  params.ProjectName,
	}
}

func (e *Engine) attachClient(ctx context.Context, q *types.Quote) error {
	if e.clients == nil {
		return nil
	}
	client, found, err := e.clients.FindByName(ctx, q.ClientName)
	if err != nil {
		return err
	}
	if found {
		q.Client = client
	}
	return nil
}
