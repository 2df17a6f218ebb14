package order

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/NenadVrtue/webshop-triangle/internal/domain/order"
	"github.com/NenadVrtue/webshop-triangle/internal/domain/repository"
	"github.com/NenadVrtue/webshop-triangle/pkg/logger"
)

// Publisher emits the order-created event after the transaction commits.
// A publish failure never fails the submission.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, o *domain.Order) error
}

// Service is the sole write path turning a priced cart into a durable
// order with items.
type Service struct {
	orders    repository.OrderRepository
	pricer    *Pricer
	publisher Publisher
	log       logger.Logger
}

// SubmitOrderCommand is the validated-at-the-boundary submission input.
type SubmitOrderCommand struct {
	UserID        *int64
	Discount      decimal.Decimal
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	CompanyName   string
	Address       string
	City          string
	PostalCode    string
	Notes         string
	Items         []LineInput
}

func NewService(
	orders repository.OrderRepository,
	tires repository.TireRepository,
	publisher Publisher,
	log logger.Logger,
) *Service {
	return &Service{
		orders:    orders,
		pricer:    NewPricer(tires),
		publisher: publisher,
		log:       log,
	}
}

// Submit validates the command, prices the cart, persists order plus items
// in one transaction and returns the reloaded aggregate. The notification
// event goes out after commit; its failure is logged only.
func (s *Service) Submit(ctx context.Context, cmd SubmitOrderCommand) (*domain.Order, error) {
	if err := validateCustomer(cmd); err != nil {
		return nil, err
	}

	quote, err := s.price(ctx, cmd.Items, cmd.Discount)
	if err != nil {
		return nil, err
	}

	o := &domain.Order{
		UserID:         cmd.UserID,
		Status:         domain.StatusPending,
		OrderDate:      time.Now().UTC(),
		CustomerName:   cmd.CustomerName,
		CustomerEmail:  cmd.CustomerEmail,
		CustomerPhone:  cmd.CustomerPhone,
		CompanyName:    cmd.CompanyName,
		Address:        cmd.Address,
		City:           cmd.City,
		PostalCode:     cmd.PostalCode,
		Notes:          cmd.Notes,
		Subtotal:       quote.Subtotal,
		DiscountAmount: quote.DiscountAmount,
		Total:          quote.Total,
	}
	for _, line := range quote.Lines {
		o.Items = append(o.Items, domain.Item{
			TireID:     line.TireID,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			TotalPrice: line.LineTotal,
		})
	}

	created, err := s.orders.Create(ctx, o)
	if err != nil {
		return nil, err
	}

	// Best effort from here on: the order is placed the moment the
	// transaction commits.
	if err := s.publisher.PublishOrderCreated(ctx, created); err != nil {
		s.log.Error("order created event not published",
			logger.Int64("order_id", created.ID),
			logger.Error(err),
		)
	}

	return created, nil
}

// Preview prices the given lines without persisting anything.
func (s *Service) Preview(ctx context.Context, items []LineInput, discount decimal.Decimal) (*Quote, error) {
	return s.price(ctx, items, discount)
}

// price runs the pricing engine and classifies a catalog read failure as
// a PersistenceError. Validation and not-found errors pass through.
func (s *Service) price(ctx context.Context, items []LineInput, discount decimal.Decimal) (*Quote, error) {
	quote, err := s.pricer.Price(ctx, items, discount)
	if err != nil {
		var verr *domain.ValidationError
		var nf *domain.NotFoundError
		if errors.As(err, &verr) || errors.As(err, &nf) {
			return nil, err
		}
		return nil, &domain.PersistenceError{Op: "catalog lookup", Err: err}
	}
	return quote, nil
}

// Get loads one order aggregate.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Order, error) {
	return s.orders.FindByID(ctx, id)
}

// UpdateStatus is the administrative transition hook. Only moves out of
// pending are allowed.
func (s *Service) UpdateStatus(ctx context.Context, id int64, next domain.Status) (*domain.Order, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !o.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, o.Status, next)
	}
	if err := s.orders.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	o.Status = next
	return o, nil
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func validateCustomer(cmd SubmitOrderCommand) error {
	verr := domain.NewValidationError()

	requireString(verr, "customer_name", cmd.CustomerName, 255)
	requireString(verr, "customer_email", cmd.CustomerEmail, 255)
	requireString(verr, "customer_phone", cmd.CustomerPhone, 20)
	requireString(verr, "address", cmd.Address, 500)
	requireString(verr, "city", cmd.City, 100)
	requireString(verr, "postal_code", cmd.PostalCode, 20)
	optionalString(verr, "company_name", cmd.CompanyName, 255)
	optionalString(verr, "notes", cmd.Notes, 1000)

	if email := strings.TrimSpace(cmd.CustomerEmail); email != "" && !emailPattern.MatchString(email) {
		verr.Add("customer_email", "customer_email must be a valid email address")
	}

	if verr.Empty() {
		return nil
	}
	return verr
}

func requireString(verr *domain.ValidationError, field, value string, max int) {
	if strings.TrimSpace(value) == "" {
		verr.Add(field, fmt.Sprintf("%s is required", field))
		return
	}
	optionalString(verr, field, value, max)
}

func optionalString(verr *domain.ValidationError, field, value string, max int) {
	if len(value) > max {
		verr.Add(field, fmt.Sprintf("%s must not exceed %d characters", field, max))
	}
}
