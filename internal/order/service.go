package order

import (
	"context"
	"errors"
	"strings"
	"time"

	"amalkitchen-be/internal/cart"
	"amalkitchen-be/internal/logger"
	"amalkitchen-be/internal/ordernum"
	"amalkitchen-be/internal/region"
	"amalkitchen-be/internal/utils"

	"go.uber.org/zap"
)

// InvoiceSender delivers a proforma invoice for a persisted order.
// Delivery is best effort; the submission pipeline never fails an order
// over it.
type InvoiceSender interface {
	Send(ctx context.Context, o *Order) error
}

// CheckoutInput carries the customer details collected at guest checkout.
// The phone number is free text; the cell number, when given, must be a
// valid South African mobile number.
type CheckoutInput struct {
	CustomerName  string
	PhoneNumber   string
	CellNumber    string
	Email         string
	Region        string
	PaymentMethod string
}

// WalkInInput is the staff-assisted variant: the branch comes from the
// staff member's context instead of the cart, email is mandatory, and no
// minimum item count applies.
type WalkInInput struct {
	CustomerName  string
	PhoneNumber   string
	CellNumber    string
	Email         string
	Region        string
	PaymentMethod string
	Branch        string
	Items         []Item
}

type Service interface {
	Checkout(ctx context.Context, crt *cart.Store, in CheckoutInput) (*Order, error)
	CreateWalkIn(ctx context.Context, in WalkInInput) (*Order, error)
	GetOrder(ctx context.Context, id uint) (*Order, error)
	ListOrders(ctx context.Context, filter ListFilter) ([]*Order, error)
	UpdateStatus(ctx context.Context, id uint, status Status) error
	SetPaymentStatus(ctx context.Context, id uint, status PaymentStatus) error
	AddItems(ctx context.Context, id uint, items []Item) (*Order, error)
}

type service struct {
	repo           Repository
	numbers        ordernum.Generator
	invoices       InvoiceSender
	minOrderItems  int
	persistTimeout time.Duration
}

func NewService(repo Repository, numbers ordernum.Generator, invoices InvoiceSender) Service {
	return &service{
		repo:           repo,
		numbers:        numbers,
		invoices:       invoices,
		minOrderItems:  10,
		persistTimeout: 10 * time.Second,
	}
}

// Checkout validates and submits a guest order. The branch is derived from
// the cart's item regions; on success the cart is cleared and invoice
// delivery is kicked off without blocking the response.
func (s *service) Checkout(ctx context.Context, crt *cart.Store, in CheckoutInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Checkout"),
	)

	res := region.Resolve(crt.Items(), crt.SelectedRegion())
	if res.Mixed {
		return nil, ErrMixedRegions
	}
	if crt.TotalItems() < s.minOrderItems {
		return nil, ErrBelowMinimum
	}
	if res.Branch == "" {
		return nil, ErrNoBranch
	}

	method, err := paymentMethodFrom(in.PaymentMethod)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Region) == "" {
		return nil, ErrNoRegion
	}
	if strings.TrimSpace(in.CustomerName) == "" {
		return nil, ErrNoCustomerName
	}
	if strings.TrimSpace(in.CellNumber) == "" && strings.TrimSpace(in.PhoneNumber) == "" {
		return nil, ErrNoContactNumber
	}
	if strings.TrimSpace(in.CellNumber) != "" && !ValidCellNumber(in.CellNumber) {
		return nil, ErrInvalidCellNumber
	}

	items := make([]Item, 0, len(crt.Items()))
	for _, line := range crt.Items() {
		items = append(items, Item{
			ProductID: line.ID,
			Title:     line.Title,
			Price:     line.Price,
			Quantity:  line.Quantity,
			Region:    line.Region,
		})
	}

	draft := &Order{
		CustomerName:  strings.TrimSpace(in.CustomerName),
		PhoneNumber:   strings.TrimSpace(in.PhoneNumber),
		CellNumber:    utils.NormalizePhoneSA(in.CellNumber),
		Email:         strings.TrimSpace(in.Email),
		Branch:        res.Branch,
		Region:        in.Region,
		PaymentMethod: method,
		Items:         items,
		Total:         crt.TotalPrice(),
		Status:        StatusPending,
		PaymentStatus: PaymentStatusUnpaid,
	}

	created, err := s.persist(ctx, draft)
	if err != nil {
		return nil, err
	}

	if err := crt.Clear(ctx); err != nil {
		log.Warn("failed to clear cart after successful order",
			zap.String("order_number", created.OrderNumber),
			zap.Error(err),
		)
	}

	s.dispatchInvoice(created)

	log.Info("guest order submitted",
		zap.String("order_number", created.OrderNumber),
		zap.String("branch", created.Branch),
		zap.Float64("total", created.Total),
	)

	return created, nil
}

// CreateWalkIn submits a staff-assisted order. Email is required so the
// invoice can always be delivered; there is no minimum item count.
func (s *service) CreateWalkIn(ctx context.Context, in WalkInInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateWalkIn"),
		zap.String("branch", in.Branch),
	)

	if strings.TrimSpace(in.Branch) == "" {
		return nil, ErrNoBranch
	}

	method, err := paymentMethodFrom(in.PaymentMethod)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Region) == "" {
		return nil, ErrNoRegion
	}
	if strings.TrimSpace(in.CustomerName) == "" {
		return nil, ErrNoCustomerName
	}
	if strings.TrimSpace(in.CellNumber) == "" && strings.TrimSpace(in.PhoneNumber) == "" {
		return nil, ErrNoContactNumber
	}
	if strings.TrimSpace(in.Email) == "" {
		return nil, ErrNoEmail
	}
	if strings.TrimSpace(in.CellNumber) != "" && !ValidCellNumber(in.CellNumber) {
		return nil, ErrInvalidCellNumber
	}

	draft := &Order{
		CustomerName:  strings.TrimSpace(in.CustomerName),
		PhoneNumber:   strings.TrimSpace(in.PhoneNumber),
		CellNumber:    utils.NormalizePhoneSA(in.CellNumber),
		Email:         strings.TrimSpace(in.Email),
		Branch:        in.Branch,
		Region:        in.Region,
		PaymentMethod: method,
		Items:         in.Items,
		Total:         SumItems(in.Items),
		Status:        StatusPending,
		PaymentStatus: PaymentStatusUnpaid,
	}

	created, err := s.persist(ctx, draft)
	if err != nil {
		return nil, err
	}

	s.dispatchInvoice(created)

	log.Info("walk-in order submitted",
		zap.String("order_number", created.OrderNumber),
		zap.Float64("total", created.Total),
	)

	return created, nil
}

// persist allocates the order number and writes the order within a bounded
// window. A timeout aborts the submission; the caller's cart is untouched.
func (s *service) persist(ctx context.Context, draft *Order) (*Order, error) {
	persistCtx, cancel := context.WithTimeout(ctx, s.persistTimeout)
	defer cancel()

	number, err := s.numbers.Next(persistCtx, time.Now())
	if err != nil {
		return nil, err
	}
	draft.OrderNumber = number

	created, err := s.repo.CreateOrder(persistCtx, draft)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || persistCtx.Err() == context.DeadlineExceeded {
			return nil, ErrPersistTimeout
		}
		return nil, err
	}
	return created, nil
}

// dispatchInvoice hands the persisted order to the mailer without blocking
// the success path. Failures are logged, never surfaced.
func (s *service) dispatchInvoice(o *Order) {
	if s.invoices == nil || o.Email == "" {
		return
	}

	go func() {
		if err := s.invoices.Send(context.Background(), o); err != nil {
			logger.L().Error("invoice delivery failed",
				zap.String("order_number", o.OrderNumber),
				zap.String("email", o.Email),
				zap.Error(err),
			)
		}
	}()
}

func (s *service) GetOrder(ctx context.Context, id uint) (*Order, error) {
	return s.repo.GetOrder(ctx, id)
}

func (s *service) ListOrders(ctx context.Context, filter ListFilter) ([]*Order, error) {
	return s.repo.ListOrders(ctx, filter)
}

// UpdateStatus enforces the lifecycle transition table; any state may be
// cancelled until it is terminal, but arbitrary jumps are rejected.
func (s *service) UpdateStatus(ctx context.Context, id uint, status Status) error {
	if !ValidStatus(status) {
		return ErrInvalidStatus
	}

	current, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return err
	}
	if !CanTransition(current.Status, status) {
		return ErrIllegalTransition
	}

	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *service) SetPaymentStatus(ctx context.Context, id uint, status PaymentStatus) error {
	if status != PaymentStatusPaid && status != PaymentStatusUnpaid {
		return ErrInvalidStatus
	}
	return s.repo.UpdatePaymentStatus(ctx, id, status)
}

// AddItems appends staff-added lines to an existing order, merging on
// product ID, and recomputes the stored total. Item prices stay frozen at
// whatever the staff member entered.
func (s *service) AddItems(ctx context.Context, id uint, items []Item) (*Order, error) {
	current, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := current.Items
	for _, add := range items {
		found := false
		for i := range merged {
			if merged[i].ProductID == add.ProductID {
				merged[i].Quantity += add.Quantity
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, add)
		}
	}

	total := SumItems(merged)
	if err := s.repo.UpdateItems(ctx, id, merged, total); err != nil {
		return nil, err
	}

	current.Items = merged
	current.Total = total
	return current, nil
}

func paymentMethodFrom(raw string) (PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "cash", "cash on collection":
		return PaymentCashOnCollection, nil
	case "eft", "eft before collection":
		return PaymentEFT, nil
	default:
		return "", ErrNoPaymentMethod
	}
}
