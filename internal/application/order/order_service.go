package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lewisgroup/storefront/internal/domain/basket"
	"github.com/lewisgroup/storefront/internal/domain/catalog"
	"github.com/lewisgroup/storefront/internal/domain/identity"
	"github.com/lewisgroup/storefront/internal/domain/order"
	"github.com/lewisgroup/storefront/internal/domain/shared"
	"go.uber.org/zap"
)

// Mailer sends order confirmation mail. Delivery is best-effort; checkout
// never fails on a mail error.
type Mailer interface {
	SendOrderConfirmation(ctx context.Context, to string, o *order.Order) error
}

// PaymentIntent is the gateway handle attached to a placed order
type PaymentIntent struct {
	ID           string
	ClientSecret string
}

// PaymentProvider creates payment intents for order totals in minor units
type PaymentProvider interface {
	CreateIntent(ctx context.Context, amount int64) (*PaymentIntent, error)
}

// OrderService handles checkout and order lifecycle operations
type OrderService struct {
	orderRepo       order.Repository
	basketRepo      basket.Repository
	productRepo     catalog.ProductRepository
	userRepo        identity.UserRepository
	tx              shared.TxRunner
	payments        PaymentProvider
	mailer          Mailer
	installmentRate float64
	logger          *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo order.Repository,
	basketRepo basket.Repository,
	productRepo catalog.ProductRepository,
	userRepo identity.UserRepository,
	tx shared.TxRunner,
	payments PaymentProvider,
	mailer Mailer,
	installmentRate float64,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:       orderRepo,
		basketRepo:      basketRepo,
		productRepo:     productRepo,
		userRepo:        userRepo,
		tx:              tx,
		payments:        payments,
		mailer:          mailer,
		installmentRate: installmentRate,
		logger:          logger.Named("order"),
	}
}

// Place checks out the buyer's basket into an order. Line snapshots, stock
// decrements, the optional saved address, order persistence, and basket
// removal commit in one transaction; the confirmation mail goes out after
// commit and never fails the checkout.
func (s *OrderService) Place(ctx context.Context, buyerID string, req CreateOrderRequest) (*OrderResponse, error) {
	option, err := order.ParseDeliveryOption(req.DeliveryOption)
	if err != nil {
		return nil, err
	}

	var placed *order.Order
	var email string

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		b, err := s.basketRepo.FindByBuyerID(ctx, buyerID)
		if err != nil {
			return err
		}
		if b.IsEmpty() {
			return shared.NewDomainError("EMPTY_BASKET", "Cannot place an order from an empty basket")
		}

		ids := make([]uuid.UUID, 0, len(b.Items))
		for i := range b.Items {
			ids = append(ids, b.Items[i].ProductID)
		}
		products, err := s.productRepo.FindByIDs(ctx, ids)
		if err != nil {
			return err
		}
		byID := make(map[uuid.UUID]*catalog.Product, len(products))
		for i := range products {
			byID[products[i].ID] = &products[i]
		}

		items := make([]order.OrderItem, 0, len(b.Items))
		touched := make([]*catalog.Product, 0, len(b.Items))
		for i := range b.Items {
			line := b.Items[i]
			product, ok := byID[line.ProductID]
			if !ok {
				// Product removed from the catalog since it was added
				continue
			}
			items = append(items, order.OrderItem{
				BaseEntity:  shared.NewBaseEntity(),
				ProductID:   product.ID,
				ProductName: product.Name,
				PictureURL:  product.PictureURL,
				Price:       product.Price,
				Quantity:    line.Quantity,
			})
			product.DecrementStock(line.Quantity)
			touched = append(touched, product)
		}

		o, err := order.NewOrder(buyerID, req.ShippingAddress.toDomain(), items, option)
		if err != nil {
			return err
		}

		intent, err := s.payments.CreateIntent(ctx, o.Total())
		if err != nil {
			return err
		}
		o.PaymentIntentID = intent.ID

		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}
		if err := s.productRepo.SaveBatch(ctx, touched); err != nil {
			return err
		}
		if err := s.basketRepo.Delete(ctx, b.ID); err != nil {
			return err
		}

		email = req.Email
		user, err := s.userRepo.FindByUsername(ctx, buyerID)
		if err == nil {
			email = user.Email
			if req.SaveAddress {
				if err := user.SetAddress(identity.Address(req.ShippingAddress.toDomain())); err != nil {
					return err
				}
				if err := s.userRepo.Save(ctx, user); err != nil {
					return err
				}
			}
		} else if !errors.Is(err, shared.ErrNotFound) {
			return err
		}

		placed = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	if email != "" {
		if err := s.mailer.SendOrderConfirmation(ctx, email, placed); err != nil {
			s.logger.Warn("Failed to send order confirmation",
				zap.String("order_id", placed.ID.String()), zap.Error(err))
		}
	}

	s.logger.Info("Order placed",
		zap.String("order_id", placed.ID.String()),
		zap.String("buyer_id", buyerID),
		zap.Int64("total", placed.Total()))
	resp := ToOrderResponse(placed)
	return &resp, nil
}

// Cancel cancels a buyer's own order and restores its stock. A second
// cancel conflicts; stock is restored exactly once.
func (s *OrderService) Cancel(ctx context.Context, buyerID string, orderID uuid.UUID) (*OrderResponse, error) {
	return s.restoreAndTransition(ctx, orderID, func(o *order.Order) error {
		if o.BuyerID != buyerID {
			return shared.ErrNotFound
		}
		return o.Cancel()
	})
}

// Refund marks an order returned and restores its stock (admin operation)
func (s *OrderService) Refund(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	return s.restoreAndTransition(ctx, orderID, func(o *order.Order) error {
		return o.MarkReturned()
	})
}

// restoreAndTransition applies the state change and returns each line's
// quantity to stock in one transaction. Lines whose product has since been
// deleted are skipped.
func (s *OrderService) restoreAndTransition(ctx context.Context, orderID uuid.UUID, transition func(*order.Order) error) (*OrderResponse, error) {
	var result *order.Order

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		o, err := s.orderRepo.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := transition(o); err != nil {
			return err
		}

		ids := make([]uuid.UUID, 0, len(o.Items))
		for i := range o.Items {
			ids = append(ids, o.Items[i].ProductID)
		}
		products, err := s.productRepo.FindByIDs(ctx, ids)
		if err != nil {
			return err
		}
		byID := make(map[uuid.UUID]*catalog.Product, len(products))
		for i := range products {
			byID[products[i].ID] = &products[i]
		}

		touched := make([]*catalog.Product, 0, len(o.Items))
		for i := range o.Items {
			product, ok := byID[o.Items[i].ProductID]
			if !ok {
				continue
			}
			if err := product.RestoreStock(o.Items[i].Quantity); err != nil {
				return err
			}
			touched = append(touched, product)
		}

		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}
		if err := s.productRepo.SaveBatch(ctx, touched); err != nil {
			return err
		}
		result = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order transitioned with stock restore",
		zap.String("order_id", result.ID.String()),
		zap.String("status", string(result.Status)))
	resp := ToOrderResponse(result)
	return &resp, nil
}

// UpdateStatus sets an order's status (admin operation)
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, req UpdateStatusRequest) (*OrderResponse, error) {
	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.UpdateStatus(status); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Info("Order status updated",
		zap.String("order_id", orderID.String()),
		zap.String("status", string(status)))
	resp := ToOrderResponse(o)
	return &resp, nil
}

// DeleteOwn soft-deletes a buyer's own order
func (s *OrderService) DeleteOwn(ctx context.Context, buyerID string, orderID uuid.UUID) error {
	o, err := s.orderRepo.FindByIDForBuyer(ctx, buyerID, orderID)
	if err != nil {
		return err
	}
	o.SoftDelete()
	return s.orderRepo.Save(ctx, o)
}

// DeleteAny soft-deletes any order (admin operation)
func (s *OrderService) DeleteAny(ctx context.Context, orderID uuid.UUID) error {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	o.SoftDelete()
	return s.orderRepo.Save(ctx, o)
}

// GetForBuyer returns one of the buyer's orders
func (s *OrderService) GetForBuyer(ctx context.Context, buyerID string, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByIDForBuyer(ctx, buyerID, orderID)
	if err != nil {
		return nil, err
	}
	if o.IsDeleted() {
		return nil, shared.ErrNotFound
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// ListForBuyer returns a page of the buyer's orders
func (s *OrderService) ListForBuyer(ctx context.Context, buyerID string, filter OrderListFilter) (*shared.Paginated[OrderResponse], error) {
	domainFilter := s.toDomainFilter(filter)

	orders, err := s.orderRepo.FindByBuyer(ctx, buyerID, domainFilter)
	if err != nil {
		return nil, err
	}
	countFilter := domainFilter
	countFilter.Filters = map[string]interface{}{"buyer_id": buyerID}
	if filter.Status != "" {
		countFilter.Filters["status"] = filter.Status
	}
	total, err := s.orderRepo.Count(ctx, countFilter)
	if err != nil {
		return nil, err
	}

	return s.toPage(orders, total, domainFilter), nil
}

// ListAll returns a page of all orders (admin operation)
func (s *OrderService) ListAll(ctx context.Context, filter OrderListFilter) (*shared.Paginated[OrderResponse], error) {
	domainFilter := s.toDomainFilter(filter)

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	return s.toPage(orders, total, domainFilter), nil
}

// Installments returns the amortization schedule for paying off one of the
// buyer's orders over the given number of months
func (s *OrderService) Installments(ctx context.Context, buyerID string, orderID uuid.UUID, months int) (*InstallmentSchedule, error) {
	o, err := s.orderRepo.FindByIDForBuyer(ctx, buyerID, orderID)
	if err != nil {
		return nil, err
	}
	if o.IsDeleted() {
		return nil, shared.ErrNotFound
	}
	schedule := BuildInstallmentSchedule(o, months, s.installmentRate)
	return &schedule, nil
}

func (s *OrderService) toDomainFilter(filter OrderListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	domainFilter.OrderBy = "order_date"
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	return domainFilter
}

func (s *OrderService) toPage(orders []order.Order, total int64, filter shared.Filter) *shared.Paginated[OrderResponse] {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page
}
