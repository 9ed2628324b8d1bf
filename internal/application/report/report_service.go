package report

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/lewisgroup/storefront/internal/domain/catalog"
	"github.com/lewisgroup/storefront/internal/domain/order"
	"github.com/lewisgroup/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReportService builds admin sales and inventory reports from placed orders
// and current stock levels.
type ReportService struct {
	orderRepo   order.Repository
	productRepo catalog.ProductRepository
	windowDays  int
	logger      *zap.Logger
}

// NewReportService creates a new ReportService. windowDays is the default
// reporting window when the caller does not supply one.
func NewReportService(
	orderRepo order.Repository,
	productRepo catalog.ProductRepository,
	windowDays int,
	logger *zap.Logger,
) *ReportService {
	if windowDays <= 0 {
		windowDays = 30
	}
	return &ReportService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		windowDays:  windowDays,
		logger:      logger.Named("report"),
	}
}

// SalesSummaryResponse summarizes order activity over the reporting window.
// Monetary amounts are in dollars.
type SalesSummaryResponse struct {
	PeriodStart     time.Time        `json:"period_start"`
	PeriodEnd       time.Time        `json:"period_end"`
	TotalOrders     int64            `json:"total_orders"`
	UnitsSold       int64            `json:"units_sold"`
	GrossRevenue    decimal.Decimal  `json:"gross_revenue"`
	DeliveryFees    decimal.Decimal  `json:"delivery_fees"`
	AvgOrderValue   decimal.Decimal  `json:"avg_order_value"`
	CancelledOrders int64            `json:"cancelled_orders"`
	ReturnedOrders  int64            `json:"returned_orders"`
	StatusCounts    map[string]int64 `json:"status_counts"`
}

// ProductSalesResponse ranks a product by units sold over the window
type ProductSalesResponse struct {
	Rank        int             `json:"rank"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitsSold   int64           `json:"units_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
	OrderCount  int64           `json:"order_count"`
}

// InventoryLineResponse reports current stock for one product
type InventoryLineResponse struct {
	ProductID       uuid.UUID       `json:"product_id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	Type            string          `json:"type"`
	Price           decimal.Decimal `json:"price"`
	QuantityInStock int64           `json:"quantity_in_stock"`
	InStock         bool            `json:"in_stock"`
}

// ReportFilter selects the reporting window and ranking depth
type ReportFilter struct {
	Days int `form:"days" binding:"omitempty,min=1,max=365"`
	TopN int `form:"top_n" binding:"omitempty,min=1,max=100"`
}

// SalesSummary aggregates orders placed within the window. Cancelled and
// returned orders are counted but excluded from revenue.
func (s *ReportService) SalesSummary(ctx context.Context, filter ReportFilter) (*SalesSummaryResponse, error) {
	since, now := s.window(filter)
	orders, err := s.orderRepo.FindSince(ctx, since)
	if err != nil {
		return nil, err
	}

	summary := &SalesSummaryResponse{
		PeriodStart:   since,
		PeriodEnd:     now,
		GrossRevenue:  decimal.Zero,
		DeliveryFees:  decimal.Zero,
		AvgOrderValue: decimal.Zero,
		StatusCounts:  make(map[string]int64),
	}

	for i := range orders {
		o := &orders[i]
		summary.StatusCounts[string(o.Status)]++
		switch o.Status {
		case order.StatusCancelled:
			summary.CancelledOrders++
			continue
		case order.StatusReturned:
			summary.ReturnedOrders++
			continue
		}

		summary.TotalOrders++
		summary.GrossRevenue = summary.GrossRevenue.Add(centsToDollars(o.Total()))
		summary.DeliveryFees = summary.DeliveryFees.Add(centsToDollars(o.DeliveryFee))
		for _, item := range o.Items {
			summary.UnitsSold += item.Quantity
		}
	}

	if summary.TotalOrders > 0 {
		summary.AvgOrderValue = summary.GrossRevenue.
			Div(decimal.NewFromInt(summary.TotalOrders)).Round(2)
	}

	s.logger.Debug("Sales summary built",
		zap.Time("since", since),
		zap.Int64("orders", summary.TotalOrders))
	return summary, nil
}

// ProductRanking ranks products by units sold over the window, using the
// prices captured on the order lines
func (s *ReportService) ProductRanking(ctx context.Context, filter ReportFilter) ([]ProductSalesResponse, error) {
	since, _ := s.window(filter)
	orders, err := s.orderRepo.FindSince(ctx, since)
	if err != nil {
		return nil, err
	}

	type tally struct {
		name       string
		units      int64
		revenue    decimal.Decimal
		orderCount int64
	}
	tallies := make(map[uuid.UUID]*tally)

	for i := range orders {
		o := &orders[i]
		if o.Status == order.StatusCancelled || o.Status == order.StatusReturned {
			continue
		}
		for _, item := range o.Items {
			t, ok := tallies[item.ProductID]
			if !ok {
				t = &tally{name: item.ProductName, revenue: decimal.Zero}
				tallies[item.ProductID] = t
			}
			t.units += item.Quantity
			t.revenue = t.revenue.Add(centsToDollars(item.Price * item.Quantity))
			t.orderCount++
		}
	}

	ranking := make([]ProductSalesResponse, 0, len(tallies))
	for id, t := range tallies {
		ranking = append(ranking, ProductSalesResponse{
			ProductID:   id,
			ProductName: t.name,
			UnitsSold:   t.units,
			Revenue:     t.revenue,
			OrderCount:  t.orderCount,
		})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].UnitsSold != ranking[j].UnitsSold {
			return ranking[i].UnitsSold > ranking[j].UnitsSold
		}
		return ranking[i].ProductName < ranking[j].ProductName
	})

	topN := filter.TopN
	if topN <= 0 || topN > len(ranking) {
		topN = len(ranking)
	}
	ranking = ranking[:topN]
	for i := range ranking {
		ranking[i].Rank = i + 1
	}
	return ranking, nil
}

// InventoryLevels reports current stock across the whole catalog
func (s *ReportService) InventoryLevels(ctx context.Context) ([]InventoryLineResponse, error) {
	products, err := s.productRepo.FindAll(ctx, shared.Filter{
		OrderBy:  "name",
		OrderDir: "asc",
		Page:     1,
		PageSize: 1000,
	})
	if err != nil {
		return nil, err
	}

	lines := make([]InventoryLineResponse, 0, len(products))
	for i := range products {
		p := &products[i]
		lines = append(lines, InventoryLineResponse{
			ProductID:       p.ID,
			Name:            p.Name,
			Category:        p.Category,
			Type:            p.Type,
			Price:           centsToDollars(p.Price),
			QuantityInStock: p.QuantityInStock,
			InStock:         p.InStock(),
		})
	}
	return lines, nil
}

func (s *ReportService) window(filter ReportFilter) (since, now time.Time) {
	days := filter.Days
	if days <= 0 {
		days = s.windowDays
	}
	now = time.Now().UTC()
	return now.AddDate(0, 0, -days), now
}

func centsToDollars(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
