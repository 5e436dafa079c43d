package report

import (
	"context"
	"sort"
	"time"

	"amalkitchen-be/internal/catalog"
	"amalkitchen-be/internal/logger"
	"amalkitchen-be/internal/order"

	"go.uber.org/zap"
)

const uncategorized = "Uncategorized"

type Service interface {
	Dashboard(ctx context.Context, branch string) (*Summary, error)
	PrepSheet(ctx context.Context) (*PrepSheet, error)
}

type service struct {
	reports Repository
	orders  order.Repository
	catalog catalog.Client
}

func NewService(reports Repository, orders order.Repository, cat catalog.Client) Service {
	return &service{
		reports: reports,
		orders:  orders,
		catalog: cat,
	}
}

// Dashboard builds the operational summary. Branch scopes the status
// counts and daily revenue for manager views; admins pass an empty
// branch and additionally get the per-branch revenue breakdown.
func (s *service) Dashboard(ctx context.Context, branch string) (*Summary, error) {
	counts, err := s.reports.StatusCounts(ctx, branch)
	if err != nil {
		return nil, err
	}

	byDay, err := s.reports.RevenueByDay(ctx, branch)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Branch:       branch,
		StatusCounts: counts,
		RevenueByDay: byDay,
	}

	if branch == "" {
		byBranch, err := s.reports.RevenueByBranch(ctx)
		if err != nil {
			return nil, err
		}
		summary.RevenueByBranch = byBranch
	}

	return summary, nil
}

// PrepSheet sums line-item quantities across every order still in an
// active state and groups them by catalog category. Products the catalog
// no longer knows about land in a fallback group so nothing the kitchen
// owes a customer silently disappears.
func (s *service) PrepSheet(ctx context.Context) (*PrepSheet, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PrepSheet"),
	)

	items, err := s.orders.ItemsForStatuses(ctx, order.ActiveStatuses())
	if err != nil {
		return nil, err
	}

	categories, err := s.catalog.CategoriesByTitle(ctx)
	if err != nil {
		log.Warn("catalog unavailable, grouping prep sheet without categories", zap.Error(err))
		categories = map[string]string{}
	}

	type key struct{ category, title string }
	lines := map[key]*PrepLine{}
	for _, item := range items {
		category, ok := categories[item.Title]
		if !ok || category == "" {
			category = uncategorized
		}

		k := key{category: category, title: item.Title}
		line, ok := lines[k]
		if !ok {
			line = &PrepLine{Title: item.Title, Unit: item.Unit, Price: item.Price}
			lines[k] = line
		}
		line.Quantity += item.Quantity
		line.Subtotal += item.Subtotal()
	}

	grouped := map[string][]PrepLine{}
	for k, line := range lines {
		grouped[k.category] = append(grouped[k.category], *line)
	}

	sheet := &PrepSheet{GeneratedAt: time.Now()}
	for category, ls := range grouped {
		sort.Slice(ls, func(i, j int) bool { return ls[i].Title < ls[j].Title })
		sheet.Groups = append(sheet.Groups, PrepGroup{Category: category, Lines: ls})
	}
	sort.Slice(sheet.Groups, func(i, j int) bool {
		return sheet.Groups[i].Category < sheet.Groups[j].Category
	})

	log.Debug("prep sheet built",
		zap.Int("groups", len(sheet.Groups)),
		zap.Int("items", len(items)),
	)
	return sheet, nil
}
