package persistence

import (
	"context"
	"fmt"

	"github.com/lewisgroup/storefront/internal/domain/catalog"
	"github.com/lewisgroup/storefront/internal/domain/identity"
	"github.com/lewisgroup/storefront/internal/domain/shared"
	"go.uber.org/zap"
)

// seedPassword is the shared password for the starter accounts. Intended
// for development and demo environments only; seeding is off by default
// in production config.
const seedPassword = "Pa$$w0rd"

type seedProduct struct {
	name        string
	description string
	price       int64
	category    string
	productType string
	pictureURL  string
	stock       int64
}

var starterCatalog = []seedProduct{
	{"Guitar", "Play some tunes!", 89900, "Audio", "Guitars", "/images/products/audio/guitars/1.png", 15},
	{"Pedal", "Play some tunes with effects!", 120088, "Audio", "Pedals", "/images/products/audio/pedals/1.png", 15},
	{"Synthesizer", "Analog warmth, digital control.", 249900, "Audio", "Synthesizers", "/images/products/audio/synthesizers/1.png", 8},
	{"Two-Seat Sofa", "Compact comfort for small rooms.", 159900, "Furniture", "Sofas", "/images/products/furniture/sofas/1.png", 6},
	{"Oak Dining Table", "Seats six, solid oak top.", 219900, "Furniture", "Tables", "/images/products/furniture/tables/1.png", 4},
	{"Queen Bed Frame", "Slatted base included.", 189900, "Bedroom", "Beds", "/images/products/bedroom/beds/1.png", 5},
	{"Memory Foam Mattress", "Medium-firm, queen size.", 99900, "Bedroom", "Mattresses", "/images/products/bedroom/mattresses/1.png", 10},
	{"Countertop Microwave", "900W with quick-defrost.", 12900, "Appliances", "Microwaves", "/images/products/appliances/microwaves/1.png", 20},
	{"Two-Slice Toaster", "Seven browning levels.", 4900, "Appliances", "Toasters", "/images/products/appliances/toasters/1.png", 25},
}

// Seed populates empty user and product tables with starter data.
// Existing data is never touched, so it is safe to run on every boot.
func Seed(ctx context.Context, users identity.UserRepository, products catalog.ProductRepository, logger *zap.Logger) error {
	userCount, err := users.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if userCount == 0 {
		member, err := identity.NewUser("wizard", "nazim@gmail.com", seedPassword)
		if err != nil {
			return fmt.Errorf("failed to build seed member: %w", err)
		}
		admin, err := identity.NewAdmin("admin", "admin@gmail.com", seedPassword)
		if err != nil {
			return fmt.Errorf("failed to build seed admin: %w", err)
		}
		for _, u := range []*identity.User{member, admin} {
			if err := users.Save(ctx, u); err != nil {
				return fmt.Errorf("failed to seed user %s: %w", u.Username, err)
			}
		}
		logger.Info("Seeded starter accounts", zap.Int("count", 2))
	}

	productCount, err := products.Count(ctx, shared.Filter{})
	if err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if productCount > 0 {
		return nil
	}

	batch := make([]*catalog.Product, 0, len(starterCatalog))
	for _, sp := range starterCatalog {
		p, err := catalog.NewProduct(sp.name, sp.description, sp.price, sp.category, sp.productType, sp.stock)
		if err != nil {
			return fmt.Errorf("failed to build seed product %s: %w", sp.name, err)
		}
		p.SetPicture(sp.pictureURL, "")
		batch = append(batch, p)
	}
	if err := products.SaveBatch(ctx, batch); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}
	logger.Info("Seeded starter catalog", zap.Int("count", len(batch)))
	return nil
}
