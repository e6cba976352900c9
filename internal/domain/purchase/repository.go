package purchase

import "context"

type Repository interface {
	Create(ctx context.Context, p *Purchase) error
	GetByPurchaseID(ctx context.Context, purchaseID string) (*Purchase, error)
	// GetByPurchaseIDForUpdate locks the row for the enclosing transaction.
	GetByPurchaseIDForUpdate(ctx context.Context, purchaseID string) (*Purchase, error)
	GetByQuotationID(ctx context.Context, quotationID string) (*Purchase, error)
	ListByClientID(ctx context.Context, clientID string) ([]Purchase, error)
	ListByStatus(ctx context.Context, status Status) ([]Purchase, error)
	Save(ctx context.Context, p *Purchase) error
}

// StockDecrementer is the product-catalog capability the completion
// transition consumes; the catalog itself lives outside this core.
type StockDecrementer interface {
	DecrementStock(ctx context.Context, vehicleID string) error
}
