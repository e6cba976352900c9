package quotation

import "context"

type Repository interface {
	Create(ctx context.Context, q *Quotation) error
	GetByQuotationID(ctx context.Context, quotationID string) (*Quotation, error)
	ListByClientID(ctx context.Context, clientID string) ([]Quotation, error)
	Save(ctx context.Context, q *Quotation) error
}
