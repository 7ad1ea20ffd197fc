package tip

import "context"

// Repository describes tip persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, item Tip) error
	ListByUser(ctx context.Context, userName string) ([]Tip, error)
}
