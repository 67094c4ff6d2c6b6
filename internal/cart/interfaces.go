package cart

import (
	"context"

	"github.com/smartlaundry/backend/pkg/db/models"
)

// CatalogReader is the slice of the catalog repository the cart needs to
// validate incoming lines.
type CatalogReader interface {
	GetService(ctx context.Context, id int64) (*models.Service, error)
	GetOption(ctx context.Context, id int64) (*models.ServiceOption, error)
}
