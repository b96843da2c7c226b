package ports

import (
	"context"

	"github.com/Gunvolt24/storage_portal/internal/domain"
)

type DraftValidator interface {
	Validate(ctx context.Context, draft *domain.Draft) error
}
