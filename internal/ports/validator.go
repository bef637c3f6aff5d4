package ports

import (
	"context"

	"github.com/Gunvolt24/adbridge/internal/domain"
)

type AdValidator interface {
	Validate(ctx context.Context, ad *domain.Ad) error
}
