package services

import (
	"context"
)

// RefreshPublisher notifies the report worker that a month's figures changed.
// Nil publishers are tolerated so the API can run without a broker.
type RefreshPublisher interface {
	PublishSummaryRefresh(ctx context.Context, year, month int) error
}
