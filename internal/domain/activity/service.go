package activity

import "context"

// ActivityService exposes the read side: daily records rolled up to a
// granularity, filtered and paginated through a ViewState.
type ActivityService interface {
	// GetAggregated rolls the whole dataset up to the given granularity.
	GetAggregated(ctx context.Context, g Granularity) ([]AggregatedRecord, error)

	// GetFiltered returns the raw daily records visible under the state's
	// focused period and collaborator filter, before grouping.
	GetFiltered(ctx context.Context, state ViewState) ([]DailyRecord, error)

	// GetPage computes the page the operator currently sees.
	GetPage(ctx context.Context, state ViewState) (PageResponse, error)

	// ExportRows renders the current view as tabular rows, header first.
	// Day views carry per-day columns, aggregated views period columns.
	ExportRows(ctx context.Context, state ViewState) ([][]string, error)
}
