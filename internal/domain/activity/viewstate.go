package activity

// PeriodFocus pins one specific period instance (a week's Monday date,
// a yyyy-MM month, or a yyyy year) that scopes the displayed data while
// the granularity may show a finer breakdown of it.
type PeriodFocus struct {
	Type  Granularity `json:"type"`
	Value string      `json:"value"`
}

// ViewState is the full, serializable drill-down navigator state. All
// transitions return a new value; query functions take the state as
// input, so a view is reproducible from a deep link.
type ViewState struct {
	Granularity    Granularity  `json:"granularity"`
	Focus          *PeriodFocus `json:"focus,omitempty"`
	CollaboratorID *string      `json:"collaborator_id,omitempty"`
	Page           int          `json:"page"`
	PageSize       int          `json:"page_size"`
}

const DefaultPageSize = 10

// NewViewState returns the initial navigator state: day granularity,
// no focus, first page.
func NewViewState() ViewState {
	return ViewState{
		Granularity: GranularityDay,
		Page:        1,
		PageSize:    DefaultPageSize,
	}
}

// SelectGranularity is a lateral move to another level: it clears any
// focused period and resets pagination.
func (s ViewState) SelectGranularity(g Granularity) ViewState {
	s.Granularity = g
	s.Focus = nil
	s.Page = 1
	return s
}

// DrillDown pins the record's period and advances one level finer.
// Only aggregated rows can be drilled into, and day has nothing finer.
// When a collaborator filter is active and the current level is year or
// month, the drill keeps the current granularity: scoped to a single
// person, one coarser tier already fits on screen.
func (s ViewState) DrillDown(rec AggregatedRecord) (ViewState, error) {
	if !rec.IsAggregated || s.Granularity == GranularityDay {
		return s, ErrCannotDrill
	}

	s.Focus = &PeriodFocus{Type: s.Granularity, Value: rec.PeriodKey}

	scoped := s.CollaboratorID != nil &&
		(s.Granularity == GranularityYear || s.Granularity == GranularityMonth)
	if !scoped {
		if finer, ok := s.Granularity.Finer(); ok {
			s.Granularity = finer
		}
	}

	s.Page = 1
	return s, nil
}

// DrillUp clears the focused period when one is set, returning to the
// full view at the current granularity. Without a focus it coarsens one
// level; year has no coarser target and is a no-op.
func (s ViewState) DrillUp() ViewState {
	if s.Focus != nil {
		s.Focus = nil
		s.Page = 1
		return s
	}

	if coarser, ok := s.Granularity.Coarser(); ok {
		s.Granularity = coarser
		s.Page = 1
	}
	return s
}

// WithCollaborator sets or clears the collaborator filter. Orthogonal
// to period focusing; resets pagination.
func (s ViewState) WithCollaborator(id *string) ViewState {
	s.CollaboratorID = id
	s.Page = 1
	return s
}

// WithPageSize changes the page size. The page is clamped against the
// actual total later, when the filtered list is known.
func (s ViewState) WithPageSize(size int) ViewState {
	if size > 0 {
		s.PageSize = size
	}
	return s
}

// ClampPage pulls the current page back to the last valid page for the
// given total. An empty result keeps page 1.
func (s ViewState) ClampPage(total int) ViewState {
	if s.Page < 1 {
		s.Page = 1
	}
	if s.PageSize < 1 {
		s.PageSize = DefaultPageSize
	}
	totalPages := TotalPages(total, s.PageSize)
	if totalPages < 1 {
		totalPages = 1
	}
	if s.Page > totalPages {
		s.Page = totalPages
	}
	return s
}

// TotalPages is ceil(total / pageSize).
func TotalPages(total, pageSize int) int {
	if pageSize < 1 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
