package activity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aggRow(periodKey string) AggregatedRecord {
	return AggregatedRecord{
		UserID:       "u1",
		GroupKey:     "u1-" + periodKey,
		PeriodKey:    periodKey,
		IsAggregated: true,
	}
}

func TestNewViewState(t *testing.T) {
	s := NewViewState()

	assert.Equal(t, GranularityDay, s.Granularity)
	assert.Nil(t, s.Focus)
	assert.Nil(t, s.CollaboratorID)
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, DefaultPageSize, s.PageSize)
}

func TestSelectGranularity_ClearsFocus(t *testing.T) {
	s := NewViewState().SelectGranularity(GranularityMonth)
	s.Focus = &PeriodFocus{Type: GranularityMonth, Value: "2026-03"}
	s.Page = 4

	s = s.SelectGranularity(GranularityWeek)

	assert.Equal(t, GranularityWeek, s.Granularity)
	assert.Nil(t, s.Focus)
	assert.Equal(t, 1, s.Page)
}

func TestDrillDown_AdvancesOneLevel(t *testing.T) {
	s := NewViewState().SelectGranularity(GranularityYear)

	s, err := s.DrillDown(aggRow("2026"))
	require.NoError(t, err)
	assert.Equal(t, GranularityMonth, s.Granularity)
	require.NotNil(t, s.Focus)
	assert.Equal(t, GranularityYear, s.Focus.Type)
	assert.Equal(t, "2026", s.Focus.Value)

	s, err = s.DrillDown(aggRow("2026-03"))
	require.NoError(t, err)
	assert.Equal(t, GranularityWeek, s.Granularity)
	assert.Equal(t, "2026-03", s.Focus.Value)

	s, err = s.DrillDown(aggRow("2026-03-02"))
	require.NoError(t, err)
	assert.Equal(t, GranularityDay, s.Granularity)
	assert.Equal(t, "2026-03-02", s.Focus.Value)
}

func TestDrillDown_RejectsNonAggregatedRow(t *testing.T) {
	s := NewViewState().SelectGranularity(GranularityWeek)

	rec := aggRow("2026-03-02")
	rec.IsAggregated = false

	_, err := s.DrillDown(rec)
	assert.ErrorIs(t, err, ErrCannotDrill)
}

func TestDrillDown_RejectsDayLevel(t *testing.T) {
	s := NewViewState() // day

	_, err := s.DrillDown(aggRow("2026-03-02"))
	assert.ErrorIs(t, err, ErrCannotDrill)
}

// With a collaborator filter at year or month the drill pins the period
// but keeps the granularity: one person's year fits on screen at the
// current level.
func TestDrillDown_CollaboratorScopedStaysCoarse(t *testing.T) {
	collaborator := "u1"
	s := NewViewState().SelectGranularity(GranularityYear).WithCollaborator(&collaborator)

	s, err := s.DrillDown(aggRow("2026"))
	require.NoError(t, err)
	assert.Equal(t, GranularityYear, s.Granularity)
	require.NotNil(t, s.Focus)
	assert.Equal(t, "2026", s.Focus.Value)

	// At week level the scoped rule no longer applies.
	s = s.SelectGranularity(GranularityWeek)
	s, err = s.DrillDown(aggRow("2026-03-02"))
	require.NoError(t, err)
	assert.Equal(t, GranularityDay, s.Granularity)
}

func TestDrillUp_ClearsFocusFirst(t *testing.T) {
	s := NewViewState().SelectGranularity(GranularityMonth)
	s, err := s.DrillDown(aggRow("2026-03"))
	require.NoError(t, err)
	assert.Equal(t, GranularityWeek, s.Granularity)

	// First drill-up only drops the focus.
	s = s.DrillUp()
	assert.Nil(t, s.Focus)
	assert.Equal(t, GranularityWeek, s.Granularity)

	// Then it coarsens level by level.
	s = s.DrillUp()
	assert.Equal(t, GranularityMonth, s.Granularity)
	s = s.DrillUp()
	assert.Equal(t, GranularityYear, s.Granularity)

	// Year without focus is the top: no-op.
	s = s.DrillUp()
	assert.Equal(t, GranularityYear, s.Granularity)
}

func TestDrillDownThenUpRoundTrip(t *testing.T) {
	s := NewViewState().SelectGranularity(GranularityWeek)

	down, err := s.DrillDown(aggRow("2026-03-02"))
	require.NoError(t, err)

	up := down.DrillUp().DrillUp()
	assert.Equal(t, s.Granularity, up.Granularity)
	assert.Nil(t, up.Focus)
}

func TestWithCollaborator_ResetsPage(t *testing.T) {
	s := NewViewState()
	s.Page = 3

	id := "u1"
	s = s.WithCollaborator(&id)
	assert.Equal(t, 1, s.Page)
	require.NotNil(t, s.CollaboratorID)

	s.Page = 2
	s = s.WithCollaborator(nil)
	assert.Nil(t, s.CollaboratorID)
	assert.Equal(t, 1, s.Page)
}

func TestClampPage(t *testing.T) {
	s := NewViewState()
	s.Page = 2

	// 12 rows at size 10: page 2 is valid.
	s = s.ClampPage(12)
	assert.Equal(t, 2, s.Page)

	// Growing the page size to 25 leaves a single page.
	s = s.WithPageSize(25)
	s.Page = 2
	s = s.ClampPage(12)
	assert.Equal(t, 1, s.Page)

	// Empty result keeps page 1.
	s.Page = 5
	s = s.ClampPage(0)
	assert.Equal(t, 1, s.Page)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 0, TotalPages(10, 0))
}

func TestGranularityLadder(t *testing.T) {
	finer, ok := GranularityYear.Finer()
	assert.True(t, ok)
	assert.Equal(t, GranularityMonth, finer)

	_, ok = GranularityDay.Finer()
	assert.False(t, ok)

	coarser, ok := GranularityDay.Coarser()
	assert.True(t, ok)
	assert.Equal(t, GranularityWeek, coarser)

	_, ok = GranularityYear.Coarser()
	assert.False(t, ok)

	assert.True(t, GranularityWeek.Valid())
	assert.False(t, Granularity("decade").Valid())
}
