package chart

import (
	"database/sql"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/covid-19/chart/mocks"
	"github.com/bitmark-inc/covid-19/schema"
)

func day(s string) time.Time {
	d, _ := time.Parse(schema.DateLayout, s)
	return d
}

func intp(v int) *int {
	return &v
}

func timep(s string) *time.Time {
	d := day(s)
	return &d
}

func series(country string, values ...interface{}) schema.CaseSeries {
	s := schema.CaseSeries{Country: country}
	start := day("2021-12-01")
	for i, v := range values {
		s.Dates = append(s.Dates, start.AddDate(0, 0, i))
		if n, ok := v.(int); ok {
			s.Cases = append(s.Cases, sql.NullInt64{Int64: int64(n), Valid: true})
		} else {
			s.Cases = append(s.Cases, sql.NullInt64{})
		}
	}
	return s
}

func TestNewCasesDispatch(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockCaseProvider(ctl)
	m.EXPECT().HKGNewCases().Return(series("HKG", nil, 5, 7), nil).Times(1)
	m.EXPECT().OWIDNewCases("JPN").Return(series("JPN", 1, 2), nil).Times(1)

	p := NewPipeline(m)

	hk, err := p.NewCases("HKG", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "HKG", hk.Country)
	assert.Equal(t, 3, hk.Len())

	jp, err := p.NewCases("JPN", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "JPN", jp.Country)
	assert.Equal(t, 2, jp.Len())
}

func TestNewCasesBounds(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockCaseProvider(ctl)
	m.EXPECT().OWIDNewCases("USA").Return(series("USA", 1, 2, 3, 4, 5), nil).AnyTimes()

	p := NewPipeline(m)

	s, err := p.NewCases("USA", timep("2021-12-02"), timep("2021-12-04"))
	require.NoError(t, err)
	assert.Equal(t, []time.Time{day("2021-12-02"), day("2021-12-03"), day("2021-12-04")}, s.Dates, "bounds are inclusive")

	s, err = p.NewCases("USA", timep("2021-12-04"), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())

	s, err = p.NewCases("USA", nil, timep("2021-12-01"))
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())

	s, err = p.NewCases("USA", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, s.Len())
}

func TestNewCasesUnknownCountry(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockCaseProvider(ctl)
	m.EXPECT().OWIDNewCases("XXX").Return(schema.CaseSeries{Country: "XXX"}, nil)

	s, err := NewPipeline(m).NewCases("XXX", nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestPlotNewCasesScale(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockCaseProvider(ctl)
	m.EXPECT().OWIDNewCases("JPN").Return(series("JPN", 1000, 2500, nil), nil)

	c, err := NewPipeline(m).PlotNewCases("JPN", PlotOptions{Scale: intp(3)})
	require.NoError(t, err)

	assert.Equal(t, "New cases (000)", c.YTitle)
	assert.Equal(t, "new_cases_JPN", c.YKey)
	assert.Equal(t, "date", c.XTitle)
	assert.Equal(t, "JPN", c.Label)
	assert.Equal(t, DefaultAspect, c.Aspect)
	assert.True(t, c.ShowGrid)
	assert.True(t, c.Hover)
	assert.InDelta(t, 1, c.Values[0], 1e-12)
	assert.InDelta(t, 2.5, c.Values[1], 1e-12)
	assert.True(t, math.IsNaN(c.Values[2]))
}

func TestPlotNewCasesUnscaled(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockCaseProvider(ctl)
	m.EXPECT().HKGNewCases().Return(series("HKG", nil, 5), nil)

	c, err := NewPipeline(m).PlotNewCases("HKG", PlotOptions{Aspect: 3})
	require.NoError(t, err)
	assert.Equal(t, "New cases", c.YTitle)
	assert.Equal(t, 3.0, c.Aspect)
	assert.True(t, math.IsNaN(c.Values[0]))
	assert.Equal(t, 5.0, c.Values[1])
}

func TestPlotNewCasesSmooth(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockCaseProvider(ctl)
	m.EXPECT().OWIDNewCases("GBR").Return(series("GBR", 3, 6, 9, 12, 30), nil)

	c, err := NewPipeline(m).PlotNewCases("GBR", PlotOptions{Smooth: intp(3)})
	require.NoError(t, err)
	require.Len(t, c.Values, 5)
	assert.True(t, math.IsNaN(c.Values[0]))
	assert.True(t, math.IsNaN(c.Values[1]))
	assert.InDelta(t, 6, c.Values[2], 1e-12)
	assert.InDelta(t, 9, c.Values[3], 1e-12)
	assert.InDelta(t, 17, c.Values[4], 1e-12)
}

func TestPlotNewCasesInvalidSmooth(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockCaseProvider(ctl)
	_, err := NewPipeline(m).PlotNewCases("GBR", PlotOptions{Smooth: intp(0)})
	assert.True(t, errors.Is(err, ErrInvalidOption))
}

func TestCombinedPlot(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockCaseProvider(ctl)
	gomock.InOrder(
		m.EXPECT().HKGNewCases().Return(series("HKG", nil, 1, 2, 3), nil),
		m.EXPECT().OWIDNewCases("JPN").Return(series("JPN", 1000, 2000, 3000, 4000), nil),
	)

	overlay, err := NewPipeline(m).CombinedPlot(
		[]CountryScale{{Country: "HKG"}, {Country: "JPN", Scale: intp(3)}},
		CombinedOptions{Start: timep("2021-12-02"), Smooth: intp(2), Aspect: 2},
	)
	require.NoError(t, err)
	require.Len(t, overlay.Series, 2)
	assert.Equal(t, 1, overlay.Cols)

	assert.Equal(t, "HKG", overlay.Series[0].Label)
	assert.Equal(t, "New cases", overlay.Series[0].YTitle)
	assert.Equal(t, 3, len(overlay.Series[0].Dates))

	jp := overlay.Series[1]
	assert.Equal(t, "JPN", jp.Label)
	assert.Equal(t, "New cases (000)", jp.YTitle)
	assert.Equal(t, 2.0, jp.Aspect)
	assert.True(t, math.IsNaN(jp.Values[0]))
	assert.InDelta(t, 2.5, jp.Values[1], 1e-12)
	assert.InDelta(t, 3.5, jp.Values[2], 1e-12)
}

func TestCombinedPlotFailure(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	fail := errors.New("network down")
	m := mocks.NewMockCaseProvider(ctl)
	m.EXPECT().HKGNewCases().Return(series("HKG", 1), nil)
	m.EXPECT().OWIDNewCases("JPN").Return(schema.CaseSeries{}, fail)

	_, err := NewPipeline(m).CombinedPlot([]CountryScale{{Country: "HKG"}, {Country: "JPN"}}, CombinedOptions{})
	assert.Equal(t, fail, err)
}

func TestCombinedPlotEmpty(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	_, err := NewPipeline(mocks.NewMockCaseProvider(ctl)).CombinedPlot(nil, CombinedOptions{})
	assert.Equal(t, ErrNoSeries, err)
}

func TestParseCountryScale(t *testing.T) {
	c, err := ParseCountryScale("jpn:3")
	require.NoError(t, err)
	assert.Equal(t, "JPN", c.Country)
	assert.Equal(t, 3, *c.Scale)
	assert.Equal(t, "JPN:3", c.String())

	c, err = ParseCountryScale("HKG")
	require.NoError(t, err)
	assert.Nil(t, c.Scale)
	assert.Equal(t, "HKG", c.String())

	for _, s := range []string{"", ":3", "JPN:x", "JPN:-1", "JPN:3x"} {
		_, err = ParseCountryScale(s)
		assert.True(t, errors.Is(err, ErrInvalidOption), "%q should be rejected", s)
	}
}

func TestDefaultCountries(t *testing.T) {
	var names []string
	for _, c := range DefaultCountries() {
		names = append(names, c.String())
	}
	assert.Equal(t, []string{"HKG", "JPN:3", "USA:3", "GBR:3"}, names)
}
