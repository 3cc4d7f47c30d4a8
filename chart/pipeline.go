package chart

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/covid-19/schema"
	"github.com/bitmark-inc/covid-19/stats"
)

const (
	logPrefix = "chart"

	DefaultAspect = 2.5

	// HKG has its own feed, every other code is looked up in OWID
	HKG = "HKG"
)

var (
	ErrNoSeries      = fmt.Errorf("no series to combine")
	ErrInvalidOption = fmt.Errorf("invalid plot option")
)

//go:generate mockgen -destination=mocks/mock_provider.go -package=mocks github.com/bitmark-inc/covid-19/chart CaseProvider

// CaseProvider - daily new cases per source
type CaseProvider interface {
	HKGNewCases() (schema.CaseSeries, error)
	OWIDNewCases(country string) (schema.CaseSeries, error)
}

// PlotOptions - nil fields are not applied
type PlotOptions struct {
	Scale  *int
	Start  *time.Time
	End    *time.Time
	Smooth *int
	Aspect float64
}

// CombinedOptions - options shared by every country of a combined plot
type CombinedOptions struct {
	Start  *time.Time
	Smooth *int
	Aspect float64
}

// CountryScale - a country code and the power of ten its values are divided by
type CountryScale struct {
	Country string
	Scale   *int
}

func (c CountryScale) String() string {
	if c.Scale == nil {
		return c.Country
	}
	return fmt.Sprintf("%s:%d", c.Country, *c.Scale)
}

type Pipeline struct {
	provider CaseProvider
}

// NewCases - daily new cases of a country within [start, end]
func (p *Pipeline) NewCases(country string, start, end *time.Time) (schema.CaseSeries, error) {
	var data schema.CaseSeries
	var err error
	if country == HKG {
		data, err = p.provider.HKGNewCases()
	} else {
		data, err = p.provider.OWIDNewCases(country)
	}
	if err != nil {
		return schema.CaseSeries{}, err
	}

	data = data.Between(start, end).Rename(country)
	if data.Len() == 0 {
		log.WithFields(log.Fields{"prefix": logPrefix, "country": country}).Warn("empty new cases series")
	}
	return data, nil
}

// PlotNewCases - chart series of the daily new cases of a country
func (p *Pipeline) PlotNewCases(country string, opts PlotOptions) (schema.ChartSeries, error) {
	if opts.Smooth != nil && *opts.Smooth <= 0 {
		return schema.ChartSeries{}, fmt.Errorf("%w: smooth %d", ErrInvalidOption, *opts.Smooth)
	}
	if opts.Scale != nil && *opts.Scale < 0 {
		return schema.ChartSeries{}, fmt.Errorf("%w: scale %d", ErrInvalidOption, *opts.Scale)
	}

	data, err := p.NewCases(country, opts.Start, opts.End)
	if err != nil {
		return schema.ChartSeries{}, err
	}

	values := stats.Float64s(data.Cases)
	title := "New cases"
	if opts.Scale != nil {
		values = stats.Scale(values, *opts.Scale)
		title = fmt.Sprintf("New cases (%s)", strings.Repeat("0", *opts.Scale))
	}
	if opts.Smooth != nil {
		values = stats.RollingMean(values, *opts.Smooth)
	}

	aspect := opts.Aspect
	if aspect <= 0 {
		aspect = DefaultAspect
	}

	return schema.ChartSeries{
		Label:    country,
		XTitle:   "date",
		YKey:     "new_cases_" + country,
		YTitle:   title,
		Dates:    data.Dates,
		Values:   values,
		Aspect:   aspect,
		ShowGrid: true,
		Hover:    true,
	}, nil
}

// CombinedPlot - one chart per country, stacked in a single column in input
// order. Any failure fails the whole plot.
func (p *Pipeline) CombinedPlot(countries []CountryScale, opts CombinedOptions) (schema.Overlay, error) {
	if len(countries) == 0 {
		return schema.Overlay{}, ErrNoSeries
	}

	overlay := schema.Overlay{
		Series: make([]schema.ChartSeries, 0, len(countries)),
		Cols:   1,
	}
	for _, c := range countries {
		s, err := p.PlotNewCases(c.Country, PlotOptions{
			Scale:  c.Scale,
			Start:  opts.Start,
			Smooth: opts.Smooth,
			Aspect: opts.Aspect,
		})
		if err != nil {
			log.WithFields(log.Fields{"prefix": logPrefix, "country": c.Country, "error": err}).Error("plot new cases")
			return schema.Overlay{}, err
		}
		overlay.Series = append(overlay.Series, s)
	}
	return overlay, nil
}

// ParseCountryScale - parse "JPN:3" or "HKG"
func ParseCountryScale(s string) (CountryScale, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	c := CountryScale{Country: strings.ToUpper(parts[0])}
	if c.Country == "" {
		return CountryScale{}, fmt.Errorf("%w: country %q", ErrInvalidOption, s)
	}
	if len(parts) == 2 {
		n, err := strconv.Atoi(parts[1])
		if err != nil || n < 0 {
			return CountryScale{}, fmt.Errorf("%w: scale %q", ErrInvalidOption, s)
		}
		c.Scale = &n
	}
	return c, nil
}

// DefaultCountries - HKG unscaled, JPN, USA and GBR in thousands
func DefaultCountries() []CountryScale {
	three := 3
	return []CountryScale{
		{Country: HKG},
		{Country: "JPN", Scale: &three},
		{Country: "USA", Scale: &three},
		{Country: "GBR", Scale: &three},
	}
}

func NewPipeline(provider CaseProvider) *Pipeline {
	return &Pipeline{
		provider: provider,
	}
}
