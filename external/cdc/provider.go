package cdc

import (
	"database/sql"
	"sort"
	"time"

	"github.com/bitmark-inc/covid-19/schema"
	"github.com/bitmark-inc/covid-19/stats"
)

const hkgCountry = "HKG"

// Provider - normalize raw data sets into daily new cases
type Provider struct {
	cache *Cache
}

// HKGNewCases - daily new cases of Hong Kong. The report is cumulative, so the
// confirmed count, completed by the tested-positive count where it is blank, is
// differenced day over day.
func (p *Provider) HKGNewCases() (schema.CaseSeries, error) {
	d, err := p.cache.Dataset(SourceHKG)
	if err != nil {
		return schema.CaseSeries{}, err
	}

	dateCol, err := column(d.Frame, hkgDateColumn)
	if err != nil {
		return schema.CaseSeries{}, err
	}
	confirmedCol, err := column(d.Frame, hkgConfirmedColumn)
	if err != nil {
		return schema.CaseSeries{}, err
	}
	positiveCol, err := column(d.Frame, hkgPositiveColumn)
	if err != nil {
		return schema.CaseSeries{}, err
	}

	days, err := dates(dateCol)
	if err != nil {
		return schema.CaseSeries{}, err
	}
	confirmed := nullInts(confirmedCol)
	positive := nullInts(positiveCol)

	order := make([]int, len(days))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return days[order[i]].Before(days[order[j]])
	})

	sortedDays := make([]time.Time, len(order))
	sortedConfirmed := make([]sql.NullInt64, len(order))
	sortedPositive := make([]sql.NullInt64, len(order))
	for i, j := range order {
		sortedDays[i] = days[j]
		sortedConfirmed[i] = confirmed[j]
		sortedPositive[i] = positive[j]
	}

	return schema.CaseSeries{
		Country: hkgCountry,
		Dates:   sortedDays,
		Cases:   stats.Diff(stats.Coalesce(sortedConfirmed, sortedPositive)),
	}, nil
}

// OWIDNewCases - daily new cases of a country as published by Our World in
// Data. An unknown iso code gives an empty series.
func (p *Provider) OWIDNewCases(country string) (schema.CaseSeries, error) {
	d, err := p.cache.Dataset(SourceOWID)
	if err != nil {
		return schema.CaseSeries{}, err
	}

	codeCol, err := column(d.Frame, owidCountryColumn)
	if err != nil {
		return schema.CaseSeries{}, err
	}
	dateCol, err := column(d.Frame, owidDateColumn)
	if err != nil {
		return schema.CaseSeries{}, err
	}
	casesCol, err := column(d.Frame, owidCasesColumn)
	if err != nil {
		return schema.CaseSeries{}, err
	}

	result := schema.CaseSeries{
		Country: country,
		Dates:   []time.Time{},
		Cases:   []sql.NullInt64{},
	}

	var rows []int
	for i, code := range codeCol.Records() {
		if code == country {
			rows = append(rows, i)
		}
	}
	if len(rows) == 0 {
		return result, nil
	}

	days, err := dates(dateCol.Subset(rows))
	if err != nil {
		return schema.CaseSeries{}, err
	}
	result.Dates = days
	result.Cases = nullInts(casesCol.Subset(rows))
	return result, nil
}

// NewProvider - new provider reading through the cache
func NewProvider(cache *Cache) *Provider {
	return &Provider{
		cache: cache,
	}
}
