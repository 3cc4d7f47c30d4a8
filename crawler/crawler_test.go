package main

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/covid-19/chart"
	chartmocks "github.com/bitmark-inc/covid-19/chart/mocks"
	"github.com/bitmark-inc/covid-19/schema"
	storemocks "github.com/bitmark-inc/covid-19/store/mocks"
)

func series(country string) schema.CaseSeries {
	d, _ := time.Parse(schema.DateLayout, "2022-01-01")
	return schema.CaseSeries{
		Country: country,
		Dates:   []time.Time{d},
		Cases:   []sql.NullInt64{{Int64: 7, Valid: true}},
	}
}

func TestCrawlerRun(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	provider := chartmocks.NewMockCaseProvider(ctl)
	provider.EXPECT().HKGNewCases().Return(series("HKG"), nil)
	provider.EXPECT().OWIDNewCases("JPN").Return(schema.CaseSeries{}, errors.New("timeout"))
	provider.EXPECT().OWIDNewCases("GBR").Return(series("GBR"), nil)

	var runIDs []string
	m := storemocks.NewMockMongoStore(ctl)
	m.EXPECT().ReplaceNewCases(gomock.Any(), series("HKG")).DoAndReturn(func(runID string, s schema.CaseSeries) error {
		runIDs = append(runIDs, runID)
		return nil
	})
	m.EXPECT().ReplaceNewCases(gomock.Any(), series("GBR")).DoAndReturn(func(runID string, s schema.CaseSeries) error {
		runIDs = append(runIDs, runID)
		return nil
	})

	providers := 0
	c := newCrawler(m, func() chart.CaseProvider {
		providers++
		return provider
	}, []string{"HKG", "JPN", "GBR"})
	c.Run()

	assert.Equal(t, 1, providers)
	if assert.Len(t, runIDs, 2) {
		assert.NotEmpty(t, runIDs[0])
		assert.Equal(t, runIDs[0], runIDs[1], "one run id per crawl")
	}
}

func TestCrawlerFreshProviderPerRun(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	provider := chartmocks.NewMockCaseProvider(ctl)
	provider.EXPECT().OWIDNewCases("USA").Return(series("USA"), nil).Times(2)

	runIDs := map[string]bool{}
	m := storemocks.NewMockMongoStore(ctl)
	m.EXPECT().ReplaceNewCases(gomock.Any(), gomock.Any()).DoAndReturn(func(runID string, s schema.CaseSeries) error {
		runIDs[runID] = true
		return nil
	}).Times(2)

	providers := 0
	c := newCrawler(m, func() chart.CaseProvider {
		providers++
		return provider
	}, []string{"USA"})
	c.Run()
	c.Run()

	assert.Equal(t, 2, providers)
	assert.Len(t, runIDs, 2)
}

func TestCrawlerSetCountries(t *testing.T) {
	c := newCrawler(nil, nil, []string{"HKG"})
	c.SetCountries([]string{"JPN", "USA"})

	countries := c.Countries()
	assert.Equal(t, []string{"JPN", "USA"}, countries)

	countries[0] = "GBR"
	assert.Equal(t, []string{"JPN", "USA"}, c.Countries())
}
