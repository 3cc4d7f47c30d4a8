package main

import (
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/covid-19/chart"
	"github.com/bitmark-inc/covid-19/store"
)

type Cron interface {
	Run()
}

// newCasesCrawler - store the daily new cases of every configured country
type newCasesCrawler struct {
	sync.Mutex

	mongoStore store.MongoStore

	// a fresh provider per run, so every run sees the latest upstream data
	newProvider func() chart.CaseProvider
	countries   []string
}

func (c *newCasesCrawler) SetCountries(countries []string) {
	c.Lock()
	defer c.Unlock()
	c.countries = countries
}

func (c *newCasesCrawler) Countries() []string {
	c.Lock()
	defer c.Unlock()
	return append([]string(nil), c.countries...)
}

// Run - one crawl, a failing country does not stop the others
func (c *newCasesCrawler) Run() {
	runID := uuid.New().String()
	pipeline := chart.NewPipeline(c.newProvider())

	stored := 0
	for _, country := range c.Countries() {
		series, err := pipeline.NewCases(country, nil, nil)
		if nil != err {
			log.WithFields(log.Fields{
				"prefix":  logPrefix,
				"run_id":  runID,
				"country": country,
				"error":   err,
			}).Error("new cases from source")
			continue
		}

		log.WithFields(log.Fields{
			"prefix":  logPrefix,
			"run_id":  runID,
			"country": country,
			"days":    series.Len(),
		}).Debug("new cases from source")

		if err := c.mongoStore.ReplaceNewCases(runID, series); nil != err {
			log.WithFields(log.Fields{
				"prefix":  logPrefix,
				"run_id":  runID,
				"country": country,
				"error":   err,
			}).Error("store new cases")
			continue
		}
		stored++
	}

	log.WithFields(log.Fields{
		"prefix": logPrefix,
		"run_id": runID,
		"stored": stored,
	}).Info("crawl finished")
}

// newCrawler - new cron job for the new cases crawler
func newCrawler(mongoStore store.MongoStore, newProvider func() chart.CaseProvider, countries []string) *newCasesCrawler {
	return &newCasesCrawler{
		mongoStore:  mongoStore,
		newProvider: newProvider,
		countries:   countries,
	}
}
