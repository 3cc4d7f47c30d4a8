package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/robfig/cron"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/uber-go/tally"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/covid-19/chart"
	"github.com/bitmark-inc/covid-19/external/cdc"
	"github.com/bitmark-inc/covid-19/logmodule"
	"github.com/bitmark-inc/covid-19/store"
)

const (
	logPrefix       = "cron"
	defaultSchedule = "@every 6h"
)

func init() {
	viper.SetDefault("source.hkg_url", cdc.HKGURL)
	viper.SetDefault("source.owid_url", cdc.OWIDURL)
	viper.SetDefault("http.timeout", 5*time.Minute)
	viper.SetDefault("mongo.database", "covid")
	viper.SetDefault("crawler.schedule", defaultSchedule)
}

func loadConfig(file string) {
	// Config from file
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}

	viper.AddConfigPath("/.config/")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		fmt.Println("No config file. Read config from env.")
		viper.AllowEmptyEnv(false)
	}

	// Config from env if possible
	viper.AutomaticEnv()
	viper.SetEnvPrefix("covid")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

// configuredCountries - country codes of plot.countries, scales are ignored
func configuredCountries() []string {
	entries := viper.GetStringSlice("plot.countries")
	if len(entries) == 0 {
		for _, c := range chart.DefaultCountries() {
			entries = append(entries, c.Country)
		}
	}

	countries := make([]string, 0, len(entries))
	for _, e := range entries {
		c, err := chart.ParseCountryScale(e)
		if err != nil {
			log.WithFields(log.Fields{"prefix": logPrefix, "entry": e}).Warn("skip invalid country")
			continue
		}
		countries = append(countries, c.Country)
	}
	return countries
}

func main() {
	var configFile string
	var once bool

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.BoolVar(&once, "once", false, "crawl once and exit")
	flag.Parse()

	loadConfig(configFile)

	logmodule.Init(viper.GetString("log.level"))

	// initialise mongodb connections
	opts := options.Client().ApplyURI(viper.GetString("mongo.conn"))
	opts.SetMaxPoolSize(viper.GetUint64("mongo.pool"))
	mongoClient, err := mongo.NewClient(opts)
	if nil != err {
		log.Panicf("create mongo client with error: %s", err)
	}

	err = mongoClient.Connect(context.Background())
	if nil != err {
		log.Panicf("connect mongo database with error: %s", err)
	}

	mStore := store.NewMongoStore(
		mongoClient,
		viper.GetString("mongo.database"),
	)
	defer mStore.Close()

	scope, closer := tally.NewRootScope(tally.ScopeOptions{Prefix: "covid_crawler"}, time.Second)
	defer closer.Close()

	httpClient := &http.Client{
		Timeout: viper.GetDuration("http.timeout"),
	}

	crawler := newCrawler(mStore, func() chart.CaseProvider {
		return cdc.NewProvider(cdc.NewCache(scope,
			cdc.NewHKG(viper.GetString("source.hkg_url"), httpClient),
			cdc.NewOWID(viper.GetString("source.owid_url"), httpClient),
		))
	}, configuredCountries())

	if once {
		crawler.Run()
		return
	}

	viper.OnConfigChange(func(e fsnotify.Event) {
		countries := configuredCountries()
		log.WithFields(log.Fields{
			"prefix":    logPrefix,
			"file":      e.Name,
			"countries": countries,
		}).Info("config changed")
		crawler.SetCountries(countries)
	})
	viper.WatchConfig()

	c := cron.New()
	if err := c.AddJob(viper.GetString("crawler.schedule"), crawler); err != nil {
		log.Panicf("schedule crawler with error: %s", err)
	}
	c.Start()
	log.WithFields(log.Fields{
		"prefix":   logPrefix,
		"schedule": viper.GetString("crawler.schedule"),
	}).Info("crawler scheduled")

	sig := make(chan os.Signal, 2)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	log.Info("Crawler is preparing to shutdown")
	c.Stop()
}
