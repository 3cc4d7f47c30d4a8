package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/uber-go/tally"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gonum.org/v1/plot/vg"

	"github.com/bitmark-inc/covid-19/api"
	"github.com/bitmark-inc/covid-19/chart"
	"github.com/bitmark-inc/covid-19/external/cdc"
	"github.com/bitmark-inc/covid-19/logmodule"
	"github.com/bitmark-inc/covid-19/schema"
	"github.com/bitmark-inc/covid-19/store"
)

const logPrefix = "cli"

var configFile string

func init() {
	viper.SetDefault("log.level", "info")
	viper.SetDefault("source.hkg_url", cdc.HKGURL)
	viper.SetDefault("source.owid_url", cdc.OWIDURL)
	viper.SetDefault("http.timeout", 5*time.Minute)
	viper.SetDefault("plot.start", "2021-12-01")
	viper.SetDefault("plot.smooth", 3)
	viper.SetDefault("plot.aspect", chart.DefaultAspect)
	viper.SetDefault("plot.output", "assets/plot.png")
	viper.SetDefault("plot.width", 10.0)
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("mongo.database", "covid")
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

func initSentry() {
	if viper.GetString("sentry.dsn") == "" {
		return
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              viper.GetString("sentry.dsn"),
		AttachStacktrace: true,
		Environment:      viper.GetString("sentry.environment"),
	}); err != nil {
		log.Error(err)
		return
	}
	log.WithField("prefix", "init").Info("Initialized sentry")
}

// configuredCountries - plot.countries entries like "JPN:3", defaults when unset
func configuredCountries() ([]chart.CountryScale, error) {
	entries := viper.GetStringSlice("plot.countries")
	if len(entries) == 0 {
		return chart.DefaultCountries(), nil
	}

	countries := make([]chart.CountryScale, 0, len(entries))
	for _, e := range entries {
		c, err := chart.ParseCountryScale(e)
		if err != nil {
			return nil, err
		}
		countries = append(countries, c)
	}
	return countries, nil
}

func newPipeline(scope tally.Scope) *chart.Pipeline {
	client := &http.Client{
		Timeout: viper.GetDuration("http.timeout"),
	}

	cache := cdc.NewCache(scope,
		cdc.NewHKG(viper.GetString("source.hkg_url"), client),
		cdc.NewOWID(viper.GetString("source.owid_url"), client),
	)
	return chart.NewPipeline(cdc.NewProvider(cache))
}

func plotWidth() vg.Length {
	return vg.Length(viper.GetFloat64("plot.width")) * vg.Inch
}

func runPlot(cmd *cobra.Command, args []string) error {
	start, err := time.Parse(schema.DateLayout, viper.GetString("plot.start"))
	if err != nil {
		return fmt.Errorf("%w: start %s", chart.ErrInvalidOption, viper.GetString("plot.start"))
	}
	smooth := viper.GetInt("plot.smooth")

	countries, err := configuredCountries()
	if err != nil {
		return err
	}

	scope, closer := tally.NewRootScope(tally.ScopeOptions{Prefix: "covid"}, time.Second)
	defer closer.Close()

	overlay, err := newPipeline(scope).CombinedPlot(countries, chart.CombinedOptions{
		Start:  &start,
		Smooth: &smooth,
		Aspect: viper.GetFloat64("plot.aspect"),
	})
	if err != nil {
		return err
	}

	output := viper.GetString("plot.output")
	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return err
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := chart.Render(f, overlay, plotWidth()); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.WithFields(log.Fields{"prefix": logPrefix, "output": output, "countries": countries}).Info("plot saved")

	if xlsx := viper.GetString("export.xlsx"); xlsx != "" {
		if err := chart.ExportXLSX(xlsx, overlay); err != nil {
			return err
		}
		log.WithFields(log.Fields{"prefix": logPrefix, "output": xlsx}).Info("workbook saved")
	}

	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	countries, err := configuredCountries()
	if err != nil {
		return err
	}

	var mongoStore store.MongoStore
	if conn := viper.GetString("mongo.conn"); conn != "" {
		mongoClient, err := mongo.NewClient(options.Client().ApplyURI(conn))
		if nil != err {
			return fmt.Errorf("create mongo client with error: %w", err)
		}

		if err := mongoClient.Connect(context.Background()); nil != err {
			return fmt.Errorf("connect mongo database with error: %w", err)
		}

		mongoStore = store.NewMongoStore(mongoClient, viper.GetString("mongo.database"))
		defer mongoStore.Close()
	}

	scope, closer := tally.NewRootScope(tally.ScopeOptions{Prefix: "covid"}, time.Second)
	defer closer.Close()

	server := api.NewServer(newPipeline(scope), mongoStore, countries, plotWidth())
	log.WithField("prefix", "init").Info("Initialized http server")

	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Info("Server is preparing to shutdown")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Error("Server Shutdown:", err)
		}
	}()

	if err := server.Run(":" + viper.GetString("server.port")); err != http.ErrServerClosed {
		return err
	}
	return nil
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "covid-19",
		Short:         "Plot daily new COVID-19 cases of HKG and OWID countries",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			loadConfig(configFile)
			bindPlotFlags(cmd)
			logmodule.Init(viper.GetString("log.level"))
			initSentry()
		},
		RunE: runPlot,
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "[optional] path of configuration file")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "Render the combined new cases plot as png",
		RunE:  runPlot,
	}

	// the root command plots too, so it shares the plot flags
	for _, cmd := range []*cobra.Command{root, plotCmd} {
		flags := cmd.Flags()
		flags.String("start", "2021-12-01", "first date of the plot (YYYY-MM-DD)")
		flags.Int("smooth", 3, "moving average window in days")
		flags.StringP("output", "o", "assets/plot.png", "png output path")
		flags.String("xlsx", "", "[optional] also export the plotted values to this xlsx path")
		flags.StringSlice("countries", nil, "countries to plot, e.g. HKG,JPN:3")
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve new cases and plots over http",
		RunE:  runServe,
	}

	root.AddCommand(plotCmd, serveCmd)
	return root
}

// bindPlotFlags - flags of the command being run override the config file
func bindPlotFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	for key, name := range map[string]string{
		"plot.start":     "start",
		"plot.smooth":    "smooth",
		"plot.output":    "output",
		"export.xlsx":    "xlsx",
		"plot.countries": "countries",
	} {
		if f := flags.Lookup(name); f != nil {
			_ = viper.BindPFlag(key, f)
		}
	}
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.WithField("prefix", logPrefix).Error(err)
		if viper.GetString("sentry.dsn") != "" {
			sentry.CaptureException(err)
			sentry.Flush(5 * time.Second)
		}
		os.Exit(1)
	}
}
