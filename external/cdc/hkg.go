package cdc

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/covid-19/schema"
)

const (
	hkgDateColumn      = "As of date"
	hkgDateLayout      = "02/01/2006"
	hkgConfirmedColumn = "Number of confirmed cases"
	hkgPositiveColumn  = "Number of cases tested positive for SARS-CoV-2 virus"
)

// hkgCountColumns - count columns of the situation report, blank cells are null
var hkgCountColumns = []string{
	hkgConfirmedColumn,
	hkgPositiveColumn,
	"Number of ruled out cases",
	"Number of cases still hospitalised for investigation",
	"Number of cases fulfilling the reporting criteria",
	"Number of death cases",
	"Number of discharge cases",
	"Number of probable cases",
	"Number of hospitalised cases in critical condition",
	"Number of cases tested positive for SARS-CoV-2 virus by nucleic acid tests",
	"Number of cases tested positive for SARS-CoV-2 virus by rapid antigen tests",
	"Number of positive nucleic acid test laboratory detections",
	"Number of death cases related to COVID-19",
}

type hkg struct {
	URL    string
	client *http.Client
}

func (h hkg) Key() SourceKey {
	return SourceHKG
}

// Fetch - download the latest situation report of Hong Kong
func (h hkg) Fetch() (*Dataset, error) {
	body, err := openURL(h.client, h.URL)
	if nil != err {
		return nil, err
	}
	defer body.Close()

	types := make(map[string]series.Type, len(hkgCountColumns))
	for _, name := range hkgCountColumns {
		types[name] = series.Int
	}

	df := dataframe.ReadJSON(body,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithTypes(types),
	)
	if df.Err != nil {
		log.WithFields(log.Fields{"prefix": logPrefix, "error": df.Err}).Error("decode hkg json")
		return nil, df.Err
	}

	for _, name := range df.Names() {
		if _, ok := types[name]; !ok && strings.HasPrefix(name, "Number of") {
			log.WithFields(log.Fields{"prefix": logPrefix, "column": name}).Warn("unknown hkg count column kept as text")
		}
	}

	raw, err := column(df, hkgDateColumn)
	if err != nil {
		return nil, err
	}
	iso := make([]string, raw.Len())
	for i, r := range raw.Records() {
		d, err := time.Parse(hkgDateLayout, r)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDate, r)
		}
		iso[i] = d.Format(schema.DateLayout)
	}
	df = df.Mutate(series.New(iso, series.String, hkgDateColumn))
	if df.Err != nil {
		return nil, df.Err
	}

	log.WithFields(log.Fields{"prefix": logPrefix, "rows": df.Nrow()}).Debug("data from hkg")

	return &Dataset{
		Source:    SourceHKG,
		Frame:     df,
		FetchedAt: time.Now().UTC(),
	}, nil
}

// NewHKG - new Hong Kong open data source
func NewHKG(url string, client *http.Client) Source {
	if client == nil {
		client = http.DefaultClient
	}
	return &hkg{
		URL:    url,
		client: client,
	}
}
