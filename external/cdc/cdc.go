package cdc

import (
	"database/sql"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/covid-19/schema"
)

const (
	logPrefix = "cdc"

	HKGURL  = "https://api.data.gov.hk/v2/filter?q=%7B%22resource%22%3A%22http%3A%2F%2Fwww.chp.gov.hk%2Ffiles%2Fmisc%2Flatest_situation_of_reported_cases_covid_19_eng.csv%22%2C%22section%22%3A1%2C%22format%22%3A%22json%22%7D"
	OWIDURL = "https://covid.ourworldindata.org/data/owid-covid-data.csv"
)

var (
	ErrUnexpectedStatus = fmt.Errorf("unexpected response status")
	ErrMissingColumn    = fmt.Errorf("missing column")
	ErrInvalidDate      = fmt.Errorf("invalid date")
	ErrUnknownSource    = fmt.Errorf("unknown source")
)

// SourceKey - identify an upstream data set
type SourceKey string

const (
	SourceHKG  SourceKey = "hkg"
	SourceOWID SourceKey = "owid"
)

// Dataset - raw tabular snapshot of one source
type Dataset struct {
	Source    SourceKey
	Frame     dataframe.DataFrame
	FetchedAt time.Time
}

// Source - interface to download a raw data set
type Source interface {
	Key() SourceKey
	Fetch() (*Dataset, error)
}

func openURL(client *http.Client, url string) (io.ReadCloser, error) {
	resp, err := client.Get(url)
	if nil != err {
		log.WithFields(log.Fields{"prefix": logPrefix, "url": url, "error": err}).Error("get data set")
		return nil, err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		resp.Body.Close()
		log.WithFields(log.Fields{"prefix": logPrefix, "url": url, "status": resp.StatusCode}).Error("get data set")
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}
	return resp.Body, nil
}

func column(df dataframe.DataFrame, name string) (series.Series, error) {
	s := df.Col(name)
	if s.Err != nil {
		return series.Series{}, fmt.Errorf("%w: %s", ErrMissingColumn, name)
	}
	return s, nil
}

// nullInts reads a numeric column, NA cells become null. Float cells are rounded.
func nullInts(s series.Series) []sql.NullInt64 {
	result := make([]sql.NullInt64, s.Len())
	for i := 0; i < s.Len(); i++ {
		e := s.Elem(i)
		if e.IsNA() {
			continue
		}
		f := e.Float()
		if math.IsNaN(f) {
			continue
		}
		result[i] = sql.NullInt64{Int64: int64(math.Round(f)), Valid: true}
	}
	return result
}

func dates(s series.Series) ([]time.Time, error) {
	result := make([]time.Time, s.Len())
	for i, r := range s.Records() {
		d, err := time.Parse(schema.DateLayout, r)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDate, r)
		}
		result[i] = d
	}
	return result, nil
}
