package cdc

import (
	"net/http"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	log "github.com/sirupsen/logrus"
)

const (
	owidCountryColumn = "iso_code"
	owidDateColumn    = "date"
	owidCasesColumn   = "new_cases"
)

type owid struct {
	URL    string
	client *http.Client
}

func (o owid) Key() SourceKey {
	return SourceOWID
}

// Fetch - download the Our World in Data aggregate csv
func (o owid) Fetch() (*Dataset, error) {
	body, err := openURL(o.client, o.URL)
	if nil != err {
		return nil, err
	}
	defer body.Close()

	// new_cases is published as "12.0" in later releases, so read it as float
	df := dataframe.ReadCSV(body,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithTypes(map[string]series.Type{
			owidCountryColumn: series.String,
			owidDateColumn:    series.String,
			owidCasesColumn:   series.Float,
		}),
	)
	if df.Err != nil {
		log.WithFields(log.Fields{"prefix": logPrefix, "error": df.Err}).Error("decode owid csv")
		return nil, df.Err
	}

	for _, name := range []string{owidCountryColumn, owidDateColumn, owidCasesColumn} {
		if _, err := column(df, name); err != nil {
			return nil, err
		}
	}

	log.WithFields(log.Fields{"prefix": logPrefix, "rows": df.Nrow()}).Debug("data from owid")

	return &Dataset{
		Source:    SourceOWID,
		Frame:     df,
		FetchedAt: time.Now().UTC(),
	}, nil
}

// NewOWID - new Our World in Data source
func NewOWID(url string, client *http.Client) Source {
	if client == nil {
		client = http.DefaultClient
	}
	return &owid{
		URL:    url,
		client: client,
	}
}
