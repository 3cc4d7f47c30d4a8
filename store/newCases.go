package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/covid-19/schema"
)

var (
	ErrNewCasesFetch  = fmt.Errorf("fetch new cases fail")
	ErrNewCasesDecode = fmt.Errorf("decode new cases fail")
)

// NewCases - persist normalized daily new cases
type NewCases interface {
	ReplaceNewCases(runID string, series schema.CaseSeries) error
	NewCasesBetween(country string, start, end *time.Time) (schema.CaseSeries, error)
}

// ReplaceNewCases - upsert one record per country and day
func (m *mongoDB) ReplaceNewCases(runID string, series schema.CaseSeries) error {
	if series.Len() == 0 {
		log.WithFields(log.Fields{"prefix": mongoLogPrefix, "country": series.Country}).Debug("no record to update")
		return nil
	}

	now := time.Now().UTC().Unix()
	models := make([]mongo.WriteModel, 0, series.Len())
	for i, p := range series.Points() {
		filter := bson.M{"country": series.Country, "date": p.Date}
		replacement := schema.NewCasesRecord{
			Country:  series.Country,
			Date:     p.Date,
			ReportTS: series.Dates[i].Unix(),
			Cases:    p.Cases,
			RunID:    runID,
			UpdateTS: now,
		}
		models = append(models, mongo.NewReplaceOneModel().SetFilter(filter).SetReplacement(replacement).SetUpsert(true))
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.NewCasesCollection)
	res, err := c.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	if err != nil {
		log.WithFields(log.Fields{"prefix": mongoLogPrefix, "country": series.Country, "error": err}).Error("replace new cases")
		return err
	}

	log.WithFields(log.Fields{
		"prefix":   mongoLogPrefix,
		"country":  series.Country,
		"upserted": res.UpsertedCount,
		"modified": res.ModifiedCount,
	}).Debug("replace new cases")
	return nil
}

// NewCasesBetween - stored daily new cases of a country ordered by date, a nil
// bound is unbounded
func (m *mongoDB) NewCasesBetween(country string, start, end *time.Time) (schema.CaseSeries, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	filter := bson.M{"country": country}
	ts := bson.M{}
	if start != nil {
		ts["$gte"] = start.Unix()
	}
	if end != nil {
		ts["$lte"] = end.Unix()
	}
	if len(ts) > 0 {
		filter["report_ts"] = ts
	}

	c := m.client.Database(m.database).Collection(schema.NewCasesCollection)
	cur, err := c.Find(ctx, filter, options.Find().SetSort(bson.M{"report_ts": 1}))
	if err != nil {
		log.WithField("prefix", mongoLogPrefix).Errorf("%v: %s", ErrNewCasesFetch, err)
		return schema.CaseSeries{}, ErrNewCasesFetch
	}
	defer cur.Close(ctx)

	result := schema.CaseSeries{
		Country: country,
		Dates:   []time.Time{},
		Cases:   []sql.NullInt64{},
	}
	for cur.Next(ctx) {
		var record schema.NewCasesRecord
		if err := cur.Decode(&record); err != nil {
			log.WithField("prefix", mongoLogPrefix).Errorf("new cases decode with error: %s", err)
			return schema.CaseSeries{}, ErrNewCasesDecode
		}

		result.Dates = append(result.Dates, time.Unix(record.ReportTS, 0).UTC())
		if record.Cases != nil {
			result.Cases = append(result.Cases, sql.NullInt64{Int64: *record.Cases, Valid: true})
		} else {
			result.Cases = append(result.Cases, sql.NullInt64{})
		}
	}
	return result, cur.Err()
}
