package schema

import (
	"database/sql"
	"time"
)

const DateLayout = "2006-01-02"

// CaseSeries - daily new cases of one country, ordered by date
type CaseSeries struct {
	Country string
	Dates   []time.Time
	Cases   []sql.NullInt64
}

func (s CaseSeries) Len() int {
	return len(s.Dates)
}

// Between - keep the entries with start <= date <= end, a nil bound is unbounded
func (s CaseSeries) Between(start, end *time.Time) CaseSeries {
	result := CaseSeries{
		Country: s.Country,
		Dates:   make([]time.Time, 0, len(s.Dates)),
		Cases:   make([]sql.NullInt64, 0, len(s.Cases)),
	}
	for i, d := range s.Dates {
		if start != nil && d.Before(*start) {
			continue
		}
		if end != nil && d.After(*end) {
			continue
		}
		result.Dates = append(result.Dates, d)
		result.Cases = append(result.Cases, s.Cases[i])
	}
	return result
}

// Rename - same data labeled by another country code
func (s CaseSeries) Rename(country string) CaseSeries {
	s.Country = country
	return s
}

// CasePoint - one row of a case series as it is served and stored
type CasePoint struct {
	Date  string `json:"date" bson:"date"`
	Cases *int64 `json:"cases" bson:"cases"`
}

func (s CaseSeries) Points() []CasePoint {
	points := make([]CasePoint, len(s.Dates))
	for i, d := range s.Dates {
		points[i].Date = d.Format(DateLayout)
		if s.Cases[i].Valid {
			v := s.Cases[i].Int64
			points[i].Cases = &v
		}
	}
	return points
}

const NewCasesCollection = "new_cases"

// NewCasesRecord - one day of a country as stored in mongo
type NewCasesRecord struct {
	Country  string `bson:"country"`
	Date     string `bson:"date"`
	ReportTS int64  `bson:"report_ts"`
	Cases    *int64 `bson:"cases"`
	RunID    string `bson:"run_id"`
	UpdateTS int64  `bson:"update_ts"`
}
