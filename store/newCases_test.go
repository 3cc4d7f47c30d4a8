package store

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/covid-19/schema"
)

type NewCasesTestSuite struct {
	suite.Suite
	connURI      string
	testDBName   string
	mongoClient  *mongo.Client
	testDatabase *mongo.Database
}

func NewNewCasesTestSuite(connURI, dbName string) *NewCasesTestSuite {
	return &NewCasesTestSuite{
		connURI:    connURI,
		testDBName: dbName,
	}
}

func (s *NewCasesTestSuite) SetupSuite() {
	if s.connURI == "" || s.testDBName == "" {
		s.T().Fatal("invalid test suite configuration")
	}

	opts := options.Client().ApplyURI(s.connURI)
	mongoClient, err := mongo.NewClient(opts)
	if nil != err {
		s.T().Fatalf("create mongo client with error: %s", err)
	}

	if err = mongoClient.Connect(context.Background()); nil != err {
		s.T().Fatalf("connect mongo database with error: %s", err.Error())
	}

	s.mongoClient = mongoClient
	s.testDatabase = mongoClient.Database(s.testDBName)

	// make sure the test suite is run with a clean environment
	if err := s.CleanMongoDB(); err != nil {
		s.T().Fatal(err)
	}
	indexer := schema.NewMongoDBIndexer(s.connURI, s.testDBName)
	defer indexer.Close()
	if err := indexer.IndexNewCasesCollection(); err != nil {
		s.T().Fatal(err)
	}
}

func (s *NewCasesTestSuite) TearDownSuite() {
	_ = s.CleanMongoDB()
	_ = s.mongoClient.Disconnect(context.Background())
}

// CleanMongoDB drop the whole test mongodb
func (s *NewCasesTestSuite) CleanMongoDB() error {
	return s.testDatabase.Drop(context.Background())
}

func day(str string) time.Time {
	d, _ := time.Parse(schema.DateLayout, str)
	return d
}

func fixture() schema.CaseSeries {
	return schema.CaseSeries{
		Country: "JPN",
		Dates:   []time.Time{day("2021-12-01"), day("2021-12-02"), day("2021-12-03")},
		Cases: []sql.NullInt64{
			{Int64: 100, Valid: true},
			{},
			{Int64: 150, Valid: true},
		},
	}
}

func (s *NewCasesTestSuite) TestReplaceNewCases() {
	store := NewMongoStore(s.mongoClient, s.testDBName)
	s.NoError(store.Ping())

	s.NoError(store.ReplaceNewCases("run-1", fixture()))
	s.NoError(store.ReplaceNewCases("run-2", fixture()))

	c := s.testDatabase.Collection(schema.NewCasesCollection)
	count, err := c.CountDocuments(context.Background(), bson.M{"country": "JPN"})
	s.NoError(err)
	s.Equal(int64(3), count, "replace should not duplicate records")

	count, err = c.CountDocuments(context.Background(), bson.M{"run_id": "run-2"})
	s.NoError(err)
	s.Equal(int64(3), count)

	s.NoError(store.ReplaceNewCases("run-3", schema.CaseSeries{Country: "USA"}))
}

func (s *NewCasesTestSuite) TestNewCasesBetween() {
	store := NewMongoStore(s.mongoClient, s.testDBName)
	s.NoError(store.ReplaceNewCases("run-1", fixture()))

	all, err := store.NewCasesBetween("JPN", nil, nil)
	s.NoError(err)
	s.Equal(fixture(), all)

	start, end := day("2021-12-02"), day("2021-12-03")
	part, err := store.NewCasesBetween("JPN", &start, &end)
	s.NoError(err)
	s.Equal([]time.Time{start, end}, part.Dates)
	s.False(part.Cases[0].Valid)

	none, err := store.NewCasesBetween("XXX", nil, nil)
	s.NoError(err)
	s.Equal(0, none.Len())
}

func TestNewCasesTestSuite(t *testing.T) {
	conn := os.Getenv("COVID_TEST_MONGO_CONN")
	if conn == "" {
		t.Skip("COVID_TEST_MONGO_CONN not set")
	}
	suite.Run(t, NewNewCasesTestSuite(conn, "covid-test-db"))
}
