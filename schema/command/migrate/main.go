package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/bitmark-inc/covid-19/schema"
)

func init() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("covid")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func main() {
	indexer := schema.NewMongoDBIndexer(viper.GetString("mongo.conn"), viper.GetString("mongo.database"))
	defer indexer.Close()

	indexer.IndexAll()
	fmt.Println("mongo indexes created")
}
