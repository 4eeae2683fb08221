package main

import (
	"github.com/trezcool/kozi/storage/database"
)

// createDB provisions the app user and database, then brings the schema
// up to date.
func (cli *commandLine) createDB() error {
	if err := database.CreateIfNotExist(cli.conf); err != nil {
		return err
	}
	return database.Migrate(cli.db)
}
