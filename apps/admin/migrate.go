package main

import (
	"github.com/urfave/cli/v2"

	"github.com/trezcool/alama/storage/database"
)

var gooseRunFunc = database.RunMigration // mockable

func (cl *commandLine) migrate(c *cli.Context) error {
	if c.NArg() == 0 {
		_ = cli.ShowSubcommandHelp(c)
		return errHelp
	}
	if cl.db == nil {
		return errNoDatabase
	}
	return gooseRunFunc(c.Args().First(), cl.db, c.Args().Tail()...)
}
