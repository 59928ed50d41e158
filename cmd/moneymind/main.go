/*Basic command structure*/
package main

import (
	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/devshahid/moneymind/pkg/config"
)

// cli commands / args available
var cli struct {
	Ctx context `embed:""`

	Login    loginCmd    `cmd:"" help:"Log in to the moneymind backend."`
	Register registerCmd `cmd:"" help:"Create a new account."`
	Logout   logoutCmd   `cmd:"" help:"Log out and discard the saved token."`

	List   listCmd   `cmd:"" help:"List transactions (server page merged with local edits)."`
	Edit   editCmd   `cmd:"" help:"Stage an offline edit in the local store."`
	Update updateCmd `cmd:"" help:"Edit a transaction directly on the server."`
	Sync   syncCmd   `cmd:"" help:"Push all staged local edits to the server."`
	Labels labelsCmd `cmd:"" help:"Work with labels."`
	Cash   cashCmd   `cmd:"" help:"Work with cash transactions."`
	Purge  purgeCmd  `cmd:"" help:"Delete every transaction on the server."`
	Upload uploadCmd `cmd:"" help:"Upload pre-parsed spreadsheet rows."`
	Debts  debtsCmd  `cmd:"" help:"List tracked debts."`
}

func main() {
	ctx := kong.Parse(&cli)

	log := logrus.New()
	cli.Ctx.log = log
	cli.Ctx.cfg = config.Load(log)
	if lvl, err := logrus.ParseLevel(cli.Ctx.cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}

	err := ctx.Run(&cli.Ctx)
	ctx.FatalIfErrorf(err)
}
