/*Wiring: config -> token file -> api client -> edit store -> container*/
package main

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/devshahid/moneymind/pkg/api"
	"github.com/devshahid/moneymind/pkg/auth"
	"github.com/devshahid/moneymind/pkg/config"
	"github.com/devshahid/moneymind/pkg/export"
	"github.com/devshahid/moneymind/pkg/state"
	"github.com/devshahid/moneymind/pkg/store"
)

// context holds global options
type context struct {
	cfg *config.Config
	log *logrus.Logger
}

func (c *context) tokens() *auth.TokenFile {
	return auth.NewTokenFile(c.cfg.TokenPath, c.cfg.EncryptionKey, c.cfg.SignatureKey)
}

func (c *context) client() (*api.Client, error) {
	tokens := c.tokens()

	cl, err := api.NewClient(c.cfg.APIBaseURL, tokens, c.log)
	if err != nil {
		return nil, err
	}

	// process-wide logout on a rejected token
	cl.OnUnauthorized(func() {
		c.log.Warn("server rejected access token, logging out")
		if err := tokens.Clear(); err != nil {
			c.log.WithError(err).Error("failed to clear token")
		}
	})
	return cl, nil
}

func (c *context) editStore() (store.EditStore, error) {
	return store.NewSQLite(c.cfg.DatabasePath)
}

func (c *context) container() (*state.Container, store.EditStore, error) {
	cl, err := c.client()
	if err != nil {
		return nil, nil, err
	}

	edits, err := c.editStore()
	if err != nil {
		return nil, nil, err
	}

	return state.NewContainer(cl, edits, c.log), edits, nil
}

func getSink(log *logrus.Logger, out string) (export.Sink, error) {
	bits := strings.SplitN(out, ":", 2)
	if len(bits) != 2 {
		return nil, fmt.Errorf("invalid out path, expected [jsonfile:/path/to/file.json] or [es8:http://elasticsearch:9200]")
	}

	if bits[0] == "es8" {
		return export.NewElasticsearchV8(log, bits[1]), nil
	}

	return export.NewJSONFile(bits[1]), nil
}
