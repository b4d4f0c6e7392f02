// compassctl is an operational smoke-check tool for the Compass integration:
// authenticate a member, fetch a profile, quote join fees, dump a lookup
// table or print an invoice, against the configured environment.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/samuel/go-metrics/metrics"
	"github.com/sirupsen/logrus"

	"github.com/amadigital/compass/config"
	"github.com/amadigital/compass/libs/clock"
	"github.com/amadigital/compass/libs/compass"
	"github.com/amadigital/compass/membership"
)

type command interface {
	run(args []string) error
}

type deps struct {
	svc *membership.Service
	log *logrus.Logger
}

type commandNew func(*deps) (command, error)

var commands = map[string]commandNew{
	"authenticate": newAuthenticateCmd,
	"profile":      newProfileCmd,
	"joinfees":     newJoinFeesCmd,
	"invoice":      newInvoiceCmd,
	"lookup":       newLookupCmd,
	"schema":       newSchemaCmd,
}

func main() {
	cfg, args, err := config.Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
	log := cfg.SetupLogging()

	gateway := compass.NewClient(cfg.CompassClientConfig(), metrics.NewRegistry())
	d := &deps{
		svc: membership.New(gateway, clock.New(), log),
		log: log,
	}

	var cmd string
	if len(args) != 0 {
		cmd = args[0]
	}
	for name, cfn := range commands {
		if name == cmd {
			c, err := cfn(d)
			if err != nil {
				log.Fatal(err)
			}
			if err := c.run(args[1:]); err != nil {
				fmt.Fprintf(os.Stderr, "FAILED: %s\n", err)
				os.Exit(2)
			}
			os.Exit(0)
		}
	}

	if cmd != "" {
		fmt.Printf("Unknown command '%s'\n", cmd)
	}
	fmt.Printf("Available commands:\n")
	cmdList := make([]string, 0, len(commands))
	for name := range commands {
		cmdList = append(cmdList, name)
	}
	sort.Strings(cmdList)
	for _, name := range cmdList {
		fmt.Printf("\t%s\n", name)
	}
	os.Exit(1)
}
