package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/amadigital/compass/membership"
)

type authenticateCmd struct {
	svc *membership.Service
}

func newAuthenticateCmd(d *deps) (command, error) {
	return &authenticateCmd{svc: d.svc}, nil
}

func (c *authenticateCmd) run(args []string) error {
	fs := flag.NewFlagSet("authenticate", flag.ExitOnError)
	emailLookup := fs.Bool("email_lookup", false, "resolve an email address to a username first")
	sso := fs.Bool("sso", false, "fetch an SSO token on success")
	mode := fs.String("mode", membership.LoginModeAMAM, "login mode (AMAM, AMAA or AMSA)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return errors.New("usage: authenticate [flags] <login> <password>")
	}

	res := c.svc.Authenticate(fs.Arg(0), fs.Arg(1), *emailLookup, *sso, *mode)
	fmt.Printf("status: %s  access: %q\n", res.LoginStatus, res.AccessLevel)
	if res.Message != "" {
		fmt.Printf("message: %s\n", res.Message)
	}
	if res.CustomerMessage != "" {
		fmt.Printf("customer message: %s\n", res.CustomerMessage)
	}
	if res.SSOToken != nil {
		fmt.Printf("sso token: %s (expires %s)\n", res.SSOToken.Token, res.SSOToken.Expiry)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res.Profile)
}
