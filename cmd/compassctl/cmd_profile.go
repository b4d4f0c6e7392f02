package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/amadigital/compass/membership"
)

type profileCmd struct {
	svc *membership.Service
}

func newProfileCmd(d *deps) (command, error) {
	return &profileCmd{svc: d.svc}, nil
}

func (c *profileCmd) run(args []string) error {
	fs := flag.NewFlagSet("profile", flag.ExitOnError)
	byID := fs.Bool("id", false, "treat the argument as an iMIS ID instead of a username")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("usage: profile [-id] <username|imis-id>")
	}

	var res *membership.ProfileResult
	if *byID {
		res = c.svc.GetMemberProfileByID(fs.Arg(0))
	} else {
		res = c.svc.GetMemberProfileByUsername(fs.Arg(0))
	}
	fmt.Printf("access: %q\n", res.AccessLevel)
	if res.Message != "" {
		fmt.Printf("message: %s\n", res.Message)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res.Profile)
}
