package main

import (
	"flag"
	"fmt"
	"sort"

	"github.com/amadigital/compass/membership"
)

type joinFeesCmd struct {
	svc *membership.Service
}

func newJoinFeesCmd(d *deps) (command, error) {
	return &joinFeesCmd{svc: d.svc}, nil
}

func (c *joinFeesCmd) run(args []string) error {
	fs := flag.NewFlagSet("joinfees", flag.ExitOnError)
	amsa := fs.Bool("amsa", false, "quote the AMSA categories instead of the state branches")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var fees map[string]map[string]*membership.JoinFeeQuote
	var err error
	if *amsa {
		fees, err = c.svc.JoinFeesAMSA()
	} else {
		fees, err = c.svc.JoinFees()
	}
	if err != nil {
		return err
	}

	memberTypes := make([]string, 0, len(fees))
	for memberType := range fees {
		memberTypes = append(memberTypes, memberType)
	}
	sort.Strings(memberTypes)
	for _, memberType := range memberTypes {
		categories := make([]string, 0, len(fees[memberType]))
		for category := range fees[memberType] {
			categories = append(categories, category)
		}
		sort.Strings(categories)
		for _, category := range categories {
			q := fees[memberType][category]
			fmt.Printf("%-6s %-6s %8.2f/yr %8.2f/mo from %-10s to %-10s  %s\n",
				memberType, category, q.TotalFeesIncTax, q.InstalmentAmount,
				q.FirstInstalmentDate, q.MembershipEnding, q.Description)
		}
	}
	return nil
}
