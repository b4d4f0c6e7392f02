package main

import (
	"errors"
	"fmt"
	"sort"
)

type lookupCmd struct {
	d *deps
}

func newLookupCmd(d *deps) (command, error) {
	return &lookupCmd{d: d}, nil
}

func (c *lookupCmd) run(args []string) error {
	if len(args) < 1 {
		return errors.New("usage: lookup <table> (e.g. CASH_ACCOUNT, CHAPTER, MEMBER_TYPE, CATEGORY)")
	}
	table, err := c.d.svc.Lookup(args[0])
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%-20s %s\n", k, table[k])
	}
	return nil
}
