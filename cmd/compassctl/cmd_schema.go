package main

import (
	"flag"
	"fmt"
	"sort"
)

type schemaCmd struct {
	d *deps
}

func newSchemaCmd(d *deps) (command, error) {
	return &schemaCmd{d: d}, nil
}

func (c *schemaCmd) run(args []string) error {
	fs := flag.NewFlagSet("schema", flag.ExitOnError)
	tables := fs.Bool("tables", false, "fetch validation table contents")
	if err := fs.Parse(args); err != nil {
		return err
	}

	schema, err := c.d.svc.UDFieldsSchema(*tables)
	if err != nil {
		return err
	}
	fields := make([]string, 0, len(schema))
	for field := range schema {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		info := schema[field]
		fmt.Printf("%-30s %-10s %-15s %s\n", field, info.TableName, info.Type, info.Validation)
		if *tables {
			for k, v := range info.ValidationTable {
				fmt.Printf("    %-20s %s\n", k, v)
			}
		}
	}
	return nil
}
