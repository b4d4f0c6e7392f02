package main

import (
	"errors"
	"flag"
	"fmt"
)

type invoiceCmd struct {
	d *deps
}

func newInvoiceCmd(d *deps) (command, error) {
	return &invoiceCmd{d: d}, nil
}

func (c *invoiceCmd) run(args []string) error {
	fs := flag.NewFlagSet("invoice", flag.ExitOnError)
	details := fs.Bool("details", false, "include pay method and activity type")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 3 {
		return errors.New("usage: invoice [-details] <imis-id> <start> <end>")
	}

	invoice, err := c.d.svc.Invoice(fs.Arg(0), fs.Arg(1), fs.Arg(2), *details)
	if err != nil {
		return err
	}
	for _, line := range invoice.Lines {
		fmt.Printf("%-12s %10.2f (GST %6.2f)  %s\n", line.TransactionDate, line.Amount, line.GST, line.Description)
		if *details {
			fmt.Printf("             %s %s\n", line.PayMethod, line.ActivityType)
		}
	}
	if invoice.Billing != nil {
		fmt.Printf("bill to: %v, %v %v\n", invoice.Billing["Name"], invoice.Billing["Address1"], invoice.Billing["City"])
	}
	return nil
}
