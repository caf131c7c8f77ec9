package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/cwbudde/algo-loudness/dsp/effects/dynamics"
)

// ParamsCmd prints the static parameter table.
type ParamsCmd struct {
	JSON bool `help:"Print the defaults as a parameter file instead."`
}

func (c *ParamsCmd) Run(rc *runContext) error {
	if c.JSON {
		return writeParamFile(rc.stdout, dynamics.DefaultParams())
	}

	fmt.Fprintln(rc.stdout, titleStyle.Render("Parameters"))

	tw := tabwriter.NewWriter(rc.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tNAME\tMIN\tMAX\tDEFAULT\tKIND")

	for _, d := range dynamics.Descriptors() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			d.Key, d.Name, d.Format(d.Min), d.Format(d.Max), d.Format(d.Default), d.Kind)
	}

	return tw.Flush()
}
