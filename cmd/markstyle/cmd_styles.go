package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"
)

func newStylesCmd(c *cli) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "styles",
		Short: "List the configured styles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.loadApp()
			if err != nil {
				return err
			}
			defer a.Close()

			rules := a.Styles()
			if asJSON {
				out := "[]"
				for i, r := range rules {
					out, err = sjson.Set(out, strconv.Itoa(i), map[string]string{
						"name":   r.Name,
						"prefix": r.Prefix,
						"suffix": r.Suffix,
					})
					if err != nil {
						return fmt.Errorf("encoding styles: %w", err)
					}
				}
				fmt.Fprintln(c.stdout, out)
				return nil
			}

			tw := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tPREFIX\tSUFFIX")
			for _, r := range rules {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Name, r.Prefix, r.Suffix)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}
