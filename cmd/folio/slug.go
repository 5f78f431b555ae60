package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ibaslogic/folio"
	"github.com/ibaslogic/folio/slug"
)

var slugLink bool

var slugCmd = &cobra.Command{
	Use:   "slug <title...>",
	Short: "Print the slug for a title",
	Example: `  folio slug "Gatsby Tutorial: From Scratch for Beginners"
  folio slug --link Hello World`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := strings.Join(args, " ")
		out := slug.Make(title)
		if slugLink {
			out = folio.PostLink(title)
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), out)
		return err
	},
}

func init() {
	slugCmd.Flags().BoolVar(&slugLink, "link", false, "print the post path instead of the bare slug")
}
