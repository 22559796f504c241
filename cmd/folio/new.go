package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/folio/scaffold"
)

func newNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "new <name>",
		Short:   "Create a new folio site with a starter content tree",
		Example: "  folio new mysite",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(cmd, args[0])
		},
	}
}

func runNew(cmd *cobra.Command, name string) error {
	dirName := filepath.Base(filepath.Clean(name))
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Creating new folio site: %s\n\n", dirName)
	created, err := scaffold.Generate(name, scaffold.NewData(dirName, time.Now()))
	for _, p := range created {
		fmt.Fprintf(out, "  created %s\n", p)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Done! Next steps:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  cd %s\n", name)
	fmt.Fprintln(out, "  folio check")
	fmt.Fprintln(out, "  folio serve")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Edit the documents under content/ and set siteUrl in content/_config/seo.mdx before deploying.")
	return nil
}
