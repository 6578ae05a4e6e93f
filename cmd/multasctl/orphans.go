package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"multasapi/internal/model"
	"multasapi/internal/repository"
)

var (
	orphansFilter repository.ProcessedFileFilter
	orphansJSON   bool
)

var orphansCmd = &cobra.Command{
	Use:   "orphans",
	Short: "List processed files whose source file is missing from the bucket",
	Args:  cobra.NoArgs,
	RunE:  runOrphans,
}

func init() {
	f := orphansCmd.Flags()
	f.StringVar(&orphansFilter.FileName, "file-name", "", "partial file name or record number")
	f.StringVar(&orphansFilter.Offender, "infrator", "", "partial offender name")
	f.StringVar(&orphansFilter.ShippedFrom, "shipped-from", "", "dispatch date lower bound, YYYY-MM-DD")
	f.StringVar(&orphansFilter.ShippedTo, "shipped-to", "", "dispatch date upper bound, YYYY-MM-DD")
	f.StringVar(&orphansFilter.IssuedFrom, "issued-from", "", "issue date lower bound, YYYY-MM-DD")
	f.StringVar(&orphansFilter.IssuedTo, "issued-to", "", "issue date upper bound, YYYY-MM-DD")
	f.BoolVar(&orphansJSON, "json", false, "print JSON instead of a table")
}

func runOrphans(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	svc, cleanup, err := newProcessedFiles(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	files, err := svc.Orphans(ctx, orphansFilter)
	if err != nil {
		return err
	}
	return writeOrphans(cmd.OutOrStdout(), files, orphansJSON)
}

func writeOrphans(w io.Writer, files []model.ProcessedFile, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(files)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tAUTOS\tPROCESSED AT")
	for _, f := range files {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", f.Path, f.AutosCount, f.ProcessedAt.UTC().Format(time.RFC3339))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d orphaned file(s)\n", len(files))
	return err
}
