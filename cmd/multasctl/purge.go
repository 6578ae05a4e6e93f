package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"multasapi/internal/model"
)

var purgeCmd = &cobra.Command{
	Use:   "purge <path>...",
	Short: "Delete processed files and their infraction records",
	Long: `Deletes the infraction records linked to each bucket key, then the file itself.
Files are processed one at a time; a failure does not stop the remaining ones.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPurge,
}

func runPurge(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	svc, cleanup, err := newProcessedFiles(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := svc.BatchDelete(ctx, args)
	if err != nil {
		return err
	}
	if err := writeBatch(cmd.OutOrStdout(), res); err != nil {
		return err
	}
	if res.FailureCount > 0 {
		return fmt.Errorf("%d of %d file(s) failed", res.FailureCount, res.TotalFiles)
	}
	return nil
}

func writeBatch(w io.Writer, res *model.BatchDeletion) error {
	for _, r := range res.Results {
		if !r.Success {
			fmt.Fprintf(w, "FAIL %s: %s\n", r.File, r.Error)
			continue
		}
		storageState := "file kept"
		if r.StorageDeleted {
			storageState = "file removed (" + r.ResolvedPath + ")"
		}
		fmt.Fprintf(w, "OK   %s: %d auto(s) removed, %s\n", r.File, r.DeletedAutosCount, storageState)
	}
	_, err := fmt.Fprintf(w, "%d succeeded, %d failed\n", res.SuccessCount, res.FailureCount)
	return err
}
