package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gogotex/bridges/internal/app"
	"github.com/gogotex/bridges/internal/bridge/pager"
	"github.com/gogotex/bridges/internal/config"
	"github.com/gogotex/bridges/internal/export"
	"github.com/gogotex/bridges/internal/identity"
	"github.com/gogotex/bridges/internal/storage"
	"github.com/spf13/cobra"
)

const presignTTL = time.Hour

func newExportCommand(cfg *config.Config) *cobra.Command {
	var (
		pageSize int
		sort     string
		out      string
		upload   bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Args:  cobra.NoArgs,
		Short: "Dump every bridge as newline-delimited JSON",
		Long: `Walk the store page by page and write one JSON object per bridge.
By default the dump goes to stdout. --upload stores it in the MinIO bucket
and prints a presigned download URL.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := export.Options{PageSize: pageSize, Sort: pager.Sort(sort)}
			if !opts.Sort.Valid() {
				return fmt.Errorf("%w: %q", pager.ErrInvalidSort, sort)
			}
			ctx := cmd.Context()
			res, err := app.Open(ctx, cfg, identity.Static{})
			if err != nil {
				return err
			}
			defer func() { _ = res.Close(ctx) }()

			if upload {
				store, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
				if err != nil {
					return err
				}
				key, st, err := export.Snapshot(ctx, res.Env, store, opts, time.Now())
				if err != nil {
					return err
				}
				url, err := store.GetPresignedURL(ctx, key, presignTTL)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d bridges exported to %s\n%s\n", st.Records, key, url)
				return nil
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			bw := bufio.NewWriter(w)
			st, err := export.Write(ctx, res.Env, bw, opts)
			if err != nil {
				return err
			}
			if err := bw.Flush(); err != nil {
				return err
			}
			if out != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d bridges exported to %s\n", st.Records, out)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&pageSize, "page-size", pager.MaxLimit, "records fetched per page")
	cmd.Flags().StringVar(&sort, "sort", string(pager.SortCreatedOnAsc), "createdOn_ASC or createdOn_DESC")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to a file instead of stdout")
	cmd.Flags().BoolVar(&upload, "upload", false, "upload the dump to MinIO")
	cmd.MarkFlagsMutuallyExclusive("out", "upload")
	return cmd
}
