package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yeisme/csvvault/pkg/configs"
	"github.com/yeisme/csvvault/pkg/internal/service"
	"github.com/yeisme/csvvault/pkg/internal/storage"
	"github.com/yeisme/csvvault/pkg/internal/types"
	"github.com/yeisme/csvvault/pkg/log"
)

var (
	asJSON    bool
	listQuery types.ListFilesQuery

	filesCmd = &cobra.Command{
		Use:   "files",
		Short: "manage uploaded CSV files from the terminal",
	}

	filesListCmd = &cobra.Command{
		Use:     "ls",
		Short:   "list uploaded files",
		Aliases: []string{"list"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withFileService(cmd.Context(), func(svc *service.FileService) error {
				files, err := svc.ListSummaries(cmd.Context(), listQuery)
				if err != nil {
					return err
				}

				if asJSON {
					return printJSON(cmd.OutOrStdout(), files)
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME")

				for _, f := range files {
					fmt.Fprintf(w, "%d\t%s\n", f.ID, f.Name)
				}

				return w.Flush()
			})
		},
	}

	filesShowCmd = &cobra.Command{
		Use:   "show <id>",
		Short: "show a file and its inferred columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseFileID(args[0])
			if err != nil {
				return err
			}

			return withFileService(cmd.Context(), func(svc *service.FileService) error {
				detail, err := svc.GetDetail(cmd.Context(), id)
				if err != nil {
					return err
				}

				return printDetail(cmd.OutOrStdout(), detail)
			})
		},
	}

	filesIngestCmd = &cobra.Command{
		Use:   "ingest <path>...",
		Short: "ingest local CSV files as if they were uploaded",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withFileService(cmd.Context(), func(svc *service.FileService) error {
				for _, path := range args {
					detail, err := ingestPath(cmd.Context(), svc, path)
					if err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}

					if err := printDetail(cmd.OutOrStdout(), detail); err != nil {
						return err
					}
				}

				return nil
			})
		},
	}

	filesRemoveCmd = &cobra.Command{
		Use:     "rm <id>...",
		Short:   "delete files, their columns and the stored CSV",
		Aliases: []string{"delete"},
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withFileService(cmd.Context(), func(svc *service.FileService) error {
				for _, arg := range args {
					id, err := parseFileID(arg)
					if err != nil {
						return err
					}

					if err := svc.Delete(cmd.Context(), id); err != nil {
						return err
					}

					fmt.Fprintf(cmd.OutOrStdout(), "deleted file %d\n", id)
				}

				return nil
			})
		},
	}
)

// withFileService 打开存储并执行 fn. 命令行不启用归档与监控.
func withFileService(ctx context.Context, fn func(svc *service.FileService) error) error {
	cfg := *configs.GetConfig()
	cfg.Archive.Enabled = false
	cfg.Metrics.Enabled = false

	mgr, err := storage.Init(ctx, &cfg, log.Logger())
	if err != nil {
		return err
	}
	defer mgr.Close()

	return fn(service.NewFileServiceFromManager(mgr, &cfg))
}

func ingestPath(ctx context.Context, svc *service.FileService, path string) (*types.FileDetail, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return svc.Ingest(ctx, f, filepath.Base(path))
}

func parseFileID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 0)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid file id %q", s)
	}

	return uint(id), nil
}

func printDetail(out io.Writer, detail *types.FileDetail) error {
	if asJSON {
		return printJSON(out, detail)
	}

	fmt.Fprintf(out, "ID:       %d\nName:     %s\nPath:     %s\nSize:     %d\nChecksum: %s\nCreated:  %s\n",
		detail.ID, detail.Name, detail.Path, detail.Size, detail.Checksum, detail.CreatedAt.Format("2006-01-02 15:04:05"))

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tNAME\tTYPE")

	for _, c := range detail.Columns {
		fmt.Fprintf(w, "%d\t%s\t%s\n", c.Index, c.Name, c.Type)
	}

	return w.Flush()
}

func printJSON(out io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, string(b))

	return err
}

// registerFilesCommands 注册文件相关命令.
func registerFilesCommands() {
	filesCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "print as JSON")

	filesListCmd.Flags().IntVar(&listQuery.Page, "page", 0, "page number, starting at 1")
	filesListCmd.Flags().IntVar(&listQuery.PerPage, "per-page", 0, "page size")
	filesListCmd.Flags().StringVar(&listQuery.SortBy, "sort-by", "", "sort column: id or name")
	filesListCmd.Flags().StringVar(&listQuery.SortOrder, "sort-order", "", "asc or desc")

	filesCmd.AddCommand(filesListCmd, filesShowCmd, filesIngestCmd, filesRemoveCmd)
	rootCmd.AddCommand(filesCmd)
}
