package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yigit/placementhub/internal/portal"
)

type studentFlags struct {
	batch, college, department, search string
}

func (f *studentFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.batch, "batch", "", "batch, e.g. 2025")
	cmd.Flags().StringVar(&f.college, "college", "", "college name")
	cmd.Flags().StringVar(&f.department, "department", "", "department")
	cmd.Flags().StringVar(&f.search, "search", "", "name or email contains")
}

func (f *studentFlags) directory(a *app) *portal.StudentDirectory {
	dir := portal.NewStudentDirectory(a.client, 0)
	dir.SetFilter(f.batch, f.college, f.department)
	return dir
}

func newStudentsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "students", Short: "Student directory (faculty)"}

	var (
		filters    studentFlags
		page, size int
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List registered students",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.signIn(cmd.Context()); err != nil {
				return err
			}
			dir := filters.directory(a)
			dir.SetSearch(filters.search)
			dir.SetPage(page, size)

			result, err := dir.Load(cmd.Context())
			if err != nil {
				return userError(err)
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "STUDENT ID\tNAME\tEMAIL\tDEPARTMENT\tBATCH\tCGPA\tBACKLOGS")
			for _, s := range result.Items {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%.2f\t%d\n", s.StudentID, s.Name, s.Email, s.DepartmentName, s.Batch, s.CGPA, s.NoOfBacklog)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			p := result.Pagination
			a.printf("\nPage %d of %d (%d students)\n", p.CurrentPage, p.TotalPages, p.TotalItems)
			return nil
		},
	}
	filters.register(list)
	list.Flags().IntVar(&page, "page", 1, "page number")
	list.Flags().IntVar(&size, "size", portal.DefaultDirectoryPageSize, "page size")

	var (
		exportFilters studentFlags
		format, out   string
	)
	export := &cobra.Command{
		Use:   "export",
		Short: "Download the directory as csv, xlsx or pdf",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.signIn(cmd.Context()); err != nil {
				return err
			}
			dir := exportFilters.directory(a)
			dir.SetSearch(exportFilters.search)

			tmp, err := os.CreateTemp(".", ".students-*")
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer os.Remove(tmp.Name())

			name, err := dir.Download(cmd.Context(), format, tmp)
			if cerr := tmp.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return userError(err)
			}

			if out == "" {
				out = name
			}
			if err := os.Rename(tmp.Name(), out); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			a.printf("Wrote %s\n", out)
			return nil
		},
	}
	exportFilters.register(export)
	export.Flags().StringVar(&format, "format", "csv", "csv, xlsx or pdf")
	export.Flags().StringVarP(&out, "output", "o", "", "output file (default: name suggested by the server)")

	cmd.AddCommand(list, export)
	return cmd
}
