package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/pkg/placementstats"
	"github.com/yigit/placementhub/internal/portal"
)

func newStatsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Yearly placement statistics",
	}
	cmd.AddCommand(newStatsShowCommand(a), newStatsSubmitCommand(a))
	return cmd
}

func newStatsShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show [academic-year]",
		Short: "Show every year, or one year in detail",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := a.signIn(ctx); err != nil {
				return err
			}

			if len(args) == 1 {
				record, err := a.client.PlacementRecord(ctx, args[0])
				if err != nil {
					return fmt.Errorf("%s", portal.ErrorMessage(err))
				}
				a.printRecord(*record)
				return nil
			}

			records, err := a.client.PlacementRecords(ctx)
			if err != nil {
				return fmt.Errorf("%s", portal.ErrorMessage(err))
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "YEAR\tCOMPANIES\tSTUDENTS\tINTERESTED\tPLACED\tPLACEMENT %")
			for _, r := range records {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%.2f\n", r.AcademicYear, r.NoOfCompanies,
					r.Total.TotalStudents, r.Total.InterestedForJob, r.Total.StudentsPlaced, r.Total.PlacementPercentage)
			}
			return tw.Flush()
		},
	}
}

func (a *app) printRecord(r models.PlacementRecord) {
	a.printf("Academic year: %s\nCompanies:     %d\n\n", r.AcademicYear, r.NoOfCompanies)
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DEPT\tSTUDENTS\tINTERESTED\tPLACED\tPLACEMENT %")
	for _, d := range r.Departments {
		if !d.HasData() {
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.2f\n", d.Name, d.TotalStudents, d.InterestedForJob, d.StudentsPlaced, d.PlacementPercentage)
	}
	fmt.Fprintf(tw, "TOTAL\t%d\t%d\t%d\t%.2f\n", r.Total.TotalStudents, r.Total.InterestedForJob, r.Total.StudentsPlaced, r.Total.PlacementPercentage)
	_ = tw.Flush()
}

func newStatsSubmitCommand(a *app) *cobra.Command {
	var (
		year      string
		companies string
		depts     []string
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Create or update a year's statistics",
		Long: `Create or update a year's statistics. Each --dept takes CODE=total,interested,placed,
for example --dept CSE=100,80,60. An existing year is replaced, a new one is created.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if _, err := a.signIn(ctx); err != nil {
				return err
			}

			form, err := a.openStatsForm(ctx, year)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("companies") {
				form.SetNoOfCompanies(companies)
			}
			for _, spec := range depts {
				if err := applyDepartment(form, spec); err != nil {
					return err
				}
			}
			if errs := form.Errors(); len(errs) > 0 {
				return formError(errs)
			}

			err = form.Submit(ctx, func(saved models.PlacementRecord) {
				a.printf("Saved placement data for %s\n\n", saved.AcademicYear)
				a.printRecord(saved)
			})
			switch {
			case errors.Is(err, portal.ErrFormInvalid):
				return formError(form.Errors())
			case err != nil:
				return fmt.Errorf("%s", form.APIError())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&year, "year", "", "academic year, e.g. 2024-2025")
	cmd.Flags().StringVar(&companies, "companies", "", "number of companies that visited")
	cmd.Flags().StringArrayVar(&depts, "dept", nil, "department counts as CODE=total,interested,placed (repeatable)")
	_ = cmd.MarkFlagRequired("year")
	return cmd
}

// openStatsForm edits the year when it already exists and starts a new form otherwise.
func (a *app) openStatsForm(ctx context.Context, year string) (*portal.StatsForm, error) {
	existing, err := a.client.PlacementRecord(ctx, year)
	switch {
	case err == nil:
		form := portal.EditStatsForm(a.client, *existing)
		return form, nil
	case portal.IsStatus(err, http.StatusNotFound):
		form := portal.NewStatsForm(a.client)
		form.SetYear(year)
		return form, nil
	default:
		return nil, fmt.Errorf("%s", portal.ErrorMessage(err))
	}
}

// applyDepartment sets "CODE=total,interested,placed" on the form as one triple, so counts
// can be lowered or raised together.
func applyDepartment(form *portal.StatsForm, spec string) error {
	code, values, ok := strings.Cut(spec, "=")
	code = strings.ToUpper(strings.TrimSpace(code))
	if !ok || !placementstats.IsDepartmentCode(code) {
		return fmt.Errorf("invalid --dept %q: want CODE=total,interested,placed with CODE one of %s",
			spec, strings.Join(placementstats.Departments, ", "))
	}
	parts := strings.Split(values, ",")
	if len(parts) != 3 {
		return fmt.Errorf("invalid --dept %q: want three comma separated counts", spec)
	}

	form.SetDepartmentCounts(form.DepartmentIndex(code), parts[0], parts[1], parts[2])
	return nil
}

func formError(errs map[string]string) error {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, len(keys))
	for i, k := range keys {
		lines[i] = fmt.Sprintf("  %s: %s", k, errs[k])
	}
	return fmt.Errorf("invalid input:\n%s", strings.Join(lines, "\n"))
}
