package cli

import (
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/app/models/dto"
	"github.com/yigit/placementhub/internal/portal"
)

// userError turns a portal error into something worth printing.
func userError(err error) error {
	var fields portal.FieldErrors
	if errors.As(err, &fields) {
		return formError(fields)
	}
	return errors.New(portal.ErrorMessage(err))
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// --- drives ---

func newDrivesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "drives", Short: "Placement drives"}

	var status string
	list := &cobra.Command{
		Use:   "list",
		Short: "List drives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.signIn(cmd.Context()); err != nil {
				return err
			}
			board := portal.NewDriveBoard(a.client, models.DriveStatus(status))
			if err := board.Load(cmd.Context()); err != nil {
				return userError(err)
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCOMPANY\tDATE\tROUNDS\tSTATUS\tPLACED")
			for _, d := range board.Items() {
				placed := "-"
				if d.NoPlacedStudents != nil {
					placed = strconv.Itoa(*d.NoPlacedStudents)
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n", d.ID, d.CompanyName, d.Date.Format("2006-01-02"), d.NoOfRounds, d.Status, placed)
			}
			return tw.Flush()
		},
	}
	list.Flags().StringVar(&status, "status", "", "upcoming or completed")

	var req dto.CreateDriveRequest
	add := &cobra.Command{
		Use:   "add",
		Short: "Announce a drive (faculty)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.signIn(cmd.Context()); err != nil {
				return err
			}
			drive, err := portal.NewDriveBoard(a.client, models.DriveUpcoming).Add(cmd.Context(), req)
			if err != nil && drive == nil {
				return userError(err)
			}
			a.printf("Created drive %d for %s\n", drive.ID, drive.CompanyName)
			return nil
		},
	}
	add.Flags().StringVar(&req.CompanyName, "company", "", "company name")
	add.Flags().StringVar(&req.Date, "date", "", "drive date, YYYY-MM-DD")
	add.Flags().IntVar(&req.NoOfRounds, "rounds", 0, "number of rounds")
	add.Flags().StringVar(&req.RoundDescription, "description", "", "round description")
	add.Flags().StringVar(&req.TechStack, "stack", "", "tech stack")

	var placed int
	complete := &cobra.Command{
		Use:   "complete <id>",
		Short: "Close an upcoming drive with its result (faculty)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if _, err := a.signIn(cmd.Context()); err != nil {
				return err
			}
			if err := portal.NewDriveBoard(a.client, "").Complete(cmd.Context(), id, placed); err != nil {
				return userError(err)
			}
			a.printf("Drive %d completed with %d students placed\n", id, placed)
			return nil
		},
	}
	complete.Flags().IntVar(&placed, "placed", -1, "number of students placed")
	_ = complete.MarkFlagRequired("placed")

	cmd.AddCommand(list, add, complete)
	return cmd
}

// --- exams ---

func newExamsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "exams", Short: "Exams"}

	var filter struct{ examType, status string }
	list := &cobra.Command{
		Use:   "list",
		Short: "List exams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.signIn(cmd.Context()); err != nil {
				return err
			}
			board := portal.NewExamBoard(a.client, models.ExamFilter{ExamType: filter.examType, Status: models.ExamStatus(filter.status)})
			if err := board.Load(cmd.Context()); err != nil {
				return userError(err)
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTYPE\tDATE\tTIME\tVENUE\tDEPARTMENT\tSTATUS")
			for _, e := range board.Items() {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", e.ID, e.ExamType, e.Date.Format("2006-01-02"), e.Time, e.Venue, e.DepartmentName, e.Status)
			}
			return tw.Flush()
		},
	}
	list.Flags().StringVar(&filter.examType, "type", "", "exam type")
	list.Flags().StringVar(&filter.status, "status", "", "scheduled or completed")

	var req dto.CreateExamRequest
	add := &cobra.Command{
		Use:   "add",
		Short: "Schedule an exam (faculty)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.signIn(cmd.Context()); err != nil {
				return err
			}
			exam, err := portal.NewExamBoard(a.client, models.ExamFilter{}).Add(cmd.Context(), req)
			if err != nil && exam == nil {
				return userError(err)
			}
			a.printf("Scheduled exam %d (%s on %s)\n", exam.ID, exam.ExamType, exam.Date.Format("2006-01-02"))
			return nil
		},
	}
	add.Flags().StringVar(&req.Date, "date", "", "exam date, YYYY-MM-DD")
	add.Flags().StringVar(&req.Time, "time", "", "start time, HH:MM")
	add.Flags().StringVar(&req.ExamType, "type", "", "exam type")
	add.Flags().StringVar(&req.Venue, "venue", "", "venue")
	add.Flags().StringVar(&req.CollegeName, "college", "", "college name")
	add.Flags().StringVar(&req.DepartmentName, "department", "", "department")
	add.Flags().StringVar(&req.Duration, "duration", "", "duration, e.g. \"90 minutes\"")

	complete := &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a scheduled exam completed (faculty)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if _, err := a.signIn(cmd.Context()); err != nil {
				return err
			}
			if err := portal.NewExamBoard(a.client, models.ExamFilter{}).Complete(cmd.Context(), id); err != nil {
				return userError(err)
			}
			a.printf("Exam %d completed\n", id)
			return nil
		},
	}

	cmd.AddCommand(list, add, complete)
	return cmd
}

// --- resources ---

func newResourcesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "resources", Short: "Study resources"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List shared resources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.signIn(cmd.Context()); err != nil {
				return err
			}
			shelf := portal.NewResourceShelf(a.client)
			if err := shelf.Load(cmd.Context()); err != nil {
				return userError(err)
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSUBJECT\tLINK")
			for _, r := range shelf.Items() {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", r.ID, r.Subject, r.DriveLink)
			}
			return tw.Flush()
		},
	}

	var req dto.CreateResourceRequest
	add := &cobra.Command{
		Use:   "add",
		Short: "Share a Google Drive link (faculty)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.signIn(cmd.Context()); err != nil {
				return err
			}
			resource, err := portal.NewResourceShelf(a.client).Add(cmd.Context(), req)
			if err != nil && resource == nil {
				return userError(err)
			}
			a.printf("Added resource %d: %s\n", resource.ID, resource.Subject)
			return nil
		},
	}
	add.Flags().StringVar(&req.Subject, "subject", "", "subject")
	add.Flags().StringVar(&req.DriveLink, "link", "", "Google Drive or Docs link")

	cmd.AddCommand(list, add)
	return cmd
}
