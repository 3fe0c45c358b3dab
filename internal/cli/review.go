package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/intake/internal/wire"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review submitted applications",
	Long:  "Approve, reject, relabel, flag, and inspect applications as staff",
}

var reviewListCmd = &cobra.Command{
	Use:   "list",
	Short: "List applications, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		size, _ := cmd.Flags().GetInt("size")
		if page < 1 {
			page = 1
		}

		apps, err := wire.Applications().Page(cmd.Context(), size, (page-1)*size)
		if err != nil {
			return fmt.Errorf("failed to list applications: %w", err)
		}
		total, err := wire.Applications().Count(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to count applications: %w", err)
		}

		if len(apps) == 0 {
			fmt.Println("No applications found")
			return nil
		}

		fmt.Printf("\n%-6s %-16s %-10s %-14s %s\n", "ID", "USER", "POSITION", "STATUS", "SUBMITTED")
		fmt.Println("────────────────────────────────────────────────────────────────")
		for _, a := range apps {
			submitted := "-"
			if a.SubmittedAt.Valid {
				submitted = a.SubmittedAt.Time.Format("2006-01-02 15:04")
			}
			fmt.Printf("%-6d %-16s %-10d %-14s %s\n", a.ID, a.UserID, a.PositionID, statusMarker(a.Status), submitted)
		}
		fmt.Printf("\nPage %d (%d total)\n\n", page, total)

		return nil
	},
}

var reviewShowCmd = &cobra.Command{
	Use:   "show [application-id]",
	Short: "Show an application with its answers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		app, err := wire.Applications().GetByID(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to get application: %w", err)
		}
		if app == nil {
			return fmt.Errorf("application %d not found", id)
		}

		fmt.Printf("\nApplication: %d\n", app.ID)
		fmt.Printf("User:        %s\n", app.UserID)
		fmt.Printf("Position:    %d\n", app.PositionID)
		fmt.Printf("Status:      %s\n", statusMarker(app.Status))
		fmt.Printf("Started:     %s\n", app.CreatedAt.Format("2006-01-02 15:04"))
		if app.SubmittedAt.Valid {
			fmt.Printf("Submitted:   %s\n", app.SubmittedAt.Time.Format("2006-01-02 15:04"))
		}
		fmt.Println()

		position, err := wire.PositionService().GetPosition(cmd.Context(), app.PositionID)
		var questions []string
		if err == nil {
			questions = position.Questions
		}
		for i, answer := range app.Answers {
			label := fmt.Sprintf("Answer %d", i+1)
			if i < len(questions) {
				label = questions[i]
			}
			fmt.Printf("%s\n  %s\n", label, strings.ReplaceAll(answer, "\n", "\n  "))
		}
		if len(app.Answers) > 0 {
			fmt.Println()
		}

		return nil
	},
}

var reviewApproveCmd = &cobra.Command{
	Use:   "approve [application-id]",
	Short: "Approve an application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		staffID, _ := cmd.Flags().GetString("staff")

		summary, err := wire.ReviewService().Approve(cmd.Context(), id, staffID)
		if err != nil {
			return fmt.Errorf("failed to approve: %w", err)
		}

		fmt.Printf("✓ Application %d accepted (%s, %s)\n", summary.ApplicationID, summary.UserID, summary.PositionName)
		for _, roleID := range summary.RolesGranted {
			fmt.Printf("  granted role %s\n", roleID)
		}
		for _, failure := range summary.RolesFailed {
			fmt.Printf("  ✗ role %s not granted (%s)\n", failure.RoleID, failure.Reason)
		}
		printDelivery(summary.DMSent, summary.DMError, summary.FallbackPosted)
		return nil
	},
}

var reviewRejectCmd = &cobra.Command{
	Use:   "reject [application-id]",
	Short: "Reject an application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		staffID, _ := cmd.Flags().GetString("staff")
		reason, _ := cmd.Flags().GetString("reason")

		summary, err := wire.ReviewService().Reject(cmd.Context(), id, staffID, reason)
		if err != nil {
			return fmt.Errorf("failed to reject: %w", err)
		}

		fmt.Printf("✓ Application %d rejected (%s, %s)\n", summary.ApplicationID, summary.UserID, summary.PositionName)
		printDelivery(summary.DMSent, summary.DMError, summary.FallbackPosted)
		return nil
	},
}

var reviewStatusCmd = &cobra.Command{
	Use:   "status [application-id] [label]",
	Short: "Set an application's status by label",
	Long:  "Accepted labels: Pending, Under Review, Accepted, Denied, Rejected, Withdrawn, Flagged, On Hold",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		staffID, _ := cmd.Flags().GetString("staff")
		label := strings.Join(args[1:], " ")

		status, err := wire.ReviewService().Relabel(cmd.Context(), id, staffID, label)
		if err != nil {
			return fmt.Errorf("failed to set status: %w", err)
		}

		fmt.Printf("✓ Application %d is now %s\n", id, status)
		return nil
	},
}

var reviewFlagCmd = &cobra.Command{
	Use:   "flag [application-id]",
	Short: "Flag an application, freezing decisions on it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := wire.ReviewService().Flag(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to flag: %w", err)
		}

		fmt.Printf("✓ Application %d flagged\n", id)
		return nil
	},
}

var reviewUnflagCmd = &cobra.Command{
	Use:   "unflag [application-id]",
	Short: "Unflag an application, returning it to review",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := wire.ReviewService().Unflag(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to unflag: %w", err)
		}

		fmt.Printf("✓ Application %d unflagged\n", id)
		return nil
	},
}

func printDelivery(dmSent bool, dmError string, fallbackPosted bool) {
	switch {
	case dmSent:
		fmt.Println("  applicant notified by DM")
	case fallbackPosted:
		fmt.Printf("  DM failed (%s) - posted to the review channel instead\n", dmError)
	default:
		fmt.Printf("  ✗ applicant could not be notified (%s)\n", dmError)
	}
}

// ReviewCmd returns the review command
func ReviewCmd() *cobra.Command {
	reviewListCmd.Flags().IntP("page", "p", 1, "Page number")
	reviewListCmd.Flags().Int("size", 20, "Applications per page")
	reviewApproveCmd.Flags().StringP("staff", "s", "", "Acting staff member id")
	_ = reviewApproveCmd.MarkFlagRequired("staff")
	reviewRejectCmd.Flags().StringP("staff", "s", "", "Acting staff member id")
	_ = reviewRejectCmd.MarkFlagRequired("staff")
	reviewRejectCmd.Flags().StringP("reason", "r", "", "Reason shown to the applicant")
	reviewStatusCmd.Flags().StringP("staff", "s", "", "Acting staff member id")
	_ = reviewStatusCmd.MarkFlagRequired("staff")

	reviewCmd.AddCommand(reviewListCmd)
	reviewCmd.AddCommand(reviewShowCmd)
	reviewCmd.AddCommand(reviewApproveCmd)
	reviewCmd.AddCommand(reviewRejectCmd)
	reviewCmd.AddCommand(reviewStatusCmd)
	reviewCmd.AddCommand(reviewFlagCmd)
	reviewCmd.AddCommand(reviewUnflagCmd)

	return reviewCmd
}
