package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/intake/internal/wire"
)

var applyCmd = &cobra.Command{
	Use:   "apply [position-name]",
	Short: "Start an application as a user",
	Long:  "Begin the question-by-question intake for a position. Replaces any intake the user already has open.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user")

		result, err := wire.IntakeService().Start(cmd.Context(), userID, args[0])
		if err != nil {
			return fmt.Errorf("failed to start application: %w", err)
		}

		fmt.Printf("✓ Application %d started for %s\n", result.ApplicationID, result.Position.Name)
		if result.FirstQuestion == "" {
			fmt.Println("No questions to answer - staff will follow up directly")
		}
		return nil
	},
}

var answerCmd = &cobra.Command{
	Use:   "answer [text]...",
	Short: "Answer the current question as a user",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user")
		text := strings.Join(args, " ")

		result, err := wire.IntakeService().Answer(cmd.Context(), userID, text)
		if err != nil {
			return fmt.Errorf("failed to record answer: %w", err)
		}

		if result.Submitted {
			fmt.Printf("✓ Application %d submitted\n", result.ApplicationID)
			if !result.Routed {
				fmt.Println("No review channel is configured yet - the application is stored and waiting")
			}
			return nil
		}
		fmt.Printf("✓ Answer recorded - next is question %d\n", result.QuestionNumber)
		return nil
	},
}

var withdrawCmd = &cobra.Command{
	Use:   "withdraw [application-id]",
	Short: "Withdraw an application as a user",
	Long:  "Withdraw an application by ID, or the user's latest submitted application when no ID is given.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user")

		var id int64
		if len(args) == 1 {
			parsed, err := parseID(args[0])
			if err != nil {
				return err
			}
			id = parsed
		}

		app, err := wire.IntakeService().Withdraw(cmd.Context(), userID, id)
		if err != nil {
			return fmt.Errorf("failed to withdraw: %w", err)
		}

		fmt.Printf("✓ Application %d withdrawn\n", app.ID)
		return nil
	},
}

var myStatusCmd = &cobra.Command{
	Use:   "mystatus [application-id]",
	Short: "Show an application's status as its owner",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user")

		var id int64
		if len(args) == 1 {
			parsed, err := parseID(args[0])
			if err != nil {
				return err
			}
			id = parsed
		}

		app, err := wire.IntakeService().Status(cmd.Context(), userID, id)
		if err != nil {
			return fmt.Errorf("failed to get application: %w", err)
		}

		fmt.Printf("\nApplication: %d\n", app.ID)
		fmt.Printf("Position:    %d\n", app.PositionID)
		fmt.Printf("Status:      %s\n", statusMarker(app.Status))
		fmt.Printf("Started:     %s\n", app.CreatedAt.Format("2006-01-02 15:04"))
		if app.SubmittedAt.Valid {
			fmt.Printf("Submitted:   %s\n", app.SubmittedAt.Time.Format("2006-01-02 15:04"))
		}
		fmt.Println()

		return nil
	},
}

// ApplyCmd returns the apply command
func ApplyCmd() *cobra.Command {
	applyCmd.Flags().StringP("user", "u", "", "Acting user id")
	_ = applyCmd.MarkFlagRequired("user")
	return applyCmd
}

// AnswerCmd returns the answer command
func AnswerCmd() *cobra.Command {
	answerCmd.Flags().StringP("user", "u", "", "Acting user id")
	_ = answerCmd.MarkFlagRequired("user")
	return answerCmd
}

// WithdrawCmd returns the withdraw command
func WithdrawCmd() *cobra.Command {
	withdrawCmd.Flags().StringP("user", "u", "", "Acting user id")
	_ = withdrawCmd.MarkFlagRequired("user")
	return withdrawCmd
}

// MyStatusCmd returns the mystatus command
func MyStatusCmd() *cobra.Command {
	myStatusCmd.Flags().StringP("user", "u", "", "Acting user id")
	_ = myStatusCmd.MarkFlagRequired("user")
	return myStatusCmd
}
