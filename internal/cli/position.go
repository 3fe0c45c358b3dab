// Package cli contains the cobra commands for the intake tool.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/intake/internal/models"
	"github.com/example/intake/internal/wire"
)

var positionCmd = &cobra.Command{
	Use:   "position",
	Short: "Manage application positions",
	Long:  "Create, list, and configure the positions users can apply for",
}

var positionCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new position",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		position, err := wire.PositionService().CreatePosition(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to create position: %w", err)
		}

		fmt.Printf("✓ Created position %d: %s\n", position.ID, position.Name)
		return nil
	},
}

var positionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List positions",
	RunE: func(cmd *cobra.Command, args []string) error {
		positions, err := wire.PositionService().ListPositions(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list positions: %w", err)
		}

		if len(positions) == 0 {
			fmt.Println("No positions found")
			return nil
		}

		fmt.Printf("\n%-6s %-20s %-8s %-10s %s\n", "ID", "NAME", "OPEN", "QUESTIONS", "ROLES")
		fmt.Println("────────────────────────────────────────────────────────────────")
		for _, p := range positions {
			fmt.Printf("%-6d %-20s %-8s %-10d %s\n", p.ID, p.Name, openMarker(p.Open), len(p.Questions), strings.Join(p.RolesGiven, ","))
		}
		fmt.Println()

		return nil
	},
}

var positionShowCmd = &cobra.Command{
	Use:   "show [position-id]",
	Short: "Show position details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		position, err := wire.PositionService().GetPosition(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to get position: %w", err)
		}

		fmt.Printf("\nPosition: %d\n", position.ID)
		fmt.Printf("Name:     %s\n", position.Name)
		fmt.Printf("Open:     %s\n", openMarker(position.Open))
		if position.Description != "" {
			fmt.Printf("Description: %s\n", position.Description)
		}
		if len(position.RolesGiven) > 0 {
			fmt.Printf("Roles given: %s\n", strings.Join(position.RolesGiven, ", "))
		}
		if position.AcceptanceMessage != "" {
			fmt.Printf("Acceptance message: %s\n", position.AcceptanceMessage)
		}
		if position.RejectionMessage != "" {
			fmt.Printf("Rejection message: %s\n", position.RejectionMessage)
		}
		fmt.Println()

		if len(position.Questions) > 0 {
			fmt.Println("Questions:")
			for i, q := range position.Questions {
				fmt.Printf("  %d. %s\n", i+1, q)
			}
			fmt.Println()
		}

		return nil
	},
}

var positionOpenCmd = &cobra.Command{
	Use:   "open [position-id]",
	Short: "Open a position for applications",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setPositionOpen(cmd, args[0], true)
	},
}

var positionCloseCmd = &cobra.Command{
	Use:   "close [position-id]",
	Short: "Close a position to new applications",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setPositionOpen(cmd, args[0], false)
	},
}

var positionQuestionsCmd = &cobra.Command{
	Use:   "questions [position-id] [question]...",
	Short: "Replace the ordered question list",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		questions := args[1:]
		if err := wire.PositionService().SetQuestions(cmd.Context(), id, questions); err != nil {
			return fmt.Errorf("failed to set questions: %w", err)
		}

		fmt.Printf("✓ Position %d now has %d questions\n", id, len(questions))
		return nil
	},
}

var positionRolesCmd = &cobra.Command{
	Use:   "roles [position-id] [role-id]...",
	Short: "Replace the roles granted on acceptance",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		roles := args[1:]
		if err := wire.PositionService().SetRoles(cmd.Context(), id, roles); err != nil {
			return fmt.Errorf("failed to set roles: %w", err)
		}

		fmt.Printf("✓ Position %d now grants %d roles\n", id, len(roles))
		return nil
	},
}

var positionDescribeCmd = &cobra.Command{
	Use:   "describe [position-id] [description]",
	Short: "Set the position description",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := wire.PositionService().SetDescription(cmd.Context(), id, args[1]); err != nil {
			return fmt.Errorf("failed to set description: %w", err)
		}

		fmt.Printf("✓ Position %d description updated\n", id)
		return nil
	},
}

var positionMessagesCmd = &cobra.Command{
	Use:   "messages [position-id]",
	Short: "Set the acceptance and rejection message templates",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		accept, _ := cmd.Flags().GetString("accept")
		reject, _ := cmd.Flags().GetString("reject")
		if accept == "" && reject == "" {
			return fmt.Errorf("nothing to set: pass --accept and/or --reject")
		}

		svc := wire.PositionService()
		if accept != "" {
			if err := svc.SetAcceptanceMessage(cmd.Context(), id, accept); err != nil {
				return fmt.Errorf("failed to set acceptance message: %w", err)
			}
		}
		if reject != "" {
			if err := svc.SetRejectionMessage(cmd.Context(), id, reject); err != nil {
				return fmt.Errorf("failed to set rejection message: %w", err)
			}
		}

		fmt.Printf("✓ Position %d messages updated\n", id)
		return nil
	},
}

var positionDeleteCmd = &cobra.Command{
	Use:   "delete [position-id-or-name]",
	Short: "Delete a position definition",
	Long:  "Delete a position by ID or by name. Existing applications keep their position id.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := wire.PositionService()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			// Deleting by name requires the name to be unambiguous.
			matches, err := svc.FindPositions(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to look up position: %w", err)
			}
			if len(matches) == 0 {
				return fmt.Errorf("no position named %q", args[0])
			}
			if len(matches) > 1 {
				fmt.Printf("Multiple positions named %q - delete by ID instead:\n", args[0])
				for _, p := range matches {
					fmt.Printf("  %d: %s (%d questions)\n", p.ID, p.Name, len(p.Questions))
				}
				return fmt.Errorf("ambiguous position name")
			}
			id = matches[0].ID
		}

		if err := svc.DeletePosition(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to delete position: %w", err)
		}

		fmt.Printf("✓ Deleted position %d\n", id)
		return nil
	},
}

func setPositionOpen(cmd *cobra.Command, arg string, open bool) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}
	if err := wire.PositionService().SetOpen(cmd.Context(), id, open); err != nil {
		return fmt.Errorf("failed to update position: %w", err)
	}

	state := "open"
	if !open {
		state = "closed"
	}
	fmt.Printf("✓ Position %d is now %s\n", id, state)
	return nil
}

func openMarker(open bool) string {
	if open {
		return color.New(color.FgHiGreen).Sprint("open")
	}
	return color.New(color.FgRed).Sprint("closed")
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// statusMarker colors an application status for table output.
func statusMarker(status string) string {
	switch status {
	case models.AppStatusAccepted:
		return color.New(color.FgHiGreen).Sprint(status)
	case models.AppStatusRejected, models.AppStatusWithdrawn:
		return color.New(color.FgRed).Sprint(status)
	case models.AppStatusFlagged, models.AppStatusOnHold:
		return color.New(color.FgYellow).Sprint(status)
	default:
		return status
	}
}

// PositionCmd returns the position command
func PositionCmd() *cobra.Command {
	positionMessagesCmd.Flags().String("accept", "", "Acceptance message template")
	positionMessagesCmd.Flags().String("reject", "", "Rejection message template")

	positionCmd.AddCommand(positionCreateCmd)
	positionCmd.AddCommand(positionListCmd)
	positionCmd.AddCommand(positionShowCmd)
	positionCmd.AddCommand(positionOpenCmd)
	positionCmd.AddCommand(positionCloseCmd)
	positionCmd.AddCommand(positionQuestionsCmd)
	positionCmd.AddCommand(positionRolesCmd)
	positionCmd.AddCommand(positionDescribeCmd)
	positionCmd.AddCommand(positionMessagesCmd)
	positionCmd.AddCommand(positionDeleteCmd)

	return positionCmd
}
