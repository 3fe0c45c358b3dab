package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/intake/internal/wire"
)

var standingCmd = &cobra.Command{
	Use:   "standing",
	Short: "Manage user standing",
	Long:  "Flag users for escalation or blacklist them from applying",
}

var standingFlagCmd = &cobra.Command{
	Use:   "flag [user-id]",
	Short: "Flag a user so future submissions ping staff",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		staffID, _ := cmd.Flags().GetString("staff")
		reason, _ := cmd.Flags().GetString("reason")
		communityID, _ := cmd.Flags().GetString("community")

		if err := wire.StandingService().FlagUser(cmd.Context(), args[0], staffID, reason, communityID); err != nil {
			return fmt.Errorf("failed to flag user: %w", err)
		}

		scope := "globally"
		if communityID != "" {
			scope = fmt.Sprintf("for community %s", communityID)
		}
		fmt.Printf("✓ User %s flagged %s\n", args[0], scope)
		return nil
	},
}

var standingUnflagCmd = &cobra.Command{
	Use:   "unflag [user-id]",
	Short: "Remove a user's flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		removed, err := wire.StandingService().UnflagUser(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to unflag user: %w", err)
		}
		if !removed {
			fmt.Printf("User %s was not flagged\n", args[0])
			return nil
		}

		fmt.Printf("✓ User %s unflagged\n", args[0])
		return nil
	},
}

var standingBlacklistCmd = &cobra.Command{
	Use:   "blacklist [user-id]",
	Short: "Block a user from applying",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		staffID, _ := cmd.Flags().GetString("staff")
		reason, _ := cmd.Flags().GetString("reason")

		if err := wire.StandingService().BlacklistUser(cmd.Context(), args[0], staffID, reason); err != nil {
			return fmt.Errorf("failed to blacklist user: %w", err)
		}

		fmt.Printf("✓ User %s blacklisted\n", args[0])
		return nil
	},
}

var standingUnblacklistCmd = &cobra.Command{
	Use:   "unblacklist [user-id]",
	Short: "Remove a user's blacklist entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		removed, err := wire.StandingService().UnblacklistUser(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to unblacklist user: %w", err)
		}
		if !removed {
			fmt.Printf("User %s was not blacklisted\n", args[0])
			return nil
		}

		fmt.Printf("✓ User %s unblacklisted\n", args[0])
		return nil
	},
}

var standingShowCmd = &cobra.Command{
	Use:   "show [user-id]",
	Short: "Show a user's standing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := wire.StandingService()

		flag, err := svc.GetFlag(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get flag: %w", err)
		}
		blacklisted, err := svc.IsBlacklisted(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to check blacklist: %w", err)
		}

		fmt.Printf("\nUser: %s\n", args[0])
		if flag == nil {
			fmt.Println("Flag: none")
		} else {
			scope := "global"
			if flag.CommunityID != "" {
				scope = flag.CommunityID
			}
			fmt.Printf("Flag: by %s (%s), %s\n", flag.FlaggedBy, scope, flag.FlaggedAt.Format("2006-01-02 15:04"))
			if flag.Reason != "" {
				fmt.Printf("  reason: %s\n", flag.Reason)
			}
		}
		fmt.Printf("Blacklisted: %v\n\n", blacklisted)

		return nil
	},
}

// StandingCmd returns the standing command
func StandingCmd() *cobra.Command {
	standingFlagCmd.Flags().StringP("staff", "s", "", "Acting staff member id")
	_ = standingFlagCmd.MarkFlagRequired("staff")
	standingFlagCmd.Flags().StringP("reason", "r", "", "Reason for the flag")
	standingFlagCmd.Flags().StringP("community", "c", "", "Limit the flag to one community (default: global)")
	standingBlacklistCmd.Flags().StringP("staff", "s", "", "Acting staff member id")
	_ = standingBlacklistCmd.MarkFlagRequired("staff")
	standingBlacklistCmd.Flags().StringP("reason", "r", "", "Reason shown to the user")

	standingCmd.AddCommand(standingFlagCmd)
	standingCmd.AddCommand(standingUnflagCmd)
	standingCmd.AddCommand(standingBlacklistCmd)
	standingCmd.AddCommand(standingUnblacklistCmd)
	standingCmd.AddCommand(standingShowCmd)

	return standingCmd
}
