package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/intake/internal/wire"
)

var channelCmd = &cobra.Command{
	Use:   "channel",
	Short: "Configure the review channel",
}

var channelSetCmd = &cobra.Command{
	Use:   "set [community-id] [channel-id]",
	Short: "Set where submitted applications are posted",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := wire.ChannelConfig().SetReviewChannel(cmd.Context(), args[0], args[1]); err != nil {
			return fmt.Errorf("failed to set review channel: %w", err)
		}

		fmt.Printf("✓ Review channel for %s is now %s\n", args[0], args[1])
		return nil
	},
}

var channelGetCmd = &cobra.Command{
	Use:   "get [community-id]",
	Short: "Show the configured review channel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		channelID, err := wire.ChannelConfig().GetReviewChannel(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get review channel: %w", err)
		}

		if channelID == "" {
			fmt.Printf("No review channel configured for %s\n", args[0])
			return nil
		}
		fmt.Printf("Review channel for %s: %s\n", args[0], channelID)
		return nil
	},
}

// ChannelCmd returns the channel command
func ChannelCmd() *cobra.Command {
	channelCmd.AddCommand(channelSetCmd)
	channelCmd.AddCommand(channelGetCmd)

	return channelCmd
}
