package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/intake/internal/wire"
)

var permsCmd = &cobra.Command{
	Use:   "perms",
	Short: "Manage capability permissions",
	Long:  "Map community roles to named capabilities like manage_applications",
}

var permsGrantCmd = &cobra.Command{
	Use:   "grant [capability] [role-id]",
	Short: "Grant a capability to a role",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := wire.Perms().Grant(args[0], args[1]); err != nil {
			return fmt.Errorf("failed to grant: %w", err)
		}

		fmt.Printf("✓ Role %s granted %s\n", args[1], args[0])
		return nil
	},
}

var permsRevokeCmd = &cobra.Command{
	Use:   "revoke [capability] [role-id]",
	Short: "Revoke a capability from a role",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		removed, err := wire.Perms().Revoke(args[0], args[1])
		if err != nil {
			return fmt.Errorf("failed to revoke: %w", err)
		}
		if !removed {
			fmt.Printf("Role %s did not have %s\n", args[1], args[0])
			return nil
		}

		fmt.Printf("✓ Role %s no longer has %s\n", args[1], args[0])
		return nil
	},
}

var permsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List capabilities and their roles",
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := wire.Perms().Capabilities()
		if err != nil {
			return fmt.Errorf("failed to list capabilities: %w", err)
		}

		if len(names) == 0 {
			fmt.Println("No capabilities configured")
			return nil
		}

		for _, name := range names {
			roles, err := wire.Perms().RolesForCapability(name)
			if err != nil {
				return fmt.Errorf("failed to read capability: %w", err)
			}
			fmt.Printf("%s: %s\n", name, strings.Join(roles, ", "))
		}
		return nil
	},
}

// PermsCmd returns the perms command
func PermsCmd() *cobra.Command {
	permsCmd.AddCommand(permsGrantCmd)
	permsCmd.AddCommand(permsRevokeCmd)
	permsCmd.AddCommand(permsListCmd)

	return permsCmd
}
