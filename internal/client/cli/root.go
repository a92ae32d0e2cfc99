package cli

import (
	"github.com/dmitrijs2005/ragvault/internal/buildinfo"
	"github.com/spf13/cobra"
)

const (
	annotationAuth = "auth"
	needsLogin     = "required"
)

func requireLogin(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[annotationAuth] = needsLogin
	return cmd
}

// RootCommand builds the command tree. Persistent flags write straight into
// the App's config, so the connection is opened only after parsing.
func (a *App) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "ragvault",
		Short:         "Browse, submit and verify vintage t-shirts in the RagVault catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.connect(cmd.Context()); err != nil {
				return err
			}
			return a.restoreSession(cmd)
		},
	}
	a.config.BindFlags(root.PersistentFlags())

	root.AddGroup(
		&cobra.Group{ID: "account", Title: "Account:"},
		&cobra.Group{ID: "vault", Title: "Vault:"},
		&cobra.Group{ID: "community", Title: "Community:"},
	)

	for _, cmd := range []*cobra.Command{
		a.registerCommand(), a.loginCommand(), a.logoutCommand(), a.whoamiCommand(), a.pingCommand(),
	} {
		cmd.GroupID = "account"
		root.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{
		a.browseCommand(), a.showCommand(), a.submitCommand(), a.uploadImageCommand(), a.collectionCommand(), a.searchCommand(),
	} {
		cmd.GroupID = "vault"
		root.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{
		a.verifyCommand(), a.proposeEditCommand(), a.reviewEditCommand(), a.pendingEditsCommand(),
	} {
		cmd.GroupID = "community"
		root.AddCommand(cmd)
	}
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		// no connection needed
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			buildinfo.PrintBuildData(a.out)
		},
	})
	return root
}
