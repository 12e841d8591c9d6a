package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/polynav/polynav/pkg/config"
	"github.com/polynav/polynav/pkg/store"
)

// newStoreCmd creates the store management command.
func newStoreCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage the local dataset store",
	}

	cmd.AddCommand(newStoreClearCmd(configPath))
	cmd.AddCommand(newStorePathCmd(configPath))

	return cmd
}

// newStoreClearCmd creates the "store clear" subcommand.
func newStoreClearCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Drop the stored dataset, cached entities, and session history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			st, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Clear(ctx); err != nil {
				return fmt.Errorf("clear store: %w", err)
			}

			printSuccess("Store cleared")
			return nil
		},
	}
}

// newStorePathCmd creates the "store path" subcommand. It prints the
// directory of the file backend, or the backend name for remote stores.
func newStorePathCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the store location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			switch cfg.Store.Backend {
			case "file", "":
				dir := cfg.Store.Path
				if dir == "" {
					if dir, err = store.DefaultDir(); err != nil {
						return err
					}
				}
				fmt.Println(dir)
			case "redis":
				fmt.Println("redis://" + cfg.Store.RedisAddr)
			case "mongo":
				fmt.Println(cfg.Store.MongoURI)
			default:
				fmt.Println(cfg.Store.Backend)
			}
			return nil
		},
	}
}
