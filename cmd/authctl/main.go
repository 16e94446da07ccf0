// authctl manages the collector's Key Store: a standalone CLI for issuing,
// inspecting, editing, and revoking API keys without touching the running
// collector process.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/campusdata/webreg-collector/internal/keystore"
)

var dbPath string

func main() {
	root := &cobra.Command{
		Use:   "authctl",
		Short: "Manage the webreg-collector API key store",
	}
	root.PersistentFlags().StringVar(&dbPath, "db", "keys.db", "Path to the key store sqlite database")

	root.AddCommand(createCmd(), editDescCmd(), deleteCmd(), checkCmd(), showAllCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func openStore() (*keystore.Store, error) {
	return keystore.Open(dbPath)
}

func createCmd() *cobra.Command {
	var desc string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Issue a new API key",
		RunE: func(cmd *cobra.Command, args []string) error {
			ks, err := openStore()
			if err != nil {
				return err
			}
			defer ks.Close()

			var descPtr *string
			if desc != "" {
				descPtr = &desc
			}
			key, err := ks.Issue(descPtr)
			if err != nil {
				return err
			}
			fmt.Println(key)
			return nil
		},
	}
	cmd.Flags().StringVar(&desc, "desc", "", "Optional description for this key")
	return cmd
}

func editDescCmd() *cobra.Command {
	var prefix, desc string
	cmd := &cobra.Command{
		Use:   "editDesc",
		Short: "Edit the description of an existing key",
		RunE: func(cmd *cobra.Command, args []string) error {
			ks, err := openStore()
			if err != nil {
				return err
			}
			defer ks.Close()

			var descPtr *string
			if desc != "" {
				descPtr = &desc
			}
			found, err := ks.EditDescription(prefix, descPtr)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("no key found with prefix %q", prefix)
			}
			fmt.Println("updated")
			return nil
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix to edit (required)")
	cmd.Flags().StringVar(&desc, "desc", "", "New description")
	_ = cmd.MarkFlagRequired("prefix")
	return cmd
}

func deleteCmd() *cobra.Command {
	var prefix string
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Revoke a key by its prefix",
		RunE: func(cmd *cobra.Command, args []string) error {
			ks, err := openStore()
			if err != nil {
				return err
			}
			defer ks.Close()

			found, err := ks.DeleteByPrefix(prefix)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("no key found with prefix %q", prefix)
			}
			fmt.Println("deleted")
			return nil
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix to delete (required)")
	_ = cmd.MarkFlagRequired("prefix")
	return cmd
}

func checkCmd() *cobra.Command {
	var prefix, token string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check whether a prefix/token pair is valid",
		RunE: func(cmd *cobra.Command, args []string) error {
			ks, err := openStore()
			if err != nil {
				return err
			}
			defer ks.Close()

			result, err := ks.Check(prefix, token)
			if err != nil {
				return err
			}
			switch result {
			case keystore.Valid:
				fmt.Println("valid")
			case keystore.ExpiredKey:
				fmt.Println("expired")
			default:
				fmt.Println("not found")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix (required)")
	cmd.Flags().StringVar(&token, "token", "", "Key token (required)")
	_ = cmd.MarkFlagRequired("prefix")
	_ = cmd.MarkFlagRequired("token")
	return cmd
}

func showAllCmd() *cobra.Command {
	var showToken bool
	cmd := &cobra.Command{
		Use:   "showAll",
		Short: "List every key in the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			ks, err := openStore()
			if err != nil {
				return err
			}
			defer ks.Close()

			entries, err := ks.ListAll()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			if showToken {
				fmt.Fprintln(tw, "PREFIX\tTOKEN\tCREATED\tEXPIRES\tDESCRIPTION")
			} else {
				fmt.Fprintln(tw, "PREFIX\tCREATED\tEXPIRES\tDESCRIPTION")
			}
			for _, e := range entries {
				desc := ""
				if e.Description != nil {
					desc = *e.Description
				}
				if showToken {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.Prefix, e.Token, e.CreatedAt.Format("2006-01-02"), e.ExpiresAt.Format("2006-01-02"), desc)
				} else {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Prefix, e.CreatedAt.Format("2006-01-02"), e.ExpiresAt.Format("2006-01-02"), desc)
				}
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&showToken, "showToken", false, "Include the raw token in the listing")
	return cmd
}
