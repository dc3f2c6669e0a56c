package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/umsproject/ums/internal/auth"
	"github.com/umsproject/ums/internal/uniuri"
)

func init() { //nolint: gochecknoinits
	passwordHashCmd.Flags().StringVar(&scheme, "scheme", auth.SchemeArgon2id, "argon2id or bcrypt")
	passwordGenerateCmd.Flags().IntVar(&length, "length", uniuri.StdLen, "Number of characters")

	passwordCmd.AddCommand(passwordHashCmd, passwordGenerateCmd)
	rootCmd.AddCommand(passwordCmd)
}

var (
	scheme string
	length int

	passwordCmd = &cobra.Command{
		Use:   "password",
		Short: "Password utilities",
	}

	passwordHashCmd = &cobra.Command{
		Use:   "hash <password>",
		Short: "Print the digest of a password, for seeding or resetting users by hand",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hasher, err := auth.NewHasher(scheme)
			if err != nil {
				return err //nolint:wrapcheck
			}

			digest, err := hasher.Hash(args[0])
			if err != nil {
				return err //nolint:wrapcheck
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), digest)

			return err //nolint:wrapcheck
		},
	}

	passwordGenerateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Print a random URL safe password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := uniuri.Password(length)
			if err != nil {
				return err //nolint:wrapcheck
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), password)

			return err //nolint:wrapcheck
		},
	}
)
