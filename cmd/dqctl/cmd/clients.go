package cmd

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"dataquality/internal/domain"
	"dataquality/internal/repository/postgres"
)

func newClientsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clients",
		Short: "Manage API clients",
	}

	var name string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an API client and print its credentials",
		Long: `Creates an active API client. The secret is printed once and only its
bcrypt hash is stored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			secret, hash, err := newClientSecret()
			if err != nil {
				return err
			}

			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			client := &domain.APIClient{
				ID:         uuid.New(),
				Name:       name,
				SecretHash: hash,
				IsActive:   true,
			}
			if err := postgres.NewAPIClientRepo(db).Create(commandContext(cmd), client); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "client_id:     %s\n", client.ID)
			fmt.Fprintf(out, "client_secret: %s\n", secret)
			return nil
		},
	}
	create.Flags().StringVar(&name, "name", "", "Client name, recorded as the submitter of its runs")
	_ = create.MarkFlagRequired("name")

	cmd.AddCommand(create)
	return cmd
}

// newClientSecret returns a random secret and its bcrypt hash.
func newClientSecret() (secret, hash string, err error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("generating secret: %w", err)
	}
	secret = hex.EncodeToString(buf)

	h, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", "", fmt.Errorf("hashing secret: %w", err)
	}
	return secret, string(h), nil
}
