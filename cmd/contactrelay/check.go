package main

import (
	"fmt"

	"github.com/osa911/contactrelay/internal/mail"

	"github.com/spf13/cobra"
)

var smtpCheckCmd = &cobra.Command{
	Use:   "smtp-check",
	Short: "Verify the SMTP relay settings without sending mail",
	Long: `smtp-check connects to SMTP_HOST:SMTP_PORT, negotiates STARTTLS,
authenticates when SMTP_USER and SMTP_PASS are set, and disconnects.
No message is submitted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadRuntime()
		if err != nil {
			return err
		}
		defer logger.Close()

		if err := mail.NewRelay(cfg.SMTP).Probe(cmd.Context()); err != nil {
			logger.Error("SMTP check failed: %v", err)
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "SMTP relay %s OK (auth: %v)\n", cfg.SMTP.Addr(), cfg.SMTP.HasCredentials())
		return nil
	},
}
