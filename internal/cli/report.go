package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quiz-submission-service/internal/config"
	"quiz-submission-service/internal/domain"
	"quiz-submission-service/internal/export"
)

// NewReportCmd prints a user's report and optionally exports or emails it.
func NewReportCmd(configPath *string) *cobra.Command {
	var (
		xlsxPath string
		email    bool
	)
	cmd := &cobra.Command{
		Use:   "report <token>",
		Short: "Render the quiz report for a user token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			logger := newLogger(cfg)
			svc, err := buildServices(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer svc.close()

			report, err := svc.reports.GenerateReport(cmd.Context(), args[0], email)
			var notifyErr *domain.NotificationError
			if err != nil && !errors.As(err, &notifyErr) {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), report.Text)

			if xlsxPath != "" {
				f, ferr := os.Create(xlsxPath)
				if ferr != nil {
					return ferr
				}
				if werr := export.WriteReport(f, report); werr != nil {
					f.Close()
					return werr
				}
				if cerr := f.Close(); cerr != nil {
					return cerr
				}
				logger.Info("report workbook written", "path", xlsxPath)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "write the per-question trace to this .xlsx file")
	cmd.Flags().BoolVar(&email, "email", false, "email the report to the configured recipients")
	return cmd
}
