package main

import (
	"github.com/spf13/cobra"

	"github.com/amc-launcher/amcui/internal/config"
	"github.com/amc-launcher/amcui/internal/doctor"
	"github.com/amc-launcher/amcui/internal/output"
)

// doctorReport is the --json shape of amcui doctor.
type doctorReport struct {
	Results  []doctor.Result `json:"results"`
	Passed   int             `json:"passed"`
	Failed   int             `json:"failed"`
	Warnings int             `json:"warnings"`
}

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose common issues",
		Long: `Run diagnostic checks to identify configuration and connectivity issues.

Checks performed:
  - Host settings are valid
  - The configured launcher host accepts a connection
  - The standalone snapshot loads and is consistent
  - The log file is writable`,
		Example: `  amcui doctor
  amcui doctor --json`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			results := doctor.New(config.Load()).Run(cmd.Context())
			passed, failed, warnings := doctor.Summary(results)

			if out.JSON {
				return out.PrintJSON(doctorReport{
					Results:  results,
					Passed:   passed,
					Failed:   failed,
					Warnings: warnings,
				})
			}

			out.Println("amcui doctor")
			out.Println("============")
			out.Println()

			doctor.RenderResults(results, out.Success, out.Warning, out.Failure, out.Muted)

			out.Println()
			out.Print("%d passed", passed)

			if failed > 0 {
				out.Print(", %d failed", failed)
			}

			if warnings > 0 {
				out.Print(", %d warning(s)", warnings)
			}

			out.Println()

			return nil
		},
	}
}
