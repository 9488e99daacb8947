package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/facemap/backend/internal/anatomy"
	"github.com/facemap/backend/internal/mapping"
	"github.com/facemap/backend/internal/models"
	"github.com/facemap/backend/internal/validation"
)

func newValidateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate injection points against anatomical safety rules",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := loadPoints(cmd, args, opts)
			if err != nil {
				return err
			}

			result := validation.ValidateAnatomicalConsistency(parsed.Points)
			out := cmd.OutOrStdout()

			if opts.output == outputJSON {
				if err := writeJSON(out, models.ValidationResponse{
					Data:            result,
					Summary:         validation.Summary(result),
					NormalizedInput: parsed.Normalized,
					Rejected:        parsed.Rejected,
				}); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(out, validation.Summary(result))
				for _, e := range result.Errors {
					fmt.Fprintf(out, "ERROR   [%s] %s %v\n", e.Type, e.Message, e.AffectedPoints)
				}
				for _, w := range result.Warnings {
					fmt.Fprintf(out, "WARNING [%s/%s] %s %v\n", w.Type, w.Severity, w.Message, w.AffectedPoints)
				}
			}

			if !result.IsValid {
				return ErrBlockingFindings
			}
			return nil
		},
	}
}

func newMapCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "map [file]",
		Short: "Print the head-model position of each injection point",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := loadPoints(cmd, args, opts)
			if err != nil {
				return err
			}

			mapped := mapping.MapPoints(parsed.Points)
			if opts.output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), models.MappedPointsResponse{
					Data:            mapped,
					NormalizedInput: parsed.Normalized,
					Rejected:        parsed.Rejected,
				})
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tMUSCLE\tZONE\tX3D\tY3D\tZ3D")
			for _, p := range mapped {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%.3f\t%.3f\t%.3f\n",
					p.ID, p.Muscle, p.Zone, p.Position[0], p.Position[1], p.Position[2])
			}
			return tw.Flush()
		},
	}
}

func newZonesCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "zones",
		Short: "Print the anatomical zone calibration table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			zones := anatomy.Zones()
			if opts.output == outputJSON {
				names := make([]string, len(zones))
				for i, z := range zones {
					names[i] = string(z)
				}
				return writeJSON(cmd.OutOrStdout(), names)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ZONE\tBILATERAL\tX RANGE\tY RANGE\tY BAND")
			for _, z := range zones {
				b := anatomy.BoundaryFor(z)
				band := "-"
				if hb, ok := validation.HierarchyBand(z); ok {
					band = fmt.Sprintf("%.0f-%.0f", hb.Lo, hb.Hi)
				}
				fmt.Fprintf(tw, "%s\t%t\t%.2f-%.2f\t%.2f-%.2f\t%s\n",
					z, anatomy.IsBilateral(z),
					b.Bounds.X.Lo, b.Bounds.X.Hi, b.Bounds.Y.Lo, b.Bounds.Y.Hi, band)
			}
			return tw.Flush()
		},
	}
}
