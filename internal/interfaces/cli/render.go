package cli

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"github.com/innovatlas/country-innovation/internal/domain/profile"
)

func newRenderCommand() *cobra.Command {
	var (
		metric         string
		constraint     string
		aggregation    string
		transformation string
		apportioning   string
		color          string
		patentAgg      string
		patentTransf   string
		patentColor    string
	)

	cmd := &cobra.Command{
		Use:   "render <country-code>",
		Short: "Render one country profile as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel := profile.DefaultSelection(strings.ToUpper(args[0]))

			var err error
			if sel.Publications.Metric, err = profile.ParseMetric(metric); err != nil {
				return err
			}
			if sel.Publications.Constraint, err = profile.ParseCitationConstraint(constraint); err != nil {
				return err
			}
			if sel.Publications.Aggregation, err = profile.ParseAggregation(aggregation); err != nil {
				return err
			}
			if sel.Publications.Transformation, err = profile.ParseTransformation(transformation); err != nil {
				return err
			}
			if sel.Publications.Apportioning, err = profile.ParseApportioning(apportioning); err != nil {
				return err
			}
			if sel.Publications.Color, err = profile.ParsePublicationColor(color); err != nil {
				return err
			}
			if sel.Patents.Aggregation, err = profile.ParseAggregation(patentAgg); err != nil {
				return err
			}
			if sel.Patents.Transformation, err = profile.ParseTransformation(patentTransf); err != nil {
				return err
			}
			if sel.Patents.Color, err = profile.ParsePatentColor(patentColor); err != nil {
				return err
			}

			svc, err := buildService(cmd)
			if err != nil {
				return err
			}
			p, err := svc.RenderProfile(cmd.Context(), sel)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(p)
		},
	}

	f := cmd.Flags()
	f.StringVar(&metric, "metric", string(profile.MetricWorks), `publication metric: "works" or "citations"`)
	f.StringVar(&constraint, "citation-constraint", string(profile.ConstraintNone), `citation constraint: "none" or "at least 5"`)
	f.StringVar(&aggregation, "aggregation", string(profile.AggregationPerCapita), `publication aggregation: "per capita", "total" or "sophistication (expy)"`)
	f.StringVar(&transformation, "transformation", string(profile.TransformationNone), `publication treemap transformation: "none", "rca" or "market share"`)
	f.StringVar(&apportioning, "apportioning", string(profile.ApportionNone), `concept apportioning: "none", "dominant" or "equal"`)
	f.StringVar(&color, "color", profile.PublicationColorCategory, `publication coloring: "broad concept" or "concept sophistication (prody)"`)
	f.StringVar(&patentAgg, "patent-aggregation", string(profile.AggregationPerCapita), `patent aggregation: "per capita", "total" or "sophistication (expy)"`)
	f.StringVar(&patentTransf, "patent-transformation", string(profile.TransformationNone), `patent treemap transformation: "none", "rca" or "market share"`)
	f.StringVar(&patentColor, "patent-color", profile.PatentColorCategory, `patent coloring: "patent class" or "subclass sophistication (prody)"`)

	return cmd
}
