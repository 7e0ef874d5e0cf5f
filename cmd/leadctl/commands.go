package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xavierca1/leadlocal/internal/config"
	"github.com/xavierca1/leadlocal/internal/entity"
	"github.com/xavierca1/leadlocal/internal/export"
	"github.com/xavierca1/leadlocal/internal/infra/integration/census"
	"github.com/xavierca1/leadlocal/internal/infra/integration/googleplaces"
	"github.com/xavierca1/leadlocal/internal/infra/integration/yelp"
	"github.com/xavierca1/leadlocal/internal/logging"
	"github.com/xavierca1/leadlocal/internal/search"
	"github.com/xavierca1/leadlocal/internal/templating"
	"github.com/xavierca1/leadlocal/internal/usecase"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "leadctl",
		Short:         "LeadLocal prospecting from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSearchCmd(), newTemplatesCmd(), newExportCmd())
	return root
}

func newSearchCmd() *cobra.Command {
	var (
		req        search.Request
		lat, lng   float64
		categories []string
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search local businesses and print scored leads as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer logger.Sync()

			if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lng") {
				req.Location.Coordinates = &search.Coordinates{Lat: lat, Lng: lng}
			}
			req.Categories = categories

			uc := usecase.NewSearchLeadsUseCase(search.NewAggregator(logger, providers(cfg, logger)...), nil, nil, nil, logger)
			out, err := uc.Execute(cmd.Context(), req)
			if err != nil {
				return err
			}
			for _, w := range out.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %s\n", w.Provider, w.Message)
			}
			return writeLeads(cmd.OutOrStdout(), out.Leads)
		},
	}

	cmd.Flags().StringVar(&req.Location.ZipCode, "zip", "", "postal code to search around")
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "longitude")
	cmd.Flags().Float64Var(&req.RadiusMiles, "radius", 10, "search radius in miles")
	cmd.Flags().StringSliceVar(&categories, "category", nil, "business category (repeatable)")
	cmd.Flags().IntVar(&req.Limit, "limit", search.DefaultLimit, "maximum number of leads")
	return cmd
}

func providers(cfg *config.Config, logger *zap.Logger) []search.Provider {
	out := []search.Provider{census.NewClient(cfg.CensusKey, "", cfg.ProviderTimeout, logger.Named("census"))}
	if cfg.GooglePlacesKey != "" {
		out = append(out, googleplaces.NewClient(cfg.GooglePlacesKey, "", cfg.ProviderTimeout, logger.Named("google_places")))
	}
	if cfg.YelpKey != "" {
		out = append(out, yelp.NewClient(cfg.YelpKey, "", cfg.ProviderTimeout, logger.Named("yelp")))
	}
	return out
}

func newTemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List and render outreach templates",
	}

	var typ string
	list := &cobra.Command{
		Use:   "list",
		Short: "List the template catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := templating.Default()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTYPE\tNAME")
			for _, t := range catalog.List(entity.TemplateType(typ)) {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", t.ID, t.Type, t.Name)
			}
			return tw.Flush()
		},
	}
	list.Flags().StringVar(&typ, "type", "", "only templates of this type (email, linkedin, sms, call-script)")

	var sets []string
	render := &cobra.Command{
		Use:   "render <template-id>",
		Short: "Render a template with --set name=value pairs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseSets(sets)
			if err != nil {
				return err
			}
			catalog, err := templating.Default()
			if err != nil {
				return err
			}

			out, err := usecase.NewRenderTemplateUseCase(catalog, nil).Execute(cmd.Context(), usecase.RenderTemplateInput{
				TemplateID: args[0],
				Values:     values,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out.Subject != "" {
				fmt.Fprintf(w, "Subject: %s\n\n", out.Subject)
			}
			fmt.Fprintln(w, out.Body)
			if len(out.Missing) > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "missing required values: %s\n", strings.Join(out.Missing, ", "))
			}
			return nil
		},
	}
	render.Flags().StringArrayVar(&sets, "set", nil, "placeholder value as name=value (repeatable)")

	cmd.AddCommand(list, render)
	return cmd
}

func parseSets(sets []string) (map[string]string, error) {
	values := make(map[string]string, len(sets))
	for _, s := range sets {
		name, value, ok := strings.Cut(s, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid --set %q, want name=value", s)
		}
		values[strings.TrimSpace(name)] = value
	}
	return values, nil
}

func newExportCmd() *cobra.Command {
	var format, in, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a JSON lead list as CSV, CRM CSV or PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if in != "" && in != "-" {
				f, err := os.Open(in)
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			leads, err := readLeads(r)
			if err != nil {
				return err
			}

			uc := usecase.NewExportLeadsUseCase(export.NewExporter(), nil, nil, nil, zap.NewNop())
			res, err := uc.Execute(cmd.Context(), usecase.ExportLeadsInput{Format: format, Leads: leads})
			if err != nil {
				return err
			}

			if out == "" {
				out = res.File.Name
			}
			if out == "-" {
				_, err = cmd.OutOrStdout().Write(res.File.Data)
				return err
			}
			if err := os.WriteFile(out, res.File.Data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d leads to %s\n", len(leads), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "csv, crm or pdf")
	cmd.Flags().StringVar(&in, "in", "-", "JSON file with leads, or - for stdin")
	cmd.Flags().StringVar(&out, "out", "", "output file, - for stdout (default: generated name)")
	return cmd
}

// readLeads accepts either a bare array or the search output object.
func readLeads(r io.Reader) ([]entity.Lead, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var wrapped struct {
		Leads []entity.Lead `json:"leads"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Leads != nil {
		return wrapped.Leads, nil
	}

	var leads []entity.Lead
	if err := json.Unmarshal(data, &leads); err != nil {
		return nil, fmt.Errorf("decode leads: %w", err)
	}
	return leads, nil
}

func writeLeads(w io.Writer, leads []entity.Lead) error {
	sort.SliceStable(leads, func(i, j int) bool { return leads[i].ReadinessScore > leads[j].ReadinessScore })
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{"leads": leads})
}
