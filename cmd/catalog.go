package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/nora/internal/config"
	"github.com/okian/nora/internal/domain/model"
	"github.com/okian/nora/internal/domain/navigation"
	"github.com/okian/nora/internal/domain/visibility"
	"github.com/okian/nora/pkg/logger"
)

type catalogFlags struct {
	institution string
	criteria    visibility.Criteria
}

// newCatalogCmd prints the demo catalog as a student of an institution
// would see it, without starting the HTTP server.
func newCatalogCmd() *cobra.Command {
	var f catalogFlags
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the visible demo catalog for a student institution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCatalog(cmd, f)
		},
	}
	cmd.Flags().StringVar(&f.institution, "institution", "", "viewer institution, e.g. \"USP - Cardiologia\"")
	cmd.Flags().StringVar(&f.criteria.Text, "text", "", "title filter")
	cmd.Flags().StringVar(&f.criteria.Institution, "filter-institution", "", "project institution filter")
	cmd.Flags().StringVar(&f.criteria.ResearchArea, "area", "", "research area filter, matched against the description")
	cmd.Flags().StringVar(&f.criteria.Mode, "mode", "", "visibility filter: institution-only or all-students")
	return cmd
}

func runCatalog(cmd *cobra.Command, f catalogFlags) error {
	ctx := cmd.Context()
	if err := logger.InitWriter(cmd.ErrOrStderr()); err != nil {
		return err
	}

	cfg := config.New(ctx)
	cfg.SeedCatalog = true
	svc := newService(cfg, logger.Named("catalog"))
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()

	if f.institution != "" {
		viewer := model.Profile{DisplayName: "catalog", Institution: f.institution}
		if _, err := svc.Login(ctx, navigation.Desktop, model.RoleStudent, viewer); err != nil {
			return err
		}
	}

	projects, err := svc.Catalog(ctx, f.criteria)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(projects); err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	return nil
}
