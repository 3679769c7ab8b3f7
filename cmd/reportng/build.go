package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verustcode/reportng/internal/assets"
	"github.com/verustcode/reportng/internal/config"
	"github.com/verustcode/reportng/internal/definition"
	"github.com/verustcode/reportng/internal/fetch"
	"github.com/verustcode/reportng/internal/report"
	"github.com/verustcode/reportng/pkg/idgen"
	"github.com/verustcode/reportng/pkg/logger"
)

// buildCmd renders a report definition
var buildCmd = &cobra.Command{
	Use:   "build <definition.yaml>",
	Short: "Build an HTML report from a definition",
	Long: `Build an HTML report from a YAML definition.

Assets are resolved according to assets.mode before the report is built:
  remote    link to the public CDN URLs
  local     link to files already under assets.relative_path
  download  download missing files into assets.download_dir first`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

// assetsCmd groups asset commands
var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Inspect or download report assets",
}

// assetsLocalCmd prints the asset table rewritten to local paths
var assetsLocalCmd = &cobra.Command{
	Use:   "local",
	Short: "Show the asset table rewritten to a local path prefix",
	RunE:  runAssetsLocal,
}

// assetsDownloadCmd downloads assets into a directory
var assetsDownloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download report assets into a directory",
	RunE:  runAssetsDownload,
}

func init() {
	buildCmd.Flags().StringP("output", "o", "", "output HTML file (overrides config)")
	buildCmd.Flags().String("assets", "", "asset mode: remote, local or download (overrides config)")
	buildCmd.Flags().Uint64("seed", 0, "seed anchor ids for reproducible output")

	assetsLocalCmd.Flags().String("rel", "", "path prefix the report uses for assets (overrides config)")

	assetsDownloadCmd.Flags().String("dir", "", "download directory (overrides config)")
	assetsDownloadCmd.Flags().String("rel", "", "path prefix the report uses for assets (overrides config)")
	assetsDownloadCmd.Flags().String("theme", "", "bootswatch theme to download (overrides config)")

	assetsCmd.AddCommand(assetsLocalCmd)
	assetsCmd.AddCommand(assetsDownloadCmd)
}

// newFetchClient builds the HTTP client from the http config section
func newFetchClient(cfg *config.Config) *fetch.Client {
	return fetch.New(fetch.Options{
		Timeout:   cfg.HTTP.Timeout(),
		UserAgent: cfg.HTTP.UserAgent,
	})
}

// resolveAssets returns the asset table for the configured mode.
// It must run before the session is created; the session copies the table.
func resolveAssets(ctx context.Context, cfg *config.Config, f assets.Fetcher) (assets.Table, error) {
	switch cfg.Assets.Mode {
	case config.AssetModeLocal:
		return assets.ResolveLocal(assets.Default(), cfg.Assets.RelativePath), nil
	case config.AssetModeDownload:
		return assets.NewResolver(f).Download(ctx, assets.Default(),
			cfg.Assets.DownloadDir, cfg.Assets.RelativePath, cfg.AssetTheme())
	default:
		return assets.Default(), nil
	}
}

// runBuild loads a definition and writes the rendered report
func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		cfg.Output.Path = out
	}
	if mode, _ := cmd.Flags().GetString("assets"); mode != "" {
		cfg.Assets.Mode = config.AssetMode(strings.ToLower(mode))
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	cleanup, err := setup(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	doc, err := definition.NewLoader(cfg.Report).Load(args[0])
	if err != nil {
		return err
	}

	client := newFetchClient(cfg)
	table, err := resolveAssets(ctx, cfg, client)
	if err != nil {
		return err
	}

	opts := []report.Option{
		report.WithAssets(table),
		report.WithResolver(client),
	}
	if cmd.Flags().Changed("seed") {
		seed, _ := cmd.Flags().GetUint64("seed")
		opts = append(opts, report.WithAnchorSource(idgen.NewSeededAnchors(seed)))
	}

	s, err := definition.Build(ctx, doc, opts...)
	if err != nil {
		return err
	}
	if err := s.Save(cfg.Output.Path); err != nil {
		return err
	}

	logger.Info("Report written",
		zap.String(logger.FieldSessionID, s.ID()),
		zap.String("path", cfg.Output.Path),
		zap.Int("blocks", s.Len()),
	)
	printBuildSummary(s, cfg.Output.Path, cfg.Assets.Mode)
	return nil
}

// printBuildSummary prints a boxed summary of the written report
func printBuildSummary(s *report.Session, path string, mode config.AssetMode) {
	counts := make(map[report.Kind]int)
	for _, b := range s.Blocks() {
		counts[b.Kind]++
	}
	kinds := make([]string, 0, len(counts))
	for k, n := range counts {
		kinds = append(kinds, fmt.Sprintf("%s ×%d", k, n))
	}
	sort.Strings(kinds)

	name := s.Options().ReportName
	if name == "" {
		name = "(untitled)"
	}

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Width(9)
	line := func(label, value string) string {
		return labelStyle.Render(label) + value
	}

	body := strings.Join([]string{
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Render(name),
		line("output", path),
		line("blocks", fmt.Sprintf("%d", s.Len())),
		line("kinds", strings.Join(kinds, ", ")),
		line("anchors", fmt.Sprintf("%d", len(s.Anchors()))),
		line("assets", string(mode)),
		line("session", s.ID()),
	}, "\n")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("12")).
		Padding(0, 2)

	color.New(color.FgGreen, color.Bold).Println("✓ Report built")
	fmt.Println(box.Render(body))
}

// runAssetsLocal prints the asset table rewritten to the local prefix
func runAssetsLocal(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rel := cfg.Assets.RelativePath
	if v, _ := cmd.Flags().GetString("rel"); v != "" {
		rel = v
	}

	table := assets.ResolveLocal(assets.Default(), rel)
	printTable(table)
	return nil
}

// runAssetsDownload downloads every asset and prints the rewritten table
func runAssetsDownload(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetString("dir"); v != "" {
		cfg.Assets.DownloadDir = v
	}
	if v, _ := cmd.Flags().GetString("rel"); v != "" {
		cfg.Assets.RelativePath = v
	}
	if v, _ := cmd.Flags().GetString("theme"); v != "" {
		cfg.Assets.Theme = v
	}

	cleanup, err := setup(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	table, err := assets.NewResolver(newFetchClient(cfg)).Download(ctx, assets.Default(),
		cfg.Assets.DownloadDir, cfg.Assets.RelativePath, cfg.AssetTheme())
	if err != nil {
		return err
	}

	color.New(color.FgGreen).Printf("✓ Assets available in %s\n", cfg.Assets.DownloadDir)
	printTable(table)
	return nil
}

// printTable prints name and location of every asset
func printTable(t assets.Table) {
	nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Width(18)
	for _, name := range t.Names() {
		fmt.Println(nameStyle.Render(name) + t[name])
	}
}
