// resumen roda o relatório sobre um arquivo local e grava o resumo em disco
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/vfg2006/sales-report-api/internal/config"
	"github.com/vfg2006/sales-report-api/internal/domain"
	"github.com/vfg2006/sales-report-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-report-api/pkg/log"
	"github.com/vfg2006/sales-report-api/pkg/utils"
)

type options struct {
	format       string
	profile      string
	profilesFile string
	outDir       string
	exportType   string
	asJSON       bool
	logLevel     string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "resumen <arquivo>",
		Short: "Gera o resumo de vendas por vendedor a partir de um export",
		Long: `Lê o arquivo exportado (html/xls, xlsx ou csv), remove a linha de total,
agrupa pela coluna chave do perfil e grava resumen_vendedores.csv e/ou .xlsx.

O formato é deduzido da extensão quando --format não é informado.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Configure(opts.logLevel)
			return run(cmd, opts, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.format, "format", "f", "", "formato do arquivo: html, xls, xlsx ou csv")
	flags.StringVarP(&opts.profile, "profile", "p", domain.ErplySalesBySeller.Name, "perfil do relatório")
	flags.StringVar(&opts.profilesFile, "profiles", os.Getenv("REPORT_PROFILES_FILE"), "arquivo YAML com perfis adicionais")
	flags.StringVarP(&opts.outDir, "out-dir", "o", ".", "diretório de saída")
	flags.StringVarP(&opts.exportType, "type", "t", "both", "saída: csv, xlsx ou both")
	flags.BoolVar(&opts.asJSON, "json", false, "imprime o resumo em JSON no stdout")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "nível de log")

	return cmd
}

func run(cmd *cobra.Command, opts *options, path string) error {
	kinds, err := exportKinds(opts.exportType)
	if err != nil {
		return err
	}

	format, err := resolveFormat(opts.format, path)
	if err != nil {
		return err
	}

	profiles, err := config.LoadProfiles(opts.profilesFile)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "erro ao ler %s", path)
	}

	service := reporting.NewService(profiles...)
	report, err := service.BuildReport(data, format, opts.profile)
	if err != nil {
		return err
	}

	for _, w := range report.Warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), "aviso:", w.String())
	}

	if opts.asJSON {
		fmt.Fprintln(cmd.OutOrStdout(), utils.PrettyJson(report))
	}

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return errors.Wrapf(err, "erro ao criar %s", opts.outDir)
	}

	for _, kind := range kinds {
		file, err := service.Export(report, kind)
		if err != nil {
			return err
		}

		target := filepath.Join(opts.outDir, file.Filename)
		if err := os.WriteFile(target, file.Data, 0o644); err != nil {
			return errors.Wrapf(err, "erro ao gravar %s", target)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d grupos\n", target, len(report.Rows))
	}

	return nil
}

func exportKinds(exportType string) ([]string, error) {
	switch strings.ToLower(exportType) {
	case "both", "":
		return []string{reporting.ExportCSV, reporting.ExportXLSX}, nil
	case reporting.ExportCSV, reporting.ExportXLSX:
		return []string{strings.ToLower(exportType)}, nil
	default:
		return nil, fmt.Errorf("tipo de saída inválido: %q (csv, xlsx ou both)", exportType)
	}
}

func resolveFormat(flag, path string) (domain.Format, error) {
	name := strings.ToLower(strings.TrimSpace(flag))
	if name == "" {
		name = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}

	format, ok := domain.ParseFormat(name)
	if !ok {
		return "", fmt.Errorf("formato não suportado: %q (use --format)", name)
	}
	return format, nil
}
