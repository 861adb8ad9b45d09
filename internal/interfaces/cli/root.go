// Package cli implementa auditctl, la consola de consulta de la bitácora de acciones.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/registro-clientes/internal/application/dto"
	"github.com/jhoicas/registro-clientes/internal/application/usecase"
	"github.com/jhoicas/registro-clientes/internal/infrastructure/auditlog"
	"github.com/jhoicas/registro-clientes/pkg/logger"
)

// Version se sobreescribe con -ldflags en el build.
var Version = "dev"

// options flags globales compartidas por los subcomandos.
type options struct {
	file     string
	actor    string
	logLevel string
}

// RootCmd comando raíz usado por cmd/auditctl.
var RootCmd = NewRootCmd()

// Execute ejecuta RootCmd. Lo invoca main.main().
func Execute() error {
	return RootCmd.Execute()
}

// NewRootCmd construye el árbol de comandos con flags propias; los tests crean uno por caso.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:     "auditctl",
		Version: Version,
		Short:   "Consulta y exporta la bitácora del registro de clientes",
		Long: `auditctl lee el archivo de logs del registro de clientes.
Permite ver las últimas entradas, filtrar por acción o usuario,
obtener estadísticas y exportar una copia del archivo.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&opts.file, "file", "f", "logs.txt", "archivo de logs")
	root.PersistentFlags().StringVar(&opts.actor, "actor", auditlog.DefaultActor, "usuario que firma las entradas escritas")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "nivel de log de diagnóstico")

	root.AddCommand(
		newTailCmd(opts),
		newActionCmd(opts),
		newActorCmd(opts),
		newStatsCmd(opts),
		newExportCmd(opts),
		newRecordCmd(opts),
	)
	return root
}

// open construye la bitácora y su caso de uso de consulta a partir de las flags.
func (o *options) open(cmd *cobra.Command) (*usecase.AuditUseCase, *auditlog.FileLog) {
	log := logger.New(logger.Config{Env: "production", Level: o.logLevel, Out: cmd.ErrOrStderr()})
	fileLog := auditlog.New(auditlog.Config{Path: o.file, Actor: o.actor}, log)
	auditor := usecase.NewAuditor(fileLog, log, nil)
	return usecase.NewAuditUseCase(fileLog, auditor), fileLog
}

func printEntries(w io.Writer, res *dto.AuditLogsResponse) {
	if res.Count == 0 {
		fmt.Fprintln(w, "No hay entradas.")
		return
	}
	fmt.Fprintln(w, strings.Join(res.Entries, "\n"))
}

func newTailCmd(opts *options) *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Muestra las últimas entradas de la bitácora",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if n <= 0 {
				return fmt.Errorf("-n debe ser mayor que cero")
			}
			uc, _ := opts.open(cmd)
			res, err := uc.Logs(dto.AuditLogsQuery{Last: n})
			if err != nil {
				return fmt.Errorf("leer logs: %w", err)
			}
			printEntries(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().IntVarP(&n, "lines", "n", 10, "cantidad de entradas")
	return cmd
}

func newActionCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "accion ACCION",
		Short: "Filtra las entradas por acción (ej. ADD_CUSTOMER)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, _ := opts.open(cmd)
			res, err := uc.Logs(dto.AuditLogsQuery{Action: args[0]})
			if err != nil {
				return fmt.Errorf("buscar por acción: %w", err)
			}
			printEntries(cmd.OutOrStdout(), res)
			return nil
		},
	}
}

func newActorCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "usuario USUARIO",
		Short: "Filtra las entradas por usuario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, _ := opts.open(cmd)
			res, err := uc.Logs(dto.AuditLogsQuery{Actor: args[0]})
			if err != nil {
				return fmt.Errorf("buscar por usuario: %w", err)
			}
			printEntries(cmd.OutOrStdout(), res)
			return nil
		},
	}
}

func newStatsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Muestra estadísticas de la bitácora",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, _ := opts.open(cmd)
			res, err := uc.Stats()
			if err != nil {
				return fmt.Errorf("estadísticas: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Summary)
			return nil
		},
	}
}

func newExportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "exportar DESTINO",
		Short: "Copia la bitácora a DESTINO y registra la exportación",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, _ := opts.open(cmd)
			if err := uc.Export(opts.actor, args[0]); err != nil {
				return fmt.Errorf("exportar: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logs exportados a: %s\n", args[0])
			return nil
		},
	}
}

func newRecordCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "registrar ACCION DESCRIPCION...",
		Short: "Agrega una entrada manual a la bitácora",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, fileLog := opts.open(cmd)
			if err := fileLog.Append(strings.ToUpper(args[0]), strings.Join(args[1:], " ")); err != nil {
				return fmt.Errorf("registrar: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Entrada registrada.")
			return nil
		},
	}
}
