package command

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"baseinfo/internal/parser"
	"baseinfo/internal/pkg"
	"baseinfo/internal/strategy"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	configDir string
	source    string
	padHex    bool
}

// Execute 运行根命令并返回进程退出码
func Execute(args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitCode(err)
	}
	return ExitOK
}

// NewRootCommand 创建根命令, 默认行为是输出三个固定偏移字段
func NewRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "baseinfo",
		Short: "Dump the fixed-offset fields of a Geneanet pb_base_info.dat file",
		Long: `baseinfo reads the base info file left by the Geneanet extraction and prints ` +
			`the big-endian fields at offsets 0, 4 and 13, each as raw hex bytes and as a decimal value.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configDir, "config", "c", "config", "Directory holding yaml configuration files")
	flags.StringVarP(&opts.source, "source", "s", "", "Path of the base info file (default "+pkg.DefaultSourcePath+")")
	flags.BoolVar(&opts.padHex, "pad-hex", false, "Print every byte as two hex digits")

	rootCmd.AddCommand(newInfoCommand(opts))
	return rootCmd
}

// newInfoCommand 创建 info 子命令, 解析完整的 base info 记录
func newInfoCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Decode the whole base info record",
		Long:  `Decode nbPersons, sosa, rootSosa and the export date of the base info file.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			log := pkg.LoggerFromContext(ctx)
			defer syncLog(log)

			config := pkg.ConfigFromContext(ctx)
			info, err := parser.ReadBaseInfoFile(config.Source.Path)
			if err != nil {
				log.Error("解析 base info 失败", zap.String("path", config.Source.Path), zap.Error(err))
				return fmt.Errorf("failed to read base info %s: %w", config.Source.Path, err)
			}
			log.Info("base info 已解析", zap.Uint32("nbPersons", info.NbPersons), zap.Uint32("rootSosa", info.RootSosa))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), info.String())
			return err
		},
	}
}

func runDump(cmd *cobra.Command, opts *options) error {
	ctx, err := setup(cmd, opts)
	if err != nil {
		return err
	}
	log := pkg.LoggerFromContext(ctx)
	defer syncLog(log)
	config := pkg.ConfigFromContext(ctx)

	start := time.Now()
	fields, err := parser.NewFieldReader(ctx, parser.DefaultLayout).ReadFile(config.Source.Path)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", config.Source.Path, err)
	}
	elapsed := time.Since(start)

	if err := parser.WriteFields(cmd.OutOrStdout(), fields, config.Output.PadHex); err != nil {
		return err
	}
	log.Info("字段已输出", zap.Int("fields", len(fields)), zap.Duration("elapsed", elapsed))

	publishMetrics(ctx, fields, elapsed)
	return nil
}

// setup 加载配置和日志, 并挂载到 context 上
func setup(cmd *cobra.Command, opts *options) (context.Context, error) {
	v := pkg.NewViper()
	if f := cmd.Flags().Lookup("source"); f != nil && f.Changed {
		v.Set("source::path", opts.source)
	}
	if f := cmd.Flags().Lookup("pad-hex"); f != nil && f.Changed {
		v.Set("output::pad_hex", opts.padHex)
	}

	config, err := pkg.InitCommon(v, opts.configDir)
	if err != nil {
		return nil, fmt.Errorf("加载配置失败: %w", err)
	}

	log := pkg.NewLogger(&config.Log)
	log.Debug("配置已加载", zap.String("version", config.Version), zap.Any("config", config))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = pkg.WithConfig(ctx, config)
	ctx = pkg.WithLoggerAndModule(ctx, log, cmd.Name())
	return ctx, nil
}

// publishMetrics 导出失败只记录日志, 不影响退出码
func publishMetrics(ctx context.Context, fields []parser.Field, elapsed time.Duration) {
	log := pkg.LoggerFromContext(ctx)
	if !pkg.ConfigFromContext(ctx).Metrics.Enable {
		return
	}
	p, err := strategy.NewPrometheusStrategy(ctx)
	if err != nil {
		log.Warn("初始化 Prometheus 策略失败", zap.Error(err))
		return
	}
	p.Publish(fields, elapsed)
	if err := p.Flush(); err != nil {
		log.Warn("导出指标失败", zap.Error(err))
	}
}

// syncLog 同步日志, 忽略标准输出/错误不支持 sync 的错误
func syncLog(log *zap.Logger) {
	err := log.Sync()
	if err != nil && !strings.Contains(err.Error(), "The handle is invalid") &&
		!strings.Contains(err.Error(), "invalid argument") &&
		!strings.Contains(err.Error(), "inappropriate ioctl") {
		log.Error("程序退出时同步日志失败", zap.Error(err))
	}
}
