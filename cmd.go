package main

import (
	"fmt"
	"platesim/calculator"
	"platesim/server"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	verbose    bool
	cfg        calculator.Config
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:          "platesim",
		Short:        "Heat diffusion simulation of a rectangular metal plate",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := calculator.DefaultConfig()
			if opts.configPath != "" {
				var err error
				if cfg, err = calculator.LoadConfig(opts.configPath); err != nil {
					return err
				}
			}
			opts.cfg = cfg

			level, err := log.ParseLevel(cfg.Log.Level)
			if err != nil {
				return fmt.Errorf("log level: %w", err)
			}
			if opts.verbose {
				level = log.DebugLevel
			}
			log.SetLevel(level)
			log.SetOutput(cmd.ErrOrStderr())
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (.ini, .yaml)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log every iteration")

	rootCmd.AddCommand(newRunCmd(opts), newServeCmd(opts))
	return rootCmd
}

func newRunCmd(opts *options) *cobra.Command {
	var (
		mode       string
		iterations int
		threshold  float64
		reportAt   int
		levels     int
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the simulation and print the plate",
		Long: `Runs the stencil until the total temperature change drops below the
threshold (threshold mode) or for a fixed number of iterations (fixed mode).
With --report N the plate, its heat levels and the level histogram are
printed after iteration N; the final plate is always printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			flags := cmd.Flags()
			if flags.Changed("mode") {
				cfg.Calculator.Mode = mode
			}
			if flags.Changed("iterations") {
				cfg.Calculator.Iterations = iterations
			}
			if flags.Changed("threshold") {
				cfg.Calculator.Threshold = threshold
			}
			if flags.Changed("report") {
				cfg.Calculator.ReportAt = reportAt
			}
			if flags.Changed("levels") {
				cfg.Calculator.HeatLevels = levels
			}
			// 命令行只需要 ReportAt 对应的中间结果
			cfg.Calculator.HistorySize = 0

			sim, err := calculator.NewSimulator(cfg)
			if err != nil {
				return err
			}
			res := sim.Run()

			w := cmd.OutOrStdout()
			if res.Report != nil {
				printReport(w, res.Report)
			}
			fmt.Fprintln(w, "Final State.")
			printPlate(w, res.Field.ToRows(), res.Iterations)
			return nil
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "iteration mode: threshold or fixed")
	cmd.Flags().IntVarP(&iterations, "iterations", "k", 0, "iterations in fixed mode")
	cmd.Flags().Float64VarP(&threshold, "threshold", "t", 0, "convergence threshold in threshold mode")
	cmd.Flags().IntVarP(&reportAt, "report", "r", 0, "print plate statistics after this iteration")
	cmd.Flags().IntVarP(&levels, "levels", "l", 0, "number of heat levels")
	return cmd
}

func newServeCmd(opts *options) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve simulations over websocket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = opts.cfg.Server.Addr
			}
			s := server.NewServer(addr, opts.cfg, upgrader)
			return s.Serve()
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", ":9000", "listen address")
	return cmd
}
