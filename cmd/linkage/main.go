package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"linkage"
	"linkage/config"
	"linkage/scenario"
	"linkage/terminal"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	rootCmd := &cobra.Command{
		Use:          "linkage",
		Short:        "Glue and connect diagram handles to ports",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML configuration file")

	load := func(cmd *cobra.Command) (config.Config, *logrus.Logger, error) {
		cfg, err := config.Load(configPath)
		if err != nil {
			return config.Config{}, nil, err
		}
		return cfg, cfg.NewLogger(cmd.ErrOrStderr()), nil
	}

	rootCmd.AddCommand(newScenarioCmd(load), newDemoCmd(load))
	return rootCmd
}

type loader func(cmd *cobra.Command) (config.Config, *logrus.Logger, error)

func newScenarioCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "scenario <file.yaml>",
		Short: "Run scripted drags and print the resulting connections",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := load(cmd)
			if err != nil {
				return err
			}
			s, err := scenario.Load(args[0])
			if err != nil {
				return err
			}

			m := linkage.New(cfg, log)
			if err := s.Run(m); err != nil {
				return fmt.Errorf("running %s: %w", args[0], err)
			}
			return m.Report(cmd.OutOrStdout())
		},
	}
}

func newDemoCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Drag handles around in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := load(cmd)
			if err != nil {
				return err
			}
			// The screen owns stderr while it runs.
			log.SetLevel(logrus.ErrorLevel)

			m := linkage.New(cfg, log)
			if err := terminal.Demo(m); err != nil {
				return err
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("failed to create screen: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("failed to initialise screen: %w", err)
			}
			defer screen.Fini()

			return terminal.New(screen, m, log).Run()
		},
	}
}
