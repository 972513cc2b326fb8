package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewConfigCmd создаёт группу команд для управления конфигурациями.
func NewConfigCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage sync configs",
	}

	cmd.AddCommand(
		newConfigListCmd(clientFn, outputFn),
		newConfigShowCmd(clientFn, outputFn),
		newConfigPutCmd(clientFn, outputFn),
		newConfigDeleteCmd(clientFn, outputFn),
	)

	return cmd
}

func newConfigListCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "list CUSTOMER",
		Short: "List configs for a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			configs, err := client.ListConfigs(args[0])
			if err != nil {
				return err
			}

			out.Configs(configs)
			return nil
		},
	}
}

func newConfigShowCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "show CUSTOMER NAME",
		Short: "Show config details",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			cfg, err := client.GetConfig(args[0], args[1])
			if err != nil {
				return err
			}

			out.Config(cfg)
			return nil
		},
	}
}

func newConfigPutCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var specFile string

	cmd := &cobra.Command{
		Use:   "put CUSTOMER NAME",
		Short: "Create or update a config from a YAML file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			data, err := os.ReadFile(specFile)
			if err != nil {
				return fmt.Errorf("read spec file: %w", err)
			}

			// API принимает JSON — перегоняем YAML
			var spec map[string]any
			if err := yaml.Unmarshal(data, &spec); err != nil {
				return fmt.Errorf("parse spec file: %w", err)
			}
			specJSON, err := json.Marshal(spec)
			if err != nil {
				return fmt.Errorf("encode spec: %w", err)
			}

			cfg, err := client.PutConfig(args[0], args[1], specJSON)
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Config saved: %s/%s", cfg.CustomerID, cfg.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&specFile, "file", "", "Path to YAML spec file (required)")
	cmd.MarkFlagRequired("file")

	return cmd
}

func newConfigDeleteCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "delete CUSTOMER NAME",
		Short: "Delete a config",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			if err := client.DeleteConfig(args[0], args[1]); err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Config deleted: %s/%s", args[0], args[1]))
			return nil
		},
	}
}
