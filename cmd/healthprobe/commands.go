package main

import (
	"appointment/internal/probe"
	"appointment/pkg/config"
	"appointment/pkg/httpclient"
	"appointment/pkg/observability"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
)

var errProbesFailed = errors.New("one or more probes failed")

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "healthprobe",
		Short:         "Smoke checks for the doctor appointment health service",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug|info|warn|error")

	root.AddCommand(newEndpointsCmd(&logLevel), newConfigCmd())
	return root
}

func newEndpointsCmd(logLevel *string) *cobra.Command {
	var (
		baseURL string
		timeout time.Duration
		retries int
	)

	cmd := &cobra.Command{
		Use:   "endpoints",
		Short: "GET /health/, /health/ready/ and /health/live/ and report the answers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := observability.NewConsole(*logLevel)
			defer func() { _ = logger.Sync() }()

			conf, err := config.NewConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			clientConf := conf.HTTPClient
			clientConf.ClientTimeout = timeout

			client := httpclient.NewClient(clientConf)
			defer client.CloseIdle()

			if !cmd.Flags().Changed("retries") {
				retries = conf.HTTPClient.MaxRetries
			}
			retry := httpclient.NewRetryClient(client, retries, logger)
			retry.AttemptTimeout = timeout
			runner := probe.NewRunner(retry, baseURL, logger)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Testing health check endpoints...")
			results := runner.Run(cmd.Context())
			for _, r := range results {
				fmt.Fprintln(out, r.String())
			}
			fmt.Fprintln(out, "\nHealth check test completed!")

			if !probe.AllOK(results) {
				return errProbesFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "http://localhost:8005", "service base URL")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "timeout per request")
	cmd.Flags().IntVar(&retries, "retries", 1, "attempts per endpoint on connection errors")
	return cmd
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Load and validate the service configuration, print it with secrets masked",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			conf, err := config.NewConfig()
			if err != nil {
				fmt.Fprintf(out, "❌ config load failed: %v\n", err)
				return err
			}
			fmt.Fprintln(out, "✅ config loaded")

			summary := conf.Summary()
			keys := make([]string, 0, len(summary))
			for k := range summary {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(out, "   %s = %v\n", k, summary[k])
			}

			if err := conf.Validate(); err != nil {
				fmt.Fprintf(out, "❌ %v\n", err)
				return err
			}
			fmt.Fprintln(out, "✅ config is valid")
			return nil
		},
	}
}
