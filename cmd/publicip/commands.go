package main

import (
	"fmt"
	"io"

	"github.com/go-logr/logr"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/erkki/publicip/internal/config"
	"github.com/erkki/publicip/internal/ipcheck"
	"github.com/erkki/publicip/internal/logging"
	"github.com/erkki/publicip/internal/useragent"
)

type app struct {
	v       *viper.Viper
	cfg     config.Config
	log     logr.Logger
	verbose bool
	debug   bool
	// endpoints overrides lookup URLs, set by tests.
	endpoints map[ipcheck.Service]string
}

type serviceInfo struct {
	Name   string `json:"name" yaml:"name"`
	URL    string `json:"url" yaml:"url"`
	Format string `json:"format" yaml:"format"`
	Field  string `json:"field,omitempty" yaml:"field,omitempty"`
}

type agentInfo struct {
	Name      string `json:"name" yaml:"name"`
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

type lookupResult struct {
	Service string `json:"service" yaml:"service"`
	IP      string `json:"ip" yaml:"ip"`
}

func newRootCmd() *cobra.Command {
	return newApp(nil).rootCmd()
}

func newApp(endpoints map[ipcheck.Service]string) *app {
	return &app{v: config.New(), endpoints: endpoints}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "publicip",
		Short:         "Print the public IP address of this host",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.log = logging.New(cmd.ErrOrStderr(), a.verbose, a.debug)
			if err := a.v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			cfg, err := config.Load(a.v)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
		RunE: a.runLookup,
	}

	pf := root.PersistentFlags()
	pf.String(config.KeyService, ipcheck.DefaultService.String(), "lookup service")
	pf.String(config.KeyUserAgent, useragent.Default.String(), "User-Agent profile")
	pf.Int(config.KeyConnectTimeoutMs, int(ipcheck.DefaultConnectTimeout.Milliseconds()), "connect timeout in milliseconds, 0 disables")
	pf.Int(config.KeyReadTimeoutMs, int(ipcheck.DefaultReadTimeout.Milliseconds()), "read timeout in milliseconds, 0 disables")
	pf.StringP(config.KeyOutput, "o", config.OutputText, "output format: text, json or yaml")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log progress")
	pf.BoolVar(&a.debug, "debug", false, "log requests")

	root.AddCommand(a.getCmd(), a.servicesCmd(), a.agentsCmd())
	return root
}

func (a *app) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get URL",
		Short: "GET a URL with the configured User-Agent and print the body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := a.fetcher().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), body)
			return err
		},
	}
}

func (a *app) servicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "services",
		Short: "List the supported lookup services",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var out []serviceInfo
			for _, s := range ipcheck.Services() {
				out = append(out, serviceInfo{
					Name:   s.String(),
					URL:    ipcheck.Endpoint(s),
					Format: ipcheck.ResponseFormat(s).String(),
					Field:  ipcheck.AddressField(s),
				})
			}
			if a.cfg.Output == config.OutputText {
				for _, s := range out {
					fmt.Fprintf(cmd.OutOrStdout(), "%-10s %-5s %-22s %s\n", s.Name, s.Format, s.Field, s.URL)
				}
				return nil
			}
			return printResult(cmd.OutOrStdout(), a.cfg.Output, out)
		},
	}
}

func (a *app) agentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "agents",
		Short: "List the User-Agent profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var out []agentInfo
			for _, p := range useragent.All() {
				out = append(out, agentInfo{Name: p.String(), UserAgent: p.UserAgent()})
			}
			if a.cfg.Output == config.OutputText {
				for _, p := range out {
					fmt.Fprintf(cmd.OutOrStdout(), "%-18s %s\n", p.Name, p.UserAgent)
				}
				return nil
			}
			return printResult(cmd.OutOrStdout(), a.cfg.Output, out)
		},
	}
}

func (a *app) runLookup(cmd *cobra.Command, args []string) error {
	ip, err := a.fetcher().PublicIP(cmd.Context(), a.cfg.Service)
	if err != nil {
		return fmt.Errorf("%s lookup: %w", a.cfg.Service, err)
	}
	a.log.Info("public IP", "service", a.cfg.Service.String(), "ip", ip.String())
	if a.cfg.Output == config.OutputText {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), ip.String())
		return err
	}
	return printResult(cmd.OutOrStdout(), a.cfg.Output, lookupResult{Service: a.cfg.Service.String(), IP: ip.String()})
}

func (a *app) fetcher() *ipcheck.Fetcher {
	opts := append(a.cfg.FetcherOptions(), ipcheck.WithLogger(a.log.WithName("ipcheck")))
	for s, u := range a.endpoints {
		opts = append(opts, ipcheck.WithEndpoint(s, u))
	}
	return ipcheck.NewFetcher(opts...)
}

func printResult(w io.Writer, format string, out any) error {
	var (
		s   []byte
		err error
	)
	if format == config.OutputJSON {
		s, err = jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(out, "", "  ")
	} else {
		s, err = yaml.Marshal(out)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(s))
	return err
}
