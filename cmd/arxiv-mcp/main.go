// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the arxiv-mcp CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-mcp/internal/arxiv"
	"github.com/pdiddy/arxiv-mcp/internal/metadata"
	"github.com/pdiddy/arxiv-mcp/internal/resolver"
	"github.com/pdiddy/arxiv-mcp/internal/storage"
	"github.com/pdiddy/arxiv-mcp/pkg/types"
)

// version is set at build time via ldflags.
var version = "0.2.0"

// rootCmd is the base command for the arxiv-mcp CLI.
var rootCmd = &cobra.Command{
	Use:   "arxiv-mcp",
	Short: "arXiv paper search and retrieval over MCP",
	Long: `arxiv-mcp exposes arXiv paper search, download, listing, and content
retrieval as MCP tools for AI assistants, with a local paper store so
downloaded papers are served without refetching.

Run 'arxiv-mcp serve' to start the MCP server on stdio, or use the
search, download, get, and list subcommands directly from the shell.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./arxiv-mcp.yaml or ~/.config/arxiv-mcp/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("arxiv-mcp")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "arxiv-mcp"))
		}
	}

	viper.SetDefault("storage_path", "~/.arxiv-mcp/papers")
	viper.SetDefault("max_results", 50)
	viper.SetDefault("batch_size", 20)
	viper.SetDefault("request_timeout", "30s")
	viper.SetDefault("max_retries", 3)

	viper.SetEnvPrefix("ARXIV")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the effective configuration from viper.
func loadConfig() types.Config {
	timeout := viper.GetDuration("request_timeout")
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return types.Config{
		AppName:    "arxiv-mcp",
		AppVersion: version,
		Search: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:    timeout,
				UserAgent:  "arxiv-mcp/" + version,
				MaxRetries: viper.GetInt("max_retries"),
			},
			MaxResultsCap: viper.GetInt("max_results"),
			BatchSizeCap:  viper.GetInt("batch_size"),
		},
		Storage: types.StorageConfig{
			PapersDir: expandHome(viper.GetString("storage_path")),
		},
	}
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

// components holds the wired-up service graph shared by the subcommands.
type components struct {
	cfg      types.Config
	store    *storage.Store
	client   *arxiv.Client
	resolver *resolver.Resolver
	meta     *metadata.Store
}

func newComponents() (*components, error) {
	cfg := loadConfig()

	store, err := storage.NewStore(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("opening paper store: %w", err)
	}
	meta, err := metadata.Open(cfg.Storage.PapersDir)
	if err != nil {
		return nil, fmt.Errorf("opening metadata index: %w", err)
	}

	client := arxiv.NewClient(cfg.Search)
	return &components{
		cfg:      cfg,
		store:    store,
		client:   client,
		resolver: resolver.New(store, client),
		meta:     meta,
	}, nil
}

func (c *components) close() {
	c.meta.Close()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
