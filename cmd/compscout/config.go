// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/viper"

	"github.com/meshintel/compscout/pkg/types"
)

// pipelineConfig assembles the full stage configuration from the config
// file, environment, and loaded secrets. Flag overrides are applied by the
// individual commands.
func pipelineConfig() types.PipelineConfig {
	return types.PipelineConfig{
		Search:   searchConfig(),
		Compare:  compareConfig(),
		Report:   reportConfig(),
		Delivery: deliveryConfig(),
		Tracking: trackingConfig(),
	}
}

func searchConfig() types.SearchConfig {
	cfg := types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("search.timeout"),
			UserAgent: viper.GetString("search.user_agent"),
		},
		APIKey:     secretDefault("serpapi-api-key", viper.GetString("search.api_key")),
		Engine:     viper.GetString("search.engine"),
		MaxResults: viper.GetInt("search.max_results"),
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "compscout/" + version
	}
	return cfg
}

func compareConfig() types.CompareConfig {
	cfg := types.CompareConfig{
		AIConfig: types.AIConfig{
			Model:      viper.GetString("compare.model"),
			APIKey:     secretDefault("openrouter-api-key", viper.GetString("compare.api_key")),
			MaxRetries: viper.GetInt("compare.max_retries"),
		},
		Aspects: viper.GetStringSlice("compare.aspects"),
	}
	if cfg.Model == "" {
		cfg.Model = "deepseek/deepseek-chat"
	}
	return cfg
}

func reportConfig() types.ReportConfig {
	cfg := types.ReportConfig{
		OutputDir: viper.GetString("report.output_dir"),
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "output/reports"
	}
	return cfg
}

func deliveryConfig() types.DeliveryConfig {
	return types.DeliveryConfig{
		Host:     viper.GetString("delivery.host"),
		Port:     viper.GetInt("delivery.port"),
		Username: viper.GetString("delivery.username"),
		Password: secretDefault("smtp-password", viper.GetString("delivery.password")),
		Sender:   viper.GetString("delivery.sender"),
		SSL:      viper.GetBool("delivery.ssl"),
		Timeout:  viper.GetDuration("delivery.timeout"),
	}
}

func trackingConfig() types.TrackingConfig {
	return types.TrackingConfig{
		StoreDir: viper.GetString("tracking.store_dir"),
		Cadence:  viper.GetDuration("tracking.cadence"),
	}
}
