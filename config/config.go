package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Support orchestration specifics
	Chatwoot  ChatwootConfig
	Knowledge KnowledgeConfig
	Maritalk  MaritalkConfig
	Router    RouterConfig
	Webhook   WebhookConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type ChatwootConfig struct {
	BaseURL        string
	APIToken       string
	AccountID      string
	FallbackTeamID int // last-resort team id, 0 disables
}

type KnowledgeConfig struct {
	BaseURL       string
	APIKey        string
	CacheTTL      time.Duration
	CacheCapacity int
}

type MaritalkConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// RouterConfig holds the routing policy: threshold, teams and the managed
// conversation labels.
type RouterConfig struct {
	ConfidenceThreshold float64
	SemanticEnabled     bool

	ActiveTeams      []string
	SupportTeam      string
	DefaultHumanTeam string

	OrchestratorLabel string
	MecLabel          string
	HumanLabel        string
	FailureLabel      string
}

type WebhookConfig struct {
	Token           string
	RateLimitPerMin int
	DedupTTL        time.Duration
	DedupCapacity   int
	ProcessTimeout  time.Duration
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Chatwoot
	cfg.Chatwoot.BaseURL = viper.GetString("chatwoot.base_url")
	cfg.Chatwoot.APIToken = viper.GetString("chatwoot.api_token")
	cfg.Chatwoot.AccountID = viper.GetString("chatwoot.account_id")
	cfg.Chatwoot.FallbackTeamID = viper.GetInt("chatwoot.fallback_team_id")
	if token := viper.GetString("chatwoot_api_token"); token != "" {
		cfg.Chatwoot.APIToken = token
	}
	if url := viper.GetString("chatwoot_base_url"); url != "" {
		cfg.Chatwoot.BaseURL = url
	}

	// Knowledge service
	cfg.Knowledge.BaseURL = viper.GetString("knowledge.base_url")
	cfg.Knowledge.APIKey = viper.GetString("knowledge.api_key")
	cfg.Knowledge.CacheTTL = viper.GetDuration("knowledge.cache_ttl")
	cfg.Knowledge.CacheCapacity = viper.GetInt("knowledge.cache_capacity")
	if key := viper.GetString("knowledge_api_key"); key != "" {
		cfg.Knowledge.APIKey = key
	}

	// Maritalk (semantic fallback)
	cfg.Maritalk.APIKey = viper.GetString("maritalk.api_key")
	cfg.Maritalk.BaseURL = viper.GetString("maritalk.base_url")
	cfg.Maritalk.Model = viper.GetString("maritalk.model")
	if key := viper.GetString("maritalk_api_key"); key != "" {
		cfg.Maritalk.APIKey = key
	}

	// Routing policy
	cfg.Router.ConfidenceThreshold = viper.GetFloat64("router.confidence_threshold")
	cfg.Router.SemanticEnabled = viper.GetBool("router.semantic_enabled")
	cfg.Router.SupportTeam = viper.GetString("router.support_team")
	cfg.Router.DefaultHumanTeam = viper.GetString("router.default_human_team")
	cfg.Router.OrchestratorLabel = viper.GetString("router.labels.orchestrator")
	cfg.Router.MecLabel = viper.GetString("router.labels.mec")
	cfg.Router.HumanLabel = viper.GetString("router.labels.human")
	cfg.Router.FailureLabel = viper.GetString("router.labels.failure")

	// Split active teams since viper might not parse the array from env
	var teams []string
	if rawTeams := viper.GetString("router.active_teams"); rawTeams != "" {
		for _, team := range strings.Split(rawTeams, ",") {
			team = strings.TrimSpace(team)
			if team != "" {
				teams = append(teams, team)
			}
		}
	} else {
		teams = viper.GetStringSlice("router.active_teams")
	}
	cfg.Router.ActiveTeams = teams

	// Webhook
	cfg.Webhook.Token = viper.GetString("webhook.token")
	if token := viper.GetString("webhook_token"); token != "" {
		cfg.Webhook.Token = token
	}
	cfg.Webhook.RateLimitPerMin = viper.GetInt("webhook.rate_limit_per_min")
	cfg.Webhook.DedupTTL = viper.GetDuration("webhook.dedup_ttl")
	cfg.Webhook.DedupCapacity = viper.GetInt("webhook.dedup_capacity")
	cfg.Webhook.ProcessTimeout = viper.GetDuration("webhook.process_timeout")

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("knowledge.cache_ttl", "300s")
	viper.SetDefault("knowledge.cache_capacity", 256)

	viper.SetDefault("maritalk.model", "sabiazinho-4")

	viper.SetDefault("router.confidence_threshold", 0.7)
	viper.SetDefault("router.semantic_enabled", false)
	viper.SetDefault("router.default_human_team", "Suporte")
	viper.SetDefault("router.labels.orchestrator", "ia_orquestrador")
	viper.SetDefault("router.labels.mec", "ia_mec")
	viper.SetDefault("router.labels.human", "humano")
	viper.SetDefault("router.labels.failure", "ia_falha")

	viper.SetDefault("webhook.rate_limit_per_min", 60)
	viper.SetDefault("webhook.dedup_ttl", "10m")
	viper.SetDefault("webhook.dedup_capacity", 10000)
	viper.SetDefault("webhook.process_timeout", "2m")
}

func validate(cfg *Config) error {
	if cfg.Chatwoot.BaseURL == "" {
		return fmt.Errorf("chatwoot.base_url is required")
	}
	if cfg.Chatwoot.APIToken == "" {
		return fmt.Errorf("chatwoot.api_token is required")
	}
	if cfg.Chatwoot.AccountID == "" {
		return fmt.Errorf("chatwoot.account_id is required")
	}
	if cfg.Knowledge.BaseURL == "" {
		return fmt.Errorf("knowledge.base_url is required")
	}
	// Token verification fails closed, so an unset token would reject every webhook.
	if cfg.Webhook.Token == "" {
		return fmt.Errorf("webhook.token is required")
	}
	if cfg.Router.SemanticEnabled && cfg.Maritalk.APIKey == "" {
		return fmt.Errorf("maritalk.api_key is required when router.semantic_enabled is set")
	}
	if cfg.Router.ConfidenceThreshold < 0 || cfg.Router.ConfidenceThreshold > 1 {
		return fmt.Errorf("router.confidence_threshold must be within [0,1]")
	}
	return nil
}
