// Package config provides configuration management for the docx translator.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"docx-translator/internal/logger"
	"docx-translator/internal/types"
)

const (
	// DefaultConfigFileName is the default configuration file name
	DefaultConfigFileName = "docx-translator-config.json"
	// EnvOpenAIAPIKey is the environment variable name for OpenAI API key
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
	// EnvOpenAIBaseURL is the environment variable name for OpenAI base URL
	EnvOpenAIBaseURL = "OPENAI_BASE_URL"
	// DefaultBaseURL is the default OpenAI API base URL
	DefaultBaseURL = "https://api.openai.com/v1"
	// DefaultModel is the default OpenAI model to use
	DefaultModel = "gpt-4o"
	// DefaultFlowchartThreshold is the textbox count at which a table is
	// treated as a flowchart
	DefaultFlowchartThreshold = 3
	// DefaultFont is the Latin font applied to translated text
	DefaultFont = "Times New Roman"
	// DefaultFontSize is the translated-paragraph font size in points
	DefaultFontSize = 11
	// DefaultHeaderFooterChineseSize is the Chinese font size in headers/footers
	DefaultHeaderFooterChineseSize = 10
	// DefaultHeaderFooterEnglishSize is the translated font size in headers/footers
	DefaultHeaderFooterEnglishSize = 6
	// DefaultTableHeaderEnglishSize is the translated font size in header/footer tables
	DefaultTableHeaderEnglishSize = 8
	// DefaultTableEnglishFontRatio is the shrink ratio for English-only table text
	DefaultTableEnglishFontRatio = 0.82
)

// ConfigManager manages application configuration
type ConfigManager struct {
	configPath string
	config     *types.Config
}

// NewConfigManager creates a new ConfigManager with the specified config path.
// If configPath is empty, it uses the default path in user's home directory.
func NewConfigManager(configPath string) (*ConfigManager, error) {
	if configPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			logger.Error("failed to get user home directory", err)
			return nil, types.NewAppError(types.ErrConfig, "failed to get user home directory", err)
		}
		configPath = filepath.Join(homeDir, ".config", "docx-translator", DefaultConfigFileName)
	}

	logger.Info("ConfigManager initialized", logger.String("configPath", configPath))
	return &ConfigManager{
		configPath: configPath,
		config:     defaultConfig(),
	}, nil
}

// defaultConfig returns a Config with default values
func defaultConfig() *types.Config {
	return &types.Config{
		OpenAIAPIKey:              "",
		OpenAIBaseURL:             DefaultBaseURL,
		OpenAIModel:               DefaultModel,
		FlowchartTextboxThreshold: DefaultFlowchartThreshold,
		DefaultFont:               DefaultFont,
		DefaultFontSize:           DefaultFontSize,
		HeaderFooterChineseSize:   DefaultHeaderFooterChineseSize,
		HeaderFooterEnglishSize:   DefaultHeaderFooterEnglishSize,
		TableHeaderEnglishSize:    DefaultTableHeaderEnglishSize,
		TableEnglishFontRatio:     DefaultTableEnglishFontRatio,
	}
}

// Load loads configuration from the config file.
// If the file doesn't exist, it uses default values.
// Environment variables take precedence for API key if config file value is empty.
func (m *ConfigManager) Load() error {
	logger.Debug("loading configuration", logger.String("path", m.configPath))

	data, err := os.ReadFile(m.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("config file not found, using defaults", logger.String("path", m.configPath))
			m.config = defaultConfig()
		} else {
			logger.Error("failed to read config file", err, logger.String("path", m.configPath))
			return types.NewAppError(types.ErrConfig, "failed to read config file", err)
		}
	} else {
		config := &types.Config{}
		if err := json.Unmarshal(data, config); err != nil {
			logger.Warn("invalid config file format, using defaults", logger.String("path", m.configPath), logger.Err(err))
			m.config = defaultConfig()
		} else {
			logger.Info("configuration loaded successfully",
				logger.String("path", m.configPath),
				logger.Int("apiKeyLength", len(config.OpenAIAPIKey)),
				logger.String("baseURL", config.OpenAIBaseURL),
				logger.String("model", config.OpenAIModel))
			m.config = config
		}
	}

	// Apply defaults for empty fields
	if m.config.OpenAIModel == "" {
		m.config.OpenAIModel = DefaultModel
	}
	if m.config.OpenAIBaseURL == "" {
		m.config.OpenAIBaseURL = DefaultBaseURL
	}
	if m.config.FlowchartTextboxThreshold == 0 {
		m.config.FlowchartTextboxThreshold = DefaultFlowchartThreshold
	}
	if m.config.DefaultFont == "" {
		m.config.DefaultFont = DefaultFont
	}
	if m.config.DefaultFontSize == 0 {
		m.config.DefaultFontSize = DefaultFontSize
	}
	if m.config.HeaderFooterChineseSize == 0 {
		m.config.HeaderFooterChineseSize = DefaultHeaderFooterChineseSize
	}
	if m.config.HeaderFooterEnglishSize == 0 {
		m.config.HeaderFooterEnglishSize = DefaultHeaderFooterEnglishSize
	}
	if m.config.TableHeaderEnglishSize == 0 {
		m.config.TableHeaderEnglishSize = DefaultTableHeaderEnglishSize
	}
	if m.config.TableEnglishFontRatio == 0 {
		m.config.TableEnglishFontRatio = DefaultTableEnglishFontRatio
	}

	return nil
}

// Save saves the current configuration to the config file.
func (m *ConfigManager) Save() error {
	logger.Debug("saving configuration", logger.String("path", m.configPath))

	dir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Error("failed to create config directory", err, logger.String("dir", dir))
		return types.NewAppError(types.ErrConfig, "failed to create config directory", err)
	}

	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		logger.Error("failed to marshal config", err)
		return types.NewAppError(types.ErrConfig, "failed to marshal config", err)
	}

	if err := os.WriteFile(m.configPath, data, 0600); err != nil {
		logger.Error("failed to write config file", err, logger.String("path", m.configPath))
		return types.NewAppError(types.ErrConfig, "failed to write config file", err)
	}

	logger.Info("configuration saved successfully", logger.String("path", m.configPath))
	return nil
}

// GetAPIKey returns the OpenAI API key.
// It first checks the config file value, then falls back to the environment variable.
func (m *ConfigManager) GetAPIKey() string {
	if m.config != nil && m.config.OpenAIAPIKey != "" {
		return m.config.OpenAIAPIKey
	}
	return os.Getenv(EnvOpenAIAPIKey)
}

// GetBaseURL returns the OpenAI API base URL.
// It first checks the config file value, then falls back to the environment variable.
func (m *ConfigManager) GetBaseURL() string {
	if m.config != nil && m.config.OpenAIBaseURL != "" && m.config.OpenAIBaseURL != DefaultBaseURL {
		return m.config.OpenAIBaseURL
	}
	if env := os.Getenv(EnvOpenAIBaseURL); env != "" {
		return env
	}
	return DefaultBaseURL
}

// GetModel returns the OpenAI model to use.
func (m *ConfigManager) GetModel() string {
	if m.config != nil && m.config.OpenAIModel != "" {
		return m.config.OpenAIModel
	}
	return DefaultModel
}

// GetConfig returns the current configuration.
func (m *ConfigManager) GetConfig() *types.Config {
	if m.config == nil {
		return defaultConfig()
	}
	return m.config
}

// SetConfig sets the entire configuration.
func (m *ConfigManager) SetConfig(config *types.Config) {
	m.config = config
}

// GetConfigPath returns the path to the config file.
func (m *ConfigManager) GetConfigPath() string {
	return m.configPath
}
