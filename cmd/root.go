package cmd

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/resume-ranker/internal/server"
)

const (
	app       = "resume-ranker"
	envPrefix = "RESUME_RANKER"
)

type Config struct {
	Skills      *SkillsConfig  `mapstructure:"skills" validate:"required"`
	Extract     *ExtractConfig `mapstructure:"extract" validate:"required"`
	Server      *ServerConfig  `mapstructure:"server" validate:"required"`
	ExcludeFile string         `mapstructure:"exclude-file"`
}

type SkillsConfig struct {
	// Technical and Soft replace the built-in vocabularies when set.
	Technical []string `mapstructure:"technical"`
	Soft      []string `mapstructure:"soft"`
	Policy    string   `mapstructure:"policy" validate:"omitempty,oneof=token phrase"`
	Tokenizer string   `mapstructure:"tokenizer" validate:"omitempty,oneof=whitespace linguistic"`
}

type ExtractConfig struct {
	// Timeout bounds text extraction of a single document. Zero disables it.
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

type ServerConfig struct {
	Addr           string `mapstructure:"addr" validate:"required,hostname_port"`
	MaxUploadBytes int64  `mapstructure:"max-upload-bytes" validate:"gt=0"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-ranker scores resume PDFs by skills and job description similarity",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-ranker.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	setDefaults()
}

func setDefaults() {
	viper.SetDefault("skills.technical", []string{})
	viper.SetDefault("skills.soft", []string{})
	viper.SetDefault("skills.policy", "phrase")
	viper.SetDefault("skills.tokenizer", "whitespace")
	viper.SetDefault("extract.timeout", "0s")
	viper.SetDefault("server.addr", server.DefaultAddr)
	viper.SetDefault("server.max-upload-bytes", server.DefaultMaxUploadBytes)
	viper.SetDefault("exclude-file", "")
}

func initConfig() {
	// .env is optional; real environment variables win over it
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// The default config file is optional, an explicit one is not.
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		// We can't proceed if the config file parsed with error.
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return config, err
	}

	if config == nil {
		return nil, errors.New("config is empty")
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return config, nil
}
