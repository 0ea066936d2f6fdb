package core

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const envPrefix = "LMS"

type Config struct {
	Env          string
	Build        string
	Debug        bool
	AppName      string
	DataDir      string `validate:"required"`
	StateFile    string `validate:"required,jsonfile"`
	GradesFile   string `validate:"required,jsonfile"`
	LogFile      string
	RollbarToken string
}

// NewConfig reads the configuration from defaults, an optional `config/.env.<env>` file
// in the working directory and LMS_ prefixed environment variables (in that order of precedence).
func NewConfig() (*Config, error) {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("build", "develop")
	v.SetDefault("debug", false)
	v.SetDefault("appName", "LMS JustCode")
	v.SetDefault("dataDir", ".")
	v.SetDefault("stateFile", "data.json")
	v.SetDefault("gradesFile", "grades.json")
	v.SetDefault("logFile", "")
	v.SetDefault("rollbarToken", "")

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, PROD
	if env == "" {
		env = "DEV"
	}

	// load .env if it exists (ignore if it does not)
	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "getting working directory")
	}
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "checking %s", dotEnvPath)
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	conf := &Config{
		Env:          env,
		Build:        v.GetString("build"),
		Debug:        v.GetBool("debug"),
		AppName:      v.GetString("appName"),
		DataDir:      CleanString(v.GetString("dataDir")),
		StateFile:    CleanString(v.GetString("stateFile")),
		GradesFile:   CleanString(v.GetString("gradesFile")),
		LogFile:      CleanString(v.GetString("logFile")),
		RollbarToken: v.GetString("rollbarToken"),
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func (c *Config) Validate() error {
	validate, translator := NewValidator()
	if err := validate.Struct(c); err != nil {
		return NewValidationErrorFrom(err, translator)
	}
	return nil
}
