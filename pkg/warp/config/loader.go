package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// envVarPattern matches ${VAR}, ${VAR:-default}, ${VAR:?error}, and bare
// $VAR references.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::(-|\?)([^}]*))?\}|\$([A-Z_][A-Z0-9_]*)`)

// LoadFromFile reads and parses a YAML config file, loading .env/.env.local
// first (without overriding already-set environment variables) and
// expanding ${VAR} references before parsing.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded, err := expandEnvVarsWithValidation(string(data))
	if err != nil {
		return nil, fmt.Errorf("expanding environment variables: %w", err)
	}

	return Parse([]byte(expanded))
}

// Parse parses YAML bytes into a Config, starting from DefaultConfig and
// overlaying whatever the document sets.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	if cfg.Zone == "" {
		cfg.Zone = "UTC"
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	return cfg, nil
}

func loadEnvFiles() {
	for _, f := range []string{".env", ".env.local"} {
		_ = godotenv.Load(f)
	}
}

func expandEnvVars(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		sub := envVarPattern.FindStringSubmatch(match)
		var varName, modifier, modVal, bareVar string
		if len(sub) >= 2 {
			varName = sub[1]
		}
		if len(sub) >= 3 {
			modifier = sub[2]
		}
		if len(sub) >= 4 {
			modVal = sub[3]
		}
		if len(sub) >= 5 {
			bareVar = sub[4]
		}

		if bareVar != "" {
			if val, ok := os.LookupEnv(bareVar); ok {
				return val
			}
			return match
		}

		if varName != "" {
			if val, ok := os.LookupEnv(varName); ok {
				return val
			}
			switch modifier {
			case "?":
				errMsg := modVal
				if errMsg == "" {
					errMsg = "required environment variable not set"
				}
				return "ERROR:" + varName + ":" + errMsg
			case "-":
				return modVal
			default:
				return match
			}
		}
		return match
	})
}

func expandEnvVarsWithValidation(input string) (string, error) {
	result := expandEnvVars(input)
	idx := strings.Index(result, "ERROR:")
	if idx == -1 {
		return result, nil
	}
	rest := result[idx+len("ERROR:"):]
	colonIdx := strings.Index(rest, ":")
	if colonIdx == -1 {
		return "", fmt.Errorf("config error: malformed error marker")
	}
	varName := rest[:colonIdx]
	errMsg := rest[colonIdx+1:]
	if errMsg == "" {
		errMsg = "required environment variable not set"
	}
	return "", fmt.Errorf("config error: %s - %s", varName, errMsg)
}
