package config

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rileyhilliard/healthdash/internal/errors"
)

var validate = validator.New()

// configKeys maps struct namespaces to the YAML keys users actually write.
var configKeys = map[string]string{
	"Config.API.BaseURL":     "api.base_url",
	"Config.API.Timeout":     "api.timeout",
	"Config.Log.Dir":         "log.dir",
	"Config.Metrics.Listen":  "metrics.listen",
	"Config.UI.StartPath":    "ui.start_path",
	"Config.UI.RefreshBurst": "ui.refresh_burst",
}

// Validate checks the config and returns a CONFIG structured error naming the
// first offending key.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) || len(verrs) == 0 {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Config validation failed",
			"Check "+ConfigFileName)
	}

	fe := verrs[0]
	key := configKeys[fe.Namespace()]
	if key == "" {
		key = fe.Namespace()
	}

	return errors.WrapWithCode(err, errors.ErrConfig,
		fmt.Sprintf("Invalid value for %s: %s", key, describe(fe)),
		suggestionFor(key))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must be set"
	case "url":
		return fmt.Sprintf("%q is not a URL", fe.Value())
	case "hostname_port":
		return fmt.Sprintf("%q is not host:port", fe.Value())
	case "startswith":
		return fmt.Sprintf("%q must start with %q", fe.Value(), fe.Param())
	case "gt", "min":
		return fmt.Sprintf("%v is below the minimum (%s)", fe.Value(), fe.Param())
	case "lte", "max":
		return fmt.Sprintf("%v is above the maximum (%s)", fe.Value(), fe.Param())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

func suggestionFor(key string) string {
	env := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
	return fmt.Sprintf("Fix '%s' in %s or override it with %s.", key, ConfigFileName, env)
}
