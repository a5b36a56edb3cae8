// Package config defines the runtime configuration for sockchat and the
// validation rules applied to it before a session starts.
package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	ncerr "sockchat/internal/errors"
	"sockchat/util"
)

// Config holds every tuneable for a single chat session.
type Config struct {
	// ── Connection ───────────────────────────────────────────────────
	Host    string        `validate:"required"`
	Port    int           `validate:"min=1,max=65535"`
	Scheme  string        `validate:"oneof=http https ws wss"`
	Timeout time.Duration `validate:"min=0"` // connect + handshake timeout

	// ── Identity ─────────────────────────────────────────────────────
	Username string `validate:"required,username"`

	// ── Output ───────────────────────────────────────────────────────
	Verbose int  `validate:"min=0,max=3"`
	NoColor bool `split_words:"true"`
	Stats   bool

	// ── CLI only ─────────────────────────────────────────────────────
	Yes     bool   `ignored:"true"` // accept host/port without prompting
	EnvFile string `ignored:"true"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Host:    DefaultHost,
		Port:    DefaultPort,
		Scheme:  DefaultScheme,
		Timeout: DefaultConnTimeout,
	}
}

// ServerURL returns the operator-facing address, e.g. http://host:3000.
func (c *Config) ServerURL() string {
	return util.ServerURL(c.Scheme, c.Host, c.Port)
}

// ── Validation ───────────────────────────────────────────────────────

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_-]{3,20}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRe.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// ValidateUsername accepts 3–20 ASCII letters, digits, '_' or '-'.
func ValidateUsername(name string) error {
	if err := validate.Var(name, "required,username"); err != nil {
		return fmt.Errorf("%w: %q (use 3-20 of a-z A-Z 0-9 _ -)", ncerr.ErrInvalidUsername, name)
	}
	return nil
}

// ParsePort parses a decimal TCP port in 1–65535.
func ParsePort(s string) (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid port %q", s)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("port %d out of range 1-65535", port)
	}
	return port, nil
}

// ValidatePort is ParsePort for use as a prompt validator.
func ValidatePort(s string) error {
	_, err := ParsePort(s)
	return err
}

// ValidateHost rejects empty hosts.
func ValidateHost(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("host is required")
	}
	return nil
}

// Validate checks the configuration and returns a *errors.ConfigError
// describing the first offending field.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	switch fe.Field() {
	case "Host":
		return &ncerr.ConfigError{
			Field:   "host",
			Message: "server host is required",
			Hint:    "pass --host or set SOCKCHAT_HOST",
		}
	case "Port":
		return &ncerr.ConfigError{
			Field:   "port",
			Value:   c.Port,
			Message: "must be between 1 and 65535",
			Hint:    "the chat server usually listens on " + strconv.Itoa(DefaultPort),
		}
	case "Scheme":
		return &ncerr.ConfigError{
			Field:   "scheme",
			Value:   c.Scheme,
			Message: "unsupported scheme",
			Hint:    "use http or https (ws and wss are accepted as aliases)",
		}
	case "Timeout":
		return &ncerr.ConfigError{
			Field:   "timeout",
			Value:   c.Timeout,
			Message: "must not be negative",
		}
	case "Username":
		return &ncerr.ConfigError{
			Field:   "username",
			Value:   c.Username,
			Message: "must be 3-20 characters of letters, digits, '_' or '-'",
			Hint:    "for example: --username alice_01",
		}
	case "Verbose":
		return &ncerr.ConfigError{
			Field:   "verbose",
			Value:   c.Verbose,
			Message: "verbosity ranges from 0 to 3",
			Hint:    "repeat -v at most three times",
		}
	default:
		return &ncerr.ConfigError{Field: strings.ToLower(fe.Field()), Message: fe.Error()}
	}
}
