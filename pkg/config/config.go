// Package config decodes the chatwidget settings out of viper.
package config

import (
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// AppName names the config directory ($HOME/.chatwidget) and the CHATWIDGET_ env prefix.
const AppName = "chatwidget"

const (
	ModeAuto = "auto"
	ModeTUI  = "tui"
	ModeLine = "line"
)

type Settings struct {
	BaseURL           string        `mapstructure:"base-url"`
	Endpoint          string        `mapstructure:"endpoint"`
	RequestTimeout    time.Duration `mapstructure:"request-timeout"`
	RevealInterval    time.Duration `mapstructure:"reveal-interval"`
	Suggestions       []string      `mapstructure:"suggestions"`
	SuggestionsFile   string        `mapstructure:"suggestions-file"`
	DiscardSuperseded bool          `mapstructure:"discard-superseded"`
	Title             string        `mapstructure:"title"`
	Mode              string        `mapstructure:"mode"`
}

// AddFlags registers one flag per setting. Register them on the root command's persistent flags
// before clay.InitViper so they are bound to viper. --config and the logging flags come from clay.
func AddFlags(fs *pflag.FlagSet) {
	fs.String("base-url", "http://localhost:5000", "base URL of the chat server")
	fs.String("endpoint", "/get_response", "path of the response endpoint")
	fs.Duration("request-timeout", 0, "per request timeout, 0 waits forever")
	fs.Duration("reveal-interval", 15*time.Millisecond, "delay between revealed characters, 0 shows replies at once")
	fs.StringSlice("suggestions", nil, "suggested queries shown as chips")
	fs.String("suggestions-file", "", "YAML file holding a list of suggested queries")
	fs.Bool("discard-superseded", false, "drop replies to requests that are no longer the latest")
	fs.String("title", "Chat", "title shown above the conversation")
	fs.String("mode", ModeAuto, "surface to run: auto, tui or line")
}

// Load decodes the settings held by v, appends the suggestions file and validates the result.
// v is expected to be set up already (flags bound, config file read), as clay.InitViper does.
func Load(v *viper.Viper) (*Settings, error) {
	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}

	if s.SuggestionsFile != "" {
		extra, err := ReadSuggestionsFile(s.SuggestionsFile)
		if err != nil {
			return nil, err
		}
		s.Suggestions = append(s.Suggestions, extra...)
	}
	s.Suggestions = cleanSuggestions(s.Suggestions)

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// ReadSuggestionsFile reads a YAML sequence of strings.
func ReadSuggestionsFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read suggestions file")
	}
	var out []string
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, errors.Wrapf(err, "parse suggestions file %s", path)
	}
	return out, nil
}

func cleanSuggestions(in []string) []string {
	out := make([]string, 0, len(in))
	seen := map[string]bool{}
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func (s *Settings) Validate() error {
	u, err := url.Parse(s.BaseURL)
	if err != nil {
		return errors.Wrapf(err, "invalid base-url %q", s.BaseURL)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.Errorf("invalid base-url %q: want an absolute http(s) URL", s.BaseURL)
	}
	if s.Endpoint == "" {
		return errors.New("endpoint is empty")
	}
	if s.RequestTimeout < 0 {
		return errors.Errorf("request-timeout must not be negative, got %s", s.RequestTimeout)
	}
	if s.RevealInterval < 0 {
		return errors.Errorf("reveal-interval must not be negative, got %s", s.RevealInterval)
	}
	switch s.Mode {
	case ModeAuto, ModeTUI, ModeLine:
	default:
		return errors.Errorf("unknown mode %q (want auto, tui or line)", s.Mode)
	}
	return nil
}
