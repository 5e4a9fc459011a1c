// File: internal/config/config.go
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config holds the entire application configuration. It is constructed once
// at startup and passed explicitly into the session and workflow layers;
// there is no package-level mutable state.
type Config struct {
	Logger      LoggerConfig      `mapstructure:"logger" yaml:"logger"`
	Credentials CredentialsConfig `mapstructure:"credentials" yaml:"credentials"`
	Resume      ResumeConfig      `mapstructure:"resume" yaml:"resume"`
	Site        SiteConfig        `mapstructure:"site" yaml:"site"`
	Browser     BrowserConfig     `mapstructure:"browser" yaml:"browser"`
	Wait        WaitConfig        `mapstructure:"wait" yaml:"wait"`
}

// LoggerConfig controls the global zap logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// CredentialsConfig carries the portal login credentials. Both values are
// opaque strings, normally supplied through the environment
// (NAUKRIBOT_CREDENTIALS_USERNAME / NAUKRIBOT_CREDENTIALS_PASSWORD).
type CredentialsConfig struct {
	Username string `mapstructure:"username" yaml:"username"`
	Password string `mapstructure:"password" yaml:"password"`
}

// ResumeConfig points at the resume file to upload.
type ResumeConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// ResolvedPath expands a leading "~" and returns the absolute resume path.
func (r ResumeConfig) ResolvedPath() (string, error) {
	expanded, err := homedir.Expand(r.Path)
	if err != nil {
		return "", fmt.Errorf("failed to expand resume path %q: %w", r.Path, err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("failed to resolve resume path %q: %w", r.Path, err)
	}
	return abs, nil
}

// SiteConfig fixes the portal entry points and the locators of the page
// elements the workflow interacts with.
type SiteConfig struct {
	LoginURL   string     `mapstructure:"login_url" yaml:"login_url"`
	ProfileURL string     `mapstructure:"profile_url" yaml:"profile_url"`
	TitleToken string     `mapstructure:"title_token" yaml:"title_token"`
	Locators   LocatorSet `mapstructure:"locators" yaml:"locators"`
}

// LocatorSet names every page element the workflow touches. Field comments
// note the locator kind each expression is resolved with.
type LocatorSet struct {
	UsernameField   string `mapstructure:"username_field" yaml:"username_field"`     // by id
	PasswordField   string `mapstructure:"password_field" yaml:"password_field"`     // by id
	LoginButton     string `mapstructure:"login_button" yaml:"login_button"`         // by xpath
	SkipButton      string `mapstructure:"skip_button" yaml:"skip_button"`           // by xpath
	LoginCheckpoint string `mapstructure:"login_checkpoint" yaml:"login_checkpoint"` // by id
	AttachInput     string `mapstructure:"attach_input" yaml:"attach_input"`         // by id
	SaveButton      string `mapstructure:"save_button" yaml:"save_button"`           // by xpath
	CloseButton     string `mapstructure:"close_button" yaml:"close_button"`         // by xpath
	UpdatedOn       string `mapstructure:"updated_on" yaml:"updated_on"`             // by xpath
}

// BrowserConfig tunes the Chrome launch and the driver's ambient behavior.
type BrowserConfig struct {
	Headless      bool          `mapstructure:"headless" yaml:"headless"`
	Fullscreen    bool          `mapstructure:"fullscreen" yaml:"fullscreen"`
	ImplicitWait  time.Duration `mapstructure:"implicit_wait" yaml:"implicit_wait"`
	ActionTimeout time.Duration `mapstructure:"action_timeout" yaml:"action_timeout"`
	Args          []string      `mapstructure:"args" yaml:"args"`
}

// WaitConfig bounds the explicit polling waits used by the workflow.
type WaitConfig struct {
	PollInterval        time.Duration `mapstructure:"poll_interval" yaml:"poll_interval"`
	ResolveTimeout      time.Duration `mapstructure:"resolve_timeout" yaml:"resolve_timeout"`
	CheckpointTimeout   time.Duration `mapstructure:"checkpoint_timeout" yaml:"checkpoint_timeout"`
	OptionalStepTimeout time.Duration `mapstructure:"optional_step_timeout" yaml:"optional_step_timeout"`
	PopupCloseTimeout   time.Duration `mapstructure:"popup_close_timeout" yaml:"popup_close_timeout"`
}

// NewDefaultConfig returns the configuration preloaded with the production
// defaults for the Naukri portal.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: LoggerConfig{
			Level:       "info",
			Format:      "console",
			ServiceName: "naukribot",
			MaxSize:     50,
			MaxBackups:  3,
			MaxAge:      14,
		},
		Resume: ResumeConfig{
			Path: filepath.Join("resume", "Resume.pdf"),
		},
		Site: SiteConfig{
			LoginURL:   "https://www.naukri.com/nlogin/login",
			ProfileURL: "https://www.naukri.com/mnjuser/profile",
			TitleToken: "naukri",
			Locators: LocatorSet{
				UsernameField:   "usernameField",
				PasswordField:   "passwordField",
				LoginButton:     "//*[@type='submit' and normalize-space()='Login']",
				SkipButton:      "//*[text() = 'SKIP AND CONTINUE']",
				LoginCheckpoint: "ff-inventory",
				AttachInput:     "attachCV",
				SaveButton:      "//button[@type='button']",
				CloseButton:     "//*[contains(@class, 'crossIcon')]",
				UpdatedOn:       "//*[contains(@class, 'updateOn')]",
			},
		},
		Browser: BrowserConfig{
			Headless:      true,
			ImplicitWait:  5 * time.Second,
			ActionTimeout: 30 * time.Second,
		},
		Wait: WaitConfig{
			PollInterval:        500 * time.Millisecond,
			ResolveTimeout:      5 * time.Second,
			CheckpointTimeout:   3 * time.Second,
			OptionalStepTimeout: 500 * time.Millisecond,
			PopupCloseTimeout:   time.Second,
		},
	}
}

// Load reads the optional config file and environment overrides on top of
// the defaults. Environment variables use the NAUKRIBOT_ prefix with "_"
// as the key separator, e.g. NAUKRIBOT_CREDENTIALS_USERNAME.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("NAUKRIBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	registerDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; proceed with defaults and env vars.
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// registerDefaults seeds viper with every known key so that AutomaticEnv
// can resolve environment overrides for keys absent from the config file.
func registerDefaults(v *viper.Viper) {
	def := NewDefaultConfig()

	v.SetDefault("logger.level", def.Logger.Level)
	v.SetDefault("logger.format", def.Logger.Format)
	v.SetDefault("logger.add_source", def.Logger.AddSource)
	v.SetDefault("logger.service_name", def.Logger.ServiceName)
	v.SetDefault("logger.log_file", def.Logger.LogFile)
	v.SetDefault("logger.max_size", def.Logger.MaxSize)
	v.SetDefault("logger.max_backups", def.Logger.MaxBackups)
	v.SetDefault("logger.max_age", def.Logger.MaxAge)
	v.SetDefault("logger.compress", def.Logger.Compress)

	v.SetDefault("credentials.username", "")
	v.SetDefault("credentials.password", "")

	v.SetDefault("resume.path", def.Resume.Path)

	v.SetDefault("site.login_url", def.Site.LoginURL)
	v.SetDefault("site.profile_url", def.Site.ProfileURL)
	v.SetDefault("site.title_token", def.Site.TitleToken)
	v.SetDefault("site.locators.username_field", def.Site.Locators.UsernameField)
	v.SetDefault("site.locators.password_field", def.Site.Locators.PasswordField)
	v.SetDefault("site.locators.login_button", def.Site.Locators.LoginButton)
	v.SetDefault("site.locators.skip_button", def.Site.Locators.SkipButton)
	v.SetDefault("site.locators.login_checkpoint", def.Site.Locators.LoginCheckpoint)
	v.SetDefault("site.locators.attach_input", def.Site.Locators.AttachInput)
	v.SetDefault("site.locators.save_button", def.Site.Locators.SaveButton)
	v.SetDefault("site.locators.close_button", def.Site.Locators.CloseButton)
	v.SetDefault("site.locators.updated_on", def.Site.Locators.UpdatedOn)

	v.SetDefault("browser.headless", def.Browser.Headless)
	v.SetDefault("browser.fullscreen", def.Browser.Fullscreen)
	v.SetDefault("browser.implicit_wait", def.Browser.ImplicitWait)
	v.SetDefault("browser.action_timeout", def.Browser.ActionTimeout)
	v.SetDefault("browser.args", def.Browser.Args)

	v.SetDefault("wait.poll_interval", def.Wait.PollInterval)
	v.SetDefault("wait.resolve_timeout", def.Wait.ResolveTimeout)
	v.SetDefault("wait.checkpoint_timeout", def.Wait.CheckpointTimeout)
	v.SetDefault("wait.optional_step_timeout", def.Wait.OptionalStepTimeout)
	v.SetDefault("wait.popup_close_timeout", def.Wait.PopupCloseTimeout)
}

// Validate checks the configuration for values the run cannot proceed
// without.
func (c *Config) Validate() error {
	if c.Credentials.Username == "" || c.Credentials.Password == "" {
		return fmt.Errorf("credentials.username and credentials.password are required (set NAUKRIBOT_CREDENTIALS_USERNAME / NAUKRIBOT_CREDENTIALS_PASSWORD)")
	}
	if c.Resume.Path == "" {
		return fmt.Errorf("resume.path is required")
	}
	if c.Site.LoginURL == "" || c.Site.ProfileURL == "" {
		return fmt.Errorf("site.login_url and site.profile_url are required")
	}
	if c.Site.TitleToken == "" {
		return fmt.Errorf("site.title_token is required")
	}
	if c.Browser.ImplicitWait < 0 {
		return fmt.Errorf("browser.implicit_wait must not be negative")
	}
	if c.Browser.ActionTimeout <= 0 {
		return fmt.Errorf("browser.action_timeout must be a positive duration")
	}
	if c.Wait.PollInterval <= 0 {
		return fmt.Errorf("wait.poll_interval must be a positive duration")
	}
	if c.Wait.ResolveTimeout <= 0 || c.Wait.CheckpointTimeout <= 0 {
		return fmt.Errorf("wait.resolve_timeout and wait.checkpoint_timeout must be positive durations")
	}
	return nil
}
