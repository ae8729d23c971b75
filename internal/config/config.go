package config

import (
	"os"
	"path"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	private Private
}

type Public struct {
	Addr           string   `yaml:"addr"`
	SiteURL        string   `yaml:"site_url" validate:"required,url"`
	DirectusURL    string   `yaml:"directus_url" validate:"required,url"`
	AdminEmail     string   `yaml:"admin_email" validate:"required,email"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	LogLevel       string   `yaml:"log_level"`
	LogJSON        bool     `yaml:"log_json"`

	// Submission image limits
	MaxImageBytes     int64 `yaml:"max_image_bytes"`     // hard ceiling, default 5 MiB
	ImageTriggerBytes int64 `yaml:"image_trigger_bytes"` // downscale anything above, default 1 MiB

	NotifierQueueSize int `yaml:"notifier_queue_size"`
}

type Private struct {
	DirectusToken string `yaml:"directus_token"`
	WebhookSecret string `yaml:"webhook_secret"`
	Smtp          Smtp   `yaml:"smtp"`
	Pg            Pg     `yaml:"pg"`
	S3            S3     `yaml:"s3"`
}

type Smtp struct {
	Server   string `yaml:"server"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Timeout  int    `yaml:"timeout"` // seconds
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

type S3 struct {
	Endpoint       string `yaml:"endpoint"`
	Region         string `yaml:"region"`
	AccessKey      string `yaml:"access_key"`
	SecretKey      string `yaml:"secret_key"`
	Bucket         string `yaml:"bucket"`
	ForcePathStyle bool   `yaml:"force_path_style"`
}

// accessors for private config

func (c *Config) DirectusToken() string {
	return c.private.DirectusToken
}

func (c *Config) WebhookSecret() string {
	return c.private.WebhookSecret
}

func (c *Config) Smtp() *Smtp {
	return &c.private.Smtp
}

func (c *Config) Pg() *Pg {
	return &c.private.Pg
}

func (c *Config) S3() *S3 {
	return &c.private.S3
}

func (p *Public) applyDefaults() {
	if p.Addr == "" {
		p.Addr = ":8080"
	}
	if p.MaxImageBytes == 0 {
		p.MaxImageBytes = 5 << 20
	}
	if p.ImageTriggerBytes == 0 {
		p.ImageTriggerBytes = 1 << 20
	}
	if p.NotifierQueueSize == 0 {
		p.NotifierQueueSize = 64
	}
	if p.LogLevel == "" {
		p.LogLevel = "info"
	}
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)

	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)
	public.applyDefaults()

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(&public); err != nil {
		panic("invalid public config: " + err.Error())
	}

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	return &Config{public, private}
}

// New builds a config directly from its parts. Used by tests and by the admin
// CLI, which sources credentials from the environment rather than private.yaml.
func New(public Public, private Private) *Config {
	public.applyDefaults()
	return &Config{public, private}
}
