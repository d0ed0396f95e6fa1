package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	Reports  ReportsConfig  `yaml:"reports"`
}

type ServerConfig struct {
	Host         string `yaml:"host"`
	APIPort      int    `yaml:"api_port"`
	Mode         string `yaml:"mode" validate:"oneof=debug release test"`
	QueryTimeout int    `yaml:"query_timeout"` // 单条查询超时（秒）
}

// Addr returns the listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.APIPort)
}

// QueryTimeoutDuration is the per-statement deadline applied by the query executor.
func (c *ServerConfig) QueryTimeoutDuration() time.Duration {
	return time.Duration(c.QueryTimeout) * time.Second
}

// SetDefaults 设置默认值
func (c *ServerConfig) SetDefaults() {
	if c.APIPort == 0 {
		c.APIPort = 3000
	}
	if c.Mode == "" {
		c.Mode = "release"
	}
	if c.QueryTimeout <= 0 {
		c.QueryTimeout = 10
	}
}

type DatabaseConfig struct {
	Driver          string `yaml:"driver" validate:"oneof=mysql postgres postgresql sqlite sqlite3"` // 默认: mysql
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	User            string `yaml:"user"`
	Password        string `yaml:"password"`
	DBName          string `yaml:"dbname"` // sqlite: file path or :memory:
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"`
}

type LoggingConfig struct {
	Level      string `yaml:"level"`       // debug / info / warn / error
	Output     string `yaml:"output"`      // console / file / both
	File       string `yaml:"file"`        // 日志文件路径
	MaxSize    int    `yaml:"max_size"`    // 单个文件最大大小（MB）
	MaxBackups int    `yaml:"max_backups"` // 保留的旧日志文件数量
	MaxAge     int    `yaml:"max_age"`     // 保留日志的最大天数
	Compress   bool   `yaml:"compress"`    // 是否压缩旧日志
}

// SetDefaults 设置默认值
func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Output == "" {
		c.Output = "console"
	}
	if c.File == "" {
		c.File = "logs/webdb.log"
	}
	if c.MaxSize == 0 {
		c.MaxSize = 100
	}
}

// ReportsConfig locates the GLPI tables read by the demands report.
type ReportsConfig struct {
	// GLPISchema database holding glpi_tickets, glpi_tickets_users and glpi_users.
	// Empty means the connected database.
	GLPISchema string `yaml:"glpi_schema"`
}

var schemaPattern = regexp.MustCompile(`^[A-Za-z0-9_$]{1,64}$`)

// Validate 验证报表配置
func (c *ReportsConfig) Validate() error {
	if c.GLPISchema != "" && !schemaPattern.MatchString(c.GLPISchema) {
		return fmt.Errorf("invalid glpi_schema: %q", c.GLPISchema)
	}
	return nil
}

// Load reads configPath, applies defaults and then environment overrides.
// A missing file is not an error: defaults plus environment are enough to start.
func Load(configPath string) (*Config, error) {
	config := Config{Reports: ReportsConfig{GLPISchema: "glpi"}}

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	applyEnv(&config)

	config.Server.SetDefaults()
	config.Database.SetDefaults()
	config.Logging.SetDefaults()

	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := config.Reports.Validate(); err != nil {
		return nil, fmt.Errorf("invalid reports config: %w", err)
	}

	return &config, nil
}

// applyEnv 支持通过环境变量覆盖配置（Docker 部署时使用）
func applyEnv(config *Config) {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.APIPort = p
		}
	}
	if dbDriver := os.Getenv("DB_DRIVER"); dbDriver != "" {
		config.Database.Driver = dbDriver
	}
	if dbHost := os.Getenv("DB_HOST"); dbHost != "" {
		config.Database.Host = dbHost
	}
	if dbPort := os.Getenv("DB_PORT"); dbPort != "" {
		if port, err := strconv.Atoi(dbPort); err == nil {
			config.Database.Port = port
		}
	}
	if dbUser := os.Getenv("DB_USER"); dbUser != "" {
		config.Database.User = dbUser
	}
	if dbPassword := os.Getenv("DB_PASSWORD"); dbPassword != "" {
		config.Database.Password = dbPassword
	}
	if dbName := os.Getenv("DB_NAME"); dbName != "" {
		config.Database.DBName = dbName
	}
	if schema, ok := os.LookupEnv("GLPI_SCHEMA"); ok {
		config.Reports.GLPISchema = schema
	}
}

// DSN builds the driver specific data source name.
func (c *DatabaseConfig) DSN() string {
	switch c.Driver {
	case "postgres", "postgresql":
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			c.Host, c.Port, c.User, c.Password, c.DBName)
	case "sqlite", "sqlite3":
		return c.DBName
	}
	// 默认 MySQL
	// clientFoundRows: UPDATE 返回匹配行数而不是变更行数
	// interpolateParams: 由驱动转义参数，SHOW TABLES LIKE ? 不走服务端预处理
	mc := mysql.NewConfig()
	mc.User = c.User
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%d", c.Host, c.Port)
	mc.DBName = c.DBName
	mc.ParseTime = true
	mc.Loc = time.Local
	mc.ClientFoundRows = true
	mc.InterpolateParams = true
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}

// SetDefaults 设置默认值
func (c *DatabaseConfig) SetDefaults() {
	if c.Driver == "" {
		c.Driver = "mysql"
	}
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		switch c.Driver {
		case "postgres", "postgresql":
			c.Port = 5432
		default:
			c.Port = 3306
		}
	}
	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = 10
	}
	if c.MaxOpenConns == 0 {
		c.MaxOpenConns = 100
	}
	if c.ConnMaxLifetime == 0 {
		c.ConnMaxLifetime = 3600 // 1 hour
	}
}
