package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vfg2006/sales-report-api/internal/domain"
)

type Config struct {
	App       App       `mapstructure:",squash"`
	Server    Server    `mapstructure:",squash"`
	Database  Database  `mapstructure:",squash"`
	Auth      Auth      `mapstructure:",squash"`
	Report    Report    `mapstructure:",squash"`
	Store     Store     `mapstructure:",squash"`
	Inventory Inventory `mapstructure:",squash"`
	Contacts  Contacts  `mapstructure:",squash"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
	Path     string `mapstructure:"database_path"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret    string            `mapstructure:"auth_secret"`
	TTLHours  int               `mapstructure:"auth_ttl_hours"`
	Operators []string          `mapstructure:"auth_operators"`
	Parsed    []domain.Operator `mapstructure:"-"`
}

type Report struct {
	ProfilesFile string `mapstructure:"report_profiles_file"`
	MaxUploadMB  int64  `mapstructure:"report_max_upload_mb"`
}

type Store struct {
	Backend      string `mapstructure:"store_backend"`
	Dir          string `mapstructure:"store_dir"`
	FlushCron    string `mapstructure:"store_flush_cron"`
	FlushEnabled bool   `mapstructure:"store_flush_enabled"`
}

type Inventory struct {
	NonWorkedDays int     `mapstructure:"inventory_non_worked_days"`
	RecentWeight  float64 `mapstructure:"inventory_recent_weight"`
	CoverDays     int     `mapstructure:"inventory_cover_days"`
}

type Contacts struct {
	ScriptArms []string `mapstructure:"contacts_script_arms"`
}

const (
	BackendMemory   = "memory"
	BackendCSV      = "csv"
	BackendSQL      = "sql"
	DriverPostgres  = "postgres"
	DriverSQLite    = "sqlite"
	defaultTTLHours = 12
)

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173,https://sales-report-web.vercel.app")

	viper.SetDefault("DATABASE_DRIVER", DriverSQLite)
	viper.SetDefault("DATABASE_URL", "localhost:5432/ventas")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_PATH", "data/ventas.db")

	viper.SetDefault("AUTH_SECRET", "your_secret_key")
	viper.SetDefault("AUTH_TTL_HOURS", defaultTTLHours)
	viper.SetDefault("AUTH_OPERATORS", "admin:0000:admin") // ONLY LOCAL

	viper.SetDefault("REPORT_PROFILES_FILE", "")
	viper.SetDefault("REPORT_MAX_UPLOAD_MB", 20)

	viper.SetDefault("STORE_BACKEND", BackendCSV)
	viper.SetDefault("STORE_DIR", "data")
	viper.SetDefault("STORE_FLUSH_CRON", "*/5 * * * *") // A cada 5 minutos
	viper.SetDefault("STORE_FLUSH_ENABLED", true)

	// Heurística de reposição
	viper.SetDefault("INVENTORY_NON_WORKED_DAYS", 10)
	viper.SetDefault("INVENTORY_RECENT_WEIGHT", 0.6)
	viper.SetDefault("INVENTORY_COVER_DAYS", 30)

	viper.SetDefault("CONTACTS_SCRIPT_ARMS", "A,B")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.finish(); err != nil {
		return nil, err
	}

	return config, nil
}

// finish deriva os campos calculados e valida o que foi lido
func (c *Config) finish() error {
	switch c.Database.Driver {
	case DriverPostgres:
		c.Database.DSN = fmt.Sprintf(
			"%s://%s:%s@%s",
			c.Database.Driver,
			c.Database.User,
			c.Database.Password,
			c.Database.URL,
		)
	case DriverSQLite:
		c.Database.DSN = c.Database.Path
	default:
		return fmt.Errorf("driver de banco não suportado: %q", c.Database.Driver)
	}

	switch c.Store.Backend {
	case BackendMemory, BackendCSV, BackendSQL:
	default:
		return fmt.Errorf("backend de armazenamento não suportado: %q", c.Store.Backend)
	}

	operators, err := ParseOperators(c.Auth.Operators)
	if err != nil {
		return err
	}
	c.Auth.Parsed = operators

	if c.Auth.TTLHours <= 0 {
		c.Auth.TTLHours = defaultTTLHours
	}

	c.Server.AllowedOrigins = trimAll(c.Server.AllowedOrigins)

	c.Contacts.ScriptArms = trimAll(c.Contacts.ScriptArms)
	if len(c.Contacts.ScriptArms) == 0 {
		c.Contacts.ScriptArms = []string{"A"}
	}

	if c.Inventory.RecentWeight < 0 || c.Inventory.RecentWeight > 1 {
		return fmt.Errorf("INVENTORY_RECENT_WEIGHT deve estar entre 0 e 1: %v", c.Inventory.RecentWeight)
	}

	return nil
}

// ParseOperators lê entradas "nome:pin[:papel]"; papel padrão é operador
func ParseOperators(entries []string) ([]domain.Operator, error) {
	operators := make([]domain.Operator, 0, len(entries))
	for _, entry := range trimAll(entries) {
		parts := strings.Split(entry, ":")
		if len(parts) < 2 || len(parts) > 3 || strings.TrimSpace(parts[0]) == "" || parts[1] == "" {
			return nil, fmt.Errorf("operador inválido em AUTH_OPERATORS: %q", entry)
		}

		op := domain.Operator{
			Name: strings.TrimSpace(parts[0]),
			PIN:  strings.TrimSpace(parts[1]),
			Role: domain.RoleOperator,
		}
		if len(parts) == 3 && strings.TrimSpace(parts[2]) != "" {
			op.Role = strings.TrimSpace(parts[2])
		}

		operators = append(operators, op)
	}
	return operators, nil
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
