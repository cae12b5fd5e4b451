// Package config fornece as estruturas e a função de carregamento da
// configuração da aplicação a partir de um arquivo YAML e variáveis de ambiente.
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config estrutura geral com todas as seções de configuração.
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING" env-required:"true"`
	AdminEmail              string `yaml:"admin_email" env:"ADMIN_EMAIL" env-required:"true"`
	AppURL                  string `yaml:"app_url" env:"APP_URL" env-default:"http://localhost:5173"`
	RedisConnection         `yaml:"redis_connection"`
	RabbitMQ                `yaml:"rabbitmq"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	SMTP                    `yaml:"smtp"`
	ObjectStorage           `yaml:"object_storage"`
}

// HTTPServer parâmetros do servidor HTTP.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection parâmetros da conexão com o redis.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS" env-required:"true"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user" env:"REDIS_USER"`
	DB           int           `yaml:"db" env-default:"0"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// RabbitMQ parâmetros da conexão com o broker de mensagens.
type RabbitMQ struct {
	RabbitMQURL        string        `yaml:"rabbitmq_url" env:"RABBITMQ_URL" env-required:"true"`
	RabbitMQMaxRetries int           `yaml:"rabbitmq_max_retries" env-default:"5"`
	RabbitMQRetryDelay time.Duration `yaml:"rabbitmq_retry_delay" env-default:"3s"`
}

// JWTToken parâmetros para emissão e validação de tokens.
type JWTToken struct {
	JWTSecretKey  string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY" env-required:"true"`
	TokenTTL      time.Duration `yaml:"token_ttl" env-default:"24h"`
	ResetTokenTTL time.Duration `yaml:"reset_token_ttl" env-default:"1h"`
}

// SMTP parâmetros para envio de e-mails transacionais.
type SMTP struct {
	SMTPHost string `yaml:"smtp_host" env:"SMTP_HOST"`
	SMTPPort string `yaml:"smtp_port" env:"SMTP_PORT" env-default:"587"`
	SMTPUser string `yaml:"smtp_user" env:"SMTP_USER"`
	SMTPPass string `yaml:"smtp_pass" env:"SMTP_PASS"`
}

// ObjectStorage parâmetros do armazenamento de arquivos (compatível com S3).
type ObjectStorage struct {
	StorageEndpoint  string `yaml:"storage_endpoint" env:"OBJECT_STORAGE_ENDPOINT" env-required:"true"`
	StorageAccessKey string `yaml:"storage_access_key" env:"OBJECT_STORAGE_ACCESS_KEY" env-required:"true"`
	StorageSecretKey string `yaml:"storage_secret_key" env:"OBJECT_STORAGE_SECRET_KEY" env-required:"true"`
	StorageBucket    string `yaml:"storage_bucket" env-default:"apostilas"`
	StorageUseSSL    bool   `yaml:"storage_use_ssl" env-default:"false"`
	StoragePublicURL string `yaml:"storage_public_url" env:"OBJECT_STORAGE_PUBLIC_URL"`
}

// MustLoad carrega a configuração apontada por CONFIG_PATH.
// A ausência do arquivo ou de qualquer chave obrigatória encerra o processo.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
