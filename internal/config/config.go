package config

import (
	"fmt"
	"log"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env   string `yaml:"env" env:"MARS_ENV" env-default:"local"`
	Mongo struct {
		URI         string `yaml:"uri" env:"MONGO_URI" env-required:"true"`
		Database    string `yaml:"database" env:"MONGO_DATABASE" env-default:"mars"`
		User        string `yaml:"user" env:"MONGO_USER" env-default:""`
		Password    string `yaml:"password" env:"MONGO_PASSWORD" env-default:""`
		PingSeconds int    `yaml:"ping_seconds" env-default:"10"`
	} `yaml:"mongo"`
	Auth struct {
		Secret   string `yaml:"secret" env:"AUTH_SECRET" env-required:"true"`
		TokenTTL int    `yaml:"token_ttl_hours" env:"AUTH_TOKEN_TTL" env-default:"24"`
	} `yaml:"auth"`
	Rag struct {
		Provider       string   `yaml:"provider" env:"RAG_PROVIDER" env-default:"process"`
		Command        string   `yaml:"command" env:"RAG_COMMAND" env-default:"python"`
		Args           []string `yaml:"args"`
		TimeoutSeconds int      `yaml:"timeout_seconds" env:"RAG_TIMEOUT" env-default:"120"`
		OpenAIKey      string   `yaml:"openai_key" env:"OPENAI_API_KEY" env-default:""`
		OpenAIModel    string   `yaml:"openai_model" env-default:"gpt-4o-mini"`
	} `yaml:"rag"`
	Listen struct {
		BindIP string `yaml:"bind_ip" env:"BIND_IP" env-default:"127.0.0.1"`
		Port   string `yaml:"port" env:"PORT" env-default:"5800"`
	} `yaml:"listen"`
}

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("%s; %s", err, desc)
			instance = nil
			log.Fatal(err)
		}
	})
	return instance
}
