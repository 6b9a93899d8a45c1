package config

import "github.com/ilyakaznacheev/cleanenv"

// Config is the full environment surface of the gateway. GeminiAPIKey has
// no default on purpose: the coping and chat capabilities cannot run
// without it, so startup fails fast when it is absent.
type Config struct {
	Port            string `env:"PORT" env-default:"8080"`
	ModelDir        string `env:"MODEL_DIR" env-default:"./models"`
	GeminiAPIKey    string `env:"GEMINI_API_KEY" env-required:"true"`
	ChatModel       string `env:"CHAT_MODEL" env-default:"gemini-2.5-flash"`
	GenerationModel string `env:"GENERATION_MODEL" env-default:"gemini-2.5-flash"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
