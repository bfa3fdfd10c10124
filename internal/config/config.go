package config

import "os"

type Config struct {
	Port           string
	MongoURI       string
	MongoDatabase  string
	JWTSecret      string
	RedisAddr      string
	RedisPassword  string
	RabbitURI      string
	RabbitExchange string
	AllowOrigin    string
}

func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "3000"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:  getEnv("MONGO_DATABASE", "quizhub"),
		JWTSecret:      getEnv("JWT_SECRET", "change-this-in-production"),
		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RabbitURI:      getEnv("RABBITMQ_URI", ""),
		RabbitExchange: getEnv("RABBITMQ_EXCHANGE", ""),
		AllowOrigin:    getEnv("ALLOW_ORIGIN", "http://localhost:5173"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
