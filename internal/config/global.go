package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"moderation-service/internal/utils/runtime"
)

const (
	kafkaHostFlag      = "kafka-host"
	kafkaPortFlag      = "kafka-port"
	mongoDBURIFlag     = "mongodb-uri"
	redisURLFlag       = "redis-url"
	discordTokenFlag   = "discord-token"
	superOperatorsFlag = "super-operators"
	developmentFlag    = "development"
	httpPortFlag       = "port"
)

type Config struct {
	Kafka   KafkaConfig
	MongoDB MongoDBConfig
	Redis   RedisConfig
	Discord DiscordConfig

	// SuperOperatorIds bypass permission checks everywhere. Reserved for the
	// bot operators themselves, not guild staff.
	SuperOperatorIds []string

	Development bool

	HTTPPort int
}

type KafkaConfig struct {
	Host string
	Port int
}

type MongoDBConfig struct {
	URI string
}

type RedisConfig struct {
	// URL of the shared cache. Empty means each instance caches in process.
	URL string
}

type DiscordConfig struct {
	Token string
}

func LoadGlobalConfig() Config {
	viper.SetDefault(kafkaHostFlag, "localhost")
	viper.SetDefault(kafkaPortFlag, 9092)
	viper.SetDefault(mongoDBURIFlag, "mongodb://localhost:27017")
	viper.SetDefault(redisURLFlag, "")
	viper.SetDefault(discordTokenFlag, "")
	viper.SetDefault(superOperatorsFlag, []string{})
	viper.SetDefault(developmentFlag, true)
	viper.SetDefault(httpPortFlag, 8080)

	pflag.String(kafkaHostFlag, viper.GetString(kafkaHostFlag), "Kafka host")
	pflag.Int32(kafkaPortFlag, viper.GetInt32(kafkaPortFlag), "Kafka port")
	pflag.String(mongoDBURIFlag, viper.GetString(mongoDBURIFlag), "MongoDB URI")
	pflag.String(redisURLFlag, viper.GetString(redisURLFlag), "Redis URL, empty to cache in process")
	pflag.String(discordTokenFlag, viper.GetString(discordTokenFlag), "Discord bot token")
	pflag.StringSlice(superOperatorsFlag, viper.GetStringSlice(superOperatorsFlag), "User IDs that bypass permission checks")
	pflag.Bool(developmentFlag, viper.GetBool(developmentFlag), "Development mode")
	pflag.Int32(httpPortFlag, viper.GetInt32(httpPortFlag), "HTTP port")
	pflag.Parse()

	// Bind the viper flags to environment variables
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	runtime.Must(viper.BindEnv(kafkaHostFlag))
	runtime.Must(viper.BindEnv(kafkaPortFlag))
	runtime.Must(viper.BindEnv(mongoDBURIFlag))
	runtime.Must(viper.BindEnv(redisURLFlag))
	runtime.Must(viper.BindEnv(discordTokenFlag))
	runtime.Must(viper.BindEnv(superOperatorsFlag))
	runtime.Must(viper.BindEnv(developmentFlag))
	runtime.Must(viper.BindEnv(httpPortFlag))

	return Config{
		Kafka: KafkaConfig{
			Host: viper.GetString(kafkaHostFlag),
			Port: int(viper.GetInt32(kafkaPortFlag)),
		},
		MongoDB: MongoDBConfig{
			URI: viper.GetString(mongoDBURIFlag),
		},
		Redis: RedisConfig{
			URL: viper.GetString(redisURLFlag),
		},
		Discord: DiscordConfig{
			Token: viper.GetString(discordTokenFlag),
		},
		SuperOperatorIds: viper.GetStringSlice(superOperatorsFlag),
		Development:      viper.GetBool(developmentFlag),
		HTTPPort:         int(viper.GetInt32(httpPortFlag)),
	}
}
