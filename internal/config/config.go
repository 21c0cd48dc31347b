package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const envPrefix = "VENUECAL_"

type Application struct {
	Host      string    `koanf:"host"`
	Listen    string    `koanf:"listen"`
	Google    Google    `koanf:"google"`
	Websocket Websocket `koanf:"websocket"`
	Database  Database  `koanf:"db"`
}

type Google struct {
	// CredentialsFile points to a service account key. Publishing to Google Calendar is off when empty.
	CredentialsFile string `koanf:"credentialsfile"`
	// TimeZone is sent along with event dates, which carry no zone of their own.
	TimeZone string `koanf:"timezone"`
}

func (g Google) Enabled() bool {
	return g.CredentialsFile != ""
}

type Websocket struct {
	Enabled bool `koanf:"enabled"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

func Defaults() Application {
	return Application{
		Host:   "http://localhost:3000",
		Listen: ":8181",
		Google: Google{
			TimeZone: "UTC",
		},
		Websocket: Websocket{
			Enabled: true,
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "venuecal",
			Pass:   "",
			Name:   "venuecal",
			Schema: "venuecal",
		},
	}
}

// Load reads struct defaults, then the optional YAML file at path, then VENUECAL_* environment
// variables, each layer overriding the previous one. VENUECAL_DB_HOST maps to db.host.
func Load(path string) (Application, error) {
	var k = koanf.New(".")

	if err := k.Load(structs.Provider(Defaults(), "koanf"), nil); err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}
	return app, nil
}
