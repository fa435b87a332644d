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

type Application struct {
	Host     string   `koanf:"host"`
	Frontend Frontend `koanf:"frontend"`
	Database Database `koanf:"db"`
	Snapshot Snapshot `koanf:"snapshot"`
	Gemini   Gemini   `koanf:"gemini"`
	Layout   Layout   `koanf:"layout"`
}

type Frontend struct {
	Enabled bool `koanf:"enabled"`
}

type Database struct {
	Path string `koanf:"path"`
}

// Snapshot configures the JSON blob backup written on every event change.
type Snapshot struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

type Gemini struct {
	ApiKey string `koanf:"apikey"`
	Model  string `koanf:"model"`
	// TimeoutSeconds bounds the single generateContent round-trip.
	TimeoutSeconds int `koanf:"timeout"`
}

// Layout holds the logical sizing of time-grid views and the month cell cap.
type Layout struct {
	HourHeight       float64 `koanf:"hourheight"`
	MinEventHeight   float64 `koanf:"mineventheight"`
	MaxVisiblePerDay int     `koanf:"maxvisibleperday"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Host: "http://localhost:3000",
		Frontend: Frontend{
			Enabled: true,
		},
		Database: Database{
			Path: "lumina.db",
		},
		Snapshot: Snapshot{
			Enabled: true,
			Path:    "lumina_events.json",
		},
		Gemini: Gemini{
			Model:          "gemini-3-flash-preview",
			TimeoutSeconds: 20,
		},
		Layout: Layout{
			HourHeight:       80,
			MinEventHeight:   20,
			MaxVisiblePerDay: 3,
		},
	}, "koanf"), nil)
	if err != nil {
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

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "LUMINA_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "LUMINA_")), "_", ".")
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
