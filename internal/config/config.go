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
	Listen    string    `koanf:"listen"`
	Database  Database  `koanf:"db"`
	Company   Company   `koanf:"company"`
	Manager   Manager   `koanf:"manager"`
	Client    Client    `koanf:"client"`
	Allowance Allowance `koanf:"allowance"`
	Export    Export    `koanf:"export"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

type Company struct {
	Name    string `koanf:"name"`
	Nipc    string `koanf:"nipc"`
	Address string `koanf:"address"`
}

type Manager struct {
	Name     string `koanf:"name"`
	Address  string `koanf:"address"`
	Nifps    string `koanf:"nifps"`
	Category string `koanf:"category"`
}

// Client describes where the declared trips go: the visited client's address
// and the pool of objective descriptions assigned to trips.
type Client struct {
	Address    string   `koanf:"address"`
	Objectives []string `koanf:"objectives"`
}

// Allowance holds the day-selection and tiering policy knobs.
type Allowance struct {
	MaxDailyDefault float64 `koanf:"maxdailydefault"`
	MaxTotalDefault float64 `koanf:"maxtotaldefault"`
	// AvgTierYield is the expected fraction of the full daily rate a selected
	// day converts to once trip-position tiers are applied.
	AvgTierYield float64 `koanf:"avgtieryield"`
	// FirstDayFullProb < 1.0 enables the probabilistic variant where the first
	// day of a multi-day trip may get the 75% tier instead of 100%.
	FirstDayFullProb float64 `koanf:"firstdayfullprob"`
	// LastDayHalfProb > 0.0 enables the probabilistic variant where the last
	// day of a multi-day trip may get the 50% tier instead of 25%.
	LastDayHalfProb float64 `koanf:"lastdayhalfprob"`
	TripStartTime   string  `koanf:"tripstarttime"`
	TripEndTime     string  `koanf:"tripendtime"`
}

// Export describes the row block of the spreadsheet template the exported
// records are mapped onto.
type Export struct {
	StartRow int `koanf:"startrow"`
	MaxRow   int `koanf:"maxrow"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Listen: ":8181",
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "accounting",
			Pass:   "",
			Name:   "accounting",
			Schema: "accounting",
		},
		Company: Company{
			Name:    "Your Company Name",
			Nipc:    "000000000",
			Address: "Your Company Address",
		},
		Manager: Manager{
			Name:     "Your Name",
			Address:  "Your Address",
			Nifps:    "000000000",
			Category: "Gestor",
		},
		Client: Client{
			Address: "Parfois S.A., Rua de Sistelo, 755 - Lugar de Santegãos, 4435-429 Rio Tinto, Portugal",
			Objectives: []string{
				"Viagem a visitar cliente Parfois (HQ)",
				"Reunião com cliente Parfois",
				"Entrega de documentação a Parfois",
				"Visita técnica a Parfois",
				"Formação em cliente Parfois",
			},
		},
		Allowance: Allowance{
			MaxDailyDefault:  65,
			MaxTotalDefault:  1000,
			AvgTierYield:     0.80,
			FirstDayFullProb: 1.0,
			LastDayHalfProb:  0.0,
			TripStartTime:    "09:00",
			TripEndTime:      "18:00",
		},
		Export: Export{
			StartRow: 10,
			MaxRow:   35,
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
		Prefix: "ACCOUNTING_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "ACCOUNTING_")), "_", ".")
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
