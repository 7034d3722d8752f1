package config

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fine policy names accepted by CATALOG_FINE_POLICY.
const (
	FinePolicySimulated = "simulated"
	FinePolicyDueDate   = "due_date"
)

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text" validate:"oneof=text json"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[recordkeeper]"`
}

type Fine struct {
	Policy           string          `envconfig:"POLICY" default:"simulated" validate:"oneof=simulated due_date"`
	DailyRate        decimal.Decimal `envconfig:"DAILY_RATE" default:"1"`
	MaxSimulatedDays int             `envconfig:"MAX_SIMULATED_DAYS" default:"15" validate:"gte=1"`
	Seed             uint64          `envconfig:"SEED" default:"0"`
}

type Catalog struct {
	Fine       *Fine         `envconfig:"FINE" validate:"required"`
	LoanPeriod time.Duration `envconfig:"LOAN_PERIOD" default:"336h" validate:"gt=0"`
}

type App struct {
	Env     string   `envconfig:"APP_ENV" default:"development"`
	Log     *Log     `envconfig:"LOG" validate:"required"`
	Catalog *Catalog `envconfig:"CATALOG" validate:"required"`
}
