package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"cricket-mcs/internal/cricket"
	"cricket-mcs/internal/cricsheet"
	"cricket-mcs/internal/simulation"
	"cricket-mcs/internal/stats"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// SimulationConfig holds the engine defaults; CLI flags and tool arguments override them.
type SimulationConfig struct {
	Balls        int
	Trials       int
	Workers      int
	Seed         int64 // 0 seeds from the clock
	WicketPolicy simulation.WicketPolicy
	StopAtAllOut bool
}

// AppConfig holds the complete application configuration.
type AppConfig struct {
	DataPath            string
	MatchDir            string
	LogDir              string
	CacheDir            string
	ArchivePath         string
	ModelPath           string
	CricsheetURL        string
	Simulation          SimulationConfig
	EnableMermaidCharts bool
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// The binary's directory wins over the working directory: MCP hosts launch from arbitrary cwds.
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := filepath.Join(dataPath, "logs")
	cacheDir := filepath.Join(dataPath, "cache")
	matchDir := filepath.Join(dataPath, "data")

	for _, dir := range []string{logDir, cacheDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Warn().Err(err).Str("path", dir).Msg("Failed to create directory")
		}
	}

	sim, err := loadSimulation()
	if err != nil {
		return nil, err
	}

	cfg := &AppConfig{
		DataPath:            dataPath,
		MatchDir:            matchDir,
		LogDir:              logDir,
		CacheDir:            cacheDir,
		ArchivePath:         filepath.Join(cacheDir, "simulations.db"),
		ModelPath:           filepath.Join(cacheDir, "model.json"),
		CricsheetURL:        getEnv("CRICSHEET_URL", cricsheet.DefaultURL),
		Simulation:          sim,
		EnableMermaidCharts: getEnvBool("ENABLE_MERMAID_CHARTS", true),
	}

	return cfg, nil
}

func loadSimulation() (SimulationConfig, error) {
	policy, err := simulation.ParseWicketPolicy(getEnv("WICKET_POLICY", string(simulation.WicketOnWalk)))
	if err != nil {
		return SimulationConfig{}, fmt.Errorf("WICKET_POLICY: %w", err)
	}

	sim := SimulationConfig{
		Balls:        getEnvInt("SIM_BALLS", simulation.DefaultBalls),
		Trials:       getEnvInt("SIM_TRIALS", 1000),
		Workers:      getEnvInt("SIM_WORKERS", 4),
		Seed:         int64(getEnvInt("SIM_SEED", 0)),
		WicketPolicy: policy,
		StopAtAllOut: getEnvBool("STOP_AT_ALL_OUT", false),
	}

	if sim.Balls <= 0 || sim.Trials <= 0 || sim.Workers <= 0 {
		return SimulationConfig{}, fmt.Errorf("%w: SIM_BALLS, SIM_TRIALS and SIM_WORKERS must be positive",
			cricket.ErrInvalidInput)
	}
	return sim, nil
}

// NewEngine builds an engine for model with the configured seed and wicket options applied.
func (c SimulationConfig) NewEngine(model stats.Model) *simulation.Engine {
	e := simulation.NewEngine(model)
	if c.Seed != 0 {
		e.SetSeed(c.Seed)
	}
	e.SetWicketPolicy(c.WicketPolicy)
	e.SetStopAtAllOut(c.StopAtAllOut)
	return e
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring non-integer environment value")
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
