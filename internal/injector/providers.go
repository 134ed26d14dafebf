package injector

import (
	"fmt"

	"github.com/google/wire"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gambo/ecs/internal/component"
	"github.com/gambo/ecs/internal/config"
	"github.com/gambo/ecs/internal/core/ecs"
	coresys "github.com/gambo/ecs/internal/core/system"
	"github.com/gambo/ecs/internal/scripting"
	"github.com/gambo/ecs/internal/system"
)

// App is everything a host loop needs: a context with its registry, the
// script engine and the logger.
type App struct {
	Config  *config.Config
	Log     *zap.Logger
	Context *coresys.Context
	Engine  *scripting.Engine
}

var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideRegistry,
	ProvideEngine,
	ProvideServices,
	ProvideCatalog,
	ProvideContext,
	wire.Struct(new(App), "*"),
)

// ProvideLogger builds the process logger from config.
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Logging.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Logging.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	log, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return log, nil
}

// ProvideRegistry returns a registry with the sample component factories installed.
func ProvideRegistry(log *zap.Logger) (*ecs.Registry, error) {
	r := ecs.NewRegistry(ecs.WithLogger(log))
	if err := component.Register(r); err != nil {
		return nil, err
	}
	return r, nil
}

// ProvideEngine loads the script directory, or returns an empty engine when
// scripting is disabled.
func ProvideEngine(cfg *config.Config, log *zap.Logger) (*scripting.Engine, func(), error) {
	dir := ""
	if cfg.Scripting.Enabled {
		dir = cfg.Scripting.Dir
	}
	engine, err := scripting.NewEngine(dir, log)
	if err != nil {
		return nil, nil, fmt.Errorf("init lua engine: %w", err)
	}
	return engine, engine.Close, nil
}

// ProvideServices is the resolver system constructors draw their
// parameters from.
func ProvideServices(cfg *config.Config, log *zap.Logger, engine *scripting.Engine) *coresys.Services {
	s := coresys.NewServices()
	coresys.Provide(s, cfg)
	coresys.Provide(s, cfg.Regen)
	coresys.Provide(s, log)
	coresys.Provide(s, engine)
	coresys.Provide(s, scripting.TypeLookup(component.TypeByName))
	return s
}

func ProvideCatalog() *coresys.Catalog {
	return system.NewCatalog().MustRegister(scripting.NewScriptSystem)
}

func ProvideContext(r *ecs.Registry, services *coresys.Services, cat *coresys.Catalog, log *zap.Logger) *coresys.Context {
	return coresys.NewContext(
		coresys.WithRegistry(r),
		coresys.WithResolver(services),
		coresys.WithCatalog(cat),
		coresys.WithLogger(log),
	)
}
