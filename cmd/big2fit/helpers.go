package big2fit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/config"
	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/kv"
	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/logging"
	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/model"
	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/service"
	"github.com/spf13/cobra"
)

type appEnv struct {
	cfg     *config.Config
	logger  logging.Logger
	store   kv.Store
	session *service.Session
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if storeBackend != "" {
		cfg.Store = strings.ToLower(strings.TrimSpace(storeBackend))
	} else if dbPath != "" {
		cfg.Store = config.StoreSQLite
	} else if dataFile != "" {
		cfg.Store = config.StoreFile
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if dataFile != "" {
		cfg.DataFile = dataFile
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// withStore opens the configured store without touching the session, so
// repair commands still run when the session keys are unreadable.
func withStore(cmd *cobra.Command, run func(ctx context.Context, env *appEnv) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := kv.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()
	return run(ctx, &appEnv{cfg: cfg, logger: logger, store: store})
}

// withSession restores the logged-in account and applies --date on top of
// withStore before calling run.
func withSession(cmd *cobra.Command, run func(ctx context.Context, env *appEnv) error) error {
	return withStore(cmd, func(ctx context.Context, env *appEnv) error {
		env.session = service.NewSession(env.store, service.SessionOptions{BcryptCost: env.cfg.BcryptCost, Logger: env.logger})
		if err := env.session.Restore(ctx); err != nil {
			return fmt.Errorf("%w (run `big2fit doctor --fix` or restore a backup)", err)
		}
		if err := applyDateFlag(env.session); err != nil {
			return err
		}
		return run(ctx, env)
	})
}

// withLog loads the active day's log, runs mutate, and saves the log if
// mutate changed it.
func withLog(cmd *cobra.Command, mutate func(ctx context.Context, env *appEnv, log *model.DailyLog) error) error {
	return withSession(cmd, func(ctx context.Context, env *appEnv) error {
		if err := requireLogin(env); err != nil {
			return err
		}
		log, err := env.session.Log(ctx)
		if err != nil {
			return err
		}
		if err := mutate(ctx, env, log); err != nil {
			return err
		}
		return env.session.SaveLog(ctx, log)
	})
}

func applyDateFlag(s *service.Session) error {
	v := strings.TrimSpace(activeDate)
	switch strings.ToLower(v) {
	case "":
		return nil
	case "today", "prev", "next":
		return s.ChangeDate(v)
	}
	return s.SetDate(v)
}

func requireLogin(env *appEnv) error {
	if !env.session.IsAuthenticated() {
		return fmt.Errorf("%w: run `big2fit login` or `big2fit signup` first", service.ErrNotAuthenticated)
	}
	return nil
}

func describeAuthError(err error) error {
	if errors.Is(err, service.ErrInvalidCredentials) {
		return fmt.Errorf("login failed: %w", err)
	}
	return err
}

func parseNonNegativeIntArg(name, value string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v < 0 {
		return 0, fmt.Errorf("%s must be >= 0", name)
	}
	return v, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}

func formatQty(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
