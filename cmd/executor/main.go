/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/linkedpipes/executor/internal/execution/journal"
	"github.com/linkedpipes/executor/internal/execution/model"
	"github.com/linkedpipes/executor/internal/execution/plan"
	"github.com/linkedpipes/executor/internal/execution/resource"
	"github.com/linkedpipes/executor/internal/execution/runner"
	"github.com/linkedpipes/executor/internal/execution/store"
	"github.com/linkedpipes/executor/internal/pipeline/loader"
	pipelinemodel "github.com/linkedpipes/executor/internal/pipeline/model"
	"github.com/linkedpipes/executor/internal/system/config"
	"github.com/linkedpipes/executor/internal/system/constants"
	"github.com/linkedpipes/executor/internal/system/database/provider"
	"github.com/linkedpipes/executor/internal/system/log"
	"github.com/linkedpipes/executor/internal/system/metrics"
	"github.com/linkedpipes/executor/internal/system/objectstore"
	"github.com/linkedpipes/executor/internal/system/utils"
)

// modeFlag collects repeated -mode IRI=MODE arguments.
type modeFlag map[string]pipelinemodel.ExecutionMode

func (m modeFlag) String() string {
	parts := make([]string, 0, len(m))
	for iri, mode := range m {
		parts = append(parts, iri+"="+string(mode))
	}
	return strings.Join(parts, ",")
}

func (m modeFlag) Set(value string) error {
	iri, name, ok := strings.Cut(value, "=")
	if !ok || iri == "" {
		return fmt.Errorf("expected IRI=MODE, got %q", value)
	}
	mode, valid := loader.ParseMode(name)
	if !valid {
		return fmt.Errorf("unknown execution mode %q", name)
	}
	m[iri] = mode
	return nil
}

type options struct {
	home        string
	pipeline    string
	executionID string
	mapFrom     string
	modes       modeFlag
}

func main() {
	logger := log.GetLogger()

	opts := parseFlags()
	home := getExecutorHome(logger, opts.home)

	// Environment files are optional.
	if err := godotenv.Load(filepath.Join(home, ".env")); err != nil && !os.IsNotExist(err) {
		logger.Warn("Failed to load .env file", log.Error(err))
	}

	cfg := initExecutorConfigurations(logger, home)

	status, err := execute(logger, home, cfg, opts)
	if err != nil {
		logger.Fatal("Execution could not be started", log.Error(err))
	}
	if status != model.StatusFinished {
		os.Exit(1)
	}
}

func parseFlags() options {
	opts := options{modes: modeFlag{}}
	flag.StringVar(&opts.home, "home", "", "Path to the executor home directory")
	flag.StringVar(&opts.pipeline, "pipeline", "", "Path to the pipeline definition")
	flag.StringVar(&opts.executionID, "execution", "", "Execution identifier, generated when empty")
	flag.StringVar(&opts.mapFrom, "map-from", "", "Directory or id of the execution mapped components reuse")
	flag.Var(opts.modes, "mode", "Execution mode override as IRI=MODE, may be repeated")
	flag.Parse()
	return opts
}

// getExecutorHome returns the executor home directory.
func getExecutorHome(logger *log.Logger, fromFlag string) string {
	if fromFlag != "" {
		logger.Info("Using executor home from command line argument", log.String("home", fromFlag))
		return fromFlag
	}
	if fromEnv := os.Getenv(constants.HomeEnvironmentVariable); fromEnv != "" {
		return fromEnv
	}
	dir, err := os.Getwd()
	if err != nil {
		logger.Fatal("Failed to get current working directory", log.Error(err))
	}
	return dir
}

// initExecutorConfigurations loads the configuration and initializes the executor runtime.
func initExecutorConfigurations(logger *log.Logger, home string) *config.Config {
	cfg, err := config.LoadConfig(filepath.Join(home, constants.DefaultConfigFile))
	if err != nil {
		logger.Fatal("Failed to load configurations", log.Error(err))
	}
	if err := config.InitializeExecutorRuntime(home, cfg); err != nil {
		logger.Fatal("Failed to initialize executor runtime", log.Error(err))
	}
	return cfg
}

func execute(logger *log.Logger, home string, cfg *config.Config, opts options) (model.ExecutionStatus, error) {
	executionID := opts.executionID
	if executionID == "" {
		executionID = uuid.NewString()
	}
	executionsRoot := cfg.Executor.ExecutionsDirectory
	if executionsRoot == "" {
		executionsRoot = constants.DefaultExecutionsDirectory
	}
	if !filepath.IsAbs(executionsRoot) {
		executionsRoot = filepath.Join(home, executionsRoot)
	}
	resources := resource.NewFileSystem(filepath.Join(executionsRoot, executionID), executionsRoot)
	logger = logger.With(log.String(log.LoggerKeyExecutionID, executionID))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.NewMetrics(cfg.Metrics.Namespace)
	}

	var dbProvider provider.DBProviderInterface
	if cfg.Journal.DatabaseEnabled {
		dbProvider = provider.GetDBProvider()
		defer func() {
			if err := dbProvider.Close(); err != nil {
				logger.Warn("Failed to close runtime database", log.Error(err))
			}
		}()
	}

	journalOptions := []journal.Option{
		journal.WithPersisters(buildPersisters(ctx, logger, cfg, resources, dbProvider)...),
		journal.WithMetrics(m),
	}
	if cfg.Executor.DebugLog {
		logDir, err := resources.LogDirectory()
		if err != nil {
			return model.StatusFailed, err
		}
		executionLog, err := log.NewExecutionLogger(logDir)
		if err != nil {
			return model.StatusFailed, err
		}
		defer func() {
			if err := executionLog.Close(); err != nil {
				logger.Warn("Failed to close execution log", log.Error(err))
			}
		}()
		journalOptions = append(journalOptions, journal.WithExecutionLogger(executionLog))
	}
	j := journal.New(executionID, constants.ExecutionIRIPrefix+executionID, resources.Root(), journalOptions...)

	var status model.ExecutionStatus
	pipeline, previous, err := loadInput(resources, opts)
	if err != nil {
		logger.Error("Pipeline cannot be executed", log.Error(err))
		status = recordInvalidPipeline(j, err)
	} else {
		runnerOptions := []runner.Option{runner.WithPrevious(previous), runner.WithMetrics(m)}
		if m != nil {
			runnerOptions = append(runnerOptions,
				runner.WithObservers(runner.NewMetricsObserver(m, resources.LogDirectory)))
		}
		status = runner.New(executionID, pipeline, j, resources, runnerOptions...).Run(ctx)
	}

	if err := j.LastPersistenceError(); err != nil {
		logger.Warn("Execution record was not fully persisted", log.Error(err))
	}
	logger.Info("Execution ended", log.String("status", status.String()),
		log.String("directory", resources.Root()))
	return status, nil
}

// loadInput stages and loads the pipeline definition and the execution mapped components reuse.
func loadInput(resources *resource.FileSystem, opts options) (*pipelinemodel.Pipeline, *plan.Previous, error) {
	definitionFile, err := stageDefinition(resources, opts.pipeline)
	if err != nil {
		return nil, nil, err
	}
	pipeline, err := loader.LoadFile(definitionFile, opts.modes)
	if err != nil {
		return nil, nil, err
	}
	if opts.mapFrom == "" {
		return pipeline, nil, nil
	}
	previous, err := plan.LoadPrevious(previousRoot(resources, opts.mapFrom))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load previous execution: %w", err)
	}
	return pipeline, previous, nil
}

// previousRoot returns the directory of the previous execution. mapFrom is either a directory or
// the id of an execution stored next to this one.
func previousRoot(resources *resource.FileSystem, mapFrom string) string {
	if info, err := os.Stat(mapFrom); err == nil && info.IsDir() {
		return mapFrom
	}
	return resources.ResolveExecutionPath(mapFrom, "")
}

// recordInvalidPipeline records an execution whose pipeline could not be loaded.
func recordInvalidPipeline(j *journal.Journal, err error) model.ExecutionStatus {
	for _, event := range []journal.Event{
		journal.ExecutionBegin(), journal.PipelineInvalid(err), journal.ExecutionEnd(),
	} {
		_ = j.Apply(event)
	}
	return j.Status()
}

// stageDefinition copies the pipeline definition into the execution directory so the execution
// is self contained. Without a path the definition already staged there is used.
func stageDefinition(resources *resource.FileSystem, path string) (string, error) {
	if path == "" {
		return resources.PipelineDefinitionFile(), nil
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("failed to read pipeline definition: %w", err)
	}
	target := resources.PipelineDefinitionFile()
	if err := utils.WriteFileAtomic(target, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to stage pipeline definition: %w", err)
	}
	return target, nil
}

// buildPersisters returns the journal persisters enabled in the configuration. The file store is
// always first; optional stores that cannot be set up are skipped with a warning.
func buildPersisters(ctx context.Context, logger *log.Logger, cfg *config.Config,
	resources resource.Resolver, dbProvider provider.DBProviderInterface) []journal.Persister {
	persisters := []journal.Persister{store.NewFileStore(resources)}

	if cfg.Journal.DatabaseEnabled && dbProvider != nil {
		dbClient, err := dbProvider.GetDBClient(constants.RuntimeDBName)
		if err != nil {
			logger.Warn("Runtime database is not available", log.Error(err))
		} else {
			persisters = append(persisters, store.NewDBStore(dbClient))
		}
	}

	if cfg.Journal.ArchiveEnabled {
		objects, err := objectstore.NewMinIOStore(ctx, cfg.ObjectStore)
		if err != nil {
			logger.Warn("Object store is not available", log.Error(err))
		} else {
			persisters = append(persisters, store.NewArchiveStore(objects, "executions", store.DefaultArchiveTimeout))
		}
	}
	return persisters
}
