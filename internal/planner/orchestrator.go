// Package planner runs a master key plan end to end: enumerate the key
// space, partition it into a hierarchy and hand the report to a sink.
package planner

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/dbsmedya/masterkey/internal/config"
	"github.com/dbsmedya/masterkey/internal/hierarchy"
	"github.com/dbsmedya/masterkey/internal/keyspace"
	"github.com/dbsmedya/masterkey/internal/logger"
	"github.com/dbsmedya/masterkey/internal/pin"
	"github.com/dbsmedya/masterkey/internal/report"
)

// Result contains statistics and status of one planning run.
type Result struct {
	RunID            string
	Level            int // 0 for a key space dump
	Master           pin.Key
	StartedAt        time.Time
	CompletedAt      time.Time
	Duration         time.Duration
	KeySpaceSize     int // every enumerated key, master included
	TotalChildren    int // key space minus the master
	SecondaryMasters int
	RemainingPool    int // children left after removing secondary masters
	Assigned         int // children placed under a (secondary) master
	Unassigned       int
	Clamped          bool
	ReportPath       string
}

// Orchestrator coordinates a planning run. It must be initialized with
// Initialize() before use.
type Orchestrator struct {
	runID       string
	config      *config.Config
	master      pin.Key
	sink        report.Sink
	logger      *logger.Logger
	keySpace    *keyspace.KeySpace
	initialized bool
}

// NewOrchestrator creates an orchestrator for cfg writing reports to sink.
// A nil logger falls back to the default logger.
func NewOrchestrator(cfg *config.Config, sink report.Sink, log *logger.Logger) (*Orchestrator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if sink == nil {
		return nil, fmt.Errorf("report sink is nil")
	}

	master, err := cfg.MasterKey()
	if err != nil {
		return nil, fmt.Errorf("invalid master key: %w", err)
	}

	if log == nil {
		log = logger.NewDefault()
	}

	runID := uuid.NewString()

	return &Orchestrator{
		runID:  runID,
		config: cfg,
		master: master,
		sink:   sink,
		logger: log.WithRunID(runID).WithMaster(master),
	}, nil
}

// Initialize enumerates the key space. Calling it again is a no-op.
func (o *Orchestrator) Initialize() error {
	if o.initialized {
		return nil
	}

	o.logger.Infow("Enumerating key space",
		"pins", o.master.Len(),
		"max_depth", o.config.MaxDepth,
	)

	ks, err := keyspace.Enumerate(o.master, o.config.MaxDepth)
	if err != nil {
		return fmt.Errorf("failed to enumerate key space: %w", err)
	}
	o.keySpace = ks
	o.initialized = true

	o.logger.Infow("Key space ready",
		"keys", ks.Len(),
		"children", len(ks.Children()),
	)

	return nil
}

// RunID identifies this orchestrator in logs and results.
func (o *Orchestrator) RunID() string {
	return o.runID
}

// KeySpace returns the enumerated key space, or nil before Initialize.
func (o *Orchestrator) KeySpace() *keyspace.KeySpace {
	return o.keySpace
}

// Run executes the hierarchy level selected in the configuration.
func (o *Orchestrator) Run() (*Result, error) {
	switch o.config.Hierarchy.Level {
	case config.LevelOne:
		return o.RunOneLevel()
	case config.LevelTwo:
		return o.RunTwoLevel()
	default:
		return nil, fmt.Errorf("unsupported hierarchy level %d", o.config.Hierarchy.Level)
	}
}

// RunOneLevel assigns children directly to the master and writes the
// one-level report.
func (o *Orchestrator) RunOneLevel() (*Result, error) {
	if !o.initialized {
		return nil, fmt.Errorf("orchestrator not initialized")
	}

	log := o.logger.WithLevel(config.LevelOne)
	result := o.newResult(config.LevelOne)

	log.Info("Starting one level master/child key combination")

	children := hierarchy.PartitionOneLevel(o.keySpace)
	result.Assigned = len(children)
	result.RemainingPool = result.TotalChildren
	result.Unassigned = result.TotalChildren - len(children)

	path, err := o.sink.Write(o.config.Output.OneLevelFile, func(w io.Writer) error {
		return report.WriteOneLevel(w, o.keySpace, children)
	})
	if err != nil {
		return nil, err
	}

	o.finish(log, result, path)
	return result, nil
}

// RunTwoLevel selects secondary masters, assigns every other child to the
// first secondary that can operate it and writes the two-level report.
func (o *Orchestrator) RunTwoLevel() (*Result, error) {
	if !o.initialized {
		return nil, fmt.Errorf("orchestrator not initialized")
	}

	log := o.logger.WithLevel(config.LevelTwo)
	result := o.newResult(config.LevelTwo)
	num := o.config.Hierarchy.SecondaryMasters

	log.Infow("Starting two level master/child key combination",
		"secondary_masters", num,
	)

	partition, err := hierarchy.PartitionTwoLevel(o.keySpace, num)
	if err != nil {
		return nil, fmt.Errorf("failed to partition key space: %w", err)
	}
	if err := partition.Verify(o.keySpace); err != nil {
		return nil, fmt.Errorf("incomplete partition: %w", err)
	}

	if partition.Clamped {
		log.Warnw("Requested more secondary masters than available children, selecting all",
			"requested", num,
			"children", result.TotalChildren,
		)
	}

	for _, sec := range partition.Secondaries {
		log.WithSecondary(sec.Key).Debugw("Secondary master assigned", "children", len(sec.Children))
	}

	result.SecondaryMasters = len(partition.Secondaries)
	result.RemainingPool = partition.Pool
	result.Assigned = partition.Assigned()
	result.Unassigned = len(partition.Unassigned)
	result.Clamped = partition.Clamped

	if result.Unassigned > 0 {
		log.Warnw("Some children match no secondary master",
			"unassigned", result.Unassigned,
			"listed_in_report", o.config.Output.IncludeUnassigned,
		)
	}

	path, err := o.sink.Write(o.config.Output.TwoLevelFile, func(w io.Writer) error {
		return report.WriteTwoLevel(w, o.keySpace, partition, o.config.Output.IncludeUnassigned)
	})
	if err != nil {
		return nil, err
	}

	o.finish(log, result, path)
	return result, nil
}

// DumpKeySpace writes every enumerated key with its assembly.
func (o *Orchestrator) DumpKeySpace() (*Result, error) {
	if !o.initialized {
		return nil, fmt.Errorf("orchestrator not initialized")
	}

	result := o.newResult(0)

	path, err := o.sink.Write(o.config.Output.KeySpaceFile, func(w io.Writer) error {
		return report.WriteKeySpace(w, o.keySpace)
	})
	if err != nil {
		return nil, err
	}

	o.finish(o.logger, result, path)
	return result, nil
}

func (o *Orchestrator) newResult(level int) *Result {
	children := o.keySpace.Len()
	if o.keySpace.Contains(o.master) {
		children--
	}
	return &Result{
		RunID:         o.runID,
		Level:         level,
		Master:        o.master,
		StartedAt:     time.Now(),
		KeySpaceSize:  o.keySpace.Len(),
		TotalChildren: children,
	}
}

func (o *Orchestrator) finish(log *logger.Logger, result *Result, path string) {
	result.ReportPath = path
	result.CompletedAt = time.Now()
	result.Duration = result.CompletedAt.Sub(result.StartedAt)

	log.Infow("Report written",
		"path", path,
		"assigned", result.Assigned,
		"unassigned", result.Unassigned,
		"duration", result.Duration,
	)
}
