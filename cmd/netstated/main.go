package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"netstate/internal/config"
	"netstate/pkg/iface"
	"netstate/pkg/link"
	"netstate/pkg/reconcile"
	"netstate/pkg/state"
)

type daemon struct {
	logger  *logrus.Logger
	config  *config.Config
	manager *reconcile.Manager
}

func main() {
	var (
		configFile = flag.String("config", "/etc/netstate/netstated.yaml", "Path to daemon configuration file")
		stateFile  = flag.String("state-file", "", "Desired state file (overrides configuration)")
		dryRun     = flag.Bool("dry-run", false, "Compute plans without touching the system")
		logLevel   = flag.String("log-level", "", "Log level (overrides configuration)")
	)
	flag.Parse()

	logger := logrus.New()

	var cfg *config.Config
	if _, err := os.Stat(*configFile); err == nil {
		cfg, err = config.LoadConfig(*configFile)
		if err != nil {
			logger.WithError(err).Fatal("failed to load configuration file")
		}
		logger.WithField("config_file", *configFile).Info("loaded configuration from file")
	} else {
		cfg = config.DefaultConfig()
		logger.Info("using default configuration")
	}

	if *stateFile != "" {
		cfg.StateFile = *stateFile
	}
	if *dryRun {
		cfg.DryRun = true
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.WithError(err).Fatal("invalid log level")
	}
	logger.SetLevel(level)

	d := &daemon{
		logger:  logger,
		config:  cfg,
		manager: reconcile.NewManager(logger),
	}

	logger.WithFields(logrus.Fields{
		"state_file": cfg.StateFile,
		"interval":   cfg.Interval().String(),
		"dry_run":    cfg.DryRun,
	}).Info("starting netstated")

	d.reconcileOnce()

	monitor, err := newFSMonitor(cfg.StateFile, logger, d.reconcileOnce)
	if err != nil {
		logger.WithError(err).Fatal("failed to create file system monitor")
	}
	if err := monitor.start(); err != nil {
		logger.WithError(err).Fatal("failed to start file system monitoring")
	}

	ticker := time.NewTicker(cfg.Interval())
	defer ticker.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-ticker.C:
			d.reconcileOnce()
		case sig := <-sigChan:
			logger.WithField("signal", sig.String()).Info("shutting down")
			monitor.stop()
			return
		}
	}
}

// reconcileOnce runs one full reconciliation pass against the desired state
// file
func (d *daemon) reconcileOnce() {
	desired, err := state.Load(d.config.StateFile)
	if err != nil {
		d.logger.WithError(err).Error("failed to load desired state")
		return
	}

	current := d.observeCurrent(desired)

	plan, err := d.manager.Reconcile(desired, current)
	if err != nil {
		d.logger.WithError(err).Error("reconciliation aborted")
		return
	}

	d.logger.WithFields(logrus.Fields{
		"apply":      len(plan.Apply),
		"create_vfs": len(plan.CreateVFs),
		"delete":     len(plan.DeleteIfaces),
	}).Info("computed reconciliation plan")

	if d.config.DryRun {
		d.logger.Info("dry run, not applying plan")
		return
	}
	d.applyPlan(plan)
}

// observeCurrent reads the live state of every interface named in the
// desired document. Interfaces that cannot be read are reconciled without
// current state.
func (d *daemon) observeCurrent(desired *state.NetworkState) *state.NetworkState {
	current := &state.NetworkState{}
	for _, des := range desired.Interfaces {
		cur, err := link.CurrentIface(des.Name)
		if err != nil {
			d.logger.WithError(err).WithField("interface", des.Name).
				Warn("failed to read current interface state")
			continue
		}
		current.Interfaces = append(current.Interfaces, cur)
	}
	return current
}

// applyPlan pushes the SR-IOV part of the plan to the kernel. VF interfaces
// planned for deletion disappear when the shrunken VF count is written, so
// they only need to be reported.
func (d *daemon) applyPlan(plan *reconcile.Plan) {
	for _, ifc := range plan.Apply {
		if !ifc.IsSRIOV() {
			continue
		}
		d.applySRIOV(ifc)
	}
	if len(plan.DeleteIfaces) > 0 {
		d.logger.WithField("interfaces", plan.DeleteIfaces).Info("interfaces removed by this pass")
	}
}

func (d *daemon) applySRIOV(ifc *iface.EthernetIface) {
	log := d.logger.WithField("interface", ifc.Name)

	if max, err := link.MaxVFs(ifc.Name); err == nil && ifc.SRIOVTotalVFs() > max {
		log.WithFields(logrus.Fields{
			"total_vfs": ifc.SRIOVTotalVFs(),
			"max_vfs":   max,
		}).Error("declared total-vfs exceeds device limit, skipping")
		return
	}

	if err := link.SetNumVFs(ifc.Name, ifc.SRIOVTotalVFs()); err != nil {
		log.WithError(err).Error("failed to set VF count")
		return
	}
	if err := link.ApplyVFAttrs(ifc.Name, ifc.SRIOVVFs()); err != nil {
		log.WithError(err).Error("failed to apply VF attributes")
		return
	}
	log.WithField("total_vfs", ifc.SRIOVTotalVFs()).Info("applied SR-IOV configuration")
}
