package reconcile

import (
	"github.com/sirupsen/logrus"

	"netstate/pkg/iface"
	"netstate/pkg/state"
	"netstate/pkg/types"
)

// Plan describes the actions needed to converge the live system to a
// desired state document.
type Plan struct {
	// Apply holds the merged, canonicalized and validated state of every
	// desired interface, in document order.
	Apply []*iface.EthernetIface
	// CreateVFs maps a PF name to the VF entities its total-vfs value
	// declares. The entities are transient and never written back to the
	// document.
	CreateVFs map[string][]*iface.EthernetIface
	// DeleteIfaces lists interface names that must be removed, either
	// because they were marked absent or because a shrinking total-vfs
	// orphaned them. Ascending VF slot order per PF.
	DeleteIfaces []string
}

// Manager computes reconciliation plans for desired state documents.
type Manager struct {
	logger *logrus.Logger
}

// NewManager creates a reconciliation manager.
func NewManager(logger *logrus.Logger) *Manager {
	if logger == nil {
		logger = logrus.New()
	}
	return &Manager{logger: logger}
}

// Reconcile merges the desired document over the observed current state and
// computes the convergence plan. The first invalid field aborts the whole
// document.
func (m *Manager) Reconcile(desired, current *state.NetworkState) (*Plan, error) {
	plan := &Plan{CreateVFs: make(map[string][]*iface.EthernetIface)}

	for _, des := range desired.Interfaces {
		merged := des.DeepCopy()
		cur := current.Lookup(des.Name)
		if cur != nil {
			merged.Merge(cur)
		} else {
			merged.Canonicalize()
		}

		if err := merged.PreEditValidationAndCleanup(); err != nil {
			m.logger.WithError(err).WithField("interface", merged.Name).
				Error("desired state failed validation")
			return nil, err
		}

		if merged.State == types.InterfaceStateAbsent {
			plan.DeleteIfaces = append(plan.DeleteIfaces, merged.Name)
			continue
		}

		if merged.IsSRIOV() {
			m.planSRIOV(plan, merged, cur)
		}

		plan.Apply = append(plan.Apply, merged)
	}

	return plan, nil
}

func (m *Manager) planSRIOV(plan *Plan, merged, cur *iface.EthernetIface) {
	if !merged.TotalVFsMatchesVFList(merged.SRIOVTotalVFs()) {
		m.logger.WithFields(logrus.Fields{
			"interface": merged.Name,
			"total-vfs": merged.SRIOVTotalVFs(),
			"vfs":       len(merged.SRIOVVFs()),
		}).Debug("VF descriptor list does not cover every VF slot")
	}
	merged.TrimExcessVFs()

	if vfs := merged.CreateVFIfaces(); len(vfs) > 0 {
		plan.CreateVFs[merged.Name] = vfs
	}

	if cur != nil && cur.SRIOVTotalVFs() > merged.SRIOVTotalVFs() {
		deleted := merged.DeletedVFNames(cur.SRIOVTotalVFs())
		m.logger.WithFields(logrus.Fields{
			"interface": merged.Name,
			"deleted":   deleted,
		}).Info("total-vfs decreased, VF interfaces will be removed")
		plan.DeleteIfaces = append(plan.DeleteIfaces, deleted...)
	}
}

// VerifyStates returns the post-apply comparison snapshots for every entity
// the plan touches, applied interfaces first, then generated VFs in PF
// document order.
func (m *Manager) VerifyStates(plan *Plan) []*iface.EthernetIface {
	var snapshots []*iface.EthernetIface
	for _, ifc := range plan.Apply {
		snapshots = append(snapshots, ifc.StateForVerify())
		for _, vf := range plan.CreateVFs[ifc.Name] {
			snapshots = append(snapshots, vf.StateForVerify())
		}
	}
	return snapshots
}
