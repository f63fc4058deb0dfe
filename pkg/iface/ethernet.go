package iface

import (
	"fmt"
	"regexp"
	"strings"

	"netstate/pkg/types"
	"netstate/pkg/validator"
)

const (
	// bnxtPhysPortPrefix is the phys_port_name prefix used by the Broadcom
	// bnxt_en driver.
	bnxtPhysPortPrefix = "p"
	// multiportDevicePrefix marks multi-port PCI device support in the PF
	// interface name.
	multiportDevicePrefix = "n"
)

var macAddressPattern = regexp.MustCompile(`^([0-9a-fA-F]{2}:){3,31}[0-9a-fA-F]{2}$`)

// EthernetIface is the interface entity for physical ethernet devices,
// including their SR-IOV configuration.
type EthernetIface struct {
	BaseIface `yaml:",inline"`
	Ethernet  *types.EthernetConfig `yaml:"ethernet,omitempty" json:"ethernet,omitempty"`

	// generatedVF marks entities synthesized from total-vfs rather than
	// declared in a state document. It never reaches serialized output.
	generatedVF bool
}

// Merge overlays the desired ethernet state on top of the current one and
// canonicalizes the result.
func (e *EthernetIface) Merge(other *EthernetIface) {
	if other == nil {
		return
	}
	e.BaseIface.Merge(&other.BaseIface)
	e.mergeEthernetConfig(other.Ethernet)
	e.Canonicalize()
}

func (e *EthernetIface) mergeEthernetConfig(other *types.EthernetConfig) {
	if other == nil {
		return
	}
	if e.Ethernet == nil {
		e.Ethernet = other.DeepCopy()
		return
	}
	cfg := e.Ethernet
	if cfg.AutoNeg == nil && other.AutoNeg != nil {
		an := *other.AutoNeg
		cfg.AutoNeg = &an
	}
	if cfg.Speed == nil && other.Speed != nil {
		speed := *other.Speed
		cfg.Speed = &speed
	}
	if cfg.Duplex == nil && other.Duplex != nil {
		duplex := *other.Duplex
		cfg.Duplex = &duplex
	}
	if cfg.SRIOV == nil && other.SRIOV != nil {
		cfg.SRIOV = other.SRIOV.DeepCopy()
	}
}

// Canonicalize resolves the auto-negotiation conflict: when auto-negotiation
// is enabled, explicit speed and duplex settings are meaningless and are
// removed. Idempotent.
func (e *EthernetIface) Canonicalize() {
	canonicalize(e.Ethernet)
}

func canonicalize(cfg *types.EthernetConfig) {
	if cfg == nil || cfg.AutoNeg == nil || !*cfg.AutoNeg {
		return
	}
	cfg.Speed = nil
	cfg.Duplex = nil
}

// IsSRIOV reports whether the interface declares an SR-IOV subtree.
func (e *EthernetIface) IsSRIOV() bool {
	return e.Ethernet != nil && e.Ethernet.SRIOV != nil
}

// SRIOVTotalVFs returns the declared VF count, defaulting to zero.
func (e *EthernetIface) SRIOVTotalVFs() int {
	if !e.IsSRIOV() || e.Ethernet.SRIOV.TotalVFs == nil {
		return 0
	}
	return *e.Ethernet.SRIOV.TotalVFs
}

// SRIOVVFs returns the declared VF descriptor list.
func (e *EthernetIface) SRIOVVFs() []types.VFConfig {
	if !e.IsSRIOV() {
		return nil
	}
	return e.Ethernet.SRIOV.VFs
}

// IsGeneratedVF reports whether this entity was synthesized by
// CreateVFIfaces rather than declared by the user.
func (e *EthernetIface) IsGeneratedVF() bool {
	return e.generatedVF
}

// PreEditValidationAndCleanup validates the ethernet specific fields and
// then the base fields, stopping at the first failing check.
func (e *EthernetIface) PreEditValidationAndCleanup() error {
	if err := e.validateEthernetProperties(); err != nil {
		return err
	}
	return e.BaseIface.PreEditValidationAndCleanup()
}

func (e *EthernetIface) validateEthernetProperties() error {
	if err := validator.String("duplex", e.duplex(),
		string(types.EthernetDuplexFull),
		string(types.EthernetDuplexHalf)); err != nil {
		return err
	}
	if err := validator.Integer("speed", e.speed(), 0); err != nil {
		return err
	}
	if err := validator.Integer("total-vfs", e.totalVFs(), 0); err != nil {
		return err
	}
	for _, vf := range e.SRIOVVFs() {
		if err := validator.Integer("id", vf.ID, 0); err != nil {
			return err
		}
		if err := validator.Pattern("mac-address", vf.MACAddress, macAddressPattern); err != nil {
			return err
		}
		if err := validator.Integer("max-tx-rate", vf.MaxTxRate, 0); err != nil {
			return err
		}
		if err := validator.Integer("min-tx-rate", vf.MinTxRate, 0); err != nil {
			return err
		}
	}
	return nil
}

func (e *EthernetIface) duplex() *string {
	if e.Ethernet == nil || e.Ethernet.Duplex == nil {
		return nil
	}
	duplex := string(*e.Ethernet.Duplex)
	return &duplex
}

func (e *EthernetIface) speed() *int {
	if e.Ethernet == nil {
		return nil
	}
	return e.Ethernet.Speed
}

func (e *EthernetIface) totalVFs() *int {
	if !e.IsSRIOV() {
		return nil
	}
	return e.Ethernet.SRIOV.TotalVFs
}

// NormalizeVFMACs uppercases every declared VF MAC address so that MAC
// comparison downstream is case insensitive by construction.
func (e *EthernetIface) NormalizeVFMACs() {
	normalizeVFMACs(e.Ethernet)
}

func normalizeVFMACs(cfg *types.EthernetConfig) {
	if cfg == nil || cfg.SRIOV == nil {
		return
	}
	for i := range cfg.SRIOV.VFs {
		if mac := cfg.SRIOV.VFs[i].MACAddress; mac != nil {
			upper := strings.ToUpper(*mac)
			cfg.SRIOV.VFs[i].MACAddress = &upper
		}
	}
}

// vfNameBase returns the PF name stripped for VF naming. There is no kernel
// interface exposing the PF to VF name relation, and the Broadcom BCM57416
// uses a different pattern for PF and VF names:
//
//	PF name: ens2f0np0
//	VF name: ens2f0v0
//
// The `n` is multi-port PCI device support and the `p<port>` is the
// phys_port_name reported by the bnxt_en driver, so the suffix has to be
// dropped before appending the VF slot. Standard names contain no "np"
// marker and pass through unchanged.
func (e *EthernetIface) vfNameBase() string {
	marker := multiportDevicePrefix + bnxtPhysPortPrefix
	parts := strings.Split(e.Name, marker)
	if len(parts) == 2 {
		return parts[0]
	}
	return e.Name
}

// VFName returns the deterministic interface name of the VF at the given
// slot. Per systemd.net-naming-scheme(7) a VF device name carries v{slot}.
func (e *EthernetIface) VFName(slot int) string {
	return fmt.Sprintf("%sv%d", e.vfNameBase(), slot)
}

// CreateVFIfaces synthesizes one interface entity per declared VF slot.
// The entities are transient: they exist only to be reconciled against the
// observed VFs and must not be written back into the state document.
func (e *EthernetIface) CreateVFIfaces() []*EthernetIface {
	total := e.SRIOVTotalVFs()
	vfs := make([]*EthernetIface, 0, total)
	for i := 0; i < total; i++ {
		vfs = append(vfs, &EthernetIface{
			BaseIface: BaseIface{
				Name: e.VFName(i),
				Type: types.InterfaceTypeEthernet,
				// VFs come up in DOWN state initially
				State: types.InterfaceStateDown,
			},
			generatedVF: true,
		})
	}
	return vfs
}

// TrimExcessVFs drops trailing VF descriptors when the declared list is
// longer than total-vfs, keeping the lowest slots intact.
func (e *EthernetIface) TrimExcessVFs() {
	if !e.IsSRIOV() {
		return
	}
	total := e.SRIOVTotalVFs()
	for len(e.Ethernet.SRIOV.VFs) > total {
		e.Ethernet.SRIOV.VFs = e.Ethernet.SRIOV.VFs[:len(e.Ethernet.SRIOV.VFs)-1]
	}
}

// DeletedVFNames returns the names of the VF interfaces that disappear when
// total-vfs decreased from oldTotalVFs, in ascending slot order. Empty when
// the count did not decrease.
func (e *EthernetIface) DeletedVFNames(oldTotalVFs int) []string {
	var names []string
	for i := e.SRIOVTotalVFs(); i < oldTotalVFs; i++ {
		names = append(names, e.VFName(i))
	}
	return names
}

// TotalVFsMatchesVFList reports whether the VF descriptor list covers every
// declared VF slot.
func (e *EthernetIface) TotalVFsMatchesVFList(totalVFs int) bool {
	return totalVFs == len(e.SRIOVVFs())
}

// DeepCopy returns a copy of the entity that shares no pointers with the
// original.
func (e *EthernetIface) DeepCopy() *EthernetIface {
	return &EthernetIface{
		BaseIface:   e.BaseIface.deepCopy(),
		Ethernet:    e.Ethernet.DeepCopy(),
		generatedVF: e.generatedVF,
	}
}

// StateForVerify returns the comparison snapshot used by post-apply
// verification: MAC addresses normalized, auto-negotiation canonicalized,
// and for generated VFs the administrative state dropped, because the real
// state of a driver-managed VF is unpredictable while the PF's VF count is
// changing. Fields absent from the snapshot are excluded from comparison.
func (e *EthernetIface) StateForVerify() *EthernetIface {
	out := e.DeepCopy()
	normalizeVFMACs(out.Ethernet)
	canonicalize(out.Ethernet)
	if e.generatedVF {
		out.State = ""
	}
	return out
}
