package types

// InterfaceType identifies the kind of network interface
type InterfaceType string

const (
	InterfaceTypeEthernet = InterfaceType("ethernet")
	InterfaceTypeUnknown  = InterfaceType("unknown")
)

// InterfaceState is the administrative state of an interface
type InterfaceState string

const (
	InterfaceStateUp     = InterfaceState("up")
	InterfaceStateDown   = InterfaceState("down")
	InterfaceStateAbsent = InterfaceState("absent")
)

// EthernetDuplex is the link duplex mode
type EthernetDuplex string

const (
	EthernetDuplexFull = EthernetDuplex("full")
	EthernetDuplexHalf = EthernetDuplex("half")
)

// EthernetConfig holds the link and SR-IOV configuration of an ethernet
// interface. Optional fields are pointers so that an absent field can be
// distinguished from a zero value.
type EthernetConfig struct {
	AutoNeg *bool           `yaml:"auto-negotiation,omitempty" json:"auto-negotiation,omitempty"`
	Speed   *int            `yaml:"speed,omitempty" json:"speed,omitempty"`
	Duplex  *EthernetDuplex `yaml:"duplex,omitempty" json:"duplex,omitempty"`
	SRIOV   *SRIOVConfig    `yaml:"sr-iov,omitempty" json:"sr-iov,omitempty"`
}

// SRIOVConfig holds the SR-IOV subtree of an ethernet interface
type SRIOVConfig struct {
	TotalVFs *int       `yaml:"total-vfs,omitempty" json:"total-vfs,omitempty"`
	VFs      []VFConfig `yaml:"vfs,omitempty" json:"vfs,omitempty"`
}

// VFConfig holds the per-VF configuration of an SR-IOV capable interface
type VFConfig struct {
	ID         *int    `yaml:"id,omitempty" json:"id,omitempty"`
	MACAddress *string `yaml:"mac-address,omitempty" json:"mac-address,omitempty"`
	SpoofCheck *bool   `yaml:"spoof-check,omitempty" json:"spoof-check,omitempty"`
	Trust      *bool   `yaml:"trust,omitempty" json:"trust,omitempty"`
	MaxTxRate  *int    `yaml:"max-tx-rate,omitempty" json:"max-tx-rate,omitempty"`
	MinTxRate  *int    `yaml:"min-tx-rate,omitempty" json:"min-tx-rate,omitempty"`
}

// DeepCopy returns a copy of the config that shares no pointers with the
// original
func (c *EthernetConfig) DeepCopy() *EthernetConfig {
	if c == nil {
		return nil
	}
	out := &EthernetConfig{
		AutoNeg: copyBool(c.AutoNeg),
		Speed:   copyInt(c.Speed),
		SRIOV:   c.SRIOV.DeepCopy(),
	}
	if c.Duplex != nil {
		d := *c.Duplex
		out.Duplex = &d
	}
	return out
}

// DeepCopy returns a copy of the SR-IOV subtree that shares no pointers with
// the original
func (c *SRIOVConfig) DeepCopy() *SRIOVConfig {
	if c == nil {
		return nil
	}
	out := &SRIOVConfig{TotalVFs: copyInt(c.TotalVFs)}
	if c.VFs != nil {
		out.VFs = make([]VFConfig, len(c.VFs))
		for i := range c.VFs {
			out.VFs[i] = c.VFs[i].DeepCopy()
		}
	}
	return out
}

// DeepCopy returns a copy of the VF entry that shares no pointers with the
// original
func (v VFConfig) DeepCopy() VFConfig {
	return VFConfig{
		ID:         copyInt(v.ID),
		MACAddress: copyString(v.MACAddress),
		SpoofCheck: copyBool(v.SpoofCheck),
		Trust:      copyBool(v.Trust),
		MaxTxRate:  copyInt(v.MaxTxRate),
		MinTxRate:  copyInt(v.MinTxRate),
	}
}

func copyBool(v *bool) *bool {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func copyString(v *string) *string {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
