package iface

import (
	"netstate/pkg/types"
	"netstate/pkg/validator"
)

// BaseIface holds the fields shared by every interface entity in a state
// document.
type BaseIface struct {
	Name        string               `yaml:"name" json:"name"`
	Type        types.InterfaceType  `yaml:"type,omitempty" json:"type,omitempty"`
	State       types.InterfaceState `yaml:"state,omitempty" json:"state,omitempty"`
	MACAddress  *string              `yaml:"mac-address,omitempty" json:"mac-address,omitempty"`
	MTU         *int                 `yaml:"mtu,omitempty" json:"mtu,omitempty"`
	Description *string              `yaml:"description,omitempty" json:"description,omitempty"`
}

// Merge overlays the desired fields of b on top of the current state of
// other: fields not set in b are inherited from other, fields set in b win.
func (b *BaseIface) Merge(other *BaseIface) {
	if other == nil {
		return
	}
	if b.Type == "" {
		b.Type = other.Type
	}
	if b.State == "" {
		b.State = other.State
	}
	if b.MACAddress == nil && other.MACAddress != nil {
		mac := *other.MACAddress
		b.MACAddress = &mac
	}
	if b.MTU == nil && other.MTU != nil {
		mtu := *other.MTU
		b.MTU = &mtu
	}
	if b.Description == nil && other.Description != nil {
		desc := *other.Description
		b.Description = &desc
	}
}

// PreEditValidationAndCleanup checks the base fields before the entity is
// used to compute any apply action.
func (b *BaseIface) PreEditValidationAndCleanup() error {
	if b.Name == "" {
		return &validator.ValidationError{Field: "name", Reason: "interface name is required"}
	}
	if b.State != "" {
		state := string(b.State)
		if err := validator.String("state", &state,
			string(types.InterfaceStateUp),
			string(types.InterfaceStateDown),
			string(types.InterfaceStateAbsent)); err != nil {
			return err
		}
	}
	return validator.Integer("mtu", b.MTU, 0)
}

// StateForVerify returns a copy of the base fields used for post-apply
// comparison.
func (b *BaseIface) StateForVerify() BaseIface {
	return b.deepCopy()
}

func (b *BaseIface) deepCopy() BaseIface {
	out := *b
	if b.MACAddress != nil {
		mac := *b.MACAddress
		out.MACAddress = &mac
	}
	if b.MTU != nil {
		mtu := *b.MTU
		out.MTU = &mtu
	}
	if b.Description != nil {
		desc := *b.Description
		out.Description = &desc
	}
	return out
}
