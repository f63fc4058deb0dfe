package link

import (
	"fmt"
	"net"

	"github.com/vishvananda/netlink"

	"netstate/pkg/types"
)

// ReadVFAttrs reads the per-VF attributes of a PF through netlink.
func ReadVFAttrs(ifname string) ([]types.VFConfig, error) {
	lnk, err := netlink.LinkByName(ifname)
	if err != nil {
		return nil, fmt.Errorf("failed to look up link %s: %v", ifname, err)
	}

	attrs := lnk.Attrs()
	vfs := make([]types.VFConfig, 0, len(attrs.Vfs))
	for _, vf := range attrs.Vfs {
		id := vf.ID
		entry := types.VFConfig{ID: &id}
		if len(vf.Mac) > 0 {
			mac := vf.Mac.String()
			entry.MACAddress = &mac
		}
		spoof := vf.Spoofchk
		entry.SpoofCheck = &spoof
		trust := vf.Trust != 0
		entry.Trust = &trust
		if vf.MaxTxRate > 0 {
			rate := int(vf.MaxTxRate)
			entry.MaxTxRate = &rate
		}
		if vf.MinTxRate > 0 {
			rate := int(vf.MinTxRate)
			entry.MinTxRate = &rate
		}
		vfs = append(vfs, entry)
	}
	return vfs, nil
}

// ApplyVFAttrs applies the declared per-VF attributes to a PF. Fields left
// unset in a descriptor are not touched.
func ApplyVFAttrs(ifname string, vfs []types.VFConfig) error {
	lnk, err := netlink.LinkByName(ifname)
	if err != nil {
		return fmt.Errorf("failed to look up link %s: %v", ifname, err)
	}

	for _, vf := range vfs {
		if vf.ID == nil {
			continue
		}
		id := *vf.ID
		if vf.MACAddress != nil {
			hwAddr, err := net.ParseMAC(*vf.MACAddress)
			if err != nil {
				return fmt.Errorf("failed to parse VF %d mac-address: %v", id, err)
			}
			if err := netlink.LinkSetVfHardwareAddr(lnk, id, hwAddr); err != nil {
				return fmt.Errorf("failed to set VF %d mac-address on %s: %v", id, ifname, err)
			}
		}
		if vf.SpoofCheck != nil {
			if err := netlink.LinkSetVfSpoofchk(lnk, id, *vf.SpoofCheck); err != nil {
				return fmt.Errorf("failed to set VF %d spoof-check on %s: %v", id, ifname, err)
			}
		}
		if vf.Trust != nil {
			if err := netlink.LinkSetVfTrust(lnk, id, *vf.Trust); err != nil {
				return fmt.Errorf("failed to set VF %d trust on %s: %v", id, ifname, err)
			}
		}
		if vf.MaxTxRate != nil || vf.MinTxRate != nil {
			var minRate, maxRate int
			if vf.MinTxRate != nil {
				minRate = *vf.MinTxRate
			}
			if vf.MaxTxRate != nil {
				maxRate = *vf.MaxTxRate
			}
			if err := netlink.LinkSetVfRate(lnk, id, minRate, maxRate); err != nil {
				return fmt.Errorf("failed to set VF %d tx rates on %s: %v", id, ifname, err)
			}
		}
	}
	return nil
}
