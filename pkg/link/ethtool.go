package link

import (
	"fmt"

	"github.com/safchain/ethtool"

	"netstate/pkg/iface"
	"netstate/pkg/types"
)

// Linux ethtool duplex and speed encodings
const (
	duplexHalf   = 0x00
	duplexFull   = 0x01
	speedUnknown = uint32(0xffffffff)
)

// ReadLinkConfig reads the live link settings of an interface through the
// ethtool ioctl interface and maps them onto an ethernet config.
func ReadLinkConfig(ifname string) (*types.EthernetConfig, error) {
	e, err := ethtool.NewEthtool()
	if err != nil {
		return nil, fmt.Errorf("failed to open ethtool socket: %v", err)
	}
	defer e.Close()

	return readLinkConfig(e, ifname)
}

func readLinkConfig(e *ethtool.Ethtool, ifname string) (*types.EthernetConfig, error) {
	var cmd ethtool.EthtoolCmd
	speed, err := e.CmdGet(&cmd, ifname)
	if err != nil {
		return nil, fmt.Errorf("failed to read link settings for %s: %v", ifname, err)
	}

	cfg := &types.EthernetConfig{}
	autoneg := cmd.Autoneg != 0
	cfg.AutoNeg = &autoneg
	if speed != 0 && speed != speedUnknown {
		s := int(speed)
		cfg.Speed = &s
	}
	switch cmd.Duplex {
	case duplexHalf:
		duplex := types.EthernetDuplexHalf
		cfg.Duplex = &duplex
	case duplexFull:
		duplex := types.EthernetDuplexFull
		cfg.Duplex = &duplex
	}
	return cfg, nil
}

// CurrentIface assembles the observed state of one ethernet interface from
// ethtool, sysfs and netlink. It is the "current" side of the
// desired-over-current merge.
func CurrentIface(ifname string) (*iface.EthernetIface, error) {
	e, err := ethtool.NewEthtool()
	if err != nil {
		return nil, fmt.Errorf("failed to open ethtool socket: %v", err)
	}
	defer e.Close()

	cfg, err := readLinkConfig(e, ifname)
	if err != nil {
		return nil, err
	}

	sriov, err := ReadSRIOV(ifname)
	if err != nil {
		return nil, err
	}
	if sriov != nil {
		if vfs, err := ReadVFAttrs(ifname); err == nil && len(vfs) > 0 {
			sriov.VFs = vfs
		}
		cfg.SRIOV = sriov
	}

	cur := &iface.EthernetIface{
		BaseIface: iface.BaseIface{
			Name:  ifname,
			Type:  types.InterfaceTypeEthernet,
			State: types.InterfaceStateDown,
		},
		Ethernet: cfg,
	}
	if state, err := e.LinkState(ifname); err == nil && state != 0 {
		cur.State = types.InterfaceStateUp
	}
	if mac, err := e.PermAddr(ifname); err == nil && mac != "" {
		cur.MACAddress = &mac
	}
	return cur, nil
}
