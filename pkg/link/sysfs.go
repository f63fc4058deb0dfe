package link

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"netstate/pkg/types"
)

// sysClassNet is defined as a variable so it can be pointed at a fixture
// tree in tests.
var sysClassNet = "/sys/class/net"

// ReadSRIOV returns the observed SR-IOV configuration of an interface, or
// nil when the device is not SR-IOV capable. The returned descriptors carry
// the VF slot ids; ReadVFAttrs enriches them with per-VF attributes.
func ReadSRIOV(ifname string) (*types.SRIOVConfig, error) {
	devicePath := filepath.Join(sysClassNet, ifname, "device")
	if _, err := os.Stat(filepath.Join(devicePath, "sriov_totalvfs")); err != nil {
		return nil, nil
	}

	numVFs, err := readSysfsInt(filepath.Join(devicePath, "sriov_numvfs"))
	if err != nil {
		return nil, fmt.Errorf("failed to read sriov_numvfs for %s: %v", ifname, err)
	}

	cfg := &types.SRIOVConfig{TotalVFs: &numVFs}
	for i := 0; i < numVFs; i++ {
		id := i
		cfg.VFs = append(cfg.VFs, types.VFConfig{ID: &id})
	}
	return cfg, nil
}

// MaxVFs returns the hardware VF limit of an SR-IOV capable device.
func MaxVFs(ifname string) (int, error) {
	max, err := readSysfsInt(filepath.Join(sysClassNet, ifname, "device", "sriov_totalvfs"))
	if err != nil {
		return 0, fmt.Errorf("failed to read sriov_totalvfs for %s: %v", ifname, err)
	}
	return max, nil
}

// SetNumVFs instantiates the given number of VFs on a PF. The kernel
// refuses to change a non-zero VF count directly, so the count is reset to
// zero first.
func SetNumVFs(ifname string, count int) error {
	path := filepath.Join(sysClassNet, ifname, "device", "sriov_numvfs")

	current, err := readSysfsInt(path)
	if err != nil {
		return fmt.Errorf("failed to read sriov_numvfs for %s: %v", ifname, err)
	}
	if current == count {
		return nil
	}
	if current != 0 {
		if err := os.WriteFile(path, []byte("0"), 0644); err != nil {
			return fmt.Errorf("failed to reset VF count on %s: %v", ifname, err)
		}
	}
	if count != 0 {
		if err := os.WriteFile(path, []byte(strconv.Itoa(count)), 0644); err != nil {
			return fmt.Errorf("failed to set VF count on %s: %v", ifname, err)
		}
	}
	return nil
}

func readSysfsInt(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}
