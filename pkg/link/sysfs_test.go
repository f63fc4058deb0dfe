package link

import (
	"os"
	"path/filepath"
	"testing"
)

// writeSysfsFixture builds a fake /sys/class/net tree for one interface
func writeSysfsFixture(t *testing.T, ifname, totalVFs, numVFs string) string {
	t.Helper()
	root := t.TempDir()
	devicePath := filepath.Join(root, ifname, "device")
	if err := os.MkdirAll(devicePath, 0755); err != nil {
		t.Fatalf("Failed to create fixture tree: %v", err)
	}
	if err := os.WriteFile(filepath.Join(devicePath, "sriov_totalvfs"), []byte(totalVFs+"\n"), 0644); err != nil {
		t.Fatalf("Failed to write sriov_totalvfs: %v", err)
	}
	if err := os.WriteFile(filepath.Join(devicePath, "sriov_numvfs"), []byte(numVFs+"\n"), 0644); err != nil {
		t.Fatalf("Failed to write sriov_numvfs: %v", err)
	}
	return root
}

// TestReadSRIOV tests reading the observed VF count from sysfs
func TestReadSRIOV(t *testing.T) {
	oldRoot := sysClassNet
	sysClassNet = writeSysfsFixture(t, "eth0", "64", "4")
	defer func() { sysClassNet = oldRoot }()

	cfg, err := ReadSRIOV("eth0")
	if err != nil {
		t.Fatalf("ReadSRIOV failed: %v", err)
	}
	if cfg == nil {
		t.Fatal("Expected SR-IOV config for capable device")
	}
	if cfg.TotalVFs == nil || *cfg.TotalVFs != 4 {
		t.Errorf("Expected total-vfs 4, got %v", cfg.TotalVFs)
	}
	if len(cfg.VFs) != 4 {
		t.Fatalf("Expected 4 VF descriptors, got %d", len(cfg.VFs))
	}
	for i, vf := range cfg.VFs {
		if vf.ID == nil || *vf.ID != i {
			t.Errorf("Expected VF descriptor %d to carry its slot id", i)
		}
	}
}

// TestReadSRIOVNotCapable tests that non SR-IOV devices yield no config
func TestReadSRIOVNotCapable(t *testing.T) {
	oldRoot := sysClassNet
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "eth0", "device"), 0755); err != nil {
		t.Fatalf("Failed to create fixture tree: %v", err)
	}
	sysClassNet = root
	defer func() { sysClassNet = oldRoot }()

	cfg, err := ReadSRIOV("eth0")
	if err != nil {
		t.Fatalf("ReadSRIOV failed: %v", err)
	}
	if cfg != nil {
		t.Errorf("Expected nil config for non SR-IOV device, got %+v", cfg)
	}
}

// TestMaxVFs tests reading the hardware VF limit
func TestMaxVFs(t *testing.T) {
	oldRoot := sysClassNet
	sysClassNet = writeSysfsFixture(t, "eth0", "64", "0")
	defer func() { sysClassNet = oldRoot }()

	max, err := MaxVFs("eth0")
	if err != nil {
		t.Fatalf("MaxVFs failed: %v", err)
	}
	if max != 64 {
		t.Errorf("Expected 64, got %d", max)
	}
}

// TestSetNumVFs tests VF count changes including the reset-to-zero step
func TestSetNumVFs(t *testing.T) {
	oldRoot := sysClassNet
	sysClassNet = writeSysfsFixture(t, "eth0", "64", "4")
	defer func() { sysClassNet = oldRoot }()

	numVFsPath := filepath.Join(sysClassNet, "eth0", "device", "sriov_numvfs")

	if err := SetNumVFs("eth0", 2); err != nil {
		t.Fatalf("SetNumVFs failed: %v", err)
	}
	data, err := os.ReadFile(numVFsPath)
	if err != nil {
		t.Fatalf("Failed to read back sriov_numvfs: %v", err)
	}
	if string(data) != "2" {
		t.Errorf("Expected sriov_numvfs to contain 2, got %q", string(data))
	}

	// same count is a no-op
	if err := SetNumVFs("eth0", 2); err != nil {
		t.Fatalf("SetNumVFs no-op failed: %v", err)
	}
}

// TestSetNumVFsMissingDevice tests the error path for unknown interfaces
func TestSetNumVFsMissingDevice(t *testing.T) {
	oldRoot := sysClassNet
	sysClassNet = t.TempDir()
	defer func() { sysClassNet = oldRoot }()

	if err := SetNumVFs("enp99s0", 2); err == nil {
		t.Error("Expected error for missing device")
	}
}
