package state

import (
	"os"
	"path/filepath"
	"testing"

	"netstate/pkg/types"
)

// TestLoadStateDocument tests parsing a full desired state document
func TestLoadStateDocument(t *testing.T) {
	tempDir := t.TempDir()
	statePath := filepath.Join(tempDir, "desired.yaml")

	doc := `interfaces:
  - name: ens2f0np0
    type: ethernet
    state: up
    ethernet:
      auto-negotiation: true
      sr-iov:
        total-vfs: 2
        vfs:
          - id: 0
            mac-address: aa:bb:cc:dd:ee:ff
            spoof-check: true
          - id: 1
            trust: false
            max-tx-rate: 1000
  - name: eth1
    type: ethernet
    state: down
    ethernet:
      auto-negotiation: false
      speed: 1000
      duplex: full
`
	if err := os.WriteFile(statePath, []byte(doc), 0644); err != nil {
		t.Fatalf("Failed to write state file: %v", err)
	}

	st, err := Load(statePath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(st.Interfaces) != 2 {
		t.Fatalf("Expected 2 interfaces, got %d", len(st.Interfaces))
	}

	pf := st.Lookup("ens2f0np0")
	if pf == nil {
		t.Fatal("Expected to find ens2f0np0")
	}
	if pf.Type != types.InterfaceTypeEthernet {
		t.Errorf("Expected type ethernet, got %s", pf.Type)
	}
	if pf.State != types.InterfaceStateUp {
		t.Errorf("Expected state up, got %s", pf.State)
	}
	if pf.SRIOVTotalVFs() != 2 {
		t.Errorf("Expected total-vfs 2, got %d", pf.SRIOVTotalVFs())
	}
	vfs := pf.SRIOVVFs()
	if len(vfs) != 2 {
		t.Fatalf("Expected 2 VF entries, got %d", len(vfs))
	}
	if vfs[0].MACAddress == nil || *vfs[0].MACAddress != "aa:bb:cc:dd:ee:ff" {
		t.Errorf("Unexpected VF 0 mac-address: %v", vfs[0].MACAddress)
	}
	if vfs[1].MACAddress != nil {
		t.Errorf("Expected VF 1 mac-address to be absent, got %s", *vfs[1].MACAddress)
	}
	if vfs[1].MaxTxRate == nil || *vfs[1].MaxTxRate != 1000 {
		t.Errorf("Unexpected VF 1 max-tx-rate: %v", vfs[1].MaxTxRate)
	}

	eth1 := st.Lookup("eth1")
	if eth1 == nil {
		t.Fatal("Expected to find eth1")
	}
	if eth1.Ethernet.AutoNeg == nil || *eth1.Ethernet.AutoNeg {
		t.Error("Expected auto-negotiation false to be preserved as set")
	}
	if eth1.Ethernet.Speed == nil || *eth1.Ethernet.Speed != 1000 {
		t.Errorf("Unexpected speed: %v", eth1.Ethernet.Speed)
	}

	if st.Lookup("missing") != nil {
		t.Error("Expected lookup of unknown interface to return nil")
	}
}

// TestSaveRoundTrip tests that a saved document can be loaded back
func TestSaveRoundTrip(t *testing.T) {
	tempDir := t.TempDir()
	statePath := filepath.Join(tempDir, "state.yaml")

	doc := `interfaces:
  - name: eth0
    type: ethernet
    state: up
    ethernet:
      sr-iov:
        total-vfs: 4
`
	st, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if err := st.Save(statePath); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded, err := Load(statePath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if reloaded.Lookup("eth0") == nil {
		t.Fatal("Expected to find eth0 after round trip")
	}
	if reloaded.Lookup("eth0").SRIOVTotalVFs() != 4 {
		t.Errorf("Expected total-vfs 4, got %d", reloaded.Lookup("eth0").SRIOVTotalVFs())
	}
}

// TestParseMalformedDocument tests that type errors surface at parse time
func TestParseMalformedDocument(t *testing.T) {
	doc := `interfaces:
  - name: eth0
    ethernet:
      auto-negotiation: "not-a-bool"
`
	if _, err := Parse([]byte(doc)); err == nil {
		t.Error("Expected parse error for non-boolean auto-negotiation")
	}
}
