package state

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"netstate/pkg/iface"
)

// NetworkState is one declarative network state document.
type NetworkState struct {
	Interfaces []*iface.EthernetIface `yaml:"interfaces" json:"interfaces"`
}

// Load reads and parses a network state document from a YAML file.
func Load(path string) (*NetworkState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %v", err)
	}
	return Parse(data)
}

// Parse parses a network state document from YAML.
func Parse(data []byte) (*NetworkState, error) {
	var state NetworkState
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse state document: %v", err)
	}
	return &state, nil
}

// Save writes the state document to a YAML file.
func (s *NetworkState) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal state document: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %v", err)
	}
	return nil
}

// Lookup returns the interface with the given name, or nil.
func (s *NetworkState) Lookup(name string) *iface.EthernetIface {
	if s == nil {
		return nil
	}
	for _, ifc := range s.Interfaces {
		if ifc.Name == name {
			return ifc
		}
	}
	return nil
}
