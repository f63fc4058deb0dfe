package validator

import (
	"errors"
	"regexp"
	"testing"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

// TestInteger tests the minimum check and the absent-value skip
func TestInteger(t *testing.T) {
	if err := Integer("speed", nil, 0); err != nil {
		t.Errorf("Expected nil value to pass, got %v", err)
	}
	if err := Integer("speed", intPtr(1000), 0); err != nil {
		t.Errorf("Expected 1000 to pass, got %v", err)
	}
	if err := Integer("speed", intPtr(0), 0); err != nil {
		t.Errorf("Expected minimum value itself to pass, got %v", err)
	}

	err := Integer("total-vfs", intPtr(-4), 0)
	if err == nil {
		t.Fatal("Expected negative value to fail")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected ValidationError, got %T", err)
	}
	if verr.Field != "total-vfs" {
		t.Errorf("Expected field 'total-vfs', got %s", verr.Field)
	}
}

// TestString tests the allowed-values check
func TestString(t *testing.T) {
	if err := String("duplex", nil, "full", "half"); err != nil {
		t.Errorf("Expected nil value to pass, got %v", err)
	}
	if err := String("duplex", strPtr("full"), "full", "half"); err != nil {
		t.Errorf("Expected 'full' to pass, got %v", err)
	}

	err := String("duplex", strPtr("diagonal"), "full", "half")
	if err == nil {
		t.Fatal("Expected 'diagonal' to fail")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected ValidationError, got %T", err)
	}
	if verr.Field != "duplex" {
		t.Errorf("Expected field 'duplex', got %s", verr.Field)
	}
}

// TestPattern tests the regular expression check
func TestPattern(t *testing.T) {
	macPattern := regexp.MustCompile(`^([0-9a-fA-F]{2}:){3,31}[0-9a-fA-F]{2}$`)

	if err := Pattern("mac-address", nil, macPattern); err != nil {
		t.Errorf("Expected nil value to pass, got %v", err)
	}
	if err := Pattern("mac-address", strPtr("aa:bb:cc:dd:ee:ff"), macPattern); err != nil {
		t.Errorf("Expected valid MAC to pass, got %v", err)
	}
	// Infiniband style addresses have up to 32 octets
	if err := Pattern("mac-address", strPtr("00:11:22:33"), macPattern); err != nil {
		t.Errorf("Expected 4-octet address to pass, got %v", err)
	}

	if err := Pattern("mac-address", strPtr("zz:11:22:33:44:55"), macPattern); err == nil {
		t.Error("Expected non-hex MAC to fail")
	}
	if err := Pattern("mac-address", strPtr("aa:bb:cc"), macPattern); err == nil {
		t.Error("Expected too-short address to fail")
	}
}
