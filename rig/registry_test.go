package rig

import (
	"errors"
	"testing"
)

func TestRegistry(t *testing.T) {
	names := Profiles()
	found := map[string]bool{}
	for _, n := range names {
		found[n] = true
	}
	if !found["kinect2"] || !found["mmd"] {
		t.Error("embedded profiles: ", names)
	}

	Register("Test-Chain", func() (*Config, error) {
		return ParseConfig([]byte(chainConfig))
	})
	conf, err := Lookup("test-chain")
	if err != nil || conf.Name != "chain" {
		t.Fatal("Lookup: ", conf, err)
	}
	// each lookup returns a new profile
	conf.Name = "modified"
	if conf2, _ := Lookup("TEST-CHAIN"); conf2.Name != "chain" {
		t.Error("profile shared between lookups")
	}

	if _, err := Lookup("nothing"); !errors.Is(err, ErrUnknownProfile) {
		t.Error("Lookup(nothing): ", err)
	}
}

func TestParseConfig(t *testing.T) {
	if _, err := ParseConfig([]byte("name: x\nunknownField: 1\n")); !errors.Is(err, ErrInvalidConfig) {
		t.Error("unknown field should be rejected: ", err)
	}

	conf, err := Lookup("kinect2")
	if err != nil {
		t.Fatal(err)
	}
	data, err := conf.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	conf2, err := ParseConfig(data)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := BuildStructure(conf2); err != nil {
		t.Error("marshaled profile: ", err)
	}

	if _, err := LoadConfigFile("profiles/mmd.yaml"); err != nil {
		t.Error(err)
	}
	if _, err := LoadConfigFile("profiles/none.yaml"); err == nil {
		t.Error("missing file")
	}
}
