package config

import "testing"

func TestDefaultValues(t *testing.T) {
	c := Default()
	if !c.UnversionedProvidesSatisfyVersioned {
		t.Error("default should be RPM semantics (UnversionedProvidesSatisfyVersioned = true)")
	}
	if c.WhatProvidesDataExtraMin != 256 {
		t.Errorf("WhatProvidesDataExtraMin = %d, want 256", c.WhatProvidesDataExtraMin)
	}
	if c.EnqueueGrowSlack != 4096 {
		t.Errorf("EnqueueGrowSlack = %d, want 4096", c.EnqueueGrowSlack)
	}
	if c.HostArch != "noarch" {
		t.Errorf("HostArch = %q, want noarch", c.HostArch)
	}
}

func TestLoadOverridesFromEnv(t *testing.T) {
	t.Setenv("SOLVEPOOL_RPM_MODE", "false")
	t.Setenv("SOLVEPOOL_HOST_ARCH", "x86_64")
	t.Setenv("SOLVEPOOL_DEBUG_LEVEL", "3")

	c := Load()
	if c.UnversionedProvidesSatisfyVersioned {
		t.Error("SOLVEPOOL_RPM_MODE=false should clear UnversionedProvidesSatisfyVersioned")
	}
	if c.HostArch != "x86_64" {
		t.Errorf("HostArch = %q, want x86_64", c.HostArch)
	}
	if c.DebugLevel != 3 {
		t.Errorf("DebugLevel = %d, want 3", c.DebugLevel)
	}
}

func TestLoadIgnoresInvalidIntegers(t *testing.T) {
	t.Setenv("SOLVEPOOL_WHATPROVIDES_EXTRA_MIN", "not-a-number")
	c := Load()
	if c.WhatProvidesDataExtraMin != 256 {
		t.Errorf("invalid env value should leave the default, got %d", c.WhatProvidesDataExtraMin)
	}
}
