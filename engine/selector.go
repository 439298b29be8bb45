package engine

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/gravsim/body"
	"github.com/lixenwraith/gravsim/physics"
	"github.com/lixenwraith/gravsim/vmath"
)

// MissPolicy decides what a click on empty space does to the selection
type MissPolicy uint8

const (
	KeepOnMiss MissPolicy = iota
	ClearOnMiss
)

func (p MissPolicy) String() string {
	if p == ClearOnMiss {
		return "clear"
	}
	return "keep"
}

// ParseMissPolicy accepts "keep" or "clear", case-insensitive; empty means keep
func ParseMissPolicy(s string) (MissPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "keep":
		return KeepOnMiss, nil
	case "clear":
		return ClearOnMiss, nil
	default:
		return KeepOnMiss, fmt.Errorf("unknown miss policy %q (want keep or clear)", s)
	}
}

// Selector applies pick results to the registry selection
type Selector struct {
	Policy MissPolicy
}

// Apply picks along ray; a hit selects the body, a miss follows the policy
func (s Selector) Apply(reg *body.Registry, ray vmath.Ray) (body.ID, bool) {
	id, hit := physics.Pick(reg.Bodies(), ray)
	if hit {
		if err := reg.Select(id); err != nil {
			return body.NoID, false
		}
		return id, true
	}
	if s.Policy == ClearOnMiss {
		reg.Deselect()
	}
	return body.NoID, false
}
