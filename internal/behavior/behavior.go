// Package behavior builds entity behavior presets: component groups that
// conform to the component schemas the compiler exports.
//
// Locomotion is a closed set of variants, each a pure function from a
// movement configuration to a component group, composed with a shared
// base-component builder. There is no preset hierarchy; callers pick a
// variant and get a fresh group they can customise without mutating
// package-level state.
package behavior

import (
	"github.com/cockroachdb/errors"
	json "github.com/goccy/go-json"
)

// Locomotion identifies how an entity moves through the world.
type Locomotion string

const (
	Terrestrial Locomotion = "terrestrial"
	Aquatic     Locomotion = "aquatic"
	Semiaquatic Locomotion = "semiaquatic"
	Volant      Locomotion = "volant"
	Levitating  Locomotion = "levitating"
)

// Locomotions lists every variant, in declaration order.
func Locomotions() []Locomotion {
	return []Locomotion{Terrestrial, Aquatic, Semiaquatic, Volant, Levitating}
}

// MovementConfig holds the designer-tunable movement parameters shared
// by all locomotion variants. Zero values fall back to the defaults in
// withDefaults.
type MovementConfig struct {
	Speed           float64 `json:"speed,omitempty"`
	UnderwaterSpeed float64 `json:"underwaterSpeed,omitempty"`
	FlyingSpeed     float64 `json:"flyingSpeed,omitempty"`
	JumpPower       float64 `json:"jumpPower,omitempty"`
	CanSprint       bool    `json:"canSprint,omitempty"`
	AvoidsWater     bool    `json:"avoidsWater,omitempty"`
}

func (c MovementConfig) withDefaults() MovementConfig {
	if c.Speed == 0 {
		c.Speed = 0.25
	}
	if c.UnderwaterSpeed == 0 {
		c.UnderwaterSpeed = c.Speed * 0.8
	}
	if c.FlyingSpeed == 0 {
		c.FlyingSpeed = c.Speed * 1.6
	}
	if c.JumpPower == 0 {
		c.JumpPower = 0.42
	}
	return c
}

// ComponentGroup is a bag of engine components keyed by component name.
// Values are plain JSON-shaped data matching the exported schemas.
type ComponentGroup map[string]any

// variantComponents maps each locomotion variant to its builder. The map
// is the entire dispatch surface; adding a variant means adding a row.
var variantComponents = map[Locomotion]func(MovementConfig) ComponentGroup{
	Terrestrial: terrestrialComponents,
	Aquatic:     aquaticComponents,
	Semiaquatic: semiaquaticComponents,
	Volant:      volantComponents,
	Levitating:  levitatingComponents,
}

// Components builds the full component group for the variant, merging
// the variant-specific components over the shared base set.
func (l Locomotion) Components(cfg MovementConfig) (ComponentGroup, error) {
	build, ok := variantComponents[l]
	if !ok {
		return nil, errors.Newf("unknown locomotion variant %q", l)
	}
	cfg = cfg.withDefaults()
	group := baseComponents(cfg)
	for name, component := range build(cfg) {
		group[name] = component
	}
	return group, nil
}

// baseComponents is shared by every variant.
func baseComponents(cfg MovementConfig) ComponentGroup {
	group := ComponentGroup{
		"movement": map[string]any{
			"value": cfg.Speed,
		},
		"jump.static": map[string]any{
			"jump_power": cfg.JumpPower,
		},
	}
	if cfg.CanSprint {
		group["movement"].(map[string]any)["max"] = cfg.Speed * 1.3
	}
	return group
}

func terrestrialComponents(cfg MovementConfig) ComponentGroup {
	nav := map[string]any{
		"can_walk": true,
	}
	if cfg.AvoidsWater {
		nav["avoid_water"] = true
	}
	return ComponentGroup{
		"movement.basic":  map[string]any{},
		"navigation.walk": nav,
		"behavior.random_stroll": map[string]any{
			"speed_multiplier": 1.0,
		},
	}
}

func aquaticComponents(cfg MovementConfig) ComponentGroup {
	return ComponentGroup{
		"movement.swim": map[string]any{},
		"underwater_movement": map[string]any{
			"value": cfg.UnderwaterSpeed,
		},
		"navigation.swim": map[string]any{
			"can_swim":   true,
			"can_breach": false,
			"avoid_sun":  false,
			"can_sink":   false,
		},
		"breathable": map[string]any{
			"breathes_water": true,
		},
	}
}

func semiaquaticComponents(cfg MovementConfig) ComponentGroup {
	return ComponentGroup{
		"movement.amphibious": map[string]any{},
		"underwater_movement": map[string]any{
			"value": cfg.UnderwaterSpeed,
		},
		"navigation.generic": map[string]any{
			"can_walk": true,
			"can_swim": true,
			"can_sink": false,
		},
		"breathable": map[string]any{
			"breathes_air":   true,
			"breathes_water": true,
		},
	}
}

func volantComponents(cfg MovementConfig) ComponentGroup {
	return ComponentGroup{
		"movement.fly": map[string]any{},
		"flying_speed": map[string]any{
			"value": cfg.FlyingSpeed,
		},
		"navigation.fly": map[string]any{
			"can_path_from_air": true,
		},
		"can_fly": map[string]any{},
	}
}

func levitatingComponents(cfg MovementConfig) ComponentGroup {
	return ComponentGroup{
		"movement.hover": map[string]any{},
		"flying_speed": map[string]any{
			"value": cfg.FlyingSpeed,
		},
		"navigation.hover": map[string]any{
			"can_path_from_air":   true,
			"can_path_over_water": true,
		},
		"can_fly": map[string]any{},
	}
}

// Encode renders a component group as indented JSON.
func (g ComponentGroup) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "encode component group")
	}
	return data, nil
}
