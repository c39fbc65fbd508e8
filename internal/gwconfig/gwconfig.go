// Package gwconfig parses the gateway's TOML specification and the
// federation timing parameters into plain Go structs, confining the
// viper/mapstructure dependency to this package per spec.md section 6.3
// ("configuration file parsing (TOML)... external collaborators").
package gwconfig

import (
	"bytes"
	"fmt"

	"github.com/spf13/viper"
)

// NodeSpec is one `[[nodes]]` table entry: a required type/name pair
// plus whatever node-specific keys that type's constructor expects.
type NodeSpec struct {
	Type string `mapstructure:"type"`
	Name string `mapstructure:"name"`

	// Settings holds every other key in the table, handed to the node
	// constructor registered for Type.
	Settings map[string]any `mapstructure:",remain"`
}

// ChannelSpec is one `[[channels]]` table entry naming the producing and
// consuming node by name.
type ChannelSpec struct {
	From string `mapstructure:"from"`
	To   string `mapstructure:"to"`
}

// ExternalsSpec is the optional `[externals]` table exposing one node's
// input and one node's output to the hosting application.
type ExternalsSpec struct {
	Incoming string `mapstructure:"incoming"`
	Outgoing string `mapstructure:"outgoing"`
}

// GatewaySpec is the root of the TOML document spec.md section 6.3
// describes.
type GatewaySpec struct {
	Nodes     []NodeSpec    `mapstructure:"nodes"`
	Channels  []ChannelSpec `mapstructure:"channels"`
	Externals ExternalsSpec `mapstructure:"externals"`
}

// ParseGatewaySpec decodes a TOML document's bytes into a GatewaySpec.
// It performs no validation beyond what viper's decoder itself enforces
// (type coercion); the gateway builder is responsible for the build-time
// checks spec.md section 4.7.1 names (missing type/name, unknown node
// types, dangling channels, cycles).
func ParseGatewaySpec(toml []byte) (GatewaySpec, error) {
	v := viper.New()
	v.SetConfigType("toml")
	if err := v.ReadConfig(bytes.NewReader(toml)); err != nil {
		return GatewaySpec{}, fmt.Errorf("gwconfig: read gateway spec: %w", err)
	}

	var spec GatewaySpec
	if err := v.Unmarshal(&spec); err != nil {
		return GatewaySpec{}, fmt.Errorf("gwconfig: unmarshal gateway spec: %w", err)
	}
	return spec, nil
}

// FederationSpec mirrors internal/engine.FederationParameters for TOML
// loading, keeping the engine package free of any configuration-format
// dependency.
type FederationSpec struct {
	EntityStateHeartbeat string  `mapstructure:"entity_state_heartbeat"`
	TransmitterHeartbeat string  `mapstructure:"transmitter_heartbeat"`
	EmissionHeartbeat    string  `mapstructure:"emission_heartbeat"`
	IFFHeartbeat         string  `mapstructure:"iff_heartbeat"`
	DesignatorHeartbeat  string  `mapstructure:"designator_heartbeat"`
	FullUpdateMultiplier float64 `mapstructure:"full_update_multiplier"`
}

// ParseFederationSpec decodes a `[federation]` TOML table into a
// FederationSpec. Durations are kept as strings here (parsed by the
// caller via time.ParseDuration) so this package stays free of an
// internal/engine import and the dependency direction runs one way:
// gwconfig -> nothing domain-specific, engine -> nothing config-specific.
func ParseFederationSpec(toml []byte) (FederationSpec, error) {
	v := viper.New()
	v.SetConfigType("toml")
	if err := v.ReadConfig(bytes.NewReader(toml)); err != nil {
		return FederationSpec{}, fmt.Errorf("gwconfig: read federation spec: %w", err)
	}

	var spec FederationSpec
	if err := v.UnmarshalKey("federation", &spec); err != nil {
		return FederationSpec{}, fmt.Errorf("gwconfig: unmarshal federation spec: %w", err)
	}
	return spec, nil
}
