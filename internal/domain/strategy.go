package domain

// Strategy identifies how a launch forces the discrete GPU.
type Strategy string

const (
	// StrategyVulkan wraps the command with pvkrun (primus_vk).
	StrategyVulkan Strategy = "vulkan"
	// StrategyGL wraps the command with primusrun.
	StrategyGL Strategy = "gl"
	// StrategyOpti wraps the command with optirun (Bumblebee).
	StrategyOpti Strategy = "opti"
	// StrategyPrime injects NVIDIA PRIME render offload variables
	// instead of wrapping the command.
	StrategyPrime Strategy = "prime"
	// StrategyNone launches the command untouched.
	StrategyNone Strategy = "none"
)

// DefaultStrategy applies when neither flags nor config pick one.
const DefaultStrategy = StrategyVulkan

// StrategyDef describes what a strategy does to a launch: an optional
// wrapper binary prepended to the command, and environment variables
// appended to the inherited environment. Config sections can override
// built-in definitions or add new ones under their own names.
type StrategyDef struct {
	Wrapper     string            `toml:"wrapper"`
	Description string            `toml:"description"`
	Env         map[string]string `toml:"env"`
}

// HasWrapper reports whether the strategy prepends a wrapper binary.
func (d StrategyDef) HasWrapper() bool {
	return d.Wrapper != ""
}

// BuiltinStrategies returns the definitions gpurun ships with. The map
// is freshly allocated; callers may modify it.
func BuiltinStrategies() map[string]StrategyDef {
	return map[string]StrategyDef{
		string(StrategyVulkan): {
			Wrapper:     "pvkrun",
			Description: "run Vulkan applications on the discrete GPU",
		},
		string(StrategyGL): {
			Wrapper:     "primusrun",
			Description: "run OpenGL applications on the discrete GPU",
		},
		string(StrategyOpti): {
			Wrapper:     "optirun",
			Description: "Bumblebee offloading",
		},
		string(StrategyPrime): {
			Description: "NVIDIA PRIME render offload via environment",
			Env: map[string]string{
				"__NV_PRIME_RENDER_OFFLOAD": "1",
				"__VK_LAYER_NV_optimus":     "NVIDIA_only",
				"__GLX_VENDOR_LIBRARY_NAME": "nvidia",
			},
		},
		string(StrategyNone): {
			Description: "no GPU forcing, plain launch",
		},
	}
}
