package buildenv

// Report is the serializable summary of a validated environment.
type Report struct {
	BasePath        string        `json:"base_path" yaml:"base_path"`
	BazelPath       string        `json:"bazel_path" yaml:"bazel_path"`
	BazelX86_64Path string        `json:"bazel_x86_64_path,omitempty" yaml:"bazel_x86_64_path,omitempty"`
	AppVersion      string        `json:"app_version" yaml:"app_version"`
	Bazel           VersionReport `json:"bazel" yaml:"bazel"`
	Xcode           VersionReport `json:"xcode" yaml:"xcode"`
	AppleSilicon    bool          `json:"apple_silicon" yaml:"apple_silicon"`
}

// VersionReport pairs the required and effective version of one tool.
type VersionReport struct {
	Required   string `json:"required" yaml:"required"`
	Effective  string `json:"effective" yaml:"effective"`
	Overridden bool   `json:"overridden" yaml:"overridden"`
}

// Report summarizes the environment.
func (e *BuildEnvironment) Report() Report {
	return Report{
		BasePath:        e.BasePath,
		BazelPath:       e.BazelPath,
		BazelX86_64Path: e.BazelX86_64Path,
		AppVersion:      e.AppVersion,
		Bazel: VersionReport{
			Required:   e.Required.Bazel,
			Effective:  e.BazelVersion,
			Overridden: e.BazelOverridden,
		},
		Xcode: VersionReport{
			Required:   e.Required.Xcode,
			Effective:  e.XcodeVersion,
			Overridden: e.XcodeOverridden,
		},
		AppleSilicon: IsAppleSilicon(),
	}
}
