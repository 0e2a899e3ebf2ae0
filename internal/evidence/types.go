// Package evidence defines the repository evidence model: the candidate
// categories, ranked lists, command groups, and the Analysis bag the
// pipeline produces. All values are created fresh per run and never
// mutated after the analyzer returns them.
package evidence

// Category identifies which of the three disjoint output lists a
// candidate path belongs to.
type Category string

const (
	CategoryDependency Category = "dependency"
	CategoryConfig     Category = "config"
	CategoryDoc        Category = "doc"
)

// CommandInfo is a single runnable command surfaced as evidence.
type CommandInfo struct {
	Command     string `json:"command"`
	Source      string `json:"source,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Confidence  string `json:"confidence,omitempty"`
}

// EnvFile is a dependency manifest (requirements.txt, pyproject.toml, ...).
type EnvFile struct {
	Path        string `json:"path"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// ConfigFile is a recognized configuration file.
type ConfigFile struct {
	Path        string `json:"path"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// DocFile is a documentation candidate.
type DocFile struct {
	Path string `json:"path"`
	Type string `json:"type"`
}

// ScriptGroup groups detected commands by intent.
type ScriptGroup struct {
	Dev     []CommandInfo `json:"dev,omitempty"`
	Start   []CommandInfo `json:"start,omitempty"`
	Test    []CommandInfo `json:"test,omitempty"`
	Lint    []CommandInfo `json:"lint,omitempty"`
	Format  []CommandInfo `json:"format,omitempty"`
	Install []CommandInfo `json:"install,omitempty"`
	Other   []CommandInfo `json:"other,omitempty"`
}

// PythonInfo describes the detected Python environment.
type PythonInfo struct {
	VersionHints         []string  `json:"pythonVersionHints"`
	VersionPin           string    `json:"pythonVersionPin,omitempty"`
	VersionComment       string    `json:"pythonVersionComments,omitempty"`
	PackageManagers      []string  `json:"packageManagers"`
	DependencyFiles      []EnvFile `json:"dependencyFiles"`
	EnvSetupInstructions []string  `json:"envSetupInstructions"`
	InstallInstructions  []string  `json:"installInstructions"`
}

// Framework is a detected web/app framework with its detection evidence.
type Framework struct {
	Name            string   `json:"name"`
	DetectionReason string   `json:"detectionReason"`
	KeySymbols      []string `json:"keySymbols,omitempty"`
	EvidencePath    string   `json:"evidencePath,omitempty"`
}

// Tooling is a non-Python toolchain detected from evidence files only.
type Tooling struct {
	Name          string   `json:"name"`
	EvidenceFiles []string `json:"evidenceFiles"`
	Note          string   `json:"note,omitempty"`
}

// TestSetup describes how the repository runs its tests.
type TestSetup struct {
	Framework     string        `json:"framework,omitempty"`
	Commands      []CommandInfo `json:"commands,omitempty"`
	UsesTox       bool          `json:"usesTox"`
	UsesNox       bool          `json:"usesNox"`
	ToxConfigPath string        `json:"toxConfigPath,omitempty"`
	NoxConfigPath string        `json:"noxConfigPath,omitempty"`
}

// Analysis is the evidence bag: the language-agnostic value an external
// adapter layer serializes. Field names are part of that contract.
type Analysis struct {
	RepoPath           string       `json:"repoPath"`
	Python             *PythonInfo  `json:"python,omitempty"`
	Scripts            ScriptGroup  `json:"scripts"`
	Docs               []DocFile    `json:"docs"`
	ConfigurationFiles []ConfigFile `json:"configurationFiles"`
	Frameworks         []Framework  `json:"frameworks,omitempty"`
	OtherTooling       []Tooling    `json:"otherTooling,omitempty"`
	PrimaryTooling     string       `json:"primaryTooling,omitempty"`
	NotebookDirs       []string     `json:"notebooks,omitempty"`
	TestSetup          TestSetup    `json:"testSetup"`
	Notes              []string     `json:"notes,omitempty"`
}

// CommandOverrides carries caller-provided commands merged into the
// blueprint on top of analyzer output.
type CommandOverrides struct {
	DevCommands  []CommandInfo `json:"devCommands,omitempty"`
	TestCommands []CommandInfo `json:"testCommands,omitempty"`
}
