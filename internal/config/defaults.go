package config

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		Limits:  defaultLimits(),
		Scoring: defaultScoring(),
	}
}

func defaultLimits() Limits {
	return Limits{
		MaxFiles:         5000,
		DocsCap:          10,
		ConfigsCap:       15,
		MaxReadBytes:     256_000,
		NotebookDirsCap:  20,
		EvidenceFilesCap: 3,
	}
}

// defaultSafetyIgnores are directory and file patterns that are always
// invisible to the scanner for safety and noise reduction.
var defaultSafetyIgnores = []string{
	".git/",
	".venv/",
	"venv/",
	"env/",
	"__pycache__/",
	"node_modules/",
	"site-packages/",
	"dist/",
	"build/",
	".pytest_cache/",
	".mypy_cache/",
	".coverage",
}

// requiredSafetyIgnores MUST always apply and MUST NOT be disable-able:
// the tool's own test fixtures are never evidence.
var requiredSafetyIgnores = []string{
	"tests/fixtures/",
	"test/fixtures/",
}

// Scoring holds the additive score buckets used by the evidence ranker.
// The exact numbers are part of the output contract: changing them reorders
// ranked lists and therefore the rendered document.
type Scoring struct {
	ConfigBase      int
	ConfigWorkflow  int
	ConfigRootBonus int
	ConfigExact     map[string]int

	DocBase        int
	DocRootLanding int
	DocDocsTop     int
	DocKeyword     int
	DocDocsNested  int
	DocAdminDelta  int
	DocTreeDelta   int

	DepBase           int
	DepRootManifest   int
	DepNestedManifest int
	DepTreeDelta      int
}

func defaultScoring() Scoring {
	return Scoring{
		ConfigBase:      10,
		ConfigWorkflow:  150,
		ConfigRootBonus: 100,
		ConfigExact: map[string]int{
			"makefile":                300,
			"justfile":                300,
			"tox.ini":                 200,
			"noxfile.py":              200,
			".pre-commit-config.yaml": 200,
			".pre-commit-config.yml":  200,
			"pytest.ini":              200,
		},

		DocBase:        50,
		DocRootLanding: 300,
		DocDocsTop:     250,
		DocKeyword:     200,
		DocDocsNested:  150,
		DocAdminDelta:  -20,
		DocTreeDelta:   -200,

		DepBase:           100,
		DepRootManifest:   300,
		DepNestedManifest: 150,
		DepTreeDelta:      -200,
	}
}
