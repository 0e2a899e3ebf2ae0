package extract

import (
	"strings"

	"onboardbuilder/internal/evidence"
	"onboardbuilder/internal/util/sets"
)

// MergeInstallInstructions copies python install instruction strings into
// the install command group with grounded descriptions.
//
// Guards:
//   - if "make install" is already present it stays the sole install
//     command and nothing is added;
//   - at most one "pip install -r ..." survives across the merged list;
//   - exact command strings are deduplicated.
func MergeInstallInstructions(scripts *evidence.ScriptGroup, python *evidence.PythonInfo) {
	if python == nil || len(python.InstallInstructions) == 0 {
		return
	}

	existing := sets.New[string]()
	pipRequirementsSeen := false
	for _, ci := range scripts.Install {
		cmd := strings.TrimSpace(ci.Command)
		existing.Add(cmd)
		if strings.Contains(cmd, "pip install -r") {
			pipRequirementsSeen = true
		}
	}

	if existing.Has("make install") {
		return
	}

	for _, raw := range python.InstallInstructions {
		cmd := strings.TrimSpace(raw)
		if cmd == "" || existing.Has(cmd) {
			continue
		}
		if strings.Contains(cmd, "pip install -r") {
			if pipRequirementsSeen {
				continue
			}
			pipRequirementsSeen = true
		}

		scripts.Install = append(scripts.Install, evidence.CommandInfo{
			Command:     cmd,
			Source:      "python.installInstructions",
			Description: ensurePeriod(DescribeInstallCommand(cmd)),
		})
		existing.Add(cmd)
	}
}

func ensurePeriod(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasSuffix(s, ".") {
		return s
	}
	return s + "."
}
