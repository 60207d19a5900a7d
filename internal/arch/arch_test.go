// ./internal/arch/arch_test.go
package arch

import (
	"bytes"
	"encoding/json"
	"io"
	"os/exec"
	"strings"
	"testing"
)

type pkg struct {
	ImportPath string
	Imports    []string
	Standard   bool
}

func TestImportBoundaries(t *testing.T) {
	cmd := exec.Command("go", "list", "-json", "./...")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("go list: %v", err)
	}
	dec := json.NewDecoder(&out)

	bans := map[string][]string{
		// storage and data-plane packages stay below the app layer
		"sketchlca/internal/index": {
			"sketchlca/internal/app", "sketchlca/internal/indexapp",
			"sketchlca/internal/mergeapp", "sketchlca/internal/summaryapp",
			"sketchlca/internal/cli", "sketchlca/internal/indexcli",
			"sketchlca/internal/mergecli", "sketchlca/internal/summarycli",
			"sketchlca/cmd/",
		},
		"sketchlca/internal/parquetio": {
			"sketchlca/internal/app", "sketchlca/internal/indexapp",
			"sketchlca/internal/mergeapp", "sketchlca/internal/summaryapp",
			"sketchlca/internal/cli", "sketchlca/internal/indexcli",
			"sketchlca/internal/mergecli", "sketchlca/internal/summarycli",
			"sketchlca/internal/index", "sketchlca/cmd/",
		},
		"sketchlca/internal/taxonomy": {
			"sketchlca/internal/app", "sketchlca/internal/indexapp",
			"sketchlca/internal/mergeapp", "sketchlca/internal/summaryapp",
			"sketchlca/internal/cli", "sketchlca/internal/indexcli",
			"sketchlca/internal/mergecli", "sketchlca/internal/summarycli",
			"sketchlca/internal/index", "sketchlca/internal/parquetio",
			"sketchlca/cmd/",
		},
		"sketchlca/internal/output": {
			"sketchlca/internal/app", "sketchlca/internal/indexapp",
			"sketchlca/internal/mergeapp", "sketchlca/internal/summaryapp",
			"sketchlca/internal/cli", "sketchlca/internal/indexcli",
			"sketchlca/internal/mergecli", "sketchlca/internal/summarycli",
			"sketchlca/internal/index", "sketchlca/internal/parquetio",
			"sketchlca/cmd/",
		},
		"sketchlca/internal/writers": {
			"sketchlca/internal/app", "sketchlca/internal/indexapp",
			"sketchlca/internal/mergeapp", "sketchlca/internal/summaryapp",
			"sketchlca/internal/cli", "sketchlca/internal/indexcli",
			"sketchlca/internal/mergecli", "sketchlca/internal/summarycli",
			"sketchlca/cmd/",
		},
	}

	var violations []string
	for {
		var p pkg
		if err := dec.Decode(&p); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !strings.HasPrefix(p.ImportPath, "sketchlca/") {
			continue
		}
		imp := p.ImportPath
		for prefix, forbidden := range bans {
			if !strings.HasPrefix(imp, prefix) {
				continue
			}
			for _, dep := range p.Imports {
				if !strings.HasPrefix(dep, "sketchlca/") {
					continue
				}
				for _, ban := range forbidden {
					if strings.HasPrefix(dep, ban) {
						violations = append(violations, imp+" → "+dep)
					}
				}
			}
		}
	}

	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n  %s", strings.Join(violations, "\n  "))
	}
}
