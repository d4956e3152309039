package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeRegister writes a CSV register fixture and returns its path.
// Rows carry 8 fields matching the header.
func writeRegister(t *testing.T, rows ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "register.csv")
	content := "ID,Asset,Threat,Vulnerability,Probability,Impact,Decision,Recommendation\n" +
		strings.Join(rows, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing register fixture: %v", err)
	}
	return path
}

func TestRunCheckValidRegister(t *testing.T) {
	path := writeRegister(t,
		"R001,EHR Database,Ransomware outbreak,Unpatched hypervisor,3,4,Reduce,Patch and segment",
		"R002,Badge system,Tailgating into server room,No mantrap,2,3,Accept,",
	)

	if err := RunCheck([]string{"-input", path, "-quiet"}); err != nil {
		t.Fatalf("RunCheck() error = %v", err)
	}
}

func TestRunCheckFullOutput(t *testing.T) {
	path := writeRegister(t,
		"R001,EHR Database,Ransomware outbreak,Unpatched hypervisor,5,5,Reduce,Patch and segment",
		"R002,Badge system,Tailgating into server room,No mantrap,2,3,Accept,",
	)

	// Non-quiet run exercises the stats, top-risks, and gap printers
	if err := RunCheck([]string{"-input", path, "-top", "3", "-gap"}); err != nil {
		t.Fatalf("RunCheck() error = %v", err)
	}
}

func TestRunCheckMissingFileFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.csv")

	if err := RunCheck([]string{"-input", path, "-quiet"}); err == nil {
		t.Fatal("RunCheck() expected error for missing register file")
	}
}

func TestRunCheckRowErrorsExceedTolerance(t *testing.T) {
	path := writeRegister(t,
		"R001,EHR Database,Ransomware outbreak,Unpatched hypervisor,3,4,Reduce,",
		"R002,Badge system,Tailgating into server room,No mantrap,9,3,Accept,",
	)

	err := RunCheck([]string{"-input", path, "-quiet"})
	if err == nil {
		t.Fatal("RunCheck() expected error when row errors exceed tolerance")
	}
	if !strings.Contains(err.Error(), "tolerance") {
		t.Errorf("error = %q, want tolerance message", err)
	}
}

func TestRunCheckToleranceAllowsRowErrors(t *testing.T) {
	path := writeRegister(t,
		"R001,EHR Database,Ransomware outbreak,Unpatched hypervisor,3,4,Reduce,",
		"R002,Badge system,Tailgating into server room,No mantrap,9,3,Accept,",
	)

	if err := RunCheck([]string{"-input", path, "-quiet", "-tolerance", "1"}); err != nil {
		t.Fatalf("RunCheck() error = %v, want row error within tolerance", err)
	}
}

func TestRunCheckGapWithImplementedControls(t *testing.T) {
	path := writeRegister(t,
		"R001,EHR Database,Ransomware outbreak,Unpatched hypervisor,3,4,Reduce,",
	)
	implemented := filepath.Join(t.TempDir(), "implemented.txt")
	content := "# already in place\nA.8.8 technical vulnerability management\n"
	if err := os.WriteFile(implemented, []byte(content), 0644); err != nil {
		t.Fatalf("writing implemented fixture: %v", err)
	}

	if err := RunCheck([]string{"-input", path, "-quiet", "-gap", "-implemented", implemented}); err != nil {
		t.Fatalf("RunCheck() error = %v", err)
	}
}

func TestRunCheckGapBadImplementedFile(t *testing.T) {
	path := writeRegister(t,
		"R001,EHR Database,Ransomware outbreak,Unpatched hypervisor,3,4,Reduce,",
	)
	missing := filepath.Join(t.TempDir(), "nope.txt")

	if err := RunCheck([]string{"-input", path, "-quiet", "-gap", "-implemented", missing}); err == nil {
		t.Fatal("RunCheck() expected error for unreadable implemented-controls file")
	}
}

func TestRunCheckExtraCatalogDir(t *testing.T) {
	path := writeRegister(t,
		"R001,EHR Database,Ransomware outbreak,Unpatched hypervisor,3,4,Reduce,",
	)
	catalogDir := t.TempDir()
	catalog := `framework: SOC 2
version: "2017"
controls:
  - id: CC6.1
    name: Logical access security
    domains: [access_control]
`
	if err := os.WriteFile(filepath.Join(catalogDir, "soc2.yaml"), []byte(catalog), 0644); err != nil {
		t.Fatalf("writing catalog fixture: %v", err)
	}

	if err := RunCheck([]string{"-input", path, "-quiet", "-gap", "-catalogs", catalogDir}); err != nil {
		t.Fatalf("RunCheck() error = %v", err)
	}
}

func TestBuildMapperRejectsBadCatalogDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")

	if _, err := buildMapper(dir); err == nil {
		t.Fatal("buildMapper() expected error for unreadable catalog directory")
	}
}

func TestLoadImplementedSetEmptyPath(t *testing.T) {
	set, err := loadImplementedSet("")
	if err != nil {
		t.Fatalf("loadImplementedSet() error = %v", err)
	}
	if len(set) != 0 {
		t.Errorf("loadImplementedSet(\"\") = %v, want empty set", set)
	}
}
