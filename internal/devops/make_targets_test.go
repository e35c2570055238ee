package devops

import (
    "os"
    "path/filepath"
    "strings"
    "testing"
)

// TestMake_DXTargets verifies developer experience targets exist in the Makefile.
func TestMake_DXTargets(t *testing.T) {
    root := findRepoRoot(t)
    b, err := os.ReadFile(filepath.Join(root, "Makefile"))
    if err != nil {
        t.Fatalf("Makefile missing: %v", err)
    }
    mk := string(b)

    for _, target := range []string{"\nbuild:", "\ntest:", "\nrun:", "\nup:", "\ndown:", "\nlogs:", "\nrebuild:", "\nimage:", "\nclean:"} {
        if !strings.Contains(mk, target) {
            t.Fatalf("Makefile should define a %q target", strings.TrimSpace(target))
        }
    }
    if !strings.Contains(mk, "--build") || !strings.Contains(mk, "--force-recreate") {
        t.Fatalf("rebuild target should include --build and --force-recreate")
    }
    if !strings.Contains(mk, "--simulate serve") {
        t.Fatalf("run target should start the API in simulation mode")
    }
}

// The build stamps internal/app build info through -ldflags.
func TestMake_BuildStampsVersion(t *testing.T) {
    root := findRepoRoot(t)
    b, err := os.ReadFile(filepath.Join(root, "Makefile"))
    if err != nil { t.Fatalf("Makefile missing: %v", err) }
    mk := string(b)
    for _, v := range []string{"BuildVersion", "BuildCommit", "BuildDate"} {
        if !strings.Contains(mk, ".Build") || !strings.Contains(mk, v) {
            t.Fatalf("LDFLAGS should set %s", v)
        }
    }
}
