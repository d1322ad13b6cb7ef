package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestChmod(t *testing.T) {
	tests := []struct {
		name  string
		dir   bool
		start os.FileMode
		want  os.FileMode
	}{
		{"file to default", false, 0600, FilePerm},
		{"dir to default", true, 0700, DirPerm},
		{"file to private", false, FilePerm, 0600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "target")
			if tt.dir {
				if err := os.Mkdir(path, tt.start); err != nil {
					t.Fatal(err)
				}
			} else if err := os.WriteFile(path, []byte("x"), tt.start); err != nil {
				t.Fatal(err)
			}

			if err := Chmod(path, tt.want); err != nil {
				t.Fatalf("Chmod failed: %v", err)
			}
			if runtime.GOOS == "windows" {
				return
			}
			info, err := os.Stat(path)
			if err != nil {
				t.Fatal(err)
			}
			if perm := info.Mode().Perm(); perm != tt.want {
				t.Errorf("permissions = %o, want %o", perm, tt.want)
			}
		})
	}
}
