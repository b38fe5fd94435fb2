package Naming

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ResolveCollision returns a name that does not exist in dir yet. On
// collision the current unix-millisecond timestamp is inserted before the
// extension; that disambiguated name is what must be persisted.
func ResolveCollision(dir, proposed string) string {
	target := filepath.Join(dir, proposed)
	if _, err := os.Stat(target); os.IsNotExist(err) {
		return proposed
	}
	ext := filepath.Ext(proposed)
	base := strings.TrimSuffix(proposed, ext)
	return fmt.Sprintf("%s_%d%s", base, time.Now().UnixMilli(), ext)
}

// Rename moves a staged upload to its final, collision-free name inside
// dir and returns that name. A failed rename still returns the resolved
// name: the caller persists the image row either way and the file keeps
// its staged name on disk until reconciled manually.
func Rename(stagedPath, dir, proposed string) (string, error) {
	final := ResolveCollision(dir, proposed)
	if err := os.Rename(stagedPath, filepath.Join(dir, final)); err != nil {
		return final, err
	}
	return final, nil
}
