// Package editor applies mutation operations to an interfaces file on disk.
//
// It owns everything the parsing core deliberately does not: reading the
// file, refusing to touch ambiguous files, check (dry-run) mode, unified-diff
// reporting, timestamped backups, and atomic replacement of the original
// (write to a temporary file in the same directory, then rename).
package editor

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"

	"grimm.is/etcnet/internal/clock"
	"grimm.is/etcnet/internal/ifacefile"
	"grimm.is/etcnet/internal/logging"
)

// Editor edits a single interfaces file.
type Editor struct {
	// Path of the file to edit.
	Path string
	// Backup writes a timestamped copy of the original next to it before
	// the first modifying write.
	Backup bool
	// CheckMode computes the result and diff without writing anything.
	CheckMode bool
	// Logger defaults to the package default logger.
	Logger *logging.Logger
}

// New returns an Editor for path with backups enabled.
func New(path string) *Editor {
	return &Editor{Path: path, Backup: true}
}

// Result reports the outcome of an Apply.
type Result struct {
	// Changed is true when at least one operation modified the document.
	Changed bool
	// Changes lists the structural differences, one per modified iface or
	// option.
	Changes []ifacefile.Change
	// Diff is a unified diff of the original against the new rendering,
	// empty when nothing changed.
	Diff string
	// BackupPath is the backup written before modification, empty in check
	// mode or when nothing changed.
	BackupPath string
	// Output is the rendered result, written to the file unless in check
	// mode.
	Output string
}

// Load parses the file at path.
func Load(path string) (*ifacefile.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, err := ifacefile.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}

// Apply runs ops against the file in order and writes the result back unless
// the editor is in check mode or nothing changed.
//
// A file whose declarations are ambiguous (the same interface/family declared
// twice) is refused outright: automation must not guess which stanza was
// meant.
func (e *Editor) Apply(ops []ifacefile.Operation) (*Result, error) {
	log := e.Logger
	if log == nil {
		log = logging.Default()
	}
	log = log.WithComponent("editor")

	original, err := os.ReadFile(e.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", e.Path, err)
	}

	doc, err := ifacefile.Parse(string(original))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", e.Path, err)
	}
	if amb := doc.AmbiguousKeys(); len(amb) > 0 {
		return nil, fmt.Errorf("%s needs manual cleanup: %d ambiguous interface declarations (first: %s)",
			e.Path, len(amb), amb[0])
	}

	before := doc
	changed := false
	for n, op := range ops {
		next, opChanged, err := ifacefile.Apply(doc, op)
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", n+1, err)
		}
		log.Debug("operation applied", "index", n+1, "changed", opChanged)
		doc = next
		changed = changed || opChanged
	}

	res := &Result{
		Changed: changed,
		Changes: ifacefile.Compare(before, doc),
		Output:  ifacefile.Render(doc),
	}

	if changed {
		res.Diff = unifiedDiff(e.Path, string(original), res.Output)
	}

	if !changed || e.CheckMode {
		if e.CheckMode && changed {
			log.Info("check mode, not writing", "path", e.Path)
		}
		return res, nil
	}

	if e.Backup {
		backupPath, err := e.writeBackup(original)
		if err != nil {
			return nil, err
		}
		res.BackupPath = backupPath
		log.Debug("backup written", "path", backupPath)
	}

	if err := e.writeAtomic([]byte(res.Output)); err != nil {
		return nil, err
	}
	log.Info("file written", "path", e.Path, "changes", len(res.Changes))
	return res, nil
}

// writeBackup copies the original contents to <path>.<timestamp>.bak.
func (e *Editor) writeBackup(original []byte) (string, error) {
	stamp := clock.Now().Format("20060102-150405")
	backupPath := fmt.Sprintf("%s.%s.bak", e.Path, stamp)
	if err := os.WriteFile(backupPath, original, 0644); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	return backupPath, nil
}

// writeAtomic replaces the file via a temporary file in the same directory,
// keeping the original's permissions. Readers never observe a partial write.
func (e *Editor) writeAtomic(data []byte) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(e.Path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(e.Path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(e.Path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Rename(tmpName, e.Path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", e.Path, err)
	}
	return nil
}

func unifiedDiff(path, before, after string) string {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: path,
		ToFile:   path + " (modified)",
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return ""
	}
	return text
}
