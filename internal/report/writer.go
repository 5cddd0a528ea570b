package report

import (
	"fmt"
	"os"
	"path/filepath"
)

// Output file names.
const (
	AllFile      = "comments.md"
	StudentFile  = "student_corrections.md"
	ExaminerFile = "examiner_questions.md"
)

// WriteReports creates dir if needed and writes the three markdown
// documents. Each file is written atomically (temp file + rename), so
// a later failure never leaves an earlier file half-overwritten.
func WriteReports(dir, all, student, examiner string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory %s: %w", dir, err)
	}

	files := []struct {
		name    string
		content string
	}{
		{AllFile, all},
		{StudentFile, student},
		{ExaminerFile, examiner},
	}
	for _, f := range files {
		if err := writeAtomic(filepath.Join(dir, f.name), f.content); err != nil {
			return fmt.Errorf("write %s: %w", f.name, err)
		}
	}
	return nil
}

func writeAtomic(path, content string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
