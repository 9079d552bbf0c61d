package codec

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/cmlayout/pkg/circuit"
	"github.com/matzehuels/cmlayout/pkg/errors"
)

// Read parses a whole save from r. Surrounding whitespace, such as a
// trailing newline added by an editor, is ignored.
func Read(r io.Reader) (*circuit.Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read save: %w", err)
	}
	return Deserialize(strings.TrimSpace(string(data)))
}

// Write serializes g to w.
func Write(w io.Writer, g *circuit.Graph, opts Options) error {
	text, err := Serialize(g, opts)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, text); err != nil {
		return fmt.Errorf("write save: %w", err)
	}
	return nil
}

// ReadFile parses the save stored at path.
func ReadFile(path string) (*circuit.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "save %s", path)
		}
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// WriteFile serializes g to path, replacing any existing file.
func WriteFile(path string, g *circuit.Graph, opts Options) error {
	text, err := Serialize(g, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text), 0o644)
}
