package export

import (
	"encoding/json"
	"os"

	"github.com/devshahid/moneymind/pkg/domain"
)

type JSONFile struct {
	filename string
}

func NewJSONFile(filename string) Sink {
	return &JSONFile{filename: filename}
}

func (f *JSONFile) Write(txns []*domain.Transaction) error {
	data, err := json.MarshalIndent(txns, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.filename, data, 0644)
}
